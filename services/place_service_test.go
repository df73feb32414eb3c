package services_test

import (
	"net/http/httptest"
	"testing"

	"bounty-board/handlers"
	"bounty-board/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPlaces_NotConfigured(t *testing.T) {
	app := fiber.New()
	handlers.SetupPlaceRoutes(app, services.NewPlaceService(nil))

	resp, err := app.Test(httptest.NewRequest("GET", "/places/search?query=pizza", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
