package services_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bounty-board/handlers"
	"bounty-board/models"
	"bounty-board/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestApp wires the real route table against an in-memory SQLite database.
func newTestApp(t *testing.T, defaultExpiry *int) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A second pool connection would see a different :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Bounty{}, &models.Answer{}))

	app := fiber.New()
	handlers.SetupBountyRoutes(app, services.NewBountyService(db, defaultExpiry), services.NewAnswerService(db))

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		require.NoError(t, json.NewEncoder(buf).Encode(body))
		reader = buf
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func createBounty(t *testing.T, app *fiber.App, body map[string]any) models.Bounty {
	t.Helper()

	resp := doJSON(t, app, "POST", "/bounties", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var bounty models.Bounty
	decode(t, resp, &bounty)
	return bounty
}

func createAnswer(t *testing.T, app *fiber.App, bountyID string, content string) models.Answer {
	t.Helper()

	resp := doJSON(t, app, "POST", "/bounties/"+bountyID+"/answers", map[string]any{"content": content})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var answer models.Answer
	decode(t, resp, &answer)
	return answer
}

func fetchBounty(t *testing.T, app *fiber.App, id string) models.Bounty {
	t.Helper()

	resp := doJSON(t, app, "GET", "/bounties/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var bounty models.Bounty
	decode(t, resp, &bounty)
	return bounty
}
