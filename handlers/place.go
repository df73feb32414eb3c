package handlers

import (
	"bounty-board/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlaceRoutes(app *fiber.App, placeService *services.PlaceService) {
	app.Get("/places/search", placeService.SearchPlaces)
}
