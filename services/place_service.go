package services

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"googlemaps.github.io/maps"
)

// PlaceService proxies Google Places text search for the map search box.
// Maps is nil when MAPS_API_KEY is not configured.
type PlaceService struct {
	Maps *maps.Client
}

func NewPlaceService(client *maps.Client) *PlaceService {
	return &PlaceService{Maps: client}
}

type PlaceResult struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchPlaces resolves a free-text query to candidate places the client can
// pan the map to.
func (s *PlaceService) SearchPlaces(c *fiber.Ctx) error {
	if s.Maps == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "place search is not configured"})
	}

	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query is required"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	resp, err := s.Maps.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		log.Printf("❌ Place search failed for %q: %v", query, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "place search failed"})
	}

	results := make([]PlaceResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, PlaceResult{
			Name:      r.Name,
			Address:   r.FormattedAddress,
			Latitude:  r.Geometry.Location.Lat,
			Longitude: r.Geometry.Location.Lng,
		})
	}

	return c.JSON(results)
}
