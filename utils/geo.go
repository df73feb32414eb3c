package utils

import "bounty-board/models"

// Bounds is a rectangular map viewport.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Contains reports whether the point falls inside the bounds (inclusive).
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}

// FilterBountiesByBounds returns the bounties whose coordinates fall inside
// the viewport. Pure function; recompute whenever the viewport or the list
// changes.
func FilterBountiesByBounds(bounties []models.Bounty, bounds Bounds) []models.Bounty {
	visible := make([]models.Bounty, 0, len(bounties))
	for _, b := range bounties {
		if bounds.Contains(b.Latitude, b.Longitude) {
			visible = append(visible, b)
		}
	}
	return visible
}
