package workers

import (
	"context"
	"log"
	"time"

	"bounty-board/models"

	"googlemaps.github.io/maps"
	"gorm.io/gorm"
)

// GeocodeBackfillWorker fills in human-readable addresses for bounties that
// were created from raw map clicks. The address is cosmetic; failures are
// retried on the next tick.
type GeocodeBackfillWorker struct {
	DB        *gorm.DB
	Maps      *maps.Client
	BatchSize int
}

func NewGeocodeBackfillWorker(db *gorm.DB, client *maps.Client) *GeocodeBackfillWorker {
	return &GeocodeBackfillWorker{
		DB:        db,
		Maps:      client,
		BatchSize: 20,
	}
}

// ResolveAddress reverse-geocodes a coordinate to a formatted address.
func (w *GeocodeBackfillWorker) ResolveAddress(ctx context.Context, lat, lng float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	results, err := w.Maps.Geocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: lat, Lng: lng},
		Language: "en",
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].FormattedAddress, nil
}

// Poll backfills addresses until the context is cancelled.
func (w *GeocodeBackfillWorker) Poll(ctx context.Context, pollInterval time.Duration) {
	log.Println("Starting geocode backfill worker...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Geocode backfill worker stopped.")
			return
		case <-ticker.C:
			var bounties []models.Bounty
			err := w.DB.Where("address = ?", "").
				Order("created_at ASC").
				Limit(w.BatchSize).
				Find(&bounties).Error
			if err != nil {
				log.Printf("❌ Geocode worker DB error: %v", err)
				continue
			}
			if len(bounties) == 0 {
				continue
			}

			for _, b := range bounties {
				address, err := w.ResolveAddress(ctx, b.Latitude, b.Longitude)
				if err != nil {
					log.Printf("❌ Failed to geocode bounty %s: %v", b.ID, err)
					continue
				}
				if address == "" {
					continue
				}
				if err := w.DB.Model(&b).Update("address", address).Error; err != nil {
					log.Printf("❌ Failed to save address for bounty %s: %v", b.ID, err)
					continue
				}
				log.Printf("📍 Backfilled address for bounty %s", b.ID)
			}
		}
	}
}
