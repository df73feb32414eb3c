// services/scheduler.go
package services

import (
	"log"
	"time"

	"bounty-board/models"
	"bounty-board/utils"

	"github.com/go-co-op/gocron/v2"
)

// StartExpirySweeper flags bounties whose expiry instant has passed. The
// flag is a read-path fast hint only; listing always recomputes expiry from
// created_at + expiry_minutes.
func (s *BountyService) StartExpirySweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: flag newly expired bounties
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			s.sweepExpired(time.Now())
		}),
	)
}

// sweepExpired flags every unflagged bounty whose expiry instant lies at or
// before now. Returns how many bounties were flagged.
func (s *BountyService) sweepExpired(now time.Time) int {
	var bounties []models.Bounty
	err := s.DB.Where("expired = ? AND expiry_minutes IS NOT NULL", false).
		Find(&bounties).Error
	if err != nil {
		log.Printf("[Sweeper] DB error: %v", err)
		return 0
	}

	flagged := 0
	for _, b := range bounties {
		if !utils.IsExpired(b.ExpiryMinutes, b.CreatedAt, now) {
			continue
		}
		if err := s.DB.Model(&b).Update("expired", true).Error; err != nil {
			log.Printf("[Sweeper] Failed to flag bounty %s: %v", b.ID, err)
			continue
		}
		flagged++
		log.Printf("⏳ Bounty expired: %s", b.ID)
	}
	return flagged
}
