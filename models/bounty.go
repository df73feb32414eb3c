// models/bounty.go
package models

import "time"

const (
	BountyStatusOpen     = "open"
	BountyStatusAnswered = "answered"
)

// Bounty is a question pinned to a map coordinate with a reward and an
// optional expiry window.
type Bounty struct {
	ID       string  `json:"id" gorm:"primaryKey"`
	Question string  `json:"question" gorm:"not null"`
	Reward   float64 `json:"reward" gorm:"default:0"`

	// 📍 Location
	Latitude  float64 `json:"latitude" gorm:"not null"`
	Longitude float64 `json:"longitude" gorm:"not null"`
	Address   string  `json:"address,omitempty"` // backfilled by the geocode worker

	// ⏳ Expiry: minutes from creation; nil = never expires.
	ExpiryMinutes *int `json:"expiryMinutes"`

	// Expired is a cache flag maintained by the sweep scheduler. Read paths
	// always recompute expiry from CreatedAt + ExpiryMinutes.
	Expired bool `json:"expired" gorm:"default:false"`

	Status string `json:"status" gorm:"type:varchar(16);default:'open'"` // open | answered

	// Remaining is computed at read time, never stored.
	Remaining string `json:"remaining,omitempty" gorm:"-"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Answers []Answer `json:"answers" gorm:"foreignKey:BountyID;constraint:OnDelete:CASCADE"`
}
