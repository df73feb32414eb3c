// models/answer.go
package models

import "time"

// Answer is a response to a bounty. The asker may accept any number of
// answers; bounty status follows from whether at least one is accepted.
type Answer struct {
	ID       string  `json:"id" gorm:"primaryKey"`
	BountyID string  `json:"bountyId" gorm:"index;not null"`
	Content  string  `json:"content" gorm:"not null"`
	ImageURL *string `json:"imageUrl"` // public R2/CDN URL, or local /uploads path
	Accepted bool    `json:"accepted" gorm:"default:false"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
