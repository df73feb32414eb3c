package utils

import (
	"fmt"
	"time"
)

// ExpiresAt returns the instant a bounty expires. ok is false when the
// bounty has no expiry.
func ExpiresAt(expiryMinutes *int, createdAt time.Time) (time.Time, bool) {
	if expiryMinutes == nil {
		return time.Time{}, false
	}
	return createdAt.Add(time.Duration(*expiryMinutes) * time.Minute), true
}

// IsExpired reports whether a bounty's expiry instant has passed at now.
// A nil expiryMinutes never expires.
func IsExpired(expiryMinutes *int, createdAt, now time.Time) bool {
	expiry, ok := ExpiresAt(expiryMinutes, createdAt)
	if !ok {
		return false
	}
	return !now.Before(expiry)
}

// RemainingLabel renders the time left before a bounty expires, evaluated
// at now. Returns "" when the bounty has no expiry and "Expired" once the
// expiry instant has passed. Each component is floored, never rounded:
// under an hour "Nm left", under a day "Nh Mm left", otherwise "Nd Hh left".
func RemainingLabel(expiryMinutes *int, createdAt, now time.Time) string {
	expiry, ok := ExpiresAt(expiryMinutes, createdAt)
	if !ok {
		return ""
	}

	remaining := expiry.Sub(now)
	if remaining <= 0 {
		return "Expired"
	}

	mins := int(remaining / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%dm left", mins)
	}

	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%dh %dm left", hours, mins%60)
	}

	days := hours / 24
	return fmt.Sprintf("%dd %dh left", days, hours%24)
}
