package entity

import "time"

// ClaimRecord tracks the most recent calendar day a user successfully claimed
// the daily reward. One row per user; LastClaimDate only moves forward.
type ClaimRecord struct {
	UserID        uint64
	LastClaimDate time.Time // Date precision, midnight UTC
}

// ClaimedOn reports whether the record already covers the given day.
// A claim on or after the day blocks another claim for it, matching the
// monotonic non-decreasing date invariant.
func (c *ClaimRecord) ClaimedOn(day time.Time) bool {
	return !c.LastClaimDate.Before(day)
}
