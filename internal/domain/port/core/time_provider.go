package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain.
// Reward logic compares calendar days, so "today" is part of the port
// rather than being derived ad hoc at call sites.
type TimeProvider interface {
	// Now returns the current instant
	Now() time.Time
	// Today returns the current calendar day truncated to midnight UTC
	Today() time.Time
	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration
	// WithTimeout returns a context that is canceled after the given timeout
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}

// DateOf truncates an instant to its calendar day in UTC.
// Claim records store dates at this precision.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
