package fakes

import (
	"context"
	"sync"
	"time"

	coreport "gift-economy/internal/domain/port/core"
)

// Clock is a TimeProvider pinned to a settable instant
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock at the given instant
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Advance moves the clock forward
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Today() time.Time {
	return coreport.DateOf(c.Now())
}

func (c *Clock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *Clock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

var _ coreport.TimeProvider = (*Clock)(nil)

// NopLogger discards everything; usecase tests assert on results, not logs
type NopLogger struct {
	level coreport.LogLevel
}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (l *NopLogger) SetLevel(level coreport.LogLevel)       { l.level = level }
func (l *NopLogger) GetLevel() coreport.LogLevel            { return l.level }
func (l *NopLogger) Debug(message string, f map[string]any) {}
func (l *NopLogger) Info(message string, f map[string]any)  {}
func (l *NopLogger) Warn(message string, f map[string]any)  {}
func (l *NopLogger) Error(message string, f map[string]any) {}
func (l *NopLogger) Flush() error                           { return nil }

var _ coreport.Logger = (*NopLogger)(nil)

// PlainHasher is a transparent PasswordHasher for tests
type PlainHasher struct{}

func (PlainHasher) Hash(secret string) (string, error) {
	return "digest:" + secret, nil
}

func (PlainHasher) Verify(secret, digest string) bool {
	return digest == "digest:"+secret
}

var _ coreport.PasswordHasher = PlainHasher{}
