package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/pizzeria/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Safe for concurrent use so it can back stores under concurrent requests.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}

// Until returns the duration from the mocked time until t
func (c *MockClock) Until(t time.Time) time.Duration {
	return t.Sub(c.Now())
}
