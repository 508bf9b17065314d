package clock

import "time"

// Clock is the time source for session expiry and account timestamps.
type Clock interface {
	Now() time.Time
	// Until is the remaining lifetime of something expiring at t; negative once t has passed.
	Until(t time.Time) time.Duration
}

type systemClock struct{}

// New returns the wall clock.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Until(t time.Time) time.Duration {
	return time.Until(t)
}
