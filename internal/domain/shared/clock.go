package shared

import "time"

// Clock supplies the current time for order, payment and shipment dates.
// Services take it as a dependency so tests can pin time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// SystemClock returns a Clock backed by the system wall clock in UTC
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock is a Clock frozen at a single instant, for tests
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.Instant
}
