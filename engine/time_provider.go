package engine

import "time"

// TimeProvider abstracts the clock so the loop driver can be tested with
// controlled time.
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the real system clock with monotonic
// readings.
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the default provider.
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading.
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
