package engine

import "time"

// FrameScheduler is the host's "call me back before the next repaint"
// mechanism: a channel of monotonically increasing timestamps arriving at
// approximately the display cadence. Stop must be safe to call twice.
type FrameScheduler interface {
	Frames() <-chan time.Time
	Stop()
}

// TickerScheduler drives frames from a fixed-rate ticker.
type TickerScheduler struct {
	ticker *time.Ticker
}

// NewTickerScheduler creates a scheduler at the given frame rate.
// Rates below 1 fps clamp to 1.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps < 1 {
		fps = 1
	}
	return &TickerScheduler{
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
	}
}

// Frames returns the tick channel.
func (t *TickerScheduler) Frames() <-chan time.Time {
	return t.ticker.C
}

// Stop halts tick delivery. Idempotent: time.Ticker.Stop tolerates
// repeated calls.
func (t *TickerScheduler) Stop() {
	t.ticker.Stop()
}
