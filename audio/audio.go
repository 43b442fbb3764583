// Package audio plays the portal's ambient drone. Audio is strictly
// optional: any failure leaves the engine silent and the application
// running.
package audio

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/solterm/orrery/config"
)

// Engine drives the ambient drone through the system speaker.
type Engine struct {
	cfg     config.AudioConfig
	running atomic.Bool
}

// NewEngine creates a stopped engine.
func NewEngine(cfg config.AudioConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Start initializes the speaker and begins the drone. Disabled config is a
// successful no-op.
func (e *Engine) Start() error {
	if !e.cfg.Enabled {
		return nil
	}
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("audio: engine already running")
	}

	sampleRate := beep.SampleRate(e.cfg.SampleHz)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		e.running.Store(false)
		return fmt.Errorf("audio: speaker init: %w", err)
	}

	sine, err := generators.SineTone(sampleRate, float64(e.cfg.DroneHz))
	if err != nil {
		e.running.Store(false)
		return fmt.Errorf("audio: drone generator: %w", err)
	}

	// Quiet enough to sit under everything; -4 halves amplitude four times
	drone := &effects.Volume{
		Streamer: sine,
		Base:     2,
		Volume:   -4,
	}
	speaker.Play(drone)
	return nil
}

// Stop silences the drone and releases the speaker. Safe to call twice and
// safe on a never-started engine.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	speaker.Clear()
	speaker.Close()
}
