package engine

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/solterm/orrery/orbit"
	"github.com/solterm/orrery/scene"
)

// DriverState is the loop state machine: Stopped before mount and after
// teardown, Running while subscribed to the frame scheduler.
type DriverState int32

const (
	StateStopped DriverState = iota
	StateRunning
)

// FrameRenderer issues one draw call for the current scene state.
type FrameRenderer interface {
	Frame(*scene.Scene)
}

// Driver owns the per-frame update cycle: read elapsed time, advance every
// body parents-first, apply transforms, rotate the star field, draw.
// Elapsed time is explicit state owned here, not ambient global time, so
// the integrator stays a pure function.
type Driver struct {
	state atomic.Int32

	tp        TimeProvider
	scheduler FrameScheduler
	scene     *scene.Scene
	renderer  FrameRenderer

	start time.Time
}

// NewDriver wires the loop. The driver starts Stopped.
func NewDriver(s *scene.Scene, renderer FrameRenderer, scheduler FrameScheduler, tp TimeProvider) *Driver {
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	return &Driver{
		tp:        tp,
		scheduler: scheduler,
		scene:     s,
		renderer:  renderer,
	}
}

// Start transitions Stopped → Running and zeroes the loop clock. Repeated
// starts while running are ignored.
func (d *Driver) Start() {
	if !d.state.CompareAndSwap(int32(StateStopped), int32(StateRunning)) {
		return
	}
	d.start = d.tp.Now()
}

// Stop transitions Running → Stopped and unsubscribes from future frames.
// Idempotent: stopping twice is a no-op, not an error. The current frame,
// if one is executing, runs to completion; there is no mid-frame
// cancellation.
func (d *Driver) Stop() {
	d.state.Store(int32(StateStopped))
	if d.scheduler != nil {
		d.scheduler.Stop()
	}
}

// State returns the current loop state.
func (d *Driver) State() DriverState {
	return DriverState(d.state.Load())
}

// Frames exposes the scheduler's frame channel for the host select loop.
func (d *Driver) Frames() <-chan time.Time {
	if d.scheduler == nil {
		return nil
	}
	return d.scheduler.Frames()
}

// Step runs one frame at the given timestamp. No-op while Stopped. A panic
// inside the frame stops the loop rather than drawing on from corrupted
// state.
func (d *Driver) Step(now time.Time) {
	if d.State() != StateRunning {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("frame failed, stopping render loop", "panic", r)
			d.Stop()
		}
	}()

	elapsed := now.Sub(d.start).Seconds()
	AdvanceScene(d.scene, elapsed)
	if d.renderer != nil {
		d.renderer.Frame(d.scene)
	}
}

// AdvanceScene writes every node transform for elapsed time t, parents
// before children so moon positions compose with fresh parent positions.
func AdvanceScene(s *scene.Scene, t float64) {
	s.Central.Spin = orbit.Spin(t)
	for _, n := range s.Bodies {
		st := orbit.Advance(*n.Body, t)
		n.Position = st.Position
		n.Spin = st.Spin
		for _, m := range n.Moons {
			ms := orbit.AdvanceMoon(n.Position, *m.Moon, t)
			m.Position = ms.Position
			m.Spin = ms.Spin
		}
	}
	s.StarRotation = orbit.StarRotation(t)
}
