// Package terminal owns the drawing surface: a tcell screen in raw mode
// plus the event pump that turns tcell events into resize and key
// notifications for the rest of the application.
package terminal

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/solterm/orrery/catalog"
)

// EventType discriminates pump events.
type EventType int

const (
	EventKey EventType = iota
	EventResize
	EventClosed
)

// Event is a terminal input or resize notification.
type Event struct {
	Type   EventType
	Key    tcell.Key
	Rune   rune
	Width  int
	Height int
}

// Surface is the GPU-analog drawing target. All cell writes go through the
// render buffer; Show presents the composed frame.
type Surface struct {
	screen tcell.Screen

	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup

	finalized atomic.Bool
}

// New initializes the terminal: raw mode, alternate screen, hidden cursor.
func New() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	s := &Surface{
		screen: screen,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.pump()
	return s, nil
}

// NewFromScreen wraps an existing screen. Used by tests with a simulation
// screen; the screen must already be initialized.
func NewFromScreen(screen tcell.Screen) *Surface {
	s := &Surface{
		screen: screen,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.pump()
	return s
}

// pump translates tcell events until the screen is finalized. Sends race
// against Fini so a full buffer with no reader left cannot wedge the
// goroutine; the channel close is the terminal signal.
func (s *Surface) pump() {
	defer s.wg.Done()
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			select {
			case s.events <- Event{Type: EventClosed}:
			default:
			}
			return
		}
		var out Event
		switch tev := ev.(type) {
		case *tcell.EventKey:
			out = Event{Type: EventKey, Key: tev.Key(), Rune: tev.Rune()}
		case *tcell.EventResize:
			w, h := tev.Size()
			out = Event{Type: EventResize, Width: w, Height: h}
		default:
			continue
		}
		select {
		case s.events <- out:
		case <-s.done:
			return
		}
	}
}

// Events returns the pump channel. It delivers EventClosed once after Fini
// when the buffer has room, and is closed when the pump exits either way.
func (s *Surface) Events() <-chan Event {
	return s.events
}

// Size returns current terminal dimensions in cells.
func (s *Surface) Size() (width, height int) {
	return s.screen.Size()
}

// SetCell writes one cell. Coordinates outside the screen are dropped by
// tcell.
func (s *Surface) SetCell(x, y int, r rune, fg, bg catalog.RGB) {
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
	s.screen.SetContent(x, y, r, nil, style)
}

// Show presents the composed frame. One call per render-loop frame.
func (s *Surface) Show() {
	s.screen.Show()
}

// Sync forces a full redraw, used after resize.
func (s *Surface) Sync() {
	s.screen.Sync()
}

// Fini restores the terminal. Safe to call multiple times; the event pump
// exits once the screen is finalized.
func (s *Surface) Fini() {
	if !s.finalized.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.screen.Fini()
}

// EmergencyReset restores the terminal outside the normal teardown path,
// for panic handlers that must leave the shell usable.
func EmergencyReset() {
	fmt.Print("\x1b[?1049l\x1b[?25h\x1b[0m")
}
