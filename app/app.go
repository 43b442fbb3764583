// Package app is the application shell: it composes the solar-system
// portal with the chat view over the document backend and owns the host
// select loop that feeds frames, input, and resize events to their
// handlers one at a time.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/solterm/orrery/client"
	"github.com/solterm/orrery/engine"
	"github.com/solterm/orrery/terminal"
)

// View selects what the overlay shows. The portal keeps rendering behind
// the chat transcript.
type View int

const (
	ViewPortal View = iota
	ViewChat
)

// Message is one transcript entry.
type Message struct {
	Role string // "you", "assistant", "system"
	Text string
}

type queryOutcome struct {
	text string
	err  error
}

// App wires the mounted visualization, the backend client, and input
// handling into one cooperative loop.
type App struct {
	surface *terminal.Surface
	viz     *engine.Visualization
	api     *client.Client

	view     View
	input    []rune
	messages []Message
	pending  bool
	results  chan queryOutcome
}

// New creates the shell. viz may be inert (absent container); the loop
// then idles on input only.
func New(surface *terminal.Surface, viz *engine.Visualization, api *client.Client) *App {
	return &App{
		surface: surface,
		viz:     viz,
		api:     api,
		results: make(chan queryOutcome, 1),
		messages: []Message{
			{Role: "system", Text: "Ask about your uploaded documents. /docs lists them, /upload <path> adds one, /graph shows the entity graph."},
		},
	}
}

// frames returns the driver's frame channel, or nil (blocks forever in
// select) when the visualization never mounted.
func (a *App) frames() <-chan time.Time {
	if a.viz == nil || !a.viz.Mounted() {
		return nil
	}
	return a.viz.Driver.Frames()
}

// Run drives the loop until quit. Frames, input, and resize events
// interleave but never overlap: this is the single-threaded cooperative
// schedule the visualization assumes.
func (a *App) Run() error {
	for {
		select {
		case ts := <-a.frames():
			if a.viz.Driver.State() != engine.StateRunning {
				// A frame failure stopped the loop; leave rather than
				// keep drawing from corrupted state.
				return fmt.Errorf("app: render loop stopped")
			}
			a.viz.Renderer.SetOverlay(a.overlay())
			a.viz.Driver.Step(ts)

		case ev, ok := <-a.surface.Events():
			if !ok || ev.Type == terminal.EventClosed {
				return nil
			}
			switch ev.Type {
			case terminal.EventResize:
				if a.viz != nil && a.viz.Mounted() {
					a.viz.Viewport.HandleResize(ev.Width, ev.Height)
				}
			case terminal.EventKey:
				if quit := a.handleKey(ev); quit {
					return nil
				}
			}

		case out := <-a.results:
			a.pending = false
			if out.err != nil {
				a.messages = append(a.messages, Message{Role: "system", Text: "error: " + out.err.Error()})
			} else {
				a.messages = append(a.messages, Message{Role: "assistant", Text: out.text})
			}
		}
	}
}

// handleKey processes one key event, returning true to quit.
func (a *App) handleKey(ev terminal.Event) bool {
	if ev.Key == tcell.KeyCtrlC {
		return true
	}

	switch a.view {
	case ViewPortal:
		switch {
		case ev.Key == tcell.KeyTab:
			a.view = ViewChat
		case ev.Key == tcell.KeyEscape:
			return true
		case ev.Key == tcell.KeyRune && (ev.Rune == 'q' || ev.Rune == 'Q'):
			return true
		}

	case ViewChat:
		switch {
		case ev.Key == tcell.KeyTab, ev.Key == tcell.KeyEscape:
			a.view = ViewPortal
		case ev.Key == tcell.KeyEnter:
			a.submit()
		case ev.Key == tcell.KeyBackspace || ev.Key == tcell.KeyBackspace2:
			if len(a.input) > 0 {
				a.input = a.input[:len(a.input)-1]
			}
		case ev.Key == tcell.KeyRune:
			a.input = append(a.input, ev.Rune)
		}
	}
	return false
}

// submit dispatches the input line: a /command or a backend query. The
// call runs off-loop; its outcome returns through the results channel so
// transcript mutation stays on the select loop.
func (a *App) submit() {
	line := strings.TrimSpace(string(a.input))
	a.input = a.input[:0]
	if line == "" || a.pending {
		return
	}

	a.messages = append(a.messages, Message{Role: "you", Text: line})
	a.pending = true

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		a.results <- a.dispatch(ctx, line)
	}()
}

func (a *App) dispatch(ctx context.Context, line string) queryOutcome {
	switch {
	case line == "/docs":
		docs, err := a.api.ListDocuments(ctx)
		if err != nil {
			return queryOutcome{err: err}
		}
		if len(docs) == 0 {
			return queryOutcome{text: "no documents uploaded yet"}
		}
		var b strings.Builder
		for _, d := range docs {
			fmt.Fprintf(&b, "%s (%s, %d chunks)  ", d.Name, d.Type, d.Chunks)
		}
		return queryOutcome{text: strings.TrimSpace(b.String())}

	case line == "/graph":
		graph, err := a.api.GetKnowledgeGraph(ctx)
		if err != nil {
			return queryOutcome{err: err}
		}
		if len(graph.Nodes) == 0 {
			return queryOutcome{text: "no entities extracted yet"}
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d entities over %d documents:", graph.TotalEntities, graph.TotalDocuments)
		limit := len(graph.Nodes)
		if limit > 12 {
			limit = 12
		}
		for _, n := range graph.Nodes[:limit] {
			fmt.Fprintf(&b, "\n  %s (%s, %d links)", n.Label, n.Type, n.Connections)
		}
		return queryOutcome{text: b.String()}

	case strings.HasPrefix(line, "/upload "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "/upload "))
		f, err := os.Open(path)
		if err != nil {
			return queryOutcome{err: err}
		}
		defer f.Close()
		res, err := a.api.Upload(ctx, filepath.Base(path), f)
		if err != nil {
			return queryOutcome{err: err}
		}
		return queryOutcome{text: res.Message}

	default:
		res, err := a.api.Query(ctx, line)
		if err != nil {
			return queryOutcome{err: err}
		}
		text := res.Response
		if len(res.Sources) > 0 {
			var b strings.Builder
			b.WriteString(text)
			b.WriteString("\n[sources: ")
			for i, s := range res.Sources {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s #%d (%.2f)", s.Document, s.ChunkIndex, s.Score)
			}
			b.WriteString("]")
			text = b.String()
		}
		return queryOutcome{text: text}
	}
}
