package engine

import (
	"log/slog"
	"sync"
)

// Lifecycle guarantees every registered resource is released exactly once,
// in reverse registration order. It is safe to dispose a lifecycle that
// never registered anything, and safe to dispose twice.
type Lifecycle struct {
	mu       sync.Mutex
	entries  []lifecycleEntry
	disposed bool
}

type lifecycleEntry struct {
	name    string
	dispose func()
}

// NewLifecycle creates an empty registry.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// Register adds a resource. Registrations after disposal are released
// immediately so a slow mount can never leak past teardown.
func (l *Lifecycle) Register(name string, dispose func()) {
	if dispose == nil {
		return
	}
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		slog.Warn("resource registered after teardown, disposing immediately", "resource", name)
		dispose()
		return
	}
	l.entries = append(l.entries, lifecycleEntry{name: name, dispose: dispose})
	l.mu.Unlock()
}

// Dispose releases everything in reverse registration order. Subsequent
// calls are no-ops.
func (l *Lifecycle) Dispose() {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	l.disposed = true
	entries := l.entries
	l.entries = nil
	l.mu.Unlock()

	for i := len(entries) - 1; i >= 0; i-- {
		entries[i].dispose()
	}
}

// Disposed reports whether teardown already ran.
func (l *Lifecycle) Disposed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.disposed
}
