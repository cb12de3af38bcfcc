// Package hotkey emits dictation start/stop events for a global key combo,
// using gohook. "hold" mode dictates while the combo is held down; "toggle"
// mode starts on one press and stops on the next.
package hotkey

import (
	"sync"

	hook "github.com/robotn/gohook"
)

// EventType indicates whether dictation should start or stop.
type EventType int

const (
	// EventStart signals that dictation should begin recording.
	EventStart EventType = iota
	// EventStop signals that dictation should stop and transcribe.
	EventStop
)

// Event is emitted on the Listener's channel.
type Event struct {
	Type EventType
}

// Listener watches a global key combo and emits start/stop events.
type Listener struct {
	keys []string
	mode string // "hold" or "toggle"
	ch   chan Event
	done chan struct{}
	once sync.Once

	mu     sync.Mutex
	active bool
}

// NewListener creates a Listener for the given key combo and mode.
// keys are lowercase key names (e.g. ["ctrl", "shift", "r"]).
func NewListener(keys []string, mode string) *Listener {
	return &Listener{
		keys: keys,
		mode: mode,
		ch:   make(chan Event, 16),
		done: make(chan struct{}),
	}
}

// Events returns the channel that receives hotkey events. It is closed
// when the listener stops.
func (l *Listener) Events() <-chan Event {
	return l.ch
}

// Start registers the hooks and blocks until Stop is called. Run it in a
// goroutine.
func (l *Listener) Start() {
	hook.Register(hook.KeyDown, l.keys, func(e hook.Event) {
		if l.mode == "toggle" {
			l.flip()
			return
		}
		l.emit(EventStart)
	})

	if l.mode != "toggle" {
		hook.Register(hook.KeyUp, l.keys, func(e hook.Event) {
			l.emit(EventStop)
		})
	}

	evChan := hook.Start()
	go func() {
		<-l.done
		hook.End()
	}()
	<-hook.Process(evChan)
	close(l.ch)
}

// Stop terminates the listener. Safe to call multiple times.
func (l *Listener) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}

// flip alternates start/stop for toggle mode.
func (l *Listener) flip() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active {
		l.emit(EventStop)
	} else {
		l.emit(EventStart)
	}
	l.active = !l.active
}

// emit delivers an event without blocking; if the channel is full the
// event is dropped rather than stalling the hook callback.
func (l *Listener) emit(t EventType) {
	select {
	case l.ch <- Event{Type: t}:
	default:
	}
}
