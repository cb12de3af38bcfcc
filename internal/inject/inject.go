// Package inject delivers transcribed text into whichever application
// currently holds input focus, as if it had been typed by hand.
//
// Direct keystroke synthesis is attempted first. When that capability is
// missing or the attempt fails, the text is written to the system clipboard
// and a paste key combination is issued instead.
package inject

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Request is one piece of text to deliver. A request is consumed exactly
// once and never persisted or retried across restarts. Text may be empty;
// empty text is a no-op and is never forwarded to the typist.
type Request struct {
	ID          uuid.UUID
	Text        string
	RequestedAt time.Time
}

// NewRequest wraps text in a Request stamped with a fresh ID and the
// current time.
func NewRequest(text string) Request {
	return Request{
		ID:          uuid.New(),
		Text:        text,
		RequestedAt: time.Now(),
	}
}

// Status classifies how an injection attempt ended.
type Status int

const (
	// StatusTyped means direct keystroke injection succeeded, or the text
	// was empty and there was nothing to do.
	StatusTyped Status = iota
	// StatusPasted means the clipboard-paste fallback succeeded.
	StatusPasted
	// StatusFailed means direct injection failed and the clipboard write
	// failed too. There is no third strategy.
	StatusFailed
)

// String returns a short label for logs.
func (s Status) String() string {
	switch s {
	case StatusTyped:
		return "typed"
	case StatusPasted:
		return "pasted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one injection attempt. An attempt is atomic
// from the caller's perspective; there is no partial variant.
type Outcome struct {
	Status Status
	Err    error // set only when Status is StatusFailed
}

// ErrTypistUnavailable reports that no keystroke capability is present on
// the host. The orchestrator treats it like a typing failure and goes
// straight to the clipboard fallback; it is never surfaced as fatal.
var ErrTypistUnavailable = errors.New("inject: keystroke capability unavailable")

// ErrClosed is returned for requests submitted after Close.
var ErrClosed = errors.New("inject: orchestrator closed")

// Typist synthesizes keyboard input into the focused application.
// Implementations do not retry; all fallback policy lives in the
// Orchestrator.
type Typist interface {
	// TypeText types the whole string in one call. The implementation
	// owns per-character pacing; the text arrives unmodified, including
	// newlines, tabs, and multi-kilobyte payloads.
	TypeText(text string) error
	// TapKey presses a single key with the given modifiers,
	// e.g. TapKey("v", "cmd").
	TapKey(key string, modifiers ...string) error
}

// Clipboard is the system clipboard. It is a process-wide OS resource
// with no locking; another application writing between WriteText and the
// paste combo is a known race this package does not mitigate.
type Clipboard interface {
	WriteText(text string) error
	// ReadText is not part of the injection flow. It exists for tests and
	// for callers that want to save and restore the clipboard themselves.
	ReadText() (string, error)
}

// HostWindow is the host application's own window, as opposed to the
// external application that receives the injected text. The orchestrator
// only borrows it: a nil HostWindow (headless host) or a destroyed one is
// tolerated at any time.
type HostWindow interface {
	IsVisible() bool
	IsFocused() bool
	IsDestroyed() bool
	Hide() error
	Blur() error
	Minimize() error
}
