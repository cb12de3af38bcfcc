package inject

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Default settle intervals. Empirical values, not a contract: they give
// the window manager time to finish moving focus before keystrokes land,
// and the right numbers vary by platform and load. Tune them through
// Options (see config inject.focus_settle_ms / inject.paste_settle_ms).
const (
	DefaultFocusSettle = 50 * time.Millisecond
	DefaultPasteSettle = 100 * time.Millisecond
)

const defaultQueueDepth = 16

// Options tunes an Orchestrator. The zero value selects defaults.
type Options struct {
	// FocusSettle is how long to wait after releasing focus before
	// typing. The wait happens even when no window is present, since a
	// focus transfer may be in flight for other reasons.
	FocusSettle time.Duration
	// PasteSettle is how long to wait between the clipboard write and
	// the paste key combination.
	PasteSettle time.Duration
	// PasteModifier is the modifier for the paste combo. Empty selects
	// the platform default: "cmd" on macOS, "ctrl" elsewhere.
	PasteModifier string
	// ForcePaste skips direct typing and routes every non-empty request
	// through the clipboard.
	ForcePaste bool
	// NoFallback disables the clipboard fallback: a typing failure (or a
	// missing typist) is surfaced as Failed. Direct typing is slower but
	// preserves the user's clipboard, so some setups prefer losing an
	// injection over losing clipboard contents.
	NoFallback bool
	// QueueDepth bounds the pending-request queue.
	QueueDepth int
	// Logger receives focus-release and fallback diagnostics. Nil
	// discards them.
	Logger *log.Logger
}

// Orchestrator delivers requests one at a time, in submission order.
//
// A single worker goroutine drains a FIFO queue, so back-to-back
// submissions each run to completion independently and their keystrokes
// land in the order the transcriptions were produced. Whether typing is
// possible at all is resolved once here, at construction, not probed on
// every call.
type Orchestrator struct {
	typist    Typist
	clipboard Clipboard
	opts      Options
	canType   bool

	queue   chan job
	done    chan struct{}
	stopped chan struct{}

	mu     sync.Mutex
	closed bool
}

type job struct {
	req     Request
	window  HostWindow
	outcome chan<- Outcome
}

// NewOrchestrator builds an orchestrator and starts its worker. typist
// may be nil when the host has no keystroke capability; every non-empty
// request then goes straight to the clipboard fallback. clipboard must
// not be nil.
func NewOrchestrator(typist Typist, clipboard Clipboard, opts Options) *Orchestrator {
	if clipboard == nil {
		panic("inject: NewOrchestrator called with nil clipboard")
	}
	if opts.FocusSettle <= 0 {
		opts.FocusSettle = DefaultFocusSettle
	}
	if opts.PasteSettle <= 0 {
		opts.PasteSettle = DefaultPasteSettle
	}
	if opts.PasteModifier == "" {
		opts.PasteModifier = defaultPasteModifier()
	}
	if opts.QueueDepth <= 0 {
		opts.QueueDepth = defaultQueueDepth
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	o := &Orchestrator{
		typist:    typist,
		clipboard: clipboard,
		opts:      opts,
		canType:   typist != nil && !opts.ForcePaste,
		queue:     make(chan job, opts.QueueDepth),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go o.run()
	return o
}

// CanType reports whether direct keystroke injection is available.
func (o *Orchestrator) CanType() bool {
	return o.canType
}

// Submit enqueues a request against the given window (nil for a headless
// host). The returned channel delivers exactly one Outcome; outcomes are
// observed in the same order requests were submitted. Submit blocks only
// when the queue is full.
func (o *Orchestrator) Submit(req Request, window HostWindow) <-chan Outcome {
	out := make(chan Outcome, 1)

	// The mutex keeps Submit and Close coherent: once closed is set, no
	// job can reach the queue after the worker's final drain.
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		out <- Outcome{Status: StatusFailed, Err: ErrClosed}
		return out
	}
	o.queue <- job{req: req, window: window, outcome: out}
	return out
}

// Inject submits a request and waits for its outcome.
func (o *Orchestrator) Inject(req Request, window HostWindow) Outcome {
	return <-o.Submit(req, window)
}

// Close stops accepting requests, lets everything already queued run to
// completion, and waits for the worker to exit. Safe to call more than
// once.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.done)
	}
	o.mu.Unlock()
	<-o.stopped
}

func (o *Orchestrator) run() {
	defer close(o.stopped)
	for {
		select {
		case j := <-o.queue:
			j.outcome <- o.deliver(j.req, j.window)
		case <-o.done:
			for {
				select {
				case j := <-o.queue:
					j.outcome <- o.deliver(j.req, j.window)
				default:
					return
				}
			}
		}
	}
}

// deliver runs one request start to finish. No cancellation exists: a
// caller wanting to drop a stale transcription simply does not submit it.
func (o *Orchestrator) deliver(req Request, window HostWindow) Outcome {
	// Nothing to type is trivially success; the adapters are never
	// touched.
	if strings.TrimSpace(req.Text) == "" {
		return Outcome{Status: StatusTyped}
	}

	releaseFocus(window, o.opts.Logger)

	// Let the window manager finish handing focus to the external
	// application before keystrokes land.
	time.Sleep(o.opts.FocusSettle)

	if o.canType {
		err := o.typist.TypeText(req.Text)
		if err == nil {
			return Outcome{Status: StatusTyped}
		}
		if o.opts.NoFallback {
			return Outcome{Status: StatusFailed, Err: fmt.Errorf("inject: typing: %w", err)}
		}
		o.opts.Logger.Printf("inject: %s: typing failed, falling back to clipboard: %v", req.ID, err)
	} else if o.typist == nil {
		if o.opts.NoFallback {
			return Outcome{Status: StatusFailed, Err: ErrTypistUnavailable}
		}
		o.opts.Logger.Printf("inject: %s: %v, falling back to clipboard", req.ID, ErrTypistUnavailable)
	}

	return o.paste(req)
}

// paste is the clipboard fallback: write the text, give the clipboard
// owner a moment, then send the paste combo. A failed clipboard write is
// final. A failed combo is not: only the write decides between Pasted
// and Failed, so the text at worst sits on the clipboard for the user to
// paste by hand.
func (o *Orchestrator) paste(req Request) Outcome {
	if err := o.clipboard.WriteText(req.Text); err != nil {
		return Outcome{
			Status: StatusFailed,
			Err:    fmt.Errorf("inject: clipboard write: %w", err),
		}
	}

	time.Sleep(o.opts.PasteSettle)

	if o.typist == nil {
		o.opts.Logger.Printf("inject: %s: no typist for paste combo, text left on clipboard", req.ID)
		return Outcome{Status: StatusPasted}
	}
	if err := o.typist.TapKey("v", o.opts.PasteModifier); err != nil {
		o.opts.Logger.Printf("inject: %s: paste combo: %v", req.ID, err)
	}
	return Outcome{Status: StatusPasted}
}

func defaultPasteModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}
