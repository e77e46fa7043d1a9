// Package watch keeps the index in step with the skills directory.
//
// A Watcher reads events from a Source, drops the ones that cannot affect
// the index and debounces the rest, so a multi-file save produces a single
// rebuild. The Source is an interface so the debounce behaviour can be
// tested without real filesystem events.
//
// The watcher never stops the server. If the source cannot be started or
// closes the watcher records a Degraded status with the reason; the index
// keeps serving and manual reloads keep working. An error reported by a
// running source degrades the status only until the next relevant event.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a rebuild is triggered.
const DefaultDebounce = 500 * time.Millisecond

// State is the watcher's lifecycle state.
type State string

const (
	StateDisabled State = "disabled"
	StateWatching State = "watching"
	StateDegraded State = "degraded"
	StateStopped  State = "stopped"
)

// Status is a point-in-time view of the watcher.
type Status struct {
	State  State     `json:"state"`
	Reason string    `json:"reason,omitempty"`
	Since  time.Time `json:"since"`
	Events int       `json:"events"`   // relevant events seen
	Fired  int       `json:"rebuilds"` // debounced triggers sent
}

// Target receives debounced rebuild requests.
type Target interface {
	Trigger()
}

// TargetFunc adapts a function to Target.
type TargetFunc func()

func (f TargetFunc) Trigger() { f() }

// Watcher turns filesystem events into debounced rebuild triggers.
type Watcher struct {
	target Target
	log    *slog.Logger
	deb    *Debouncer

	mu     sync.Mutex
	status Status
}

// New returns a watcher in the disabled state. A zero window uses
// DefaultDebounce; a nil logger discards output.
func New(target Target, window time.Duration, logger *slog.Logger) *Watcher {
	if window <= 0 {
		window = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Watcher{
		target: target,
		log:    logger,
		status: Status{State: StateDisabled, Since: time.Now()},
	}
	w.deb = NewDebouncer(window, w.fire)
	return w
}

// Status returns the current status.
func (w *Watcher) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Degrade records that watching is not working.
func (w *Watcher) Degrade(err error) {
	w.log.Warn("file watcher degraded, use reload to refresh the index", "error", err)
	w.setState(StateDegraded, err.Error())
}

func (w *Watcher) setState(s State, reason string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status.State = s
	w.status.Reason = reason
	w.status.Since = time.Now()
}

// Run consumes src until ctx is done or the source closes, then closes src
// and cancels any pending trigger.
func (w *Watcher) Run(ctx context.Context, src Source) {
	defer w.deb.Stop()
	defer src.Close()

	w.setState(StateWatching, "")
	events, errs := src.Events(), src.Errors()
	for {
		select {
		case <-ctx.Done():
			w.setState(StateStopped, "")
			return
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() == nil {
					w.Degrade(errors.New("event source closed"))
				}
				return
			}
			if Relevant(ev) {
				w.noteEvent()
				w.deb.Poke()
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.Degrade(err)
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.deb.Poke()
			}
		}
	}
}

// noteEvent counts a relevant event and clears a degraded status left by a
// source error, since events are flowing again.
func (w *Watcher) noteEvent() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status.Events++
	if w.status.State == StateDegraded {
		w.log.Info("file watcher recovered")
		w.status.State = StateWatching
		w.status.Reason = ""
		w.status.Since = time.Now()
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	w.status.Fired++
	w.mu.Unlock()
	w.log.Debug("skills changed, rebuilding index")
	w.target.Trigger()
}
