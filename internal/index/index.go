// Package index owns the published skill index and keeps it consistent
// with the skills tree.
//
// Readers call Current once per query and work against that immutable
// Snapshot for the rest of the call. Writers build a complete new snapshot
// off to the side and publish it with a single atomic pointer store, so a
// reader never sees metadata from one build and content from another.
//
// # Single-flight rebuilds
//
// At most one full rebuild runs at a time. A request arriving while a build
// is running joins the follow-up flight, which is created once and shared by
// every request that arrives before it starts. However many requests arrive
// during one build, exactly one more build runs after it, and it reads the
// tree as it is when it starts, so no change is missed.
//
// Rebuilds are not cancellable: the context passed to Rebuild only bounds
// how long the caller waits for its flight.
package index

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// flight is one scheduled build shared by every request that joined it.
type flight struct {
	done chan struct{}
	snap *Snapshot
	err  error
}

func newFlight() *flight {
	return &flight{done: make(chan struct{})}
}

// State describes the controller for status reporting.
type State struct {
	Rebuilding bool      `json:"rebuilding"`
	Pending    bool      `json:"pending"` // a follow-up build is queued
	Generation uint64    `json:"generation"`
	BuiltAt    time.Time `json:"built_at"`
}

// Index publishes snapshots produced by a Builder.
type Index struct {
	builder *Builder
	log     *slog.Logger

	current atomic.Pointer[Snapshot]

	mu      sync.Mutex // guards running and next
	running *flight
	next    *flight

	// buildMu serialises full rebuilds with incremental updates so
	// snapshots are published in generation order. Readers never take it.
	buildMu sync.Mutex
}

// New returns an index publishing an empty snapshot. A nil logger discards
// log output.
func New(b *Builder, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	x := &Index{builder: b, log: logger}
	x.current.Store(empty())
	return x
}

// Current returns the published snapshot.
func (x *Index) Current() *Snapshot {
	return x.current.Load()
}

// Builder returns the builder the index rebuilds with.
func (x *Index) Builder() *Builder {
	return x.builder
}

// Rebuild schedules a rebuild and waits for the flight it joined. On a
// ScanError the previous snapshot stays published and the error is returned.
func (x *Index) Rebuild(ctx context.Context) (*Snapshot, error) {
	f := x.enqueue()
	select {
	case <-f.done:
		return f.snap, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Trigger schedules a rebuild without waiting for it.
func (x *Index) Trigger() {
	x.enqueue()
}

// State reports whether a rebuild is running or queued.
func (x *Index) State() State {
	snap := x.Current()
	x.mu.Lock()
	defer x.mu.Unlock()
	return State{
		Rebuilding: x.running != nil,
		Pending:    x.next != nil,
		Generation: snap.Generation(),
		BuiltAt:    snap.BuiltAt(),
	}
}

func (x *Index) enqueue() *flight {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.running == nil {
		f := newFlight()
		x.running = f
		go x.run(f)
		return f
	}
	if x.next == nil {
		x.next = newFlight()
	}
	return x.next
}

// run executes f and then any follow-up flights queued while it ran.
func (x *Index) run(f *flight) {
	for f != nil {
		f.snap, f.err = x.build()
		close(f.done)

		x.mu.Lock()
		f = x.next
		x.next = nil
		x.running = f
		x.mu.Unlock()
	}
}

func (x *Index) build() (*Snapshot, error) {
	x.buildMu.Lock()
	defer x.buildMu.Unlock()

	start := time.Now()
	snap, err := x.builder.Build(context.Background())
	if err != nil {
		x.log.Error("rebuild failed, keeping previous index", "root", x.builder.Root, "error", err)
		return nil, err
	}
	x.publish(snap)
	x.log.Info("index rebuilt",
		"generation", snap.Generation(),
		"skills", len(snap.Skills()),
		"content_files", snap.ContentCount(),
		"errors", len(snap.errors),
		"duration", time.Since(start).Round(time.Millisecond))
	return snap, nil
}

// publish stamps the next generation on snap and makes it current.
// Callers hold buildMu.
func (x *Index) publish(snap *Snapshot) {
	snap.generation = x.Current().Generation() + 1
	x.current.Store(snap)
}
