package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	events chan Event
	errors chan error
	closed atomic.Bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan Event), errors: make(chan error)}
}

func (f *fakeSource) Events() <-chan Event { return f.events }
func (f *fakeSource) Errors() <-chan error { return f.errors }
func (f *fakeSource) Close() error {
	f.closed.Store(true)
	return nil
}

type counter struct{ n atomic.Int32 }

func (c *counter) Trigger() { c.n.Add(1) }

func startWatcher(t *testing.T, window time.Duration) (*Watcher, *fakeSource, *counter) {
	t.Helper()
	c := &counter{}
	w := New(c, window, nil)
	src := newFakeSource()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, src)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	require.Eventually(t, func() bool {
		return w.Status().State == StateWatching
	}, time.Second, time.Millisecond)
	return w, src, c
}

func TestWatcher_Coalesces(t *testing.T) {
	w, src, c := startWatcher(t, 50*time.Millisecond)

	for _, p := range []string{"forms/_meta.json", "forms/SKILL.md", "forms/react/SKILL.md", "forms/references/zod.md", "forms/SKILL.md"} {
		src.events <- Event{Path: p, Op: OpWrite}
	}

	assert.Eventually(t, func() bool { return c.n.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return c.n.Load() > 1 }, 150*time.Millisecond, 10*time.Millisecond)

	st := w.Status()
	assert.Equal(t, 5, st.Events)
	assert.Equal(t, 1, st.Fired)
}

func TestWatcher_IgnoresIrrelevant(t *testing.T) {
	_, src, c := startWatcher(t, 20*time.Millisecond)

	src.events <- Event{Path: "forms/.git/index", Op: OpWrite}
	src.events <- Event{Path: "forms/main.go", Op: OpWrite}
	src.events <- Event{Path: "forms/SKILL.md", Op: OpChmod}

	assert.Never(t, func() bool { return c.n.Load() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestWatcher_Degraded(t *testing.T) {
	w, src, _ := startWatcher(t, 20*time.Millisecond)

	src.errors <- errors.New("queue overflow")
	assert.Eventually(t, func() bool {
		st := w.Status()
		return st.State == StateDegraded && st.Reason == "queue overflow"
	}, time.Second, 5*time.Millisecond)
}

func TestWatcher_RecoversAfterError(t *testing.T) {
	w, src, c := startWatcher(t, 20*time.Millisecond)

	src.errors <- errors.New("queue overflow")
	require.Eventually(t, func() bool { return w.Status().State == StateDegraded }, time.Second, 5*time.Millisecond)

	src.events <- Event{Path: "forms/.git/index", Op: OpWrite}
	assert.Equal(t, StateDegraded, w.Status().State)

	src.events <- Event{Path: "forms/SKILL.md", Op: OpWrite}
	assert.Eventually(t, func() bool {
		st := w.Status()
		return st.State == StateWatching && st.Reason == ""
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return c.n.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestWatcher_SourceClosed(t *testing.T) {
	c := &counter{}
	w := New(c, 10*time.Millisecond, nil)
	src := newFakeSource()
	close(src.events)

	w.Run(context.Background(), src)
	assert.Equal(t, StateDegraded, w.Status().State)
	assert.True(t, src.closed.Load())
}

func TestWatcher_Stop(t *testing.T) {
	c := &counter{}
	w := New(c, time.Hour, nil)
	src := newFakeSource()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, src)
		close(done)
	}()

	cancel()
	<-done
	assert.Equal(t, StateStopped, w.Status().State)
	assert.True(t, src.closed.Load())
}

func TestNew_Disabled(t *testing.T) {
	w := New(TargetFunc(func() {}), 0, nil)
	assert.Equal(t, StateDisabled, w.Status().State)
}

func TestDebouncer(t *testing.T) {
	var n atomic.Int32
	d := NewDebouncer(200*time.Millisecond, func() { n.Add(1) })

	for range 5 {
		d.Poke()
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.Pending())
	assert.Eventually(t, func() bool { return n.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, d.Pending())

	d.Poke()
	d.Stop()
	d.Poke()
	assert.Never(t, func() bool { return n.Load() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		ev   Event
		want bool
	}{
		{Event{Path: "forms/_meta.json", Op: OpWrite}, true},
		{Event{Path: "forms/SKILL.md", Op: OpCreate}, true},
		{Event{Path: "forms/references/guide.markdown", Op: OpWrite}, true},
		{Event{Path: "forms/notes.MD", Op: OpRemove}, true},
		{Event{Path: "forms", Op: OpCreate, Dir: true}, true},
		{Event{Path: "forms", Op: OpRemove, Dir: true}, true},
		{Event{Path: "forms", Op: OpWrite, Dir: true}, false},
		{Event{Path: "forms/script.js", Op: OpWrite}, false},
		{Event{Path: "forms/SKILL.md", Op: OpChmod}, false},
		{Event{Path: ".hidden/SKILL.md", Op: OpWrite}, false},
		{Event{Path: "forms/node_modules/x/README.md", Op: OpWrite}, false},
		{Event{Path: "forms/.SKILL.md.swp", Op: OpWrite}, false},
		{Event{Path: "", Op: OpWrite}, false},
	}
	for _, tc := range tests {
		t.Run(tc.ev.Path, func(t *testing.T) {
			assert.Equal(t, tc.want, Relevant(tc.ev))
		})
	}
}

func TestFSSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "forms"), 0o755))

	src, err := NewFSSource(root, 3)
	require.NoError(t, err)
	defer src.Close()

	require.NoError(t, os.WriteFile(filepath.Join(root, "forms", "SKILL.md"), []byte("# Forms"), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-src.Events():
			if ev.Path == "forms/SKILL.md" {
				assert.NotZero(t, ev.Op&(OpCreate|OpWrite))
				return
			}
		case <-timeout:
			t.Fatal("no event for forms/SKILL.md")
		}
	}
}

func TestFSSource_MissingRoot(t *testing.T) {
	_, err := NewFSSource(filepath.Join(t.TempDir(), "missing"), 3)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
