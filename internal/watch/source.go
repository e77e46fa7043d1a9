// source.go adapts fsnotify to the watcher's Source interface.
//
// fsnotify watches are not recursive, so the source adds one watch per
// directory down to maxDepth below the root and adds new directories as
// they are created. Removed directories drop their watch automatically.

package watch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Op is a set of filesystem operations.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is a change below the watched root.
type Event struct {
	Path string // slash path relative to the root
	Op   Op
	Dir  bool // the path is, or was, a directory
}

// Source delivers filesystem events. Implementations close both channels
// once closed.
type Source interface {
	Events() <-chan Event
	Errors() <-chan error
	Close() error
}

// FSSource is a Source backed by fsnotify.
type FSSource struct {
	root     string
	maxDepth int
	w        *fsnotify.Watcher

	events chan Event
	errors chan error
	done   chan struct{}
	once   sync.Once

	mu   sync.Mutex
	dirs map[string]bool // watched directories, absolute
}

// NewFSSource watches root and its subdirectories up to maxDepth levels.
func NewFSSource(root string, maxDepth int) (*FSSource, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "watch", Path: root, Err: errors.New("not a directory")}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	s := &FSSource{
		root:     abs,
		maxDepth: maxDepth,
		w:        w,
		events:   make(chan Event, 64),
		errors:   make(chan error, 8),
		done:     make(chan struct{}),
		dirs:     make(map[string]bool),
	}
	if err := s.addTree(abs); err != nil {
		w.Close()
		return nil, err
	}
	go s.loop()
	return s, nil
}

func (s *FSSource) Events() <-chan Event { return s.events }
func (s *FSSource) Errors() <-chan error { return s.errors }

// Close stops watching. It is safe to call more than once.
func (s *FSSource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.w.Close()
	})
	return err
}

// depth returns how many levels dir is below the root.
func (s *FSSource) depth(dir string) int {
	rel, err := filepath.Rel(s.root, dir)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

func (s *FSSource) rel(p string) string {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel)
}

// addTree watches dir and its subdirectories within the depth bound.
func (s *FSSource) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != s.root && Ignored(s.rel(p)) {
			return filepath.SkipDir
		}
		if s.depth(p) > s.maxDepth {
			return filepath.SkipDir
		}
		if err := s.w.Add(p); err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		s.mu.Lock()
		s.dirs[p] = true
		s.mu.Unlock()
		return nil
	})
}

func (s *FSSource) loop() {
	defer close(s.events)
	defer close(s.errors)

	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.w.Events:
			if !ok {
				return
			}
			if out, ok := s.convert(ev); ok {
				select {
				case s.events <- out:
				case <-s.done:
					return
				}
			}
		case err, ok := <-s.w.Errors:
			if !ok {
				return
			}
			select {
			case s.errors <- err:
			case <-s.done:
				return
			}
		}
	}
}

func (s *FSSource) convert(ev fsnotify.Event) (Event, bool) {
	rel := s.rel(ev.Name)
	if rel == "" || rel == "." || strings.HasPrefix(rel, "../") {
		return Event{}, false
	}
	out := Event{Path: rel, Op: convertOp(ev.Op)}

	switch {
	case ev.Has(fsnotify.Create):
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			out.Dir = true
			if s.depth(ev.Name) <= s.maxDepth && !Ignored(rel) {
				_ = s.addTree(ev.Name) // best effort, rebuilds read the whole tree
			}
		}
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		s.mu.Lock()
		out.Dir = s.dirs[ev.Name]
		delete(s.dirs, ev.Name)
		s.mu.Unlock()
	}
	return out, true
}

func convertOp(op fsnotify.Op) Op {
	var out Op
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= OpRename
	}
	if op.Has(fsnotify.Chmod) {
		out |= OpChmod
	}
	return out
}
