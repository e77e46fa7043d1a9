// Package log records an audit trail of skilld operations.
//
// Entries are stored in ~/.skilld/log/skilld-log.db, shared by every skills
// root on the machine and told apart by a hashed project id. Operational
// diagnostics (rebuild timings, watcher problems) go to slog instead; this
// package is for "who asked for what, and did it work".
//
// # Fluent API
//
//	log.Event("mcp:get_skill", "read").
//		Author("mcp").
//		Skill(name).
//		Write(err)
//
//	log.Event("cli:search", "search").
//		Detail("query", query).
//		Detail("count", len(results)).
//		Write(err)
//
// Sources are "cli:{command}", "mcp:{tool}" or "watch:{action}".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is a single audit record.
type Entry struct {
	Source   string // e.g. "cli:show", "mcp:search_content"
	Author   string
	Action   string // read, search, reload, validate, config
	Skill    string // skill the operation targeted, if any
	SubSkill string

	// Generation is the index generation the operation observed or produced.
	Generation uint64

	Start int64 // unix seconds when Event was called
	End   int64 // unix seconds when Write was called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs an Entry. Create with [Event] and finish with
// [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an entry for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation: the OS user for CLI commands,
// "mcp" for tools, "watcher" for automatic rebuilds.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Skill sets the skill the operation targeted.
func (b *Builder) Skill(name string) *Builder {
	b.entry.Skill = name
	return b
}

// SubSkill sets the sub-skill the operation targeted.
func (b *Builder) SubSkill(name string) *Builder {
	b.entry.SubSkill = name
	return b
}

// Generation sets the index generation involved.
func (b *Builder) Generation(gen uint64) *Builder {
	b.entry.Generation = gen
	return b
}

// Detail adds an operation-specific value such as a query or result count.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, marking it failed when err is non-nil.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times. Callers
// may ignore the error; logging is best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject tags subsequent entries with a hash of the skills root.
func SetProject(root string) {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(root)
	}
}

// Log writes an entry. A no-op until Open succeeds.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
