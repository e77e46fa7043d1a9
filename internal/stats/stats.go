// Package stats tracks in-process usage counters for the running server.
//
// Counters live in memory only and reset when the process restarts. The
// persistent audit trail is kept by internal/log.
package stats

import (
	"maps"
	"sync"
	"time"
)

const (
	// MaxSearches is how many searches are retained.
	MaxSearches = 100
	// RecentSearches is how many searches a snapshot reports.
	RecentSearches = 10
)

// Search is one recorded query.
type Search struct {
	Query     string    `json:"query"`
	Kind      string    `json:"kind"` // "skills" or "content"
	Results   int       `json:"result_count"`
	Timestamp time.Time `json:"timestamp"`
}

// Usage is a copy of the counters at one point in time.
type Usage struct {
	Since          time.Time        `json:"uptime_since"`
	ToolCalls      map[string]int64 `json:"tool_calls"`
	SkillLoads     map[string]int64 `json:"skill_loads"`
	RecentSearches []Search         `json:"recent_searches"`
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	start    time.Time
	tools    map[string]int64
	loads    map[string]int64
	searches []Search // ring buffer, next is the oldest slot once full
	next     int
	now      func() time.Time
}

// New returns a tracker whose uptime starts now.
func New() *Tracker {
	return &Tracker{
		start: time.Now(),
		tools: make(map[string]int64),
		loads: make(map[string]int64),
		now:   time.Now,
	}
}

// Tool counts one call of the named tool or command.
func (t *Tracker) Tool(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tools[name]++
}

// Load counts one load of a skill.
func (t *Tracker) Load(skill string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loads[skill]++
}

// Search records a query and how many results it returned.
func (t *Tracker) Search(kind, query string, results int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := Search{Query: query, Kind: kind, Results: results, Timestamp: t.now()}
	if len(t.searches) < MaxSearches {
		t.searches = append(t.searches, s)
		return
	}
	t.searches[t.next] = s
	t.next = (t.next + 1) % MaxSearches
}

// Snapshot copies the counters and the most recent searches, oldest first.
func (t *Tracker) Snapshot() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()

	ordered := make([]Search, 0, len(t.searches))
	ordered = append(ordered, t.searches[t.next:]...)
	ordered = append(ordered, t.searches[:t.next]...)
	if len(ordered) > RecentSearches {
		ordered = ordered[len(ordered)-RecentSearches:]
	}

	return Usage{
		Since:          t.start,
		ToolCalls:      maps.Clone(t.tools),
		SkillLoads:     maps.Clone(t.loads),
		RecentSearches: ordered,
	}
}
