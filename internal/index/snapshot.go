// snapshot.go defines the immutable index published to readers.
//
// A Snapshot is never modified after construction. The skills and content
// maps are always replaced together, so a reader holding one snapshot sees
// metadata and content from the same build.

package index

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/jpl-au/skilld/internal/skill"
)

// Snapshot is one complete, internally consistent view of the skills tree.
type Snapshot struct {
	skills     []skill.Record
	byName     map[string]int
	content    map[skill.Key]*skill.Content
	keys       []skill.Key
	errors     []string
	builtAt    time.Time
	generation uint64
}

// newSnapshot assembles a snapshot from records sorted by name and their
// content. Content for skills not in records is dropped.
func newSnapshot(records []skill.Record, content []*skill.Content, errs []string, builtAt time.Time, gen uint64) *Snapshot {
	s := &Snapshot{
		skills:     records,
		byName:     make(map[string]int, len(records)),
		content:    make(map[skill.Key]*skill.Content, len(content)),
		errors:     errs,
		builtAt:    builtAt,
		generation: gen,
	}
	for i, r := range records {
		s.byName[r.Name] = i
	}
	for _, c := range content {
		if _, ok := s.byName[c.Domain]; !ok {
			continue
		}
		k := c.Key()
		if _, dup := s.content[k]; dup {
			continue
		}
		s.content[k] = c
		s.keys = append(s.keys, k)
	}
	slices.SortFunc(s.keys, compareKeys)
	return s
}

func empty() *Snapshot {
	return newSnapshot(nil, nil, nil, time.Time{}, 0)
}

func compareKeys(a, b skill.Key) int {
	return cmp.Or(strings.Compare(a.Domain, b.Domain), strings.Compare(a.File, b.File))
}

// Skills returns the records ordered by name. The slice is shared and must
// not be modified.
func (s *Snapshot) Skills() []skill.Record {
	return s.skills
}

// Skill returns the record with the given name.
func (s *Snapshot) Skill(name string) (skill.Record, bool) {
	i, ok := s.byName[name]
	if !ok {
		return skill.Record{}, false
	}
	return s.skills[i], true
}

// Names returns the indexed skill names in order.
func (s *Snapshot) Names() []string {
	names := make([]string, len(s.skills))
	for i, r := range s.skills {
		names[i] = r.Name
	}
	return names
}

// Content returns the content record for a file.
func (s *Snapshot) Content(k skill.Key) (*skill.Content, bool) {
	c, ok := s.content[k]
	return c, ok
}

// EachContent calls fn for every content record in (domain, file) order.
// The records are shared and must not be modified.
func (s *Snapshot) EachContent(fn func(*skill.Content)) {
	for _, k := range s.keys {
		fn(s.content[k])
	}
}

// ContentFor returns the content records of one skill in file order.
func (s *Snapshot) ContentFor(domain string) []*skill.Content {
	var out []*skill.Content
	for _, k := range s.keys {
		if k.Domain == domain {
			out = append(out, s.content[k])
		}
	}
	return out
}

// ContentCount returns the number of content records.
func (s *Snapshot) ContentCount() int {
	return len(s.keys)
}

// Errors returns the validation errors raised by the build.
func (s *Snapshot) Errors() []string {
	return slices.Clone(s.errors)
}

// BuiltAt returns when the snapshot was built. Zero for the initial empty
// snapshot.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// Generation increases by one with every published snapshot.
func (s *Snapshot) Generation() uint64 {
	return s.generation
}
