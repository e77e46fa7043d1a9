// incremental.go updates the published index one skill at a time.
//
// An update starts from the current snapshot, swaps out everything that
// belongs to one skill directory and publishes the result through the same
// atomic store as a full rebuild. Records and content of other skills are
// shared with the previous snapshot; both are immutable so this is safe.

package index

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/skilld/internal/skill"
	"github.com/jpl-au/skilld/internal/validate"
)

// ErrInvalidDir is returned when an incremental update names something
// that cannot be a skill directory.
var ErrInvalidDir = errors.New("invalid skill directory")

// UpdateSkill re-reads one skill directory and publishes a snapshot with
// its record and content replaced. A directory that no longer holds a
// valid skill is removed from the index, with its validation errors kept.
func (x *Index) UpdateSkill(ctx context.Context, dir string) (*Snapshot, error) {
	if !validate.SafeName(dir) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDir, dir)
	}

	x.buildMu.Lock()
	defer x.buildMu.Unlock()

	b := x.builder
	cur := x.Current()
	records, content, errs := cur.without(dir)

	if !strings.HasPrefix(dir, "_") && skill.IsDir(b.FS, dir) {
		rec, recErrs, ok := skill.ScanDir(b.FS, dir, b.Layout)
		errs = append(errs, recErrs...)
		if ok {
			i := slices.IndexFunc(records, func(r skill.Record) bool { return r.Name == rec.Name })
			if i >= 0 && skill.Displaces(rec, records[i]) {
				errs = append(errs, skill.DuplicateError(records[i].Dir, rec.Name, dir))
				records = slices.Delete(records, i, i+1)
				content = slices.DeleteFunc(content, func(c *skill.Content) bool { return c.Domain == rec.Name })
				i = -1
			}
			if i >= 0 {
				errs = append(errs, skill.DuplicateError(dir, rec.Name, records[i].Dir))
			} else {
				extracted, err := b.extract(ctx, []skill.Record{rec})
				if err != nil {
					return nil, err
				}
				records = append(records, rec)
				content = append(content, extracted...)
			}
		}
	}

	slices.SortFunc(records, func(a, b skill.Record) int {
		return strings.Compare(a.Name, b.Name)
	})
	snap := newSnapshot(records, content, errs, b.clock(), 0)
	x.publish(snap)
	x.log.Info("skill updated", "dir", dir, "generation", snap.Generation())
	return snap, nil
}

// without returns the snapshot's parts with everything read from dir
// removed: its record, that record's content and errors prefixed "dir: ".
func (s *Snapshot) without(dir string) ([]skill.Record, []*skill.Content, []string) {
	var (
		records []skill.Record
		drop    string
	)
	for _, r := range s.skills {
		if r.Dir == dir || (r.Dir == "" && r.Name == dir) {
			drop = r.Name
			continue
		}
		records = append(records, r)
	}

	var content []*skill.Content
	s.EachContent(func(c *skill.Content) {
		if drop != "" && c.Domain == drop {
			return
		}
		content = append(content, c)
	})

	var errs []string
	prefix := dir + ": "
	for _, e := range s.errors {
		if !strings.HasPrefix(e, prefix) {
			errs = append(errs, e)
		}
	}
	return records, content, errs
}
