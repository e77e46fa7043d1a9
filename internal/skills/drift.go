// drift.go compares the published index with the skills on disk.

package skills

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/jpl-au/skilld/internal/diff"
	"github.com/jpl-au/skilld/internal/skill"
)

// Drift reports how a skill's files on disk differ from the published
// index. Content is compared in normalised form; metadata is compared as
// indented JSON under the name of the metadata file.
func (s *Service) Drift(ctx context.Context, name string) (diff.Report, error) {
	snap := s.idx.Current()
	rec, err := s.lookup(snap, name)
	if err != nil {
		return diff.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return diff.Report{}, err
	}

	report := diff.Report{Skill: rec.Name, Generation: snap.Generation()}

	indexedMeta := metaJSON(rec)
	diskRec, _, ok := skill.ScanDir(s.fsys, rec.Dir, s.layout)
	if ok {
		report.Add(s.layout.MetaFile, &indexedMeta, ptr(metaJSON(diskRec)))
	} else {
		report.Add(s.layout.MetaFile, &indexedMeta, nil)
		diskRec = rec
	}

	indexed := make(map[string]string)
	for _, c := range snap.ContentFor(rec.Name) {
		indexed[c.File] = c.Body
	}
	disk := make(map[string]string)
	for _, c := range skill.Extract(s.fsys, diskRec, s.layout) {
		disk[c.File] = c.Body
	}

	var files []string
	for f := range indexed {
		files = append(files, f)
	}
	for f := range disk {
		if _, ok := indexed[f]; !ok {
			files = append(files, f)
		}
	}
	slices.Sort(files)

	for _, f := range files {
		var before, after *string
		if v, ok := indexed[f]; ok {
			before = &v
		}
		if v, ok := disk[f]; ok {
			after = &v
		}
		report.Add(f, before, after)
	}
	return report, nil
}

func metaJSON(rec skill.Record) string {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return ""
	}
	return string(data) + "\n"
}

func ptr(s string) *string {
	return &s
}
