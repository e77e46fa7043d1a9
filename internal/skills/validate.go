// validate.go implements the full-tree validation report.

package skills

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"github.com/jpl-au/skilld/internal/service"
	"github.com/jpl-au/skilld/internal/skill"
)

// Validate builds the tree afresh, without publishing the result, and
// reports every problem found. Missing bodies are errors here even though
// the index tolerates them; skills without tags or sub-skills are warnings.
func (s *Service) Validate(ctx context.Context) (service.ValidationReport, error) {
	snap, err := s.idx.Builder().Build(ctx)
	if err != nil {
		return service.ValidationReport{}, err
	}

	report := service.ValidationReport{
		Errors:   snap.Errors(),
		Warnings: []string{},
	}
	if report.Errors == nil {
		report.Errors = []string{}
	}

	for _, rec := range snap.Skills() {
		if !skill.Exists(s.fsys, path.Join(rec.Dir, s.layout.BodyFile)) {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: missing %s", rec.Dir, s.layout.BodyFile))
		}
		if len(rec.Tags) == 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: no tags defined", rec.Name))
		}
		if len(rec.SubSkills) == 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: no sub-skills defined (standalone skill)", rec.Name))
		}
	}

	report.SkillsChecked = s.candidates()
	report.Valid = len(report.Errors) == 0
	return report, nil
}

// candidates counts the directories the scanner considers.
func (s *Service) candidates() int {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if skill.Candidate(s.fsys, e) {
			n++
		}
	}
	return n
}
