// read.go implements the lookup and read operations.

package skills

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/jpl-au/skilld/internal/index"
	"github.com/jpl-au/skilld/internal/service"
	"github.com/jpl-au/skilld/internal/skill"
	"github.com/jpl-au/skilld/internal/validate"
)

// SkillIndex returns every indexed record and its build's errors.
func (s *Service) SkillIndex() service.SkillIndex {
	snap := s.idx.Current()
	records := make([]skill.Record, len(snap.Skills()))
	for i, r := range snap.Skills() {
		records[i] = r.Clone()
	}
	errs := snap.Errors()
	if errs == nil {
		errs = []string{}
	}
	return service.SkillIndex{
		Skills:           records,
		ValidationErrors: errs,
		BuiltAt:          snap.BuiltAt(),
		Generation:       snap.Generation(),
	}
}

// ContentIndex returns every content record keyed "domain:file".
func (s *Service) ContentIndex() map[string]skill.Content {
	snap := s.idx.Current()
	out := make(map[string]skill.Content, snap.ContentCount())
	snap.EachContent(func(c *skill.Content) {
		cp := *c
		cp.Headings = slices.Clone(c.Headings)
		out[c.Key().String()] = cp
	})
	return out
}

// ListSkills summarises the indexed skills.
func (s *Service) ListSkills() []service.SkillSummary {
	snap := s.idx.Current()
	out := make([]service.SkillSummary, 0, len(snap.Skills()))
	for _, r := range snap.Skills() {
		out = append(out, service.SkillSummary{
			Name:        r.Name,
			Description: r.Description,
			SubSkills:   r.SubSkillNames(),
		})
	}
	return out
}

// SkillExists reports whether a skill is indexed.
func (s *Service) SkillExists(name string) bool {
	_, ok := s.idx.Current().Skill(name)
	return ok
}

// SkillMeta returns a skill's metadata.
func (s *Service) SkillMeta(name string) (skill.Record, error) {
	rec, err := s.lookup(s.idx.Current(), name)
	if err != nil {
		return skill.Record{}, err
	}
	return rec.Clone(), nil
}

// HasReferences reports whether a skill has reference documents.
func (s *Service) HasReferences(name string) bool {
	rec, ok := s.idx.Current().Skill(name)
	return ok && skill.HasReferences(s.fsys, rec, s.layout)
}

func (s *Service) lookup(snap *index.Snapshot, name string) (skill.Record, error) {
	if !validate.SafeName(name) {
		return skill.Record{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	rec, ok := snap.Skill(name)
	if !ok {
		return skill.Record{}, notFound("skill", name, "", snap.Names())
	}
	return rec, nil
}

// ReadSkill returns a skill's primary body as currently on disk.
func (s *Service) ReadSkill(name string) (service.SkillContent, error) {
	rec, err := s.lookup(s.idx.Current(), name)
	if err != nil {
		return service.SkillContent{}, err
	}

	body, err := s.read(rec, s.layout.BodyFile)
	if err != nil {
		return service.SkillContent{}, err
	}
	s.usage.Load(rec.Name)

	return service.SkillContent{
		Name:          rec.Name,
		Content:       body,
		SubSkills:     rec.SubSkillNames(),
		HasReferences: skill.HasReferences(s.fsys, rec, s.layout),
	}, nil
}

// ReadSubSkill returns a sub-skill's document as currently on disk. Besides
// sub-skills declared in metadata, reference and script documents can be
// read by the names search results give them.
func (s *Service) ReadSubSkill(domain, subSkill string) (service.SubSkillContent, error) {
	snap := s.idx.Current()
	rec, err := s.lookup(snap, domain)
	if err != nil {
		return service.SubSkillContent{}, err
	}

	file, ok := subSkillFile(snap, rec, subSkill)
	if !ok {
		return service.SubSkillContent{}, notFound("sub-skill", subSkill, rec.Name, subSkillNames(snap, rec))
	}
	file, err = validate.SubSkillFile(file)
	if err != nil {
		return service.SubSkillContent{}, err
	}

	body, err := s.read(rec, file)
	if err != nil {
		return service.SubSkillContent{}, err
	}
	s.usage.Load(rec.Name)

	return service.SubSkillContent{
		Domain:   rec.Name,
		SubSkill: subSkill,
		File:     file,
		Content:  body,
	}, nil
}

func subSkillFile(snap *index.Snapshot, rec skill.Record, name string) (string, bool) {
	if sub, ok := rec.SubSkill(name); ok {
		return sub.File, true
	}
	for _, c := range snap.ContentFor(rec.Name) {
		if c.SubSkill == name {
			return c.File, true
		}
	}
	return "", false
}

func subSkillNames(snap *index.Snapshot, rec skill.Record) []string {
	names := rec.SubSkillNames()
	for _, c := range snap.ContentFor(rec.Name) {
		if c.SubSkill != "" && !slices.Contains(names, c.SubSkill) {
			names = append(names, c.SubSkill)
		}
	}
	return names
}

// read returns a file of a skill as text.
func (s *Service) read(rec skill.Record, file string) (string, error) {
	dir := rec.Dir
	if dir == "" {
		dir = rec.Name
	}
	data, err := fs.ReadFile(s.fsys, path.Join(dir, file))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s of skill '%s'", ErrNotFound, file, rec.Name)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s of skill '%s': %w", file, rec.Name, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// Batch loads several skills and sub-skills.
func (s *Service) Batch(reqs []service.BatchRequest) []service.BatchItem {
	items := make([]service.BatchItem, 0, len(reqs))
	for _, r := range reqs {
		item := service.BatchItem{Domain: r.Domain, SubSkill: r.SubSkill}
		if r.SubSkill != "" {
			c, err := s.ReadSubSkill(r.Domain, r.SubSkill)
			item.Content = c.Content
			if err != nil {
				item.Error = err.Error()
			}
		} else {
			c, err := s.ReadSkill(r.Domain)
			item.Content = c.Content
			if err != nil {
				item.Error = err.Error()
			}
		}
		items = append(items, item)
	}
	return items
}
