package skills

import (
	"strings"

	"github.com/jpl-au/skilld/internal/search"
)

// SearchSkills ranks skills and sub-skills by their metadata.
func (s *Service) SearchSkills(query string, limit int) ([]search.Result, error) {
	if err := s.limits.Check(query); err != nil {
		return nil, err
	}
	results := search.Skills(s.idx.Current(), query, s.limits.Clamp(limit, s.skillLimit))
	s.record("skills", query, results)
	return results, nil
}

// SearchContent ranks documents by their text.
func (s *Service) SearchContent(query string, limit int) ([]search.Result, error) {
	if err := s.limits.Check(query); err != nil {
		return nil, err
	}
	results := search.Content(s.idx.Current(), query, s.limits.Clamp(limit, s.contentLimit))
	s.record("content", query, results)
	return results, nil
}

func (s *Service) record(kind, query string, results []search.Result) {
	if strings.TrimSpace(query) != "" {
		s.usage.Search(kind, query, len(results))
	}
}
