package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jpl-au/skilld/internal/index"
)

// Skills searches skill metadata.
//
// Each skill scores on its first matching tier: name equals (1.0), name
// contains (0.9), a tag contains (0.8), description contains (0.7). Each
// sub-skill scores independently: name equals (0.95), a trigger contains
// (0.90), name contains (0.85). All comparisons are case-insensitive.
func Skills(snap *index.Snapshot, query string, limit int) []Result {
	q := normaliseQuery(query)
	if q == "" {
		return []Result{}
	}

	results := []Result{}
	for _, rec := range snap.Skills() {
		if score, kind := skillScore(rec.Name, rec.Description, rec.Tags, q); score > 0 {
			results = append(results, Result{Domain: rec.Name, Score: score, MatchType: kind})
		}
		for _, sub := range rec.SubSkills {
			if score, kind := subSkillScore(sub.Name, sub.Triggers, q); score > 0 {
				results = append(results, Result{Domain: rec.Name, SubSkill: sub.Name, Score: score, MatchType: kind})
			}
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			strings.Compare(a.Domain, b.Domain),
			strings.Compare(a.SubSkill, b.SubSkill),
		)
	})
	return truncate(results, limit)
}

func skillScore(name, desc string, tags []string, q string) (float64, string) {
	name = strings.ToLower(name)
	switch {
	case name == q:
		return 1.0, MatchName
	case strings.Contains(name, q):
		return 0.9, MatchName
	case anyContains(tags, q):
		return 0.8, MatchTags
	case strings.Contains(strings.ToLower(desc), q):
		return 0.7, MatchDescription
	}
	return 0, ""
}

func subSkillScore(name string, triggers []string, q string) (float64, string) {
	name = strings.ToLower(name)
	switch {
	case name == q:
		return 0.95, MatchName
	case anyContains(triggers, q):
		return 0.90, MatchTriggers
	case strings.Contains(name, q):
		return 0.85, MatchName
	}
	return 0, ""
}

func anyContains(values []string, q string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
