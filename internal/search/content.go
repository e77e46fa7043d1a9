package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jpl-au/skilld/internal/index"
	"github.com/jpl-au/skilld/internal/skill"
)

const (
	// leadChars is how far into a body a phrase match earns the lead bonus.
	leadChars = 500
	// minWordLen excludes short words from the all-words tier.
	minWordLen = 3
)

// Content searches the text of every indexed document.
//
// Tiers, first match wins:
//   - body contains the whole query: 1.0, raised to 1.3 when a heading
//     contains it or else to 1.2 when it occurs in the first 500 characters
//   - body contains every query word longer than two characters: 0.7, plus
//     0.03 per occurrence up to 0.2, plus 0.1 when a word is in a heading
//   - body contains some of those words: 0.3 scaled by the fraction found
func Content(snap *index.Snapshot, query string, limit int) []Result {
	phrase := normaliseQuery(query)
	if phrase == "" {
		return []Result{}
	}
	words := queryWords(phrase)

	results := []Result{}
	snap.EachContent(func(c *skill.Content) {
		score := contentScore(c, phrase, words)
		if score <= 0 {
			return
		}
		results = append(results, Result{
			Domain:    c.Domain,
			SubSkill:  c.SubSkill,
			File:      c.File,
			Score:     round3(score),
			MatchType: MatchContent,
			Snippet:   Snippet(c.Body, phrase, words),
		})
	})

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			strings.Compare(a.Domain, b.Domain),
			strings.Compare(a.File, b.File),
		)
	})
	return truncate(results, limit)
}

// queryWords returns the distinct words of q long enough to count on their own.
func queryWords(q string) []string {
	var words []string
	for _, w := range strings.Fields(q) {
		if len([]rune(w)) >= minWordLen && !slices.Contains(words, w) {
			words = append(words, w)
		}
	}
	return words
}

func contentScore(c *skill.Content, phrase string, words []string) float64 {
	if strings.Contains(c.Body, phrase) {
		switch {
		case anyContains(c.Headings, phrase):
			return 1.3
		case strings.Contains(lead(c.Body), phrase):
			return 1.2
		}
		return 1.0
	}
	if len(words) == 0 {
		return 0
	}

	matched, occurrences := 0, 0
	for _, w := range words {
		if n := strings.Count(c.Body, w); n > 0 {
			matched++
			occurrences += n
		}
	}
	if matched < len(words) {
		return 0.3 * float64(matched) / float64(len(words))
	}

	score := 0.7 + min(0.2, 0.03*float64(occurrences))
	for _, w := range words {
		if anyContains(c.Headings, w) {
			score += 0.1
			break
		}
	}
	return score
}

// lead returns the first leadChars characters of s.
func lead(s string) string {
	n := 0
	for i := range s {
		if n == leadChars {
			return s[:i]
		}
		n++
	}
	return s
}
