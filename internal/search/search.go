// Package search ranks skills and their content against a query.
//
// Both searches work on one index.Snapshot passed in by the caller and do
// no I/O, so a query sees a single consistent build however many rebuilds
// run meanwhile. Scores and orderings are deterministic for a given
// snapshot and query.
package search

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrQueryTooLong is returned when a query exceeds the configured length
// or word limits.
var ErrQueryTooLong = errors.New("query too long")

// Match types reported in results.
const (
	MatchName        = "name"
	MatchTags        = "tags"
	MatchDescription = "description"
	MatchTriggers    = "triggers"
	MatchContent     = "content"
)

// Result is one ranked hit.
type Result struct {
	Domain    string  `json:"domain"`
	SubSkill  string  `json:"sub_skill,omitempty"`
	File      string  `json:"file,omitempty"`
	Score     float64 `json:"score"`
	MatchType string  `json:"match_type"`
	Snippet   string  `json:"snippet,omitempty"`
}

// Limits bounds query size and result counts.
type Limits struct {
	MaxLength  int // characters
	MaxWords   int
	MaxResults int
}

// DefaultLimits returns the standard query bounds.
func DefaultLimits() Limits {
	return Limits{MaxLength: 1000, MaxWords: 100, MaxResults: 100}
}

// Check rejects queries over the length or word limits. Empty queries pass;
// they simply match nothing.
func (l Limits) Check(query string) error {
	if n := len([]rune(query)); l.MaxLength > 0 && n > l.MaxLength {
		return fmt.Errorf("%w: %d characters, max %d", ErrQueryTooLong, n, l.MaxLength)
	}
	if n := len(strings.Fields(query)); l.MaxWords > 0 && n > l.MaxWords {
		return fmt.Errorf("%w: %d words, max %d", ErrQueryTooLong, n, l.MaxWords)
	}
	return nil
}

// Clamp returns limit bounded to [1, MaxResults], using def when limit is
// not positive.
func (l Limits) Clamp(limit, def int) int {
	if limit <= 0 {
		limit = def
	}
	if l.MaxResults > 0 && limit > l.MaxResults {
		limit = l.MaxResults
	}
	return max(limit, 1)
}

func normaliseQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func truncate(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
