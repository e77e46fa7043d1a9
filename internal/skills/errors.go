package skills

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	// ErrNotFound is wrapped by every lookup failure.
	ErrNotFound = errors.New("not found")
	// ErrInvalidName is returned for names that cannot address a skill.
	ErrInvalidName = errors.New("invalid name")
)

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// NotFoundError reports an unknown skill or sub-skill with close matches.
type NotFoundError struct {
	Kind        string // "skill" or "sub-skill"
	Name        string
	Parent      string // owning skill for sub-skills
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s '%s' not found", e.Kind, e.Name)
	if e.Parent != "" {
		fmt.Fprintf(&b, " in '%s'", e.Parent)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(kind, name, parent string, candidates []string) error {
	return &NotFoundError{Kind: kind, Name: name, Parent: parent, Suggestions: suggest(name, candidates)}
}

// suggest returns the candidates that fuzzily match name, best first.
func suggest(name string, candidates []string) []string {
	var out []string
	for _, m := range fuzzy.Find(strings.ToLower(name), candidates) {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
