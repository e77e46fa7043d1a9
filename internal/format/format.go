// Package format provides output formatting utilities for CLI display.
//
// Command implementations fetch data from the service and hand it here for
// presentation: column alignment, tree rendering and snippet layout.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/jpl-au/skilld/internal/search"
	"github.com/jpl-au/skilld/internal/service"
)

// JSON marshals v with two-space indentation.
func JSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// List prints skills with their descriptions in aligned columns.
func List(w io.Writer, skills []service.SkillSummary) error {
	if len(skills) == 0 {
		return nil
	}

	maxName := 4 // minimum "NAME"
	for _, s := range skills {
		maxName = max(maxName, len(s.Name))
	}

	fmt.Fprintf(w, "%-*s  %4s  %s\n", maxName, "NAME", "SUBS", "DESCRIPTION")
	for _, s := range skills {
		fmt.Fprintf(w, "%-*s  %4d  %s\n", maxName, s.Name, len(s.SubSkills), clip(s.Description, 72))
	}
	return nil
}

// Tree prints skills with their sub-skills nested beneath them.
func Tree(w io.Writer, skills []service.SkillSummary) error {
	for _, s := range skills {
		fmt.Fprintln(w, s.Name+"/")
		for i, sub := range s.SubSkills {
			connector := "├── "
			if i == len(s.SubSkills)-1 {
				connector = "└── "
			}
			fmt.Fprintf(w, "%s%s\n", connector, sub)
		}
	}
	return nil
}

// Results prints ranked search results, one per line, with the snippet
// indented beneath content matches.
func Results(w io.Writer, results []search.Result) error {
	for _, r := range results {
		target := r.Domain
		if r.SubSkill != "" {
			target += "/" + r.SubSkill
		}
		if r.File != "" {
			target += " (" + r.File + ")"
		}
		fmt.Fprintf(w, "%.3f  %-11s  %s\n", r.Score, r.MatchType, target)
		if r.Snippet != "" {
			fmt.Fprintf(w, "       %s\n", r.Snippet)
		}
	}
	return nil
}

// Reload prints a one-line summary of a published index followed by its
// validation errors.
func Reload(w io.Writer, r service.ReloadResult) error {
	fmt.Fprintf(w, "indexed %d skills, %d content files (generation %d, %s)\n",
		r.SkillCount, r.ContentFileCount, r.Generation, r.BuiltAt.Format(time.DateTime))
	return Problems(w, "error", r.Errors)
}

// Validation prints a validation report.
func Validation(w io.Writer, r service.ValidationReport) error {
	status := "valid"
	if !r.Valid {
		status = "invalid"
	}
	fmt.Fprintf(w, "%d skills checked: %s\n", r.SkillsChecked, status)
	if err := Problems(w, "error", r.Errors); err != nil {
		return err
	}
	return Problems(w, "warning", r.Warnings)
}

// Problems prints each message prefixed by its kind.
func Problems(w io.Writer, kind string, msgs []string) error {
	for _, m := range msgs {
		fmt.Fprintf(w, "  %s: %s\n", kind, m)
	}
	return nil
}

// Stats prints usage counters and index state.
func Stats(w io.Writer, s service.Stats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Skills:        %d\n", s.TotalSkills)
	fmt.Fprintf(&b, "Content files: %d\n", s.ContentFiles)
	fmt.Fprintf(&b, "Generation:    %d\n", s.Index.Generation)
	fmt.Fprintf(&b, "Watcher:       %s", s.Watch.State)
	if s.Watch.Reason != "" {
		fmt.Fprintf(&b, " (%s)", s.Watch.Reason)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Uptime:        %s\n", time.Since(s.Since).Round(time.Second))
	counts(&b, "Tool calls:", s.ToolCalls)
	counts(&b, "Skill loads:", s.SkillLoads)
	if len(s.RecentSearches) > 0 {
		b.WriteString("Recent searches:\n")
	}
	for _, q := range s.RecentSearches {
		fmt.Fprintf(&b, "  %-7s %q (%d)\n", q.Kind, q.Query, q.Results)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func counts(b *strings.Builder, label string, m map[string]int64) {
	if len(m) == 0 {
		return
	}
	b.WriteString(label + "\n")
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(b, "  %-20s %d\n", k, m[k])
	}
}
