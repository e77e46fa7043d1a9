// Package diff reports how a skill's files on disk differ from what the
// published index holds for them.
//
// The index stores normalised (lower-cased) text, so both sides are
// normalised before diffing and only changes that affect search results
// show up.
package diff

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Drifter computes drift for a skill.
type Drifter interface {
	Drift(ctx context.Context, name string) (Report, error)
}

// Run computes drift for a skill and writes it to w.
func Run(ctx context.Context, w io.Writer, svc Drifter, name string, colour bool) (Report, error) {
	r, err := svc.Drift(ctx, name)
	if err != nil {
		return r, err
	}
	fmt.Fprint(w, r.Format(colour))
	return r, nil
}

// File states in a drift report.
const (
	StateUnchanged = "unchanged"
	StateModified  = "modified"
	StateAdded     = "added"   // on disk, not in the index
	StateRemoved   = "removed" // in the index, gone from disk
)

// FileDrift is the comparison of one file.
type FileDrift struct {
	File   string `json:"file"`
	State  string `json:"state"`
	Result Result `json:"-"`
	Diff   string `json:"diff,omitempty"`
}

// Report is the drift of every file of one skill.
type Report struct {
	Skill      string      `json:"skill"`
	Generation uint64      `json:"generation"`
	Stale      bool        `json:"stale"`
	Files      []FileDrift `json:"files"`
}

// Add compares one file and appends it to the report. A missing side is
// passed as nil.
func (r *Report) Add(file string, indexed, disk *string) {
	fd := FileDrift{File: file}
	switch {
	case indexed == nil && disk == nil:
		return
	case indexed == nil:
		fd.State = StateAdded
	case disk == nil:
		fd.State = StateRemoved
	default:
		fd.Result = Compute(*indexed, *disk, "index:"+file, "disk:"+file)
		fd.Diff = fd.Result.Diff
		fd.State = StateUnchanged
		if fd.Result.Changed {
			fd.State = StateModified
		}
	}
	if fd.State != StateUnchanged {
		r.Stale = true
	}
	r.Files = append(r.Files, fd)
}

// Format renders the report with one diff section per changed file.
func (r Report) Format(colour bool) string {
	var b strings.Builder
	if !r.Stale {
		fmt.Fprintf(&b, "%s: index is up to date (generation %d)\n", r.Skill, r.Generation)
		return b.String()
	}
	fmt.Fprintf(&b, "%s: index is stale (generation %d)\n", r.Skill, r.Generation)
	for _, f := range r.Files {
		switch f.State {
		case StateAdded, StateRemoved:
			fmt.Fprintf(&b, "%s: %s\n", f.State, f.File)
		case StateModified:
			b.WriteString(f.Result.Format(colour))
		}
	}
	return b.String()
}

// Result holds diff output.
type Result struct {
	Old     string // old label
	New     string // new label
	Diff    string // plain diff text
	Changed bool
}

// Compute returns a diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	d := dmp.DiffMain(oldContent, newContent, false)
	d = dmp.DiffCleanupSemantic(d)

	changed := false
	for _, x := range d {
		if x.Type != diffmatchpatch.DiffEqual {
			changed = true
			break
		}
	}

	return Result{
		Old:     oldLabel,
		New:     newLabel,
		Diff:    format(d),
		Changed: changed,
	}
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&b, "- ", lines)
		case diffmatchpatch.DiffInsert:
			writeLines(&b, "+ ", lines)
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				writeLines(&b, "  ", lines[:contextLines])
				b.WriteString("  ...\n")
				writeLines(&b, "  ", lines[len(lines)-contextLines:])
			} else {
				writeLines(&b, "  ", lines)
			}
		}
	}
	return b.String()
}

func writeLines(b *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		b.WriteString(prefix + l + "\n")
	}
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for line := range strings.SplitSeq(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
