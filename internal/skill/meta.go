// meta.go parses and validates a skill's _meta.json.
//
// ParseMeta returns either a usable Record or a *MetaError listing every
// problem found, so the scanner can record the failure and move on to the
// next directory without any recovery logic of its own.

package skill

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/skilld/internal/validate"
)

// ErrInvalidJSON is wrapped when the metadata file is not valid JSON or has
// fields of the wrong type.
var ErrInvalidJSON = errors.New("invalid JSON")

// MetaError reports every schema problem found in one metadata file.
type MetaError struct {
	Problems []error
}

func (e *MetaError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *MetaError) Unwrap() []error {
	return e.Problems
}

type rawSubSkill struct {
	Name     string   `json:"name"`
	File     string   `json:"file"`
	Triggers []string `json:"triggers"`
}

type rawMeta struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Tags        []string      `json:"tags"`
	SubSkills   []rawSubSkill `json:"sub_skills"`
	Source      string        `json:"source"`
}

// ParseMeta decodes and validates metadata. The returned record's Dir is
// left empty for the caller to fill in.
func ParseMeta(data []byte) (Record, error) {
	var raw rawMeta
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	if err := dec.Decode(&raw); err != nil {
		return Record{}, &MetaError{Problems: []error{fmt.Errorf("%w in %s: %v", ErrInvalidJSON, MetaFile, err)}}
	}

	var problems []error
	add := func(err error) {
		if err != nil {
			problems = append(problems, err)
		}
	}

	rec := Record{Source: raw.Source}

	if raw.Name == nil {
		add(fmt.Errorf("%w: missing required field 'name'", validate.ErrInvalidName))
	} else {
		rec.Name = *raw.Name
		add(validate.Name(rec.Name))
	}

	if raw.Description == nil {
		add(fmt.Errorf("%w: missing required field 'description'", validate.ErrInvalidDescription))
	} else {
		rec.Description = *raw.Description
		add(validate.Description(rec.Description))
	}

	for _, t := range raw.Tags {
		if err := validate.Tag(t); err != nil {
			add(err)
			continue
		}
		if !slices.Contains(rec.Tags, t) {
			rec.Tags = append(rec.Tags, t)
		}
	}

	seen := make(map[string]bool, len(raw.SubSkills))
	for i, s := range raw.SubSkills {
		if err := validate.SubSkillName(s.Name); err != nil {
			add(fmt.Errorf("sub_skills[%d]: %w", i, err))
		} else if seen[s.Name] {
			add(fmt.Errorf("sub_skills[%d]: %w: duplicate name %q", i, validate.ErrInvalidSubSkill, s.Name))
		}
		seen[s.Name] = true

		file, err := validate.SubSkillFile(s.File)
		if err != nil {
			add(fmt.Errorf("sub_skills[%d]: %w", i, err))
		}

		rec.SubSkills = append(rec.SubSkills, SubSkill{
			Name:     s.Name,
			File:     file,
			Triggers: uniqueNonEmpty(s.Triggers),
		})
	}

	if len(problems) > 0 {
		return Record{}, &MetaError{Problems: problems}
	}
	return rec, nil
}

// uniqueNonEmpty drops blank and repeated triggers, keeping first-seen order.
func uniqueNonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
