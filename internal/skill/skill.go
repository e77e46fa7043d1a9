// Package skill defines the records held by the skill index and the scanner
// and extractor that produce them from a skills directory.
//
// A skill is a directory under the skills root holding a metadata file
// (_meta.json), a primary body (SKILL.md) and optional sub-documents in
// reference and scripts directories. Scan turns the root into metadata
// records; Extract turns one record into searchable content records.
package skill

import (
	"slices"
)

// Default file and directory names making up a skill.
const (
	MetaFile   = "_meta.json"
	BodyFile   = "SKILL.md"
	ScriptsDir = "scripts"
)

// DefaultReferenceDirs are the accepted names for a skill's reference directory.
var DefaultReferenceDirs = []string{"references", "reference"}

// Layout names the files and directories the scanner and extractor look for.
type Layout struct {
	MetaFile      string
	BodyFile      string
	ReferenceDirs []string
	ScriptsDir    string

	// StrictNames excludes skills whose metadata name differs from their
	// directory. When false the skill is indexed and the mismatch is only
	// reported as a validation error.
	StrictNames bool
}

// DefaultLayout returns the standard skill layout.
func DefaultLayout() Layout {
	return Layout{
		MetaFile:      MetaFile,
		BodyFile:      BodyFile,
		ReferenceDirs: slices.Clone(DefaultReferenceDirs),
		ScriptsDir:    ScriptsDir,
	}
}

// SubSkill is a named secondary document belonging to a skill.
type SubSkill struct {
	Name     string   `json:"name"`
	File     string   `json:"file"`
	Triggers []string `json:"triggers,omitempty"`
}

// Record is the parsed metadata of one skill.
type Record struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags,omitempty"`
	SubSkills   []SubSkill `json:"sub_skills,omitempty"`
	Source      string     `json:"source,omitempty"`

	// Dir is the directory the record was read from, relative to the root.
	// It equals Name unless the metadata name does not match.
	Dir string `json:"-"`
}

// SubSkill returns the sub-skill with the given name.
func (r Record) SubSkill(name string) (SubSkill, bool) {
	for _, s := range r.SubSkills {
		if s.Name == name {
			return s, true
		}
	}
	return SubSkill{}, false
}

// SubSkillNames returns the names of the record's sub-skills in order.
func (r Record) SubSkillNames() []string {
	names := make([]string, len(r.SubSkills))
	for i, s := range r.SubSkills {
		names[i] = s.Name
	}
	return names
}

// Clone returns a deep copy, safe to hand to callers outside the index.
func (r Record) Clone() Record {
	c := r
	c.Tags = slices.Clone(r.Tags)
	if r.SubSkills != nil {
		c.SubSkills = make([]SubSkill, len(r.SubSkills))
		for i, s := range r.SubSkills {
			s.Triggers = slices.Clone(s.Triggers)
			c.SubSkills[i] = s
		}
	}
	return c
}

// Key identifies a content record: one file of one skill.
type Key struct {
	Domain string
	File   string
}

// String returns the "domain:file" form used in external indexes.
func (k Key) String() string {
	return k.Domain + ":" + k.File
}

// Content is one searchable document of a skill.
type Content struct {
	Domain    string   `json:"domain"`
	SubSkill  string   `json:"sub_skill,omitempty"` // empty for the primary body
	File      string   `json:"file"`                // slash path relative to the skill directory
	Body      string   `json:"content"`             // lower-cased full text
	WordCount int      `json:"word_count"`
	Headings  []string `json:"headings,omitempty"` // lower-cased, levels 1-3, in order
}

// NewContent normalises raw text into a content record.
func NewContent(domain, subSkill, file, raw string) *Content {
	body, headings, words := Normalise(raw)
	return &Content{
		Domain:    domain,
		SubSkill:  subSkill,
		File:      file,
		Body:      body,
		WordCount: words,
		Headings:  headings,
	}
}

// Key returns the record's identity.
func (c *Content) Key() Key {
	return Key{Domain: c.Domain, File: c.File}
}
