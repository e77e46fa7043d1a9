// Package service defines the operations skilld exposes to its callers.
// The MCP server and the CLI depend on this interface rather than on the
// concrete implementation in internal/skills, so either can be tested
// against a fake.
package service

import (
	"context"
	"time"

	"github.com/jpl-au/skilld/internal/diff"
	"github.com/jpl-au/skilld/internal/index"
	"github.com/jpl-au/skilld/internal/search"
	"github.com/jpl-au/skilld/internal/skill"
	"github.com/jpl-au/skilld/internal/stats"
	"github.com/jpl-au/skilld/internal/watch"
)

// Service defines all skill index operations.
//
// Obtain one with skills.New and call Close when done:
//
//	svc := skills.New(root, cfg)
//	defer svc.Close()
//	if _, err := svc.Reload(ctx); err != nil {
//	    return err
//	}
//	results, err := svc.SearchContent("delta compression", 0)
type Service interface {
	// Close stops the watcher if it is running.
	Close() error

	// Reload rebuilds the index and waits for the result. Concurrent
	// callers share rebuilds. On an *index.ScanError the previous index
	// stays published.
	Reload(ctx context.Context) (ReloadResult, error)

	// Watch starts the file watcher in the background until ctx is done.
	// Failure to start leaves the watcher degraded; it is not an error.
	Watch(ctx context.Context)

	// WatchStatus reports the watcher state.
	WatchStatus() watch.Status

	// SkillIndex returns every indexed record and the validation errors
	// from the same build.
	SkillIndex() SkillIndex

	// ContentIndex returns every content record keyed "domain:file".
	ContentIndex() map[string]skill.Content

	// ListSkills summarises the indexed skills.
	ListSkills() []SkillSummary

	// SearchSkills ranks skills and sub-skills by their metadata. A limit
	// of zero or less uses the configured default. Returns
	// search.ErrQueryTooLong for oversized queries.
	SearchSkills(query string, limit int) ([]search.Result, error)

	// SearchContent ranks documents by their text.
	SearchContent(query string, limit int) ([]search.Result, error)

	// SkillMeta returns a skill's metadata, or an error wrapping
	// skills.ErrNotFound.
	SkillMeta(name string) (skill.Record, error)

	// SkillExists reports whether a skill is indexed.
	SkillExists(name string) bool

	// ReadSkill returns a skill's primary body as currently on disk.
	ReadSkill(name string) (SkillContent, error)

	// ReadSubSkill returns a sub-skill's document as currently on disk.
	ReadSubSkill(domain, subSkill string) (SubSkillContent, error)

	// HasReferences reports whether a skill has reference documents.
	HasReferences(name string) bool

	// Batch loads several skills and sub-skills. Failures are reported per
	// item and never abort the batch.
	Batch(reqs []BatchRequest) []BatchItem

	// Stats returns usage counters and index state.
	Stats() Stats

	// Track counts a call of the named tool or command.
	Track(tool string)

	// Validate builds the tree afresh, without publishing, and reports
	// every problem found.
	Validate(ctx context.Context) (ValidationReport, error)

	// Drift compares a skill's indexed content with its files on disk.
	Drift(ctx context.Context, name string) (diff.Report, error)

	// UpdateSkill re-indexes one skill directory without a full rebuild.
	UpdateSkill(ctx context.Context, dir string) (ReloadResult, error)
}

// ReloadResult summarises a published index.
type ReloadResult struct {
	SkillCount       int       `json:"skill_count"`
	ContentFileCount int       `json:"content_files_indexed"`
	Errors           []string  `json:"validation_errors"`
	BuiltAt          time.Time `json:"built_at"`
	Generation       uint64    `json:"generation"`
}

// SkillIndex is the full metadata index.
type SkillIndex struct {
	Skills           []skill.Record `json:"skills"`
	ValidationErrors []string       `json:"validation_errors"`
	BuiltAt          time.Time      `json:"built_at"`
	Generation       uint64         `json:"generation"`
}

// SkillSummary is one entry of ListSkills.
type SkillSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SubSkills   []string `json:"sub_skills"`
}

// SkillContent is a skill's primary body.
type SkillContent struct {
	Name          string   `json:"name"`
	Content       string   `json:"content"`
	SubSkills     []string `json:"sub_skills"`
	HasReferences bool     `json:"has_references"`
}

// SubSkillContent is one sub-skill document.
type SubSkillContent struct {
	Domain   string `json:"domain"`
	SubSkill string `json:"sub_skill"`
	File     string `json:"file"`
	Content  string `json:"content"`
}

// BatchRequest names a skill, or a sub-skill when SubSkill is set.
type BatchRequest struct {
	Domain   string `json:"domain"`
	SubSkill string `json:"sub_skill,omitempty"`
}

// BatchItem is the outcome of one BatchRequest.
type BatchItem struct {
	Domain   string `json:"domain"`
	SubSkill string `json:"sub_skill,omitempty"`
	Content  string `json:"content,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ValidationReport is the result of Validate.
type ValidationReport struct {
	Valid         bool     `json:"valid"`
	SkillsChecked int      `json:"skills_checked"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
}

// Stats combines usage counters with the state of the index and watcher.
type Stats struct {
	stats.Usage
	TotalSkills  int          `json:"total_skills"`
	ContentFiles int          `json:"content_files_indexed"`
	Index        index.State  `json:"index"`
	Watch        watch.Status `json:"watch"`
}
