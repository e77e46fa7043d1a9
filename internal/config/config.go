// Package config provides reading and writing of skilld configuration.
// Supports both global (~/.skilld/config.yaml) and local (.skilld/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.skilld/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .skilld/config.yaml
	ScopeLocal
)

// DirName is the name of the local and global config directories.
const DirName = ".skilld"

// DefaultSkillsDir is the skills root used when nothing else is configured.
const DefaultSkillsDir = "skills"

// Author is recorded against audit log entries.
type Author struct {
	Name string `yaml:"name,omitempty"`
}

// Skills configures where skills live and how strictly they are checked.
type Skills struct {
	Dir         string `yaml:"dir,omitempty"`
	StrictNames *bool  `yaml:"strict_names,omitempty"`
}

// Watch configures the file watcher.
type Watch struct {
	Enabled    *bool `yaml:"enabled,omitempty"`
	DebounceMS *int  `yaml:"debounce_ms,omitempty"`
	MaxDepth   *int  `yaml:"max_depth,omitempty"`
}

// Search configures result counts and query limits.
type Search struct {
	SkillLimit     *int `yaml:"skill_limit,omitempty"`
	ContentLimit   *int `yaml:"content_limit,omitempty"`
	MaxLimit       *int `yaml:"max_limit,omitempty"`
	MaxQueryLength *int `yaml:"max_query_length,omitempty"`
	MaxQueryWords  *int `yaml:"max_query_words,omitempty"`
}

// Config contains configuration for skilld.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Skills Skills `yaml:"skills,omitempty"`
	Watch  Watch  `yaml:"watch,omitempty"`
	Search Search `yaml:"search,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	for _, key := range intKeyOrder {
		k := intKeys[key]
		p := *k.field(c)
		if p == nil {
			continue
		}
		if *p < k.min || *p > k.max {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d",
				ErrInvalidValue, key, k.min, k.max, *p)
		}
	}
	return nil
}

// SkillsDir returns the configured skills root (defaults to "skills").
func (c *Config) SkillsDir() string {
	if c.Skills.Dir == "" {
		return DefaultSkillsDir
	}
	return c.Skills.Dir
}

// StrictNames reports whether skills whose metadata name differs from their
// directory are excluded (defaults to false: included and flagged).
func (c *Config) StrictNames() bool {
	return c.Skills.StrictNames != nil && *c.Skills.StrictNames
}

// WatchEnabled reports whether the file watcher runs (defaults to true).
func (c *Config) WatchEnabled() bool {
	return c.Watch.Enabled == nil || *c.Watch.Enabled
}

// Debounce returns the watcher's quiet period (defaults to 500ms).
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.intValue("watch.debounce_ms")) * time.Millisecond
}

// MaxDepth returns how many directory levels the watcher covers (defaults to 3).
func (c *Config) MaxDepth() int { return c.intValue("watch.max_depth") }

// SkillLimit returns the default number of skill search results (defaults to 5).
func (c *Config) SkillLimit() int { return c.intValue("search.skill_limit") }

// ContentLimit returns the default number of content search results (defaults to 10).
func (c *Config) ContentLimit() int { return c.intValue("search.content_limit") }

// MaxLimit returns the most results any search may return (defaults to 100).
func (c *Config) MaxLimit() int { return c.intValue("search.max_limit") }

// MaxQueryLength returns the longest accepted query in characters (defaults to 1000).
func (c *Config) MaxQueryLength() int { return c.intValue("search.max_query_length") }

// MaxQueryWords returns the most words accepted in a query (defaults to 100).
func (c *Config) MaxQueryWords() int { return c.intValue("search.max_query_words") }

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(DirName, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.skilld/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DirName, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	return loadPath(pathForScope(scope), scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath replaces the file at path atomically, so a crash mid-save
// leaves either the old or the new config, never a truncated one.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
