// config_keys.go provides key-value access to configuration settings.
//
// The CLI and MCP layers address settings by dotted keys such as
// "watch.debounce_ms". Integer settings share one table holding their
// default and bounds, so Get, Set, Validate and the typed getters cannot
// disagree about them.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type intKey struct {
	field    func(*Config) **int
	def      int
	min, max int
}

var intKeys = map[string]intKey{
	"watch.debounce_ms":       {func(c *Config) **int { return &c.Watch.DebounceMS }, 500, 10, 60000},
	"watch.max_depth":         {func(c *Config) **int { return &c.Watch.MaxDepth }, 3, 1, 16},
	"search.skill_limit":      {func(c *Config) **int { return &c.Search.SkillLimit }, 5, 1, 1000},
	"search.content_limit":    {func(c *Config) **int { return &c.Search.ContentLimit }, 10, 1, 1000},
	"search.max_limit":        {func(c *Config) **int { return &c.Search.MaxLimit }, 100, 1, 1000},
	"search.max_query_length": {func(c *Config) **int { return &c.Search.MaxQueryLength }, 1000, 1, 100000},
	"search.max_query_words":  {func(c *Config) **int { return &c.Search.MaxQueryWords }, 100, 1, 10000},
}

var intKeyOrder = []string{
	"watch.debounce_ms", "watch.max_depth",
	"search.skill_limit", "search.content_limit", "search.max_limit",
	"search.max_query_length", "search.max_query_words",
}

func (c *Config) intValue(key string) int {
	k := intKeys[key]
	if p := *k.field(c); p != nil {
		return *p
	}
	return k.def
}

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	keys := []string{"author.name", "skills.dir", "skills.strict_names", "watch.enabled"}
	return append(keys, intKeyOrder...)
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "skills.dir":
		return c.SkillsDir(), nil
	case "skills.strict_names":
		return strconv.FormatBool(c.StrictNames()), nil
	case "watch.enabled":
		return strconv.FormatBool(c.WatchEnabled()), nil
	}
	if _, ok := intKeys[key]; ok {
		return strconv.Itoa(c.intValue(key)), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
		return nil
	case "skills.dir":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: skills.dir cannot be empty", ErrInvalidValue)
		}
		c.Skills.Dir = value
		return nil
	case "skills.strict_names":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Skills.StrictNames = &b
		return nil
	case "watch.enabled":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Watch.Enabled = &b
		return nil
	}

	k, ok := intKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < k.min || n > k.max {
		return fmt.Errorf("%w: %s must be an integer between %d and %d", ErrInvalidValue, key, k.min, k.max)
	}
	*k.field(c) = &n
	return nil
}

func parseBool(key, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	all := make(map[string]string)
	for _, key := range ValidKeys() {
		v, _ := c.Get(key)
		all[key] = v
	}
	return all
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "skills.dir":
		return c.Skills.Dir != ""
	case "skills.strict_names":
		return c.Skills.StrictNames != nil
	case "watch.enabled":
		return c.Watch.Enabled != nil
	}
	if k, ok := intKeys[key]; ok {
		return *k.field(c) != nil
	}
	return false
}
