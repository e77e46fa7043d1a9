package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Run("get single key after set", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "--local", "author.name", "Test User")

		out := env.run("config", "author.name")
		env.contains(out, "Test User")
	})

	t.Run("get all shows defaults", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config")
		env.contains(out, "skills.dir: skills")
		env.contains(out, "search.skill_limit: 5")
		env.contains(out, "watch.debounce_ms: 500")
	})

	t.Run("set without local writes global", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "search.content_limit", "3")
		env.contains(out, "(global)")

		_, err := os.Stat(filepath.Join(env.home, ".skilld", "config.yaml"))
		assert.NoError(t, err)
	})
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"skills dir", "skills.dir", "library"},
		{"strict names", "skills.strict_names", "true"},
		{"watch enabled", "watch.enabled", "false"},
		{"debounce", "watch.debounce_ms", "250"},
		{"skill limit", "search.skill_limit", "7"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			env.run("config", "--local", tc.key, tc.value)

			out := env.run("config", tc.key)
			env.contains(out, tc.value)
		})
	}
}

func TestConfig_AppliesToSearch(t *testing.T) {
	env := newTestEnv(t)
	env.run("config", "--local", "search.content_limit", "1")

	out := env.run("search", "--content", "the forms validation")
	assert.Equal(t, 1, countLines(out, "content"))
}

func TestConfig_SkillsDir(t *testing.T) {
	env := newTestEnv(t)
	env.write("library/solo/_meta.json", `{"name": "solo", "description": "Alone"}`)
	env.run("config", "--local", "skills.dir", "library")

	out := env.run("list")
	env.contains(out, "solo")
	env.notContains(out, "forms")
}

func TestConfig_Errors(t *testing.T) {
	t.Run("invalid key", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "invalid.key", "value")
		if err == nil {
			t.Error("Config(invalid key) = nil, want error")
		}
	})

	t.Run("out of range", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "--local", "watch.debounce_ms", "1")
		if err == nil {
			t.Error("Config(out of range) = nil, want error")
		}
	})

	t.Run("invalid bool", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "--local", "watch.enabled", "maybe")
		if err == nil {
			t.Error("Config(invalid bool) = nil, want error")
		}
	})
}
