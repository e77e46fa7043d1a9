package cmd

import (
	"strings"
	"testing"
)

func TestGuide(t *testing.T) {
	t.Run("main guide", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("guide")
		env.contains(out, "skilld Guide")
		env.contains(out, "Quick Start")
		env.contains(out, "Commands")
	})

	t.Run("lists available on not found", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("guide", "nonexistent")
		if err == nil {
			t.Error("Guide(nonexistent) = nil, want error")
		}
		env.contains(out, "Available: layout, search, tools")
	})

	t.Run("works without skills directory", func(t *testing.T) {
		env := newTestEnv(t)
		env.remove("skills")

		out := env.run("guide", "layout")
		env.contains(out, "_meta.json")
	})
}

func TestGuide_Topics(t *testing.T) {
	tests := []struct {
		topic   string
		contain string
	}{
		{"layout", "sub_skills"},
		{"search", "Content search"},
		{"tools", "get_skills_batch"},
	}

	for _, tc := range tests {
		t.Run(tc.topic, func(t *testing.T) {
			env := newTestEnv(t)

			out := env.run("guide", tc.topic)
			env.contains(out, tc.contain)
		})
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("version")
	env.contains(out, "Build Tag:")

	out = env.run("version", "-o", "json")
	env.contains(out, `"build_tag":"dev"`)
}

// countLines counts output lines containing s.
func countLines(out, s string) int {
	n := 0
	for line := range strings.SplitSeq(out, "\n") {
		if strings.Contains(line, s) {
			n++
		}
	}
	return n
}
