package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("validate")
	env.contains(out, "2 skills checked: valid")
	env.contains(out, "warning: auth: no tags defined")
}

func TestValidate_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.write("skills/broken/_meta.json", `{"name": "broken"}`)
	env.remove("skills/auth/SKILL.md")

	out, err := env.runErr("validate")
	assert.Error(t, err)
	env.contains(out, "3 skills checked: invalid")
	env.contains(out, "error: broken:")
	env.contains(out, "error: auth: missing SKILL.md")
	env.contains(out, "validation failed: 2 errors")
}

func TestValidate_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.write("skills/Mixed/_meta.json", `{"name": "mixed", "description": "Name differs from dir"}`)

	// Exits non-zero but still prints the report.
	out, err := env.runStdoutErr("validate", "-o", "json")
	assert.Error(t, err)

	var got struct {
		Valid         bool     `json:"valid"`
		SkillsChecked int      `json:"skills_checked"`
		Errors        []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	assert.Equal(t, 3, got.SkillsChecked)
	assert.Contains(t, got.Errors, "Mixed: 'name' field (mixed) doesn't match directory name")
}
