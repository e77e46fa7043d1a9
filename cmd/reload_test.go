package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReload(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("reload")
	env.contains(out, "indexed 2 skills, 4 content files")
}

func TestReload_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.write("skills/broken/_meta.json", "not json")

	var got struct {
		SkillCount       int      `json:"skill_count"`
		ContentFileCount int      `json:"content_files_indexed"`
		Errors           []string `json:"validation_errors"`
		Generation       uint64   `json:"generation"`
	}
	require.NoError(t, json.Unmarshal([]byte(env.runStdout("reload", "-o", "json")), &got))
	assert.Equal(t, 2, got.SkillCount)
	assert.Equal(t, 4, got.ContentFileCount)
	assert.Len(t, got.Errors, 1)
	assert.Equal(t, uint64(2), got.Generation)
}

func TestReload_Skill(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("reload", "auth")
	env.contains(out, "indexed 2 skills")

	_, err := env.runErr("reload", "../etc")
	assert.Error(t, err)
}

func TestDrift(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("drift", "forms")
	env.contains(out, "forms: index is up to date")

	_, err := env.runErr("drift", "nope")
	assert.Error(t, err)
}
