package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	Domain    string  `json:"domain"`
	SubSkill  string  `json:"sub_skill"`
	File      string  `json:"file"`
	Score     float64 `json:"score"`
	MatchType string  `json:"match_type"`
	Snippet   string  `json:"snippet"`
}

func TestSearch_Skills(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("search", "forms")
	env.contains(out, "1.000  name         forms")
}

func TestSearch_Trigger(t *testing.T) {
	env := newTestEnv(t)

	var got []result
	require.NoError(t, json.Unmarshal([]byte(env.runStdout("search", "useform", "-o", "json")), &got))
	require.Len(t, got, 1)
	assert.Equal(t, result{Domain: "forms", SubSkill: "react", Score: 0.9, MatchType: "triggers"}, got[0])
}

func TestSearch_Content(t *testing.T) {
	env := newTestEnv(t)

	var got []result
	require.NoError(t, json.Unmarshal([]byte(env.runStdout("search", "--content", "delta", "compression", "-o", "json")), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "forms", got[0].Domain)
	assert.Equal(t, "SKILL.md", got[0].File)
	assert.Equal(t, 1.2, got[0].Score)
	assert.Contains(t, got[0].Snippet, "delta compression")
}

func TestSearch_Limit(t *testing.T) {
	env := newTestEnv(t)

	var got []result
	require.NoError(t, json.Unmarshal([]byte(env.runStdout("search", "--content", "the forms validation", "-n", "1", "-o", "json")), &got))
	assert.Len(t, got, 1)
}

func TestSearch_NoResults(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "[]", strings.TrimSpace(env.runStdout("search", "kubernetes", "-o", "json")))
}

func TestSearch_TooLong(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("search", strings.Repeat("x", 1001))
	assert.Error(t, err)
	env.contains(out, "query too long")
}
