package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := &Config{}
	assert.Equal(t, "skills", c.SkillsDir())
	assert.False(t, c.StrictNames())
	assert.True(t, c.WatchEnabled())
	assert.Equal(t, 500*time.Millisecond, c.Debounce())
	assert.Equal(t, 3, c.MaxDepth())
	assert.Equal(t, 5, c.SkillLimit())
	assert.Equal(t, 10, c.ContentLimit())
	assert.Equal(t, 100, c.MaxLimit())
	assert.Equal(t, 1000, c.MaxQueryLength())
	assert.Equal(t, 100, c.MaxQueryWords())

	for _, key := range ValidKeys() {
		assert.False(t, c.IsSet(key), key)
	}
}

func TestSetGet(t *testing.T) {
	c := &Config{}

	require.NoError(t, c.Set("skills.dir", "/srv/skills"))
	require.NoError(t, c.Set("skills.strict_names", "TRUE"))
	require.NoError(t, c.Set("watch.enabled", "false"))
	require.NoError(t, c.Set("watch.debounce_ms", "250"))

	assert.Equal(t, "/srv/skills", c.SkillsDir())
	assert.True(t, c.StrictNames())
	assert.False(t, c.WatchEnabled())
	assert.Equal(t, 250*time.Millisecond, c.Debounce())
	assert.True(t, c.IsSet("watch.debounce_ms"))

	v, err := c.Get("watch.debounce_ms")
	require.NoError(t, err)
	assert.Equal(t, "250", v)

	all := c.All()
	assert.Len(t, all, len(ValidKeys()))
	assert.Equal(t, "false", all["watch.enabled"])
	assert.Equal(t, "100", all["search.max_limit"])
}

func TestSet_Invalid(t *testing.T) {
	c := &Config{}
	assert.ErrorIs(t, c.Set("watch.debounce_ms", "5"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("watch.max_depth", "deep"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("watch.enabled", "yes"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("skills.dir", " "), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("nope", "1"), ErrUnknownKey)

	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.False(t, IsValidKey("nope"))
}

func TestValidate(t *testing.T) {
	n := 0
	c := &Config{Watch: Watch{MaxDepth: &n}}
	assert.ErrorIs(t, c.Validate(), ErrInvalidValue)

	n = 4
	assert.NoError(t, c.Validate())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c := &Config{}
	require.NoError(t, c.Set("skills.dir", "my-skills"))
	require.NoError(t, c.Set("search.skill_limit", "7"))
	require.NoError(t, c.saveToPath(path))

	loaded, err := loadPath(path, ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, "my-skills", loaded.SkillsDir())
	assert.Equal(t, 7, loaded.SkillLimit())
	assert.Equal(t, ScopeLocal, loaded.Scope())
	assert.False(t, loaded.IsSet("watch.enabled"))
}

func TestLoad_Missing(t *testing.T) {
	c, err := loadPath(filepath.Join(t.TempDir(), "config.yaml"), ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, "skills", c.SkillsDir())
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("skills: [unclosed"), 0o644))
	_, err := loadPath(bad, ScopeLocal)
	assert.ErrorContains(t, err, "malformed config file")

	bounds := filepath.Join(dir, "bounds.yaml")
	require.NoError(t, os.WriteFile(bounds, []byte("watch:\n  debounce_ms: 1\n"), 0o644))
	_, err = loadPath(bounds, ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
