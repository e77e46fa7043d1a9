package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func lastRow(t *testing.T, query string, dest ...any) {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.QueryRow(query).Scan(dest...))
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open creates database", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetProject("/srv/skills")

		Log(Entry{
			Source:     "mcp:get_sub_skill",
			Author:     "mcp",
			Action:     "read",
			Skill:      "forms",
			SubSkill:   "react",
			Generation: 4,
			Success:    true,
		})

		var source, skill, sub, project string
		var gen, success int
		lastRow(t, "SELECT source, skill, sub_skill, generation, success, project FROM log ORDER BY id DESC LIMIT 1",
			&source, &skill, &sub, &gen, &success, &project)
		assert.Equal(t, "mcp:get_sub_skill", source)
		assert.Equal(t, "forms", skill)
		assert.Equal(t, "react", sub)
		assert.Equal(t, 4, gen)
		assert.Equal(t, 1, success)
		assert.Equal(t, hash("/srv/skills"), project)
	})

	t.Run("without logger is noop", func(t *testing.T) {
		Close()
		Log(Entry{Source: "cli:list", Action: "list", Success: true})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		require.NoError(t, Open())
		require.NoError(t, Open())
		Close()
	})
}

func TestBuilder(t *testing.T) {
	useTempDB(t)

	t.Run("success with detail", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("cli:search", "search").
			Author("tester").
			Detail("query", "delta compression").
			Detail("count", 3).
			Write(nil)

		var source, author, action, detail string
		var success int
		lastRow(t, "SELECT source, author, action, detail, success FROM log ORDER BY id DESC LIMIT 1",
			&source, &author, &action, &detail, &success)
		assert.Equal(t, "cli:search", source)
		assert.Equal(t, "tester", author)
		assert.Equal(t, "search", action)
		assert.Contains(t, detail, "delta compression")
		assert.Contains(t, detail, `"count":3`)
		assert.Equal(t, 1, success)
	})

	t.Run("failure", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("mcp:get_skill", "read").Skill("missing").Write(errors.New("skill not found"))

		var success int
		var errMsg string
		var gen sql.NullInt64
		lastRow(t, "SELECT success, error, generation FROM log ORDER BY id DESC LIMIT 1", &success, &errMsg, &gen)
		assert.Equal(t, 0, success)
		assert.Equal(t, "skill not found", errMsg)
		assert.False(t, gen.Valid)
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/skills")
	assert.Equal(t, h1, hash("/home/user/skills"))
	assert.NotEqual(t, h1, hash("/home/user/other"))
	assert.Len(t, h1, 16)
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, filepath.Join(home, ".skilld", "log", "skilld-log.db"), DBPath())
}
