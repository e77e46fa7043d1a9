// The cmd/ package holds CLI integration tests that exercise the full
// stack: command parsing, the skills service, the index and the real
// filesystem. Each test builds a skills directory under t.TempDir() and runs
// the compiled binary against it with HOME pointed at another temp dir, so
// the user's own config and audit log are never touched.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the skilld binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "skilld-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "skilld"
		if os.PathSeparator == '\\' {
			binaryName = "skilld.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory; skills live in dir/skills
	home   string
	binary string
}

// newTestEnv creates a working directory with the standard skills fixture.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}

	env.write("skills/forms/_meta.json", `{
  "name": "forms",
  "description": "Form handling patterns",
  "tags": ["react", "validation"],
  "sub_skills": [{"name": "react", "file": "react/SKILL.md", "triggers": ["useForm"]}]
}`)
	env.write("skills/forms/SKILL.md", "# Forms\n\nUse Delta Compression for large forms.\n")
	env.write("skills/forms/react/SKILL.md", "## React Forms\n\nThe useForm hook.\n")
	env.write("skills/forms/references/zod.md", "# Zod\n\nSchema validation.\n")
	env.write("skills/auth/_meta.json", `{"name": "auth", "description": "Authentication flows"}`)
	env.write("skills/auth/SKILL.md", "# Auth\n\nSessions and tokens.\n")

	return env
}

// write creates a file relative to the working directory.
func (e *testEnv) write(rel, content string) {
	e.t.Helper()
	p := filepath.Join(e.dir, filepath.FromSlash(rel))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
}

// remove deletes a file or directory relative to the working directory.
func (e *testEnv) remove(rel string) {
	e.t.Helper()
	require.NoError(e.t, os.RemoveAll(filepath.Join(e.dir, filepath.FromSlash(rel))))
}

// run executes skilld with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("skilld %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes skilld and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runStdout executes skilld and returns stdout only, for JSON decoding.
func (e *testEnv) runStdout(args ...string) string {
	e.t.Helper()
	out, err := e.runStdoutErr(args...)
	if err != nil {
		e.t.Fatalf("skilld %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdoutErr executes skilld and returns stdout and any error.
func (e *testEnv) runStdoutErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	out, err := cmd.Output()
	return string(out), err
}

func (e *testEnv) environ() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "HOME=") || strings.HasPrefix(kv, EnvDir+"=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "HOME="+e.home)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain a string.
func (e *testEnv) notContains(output, unexpected string) {
	e.t.Helper()
	assert.NotContains(e.t, output, unexpected)
}
