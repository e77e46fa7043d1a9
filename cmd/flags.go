/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than
// the variables, so they never couple to cobra internals.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jpl-au/skilld/internal/config"
	"github.com/spf13/cobra"
)

// EnvDir names the environment variable that overrides skills.dir.
const EnvDir = "SKILLD_DIR"

var validOutputFormats = []string{"json"}

var (
	output string
	dir    string
)

// out is the output writer for commands. Tests can replace it to capture
// output.
var out io.Writer = os.Stdout

var (
	cfgOnce sync.Once
	cfg     *config.Config
	cfgErr  error
)

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// Output returns the output format flag value.
func Output() string { return output }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// Config loads the configuration once per process.
func Config() (*config.Config, error) {
	cfgOnce.Do(func() {
		cfg, cfgErr = config.Load()
		if cfgErr != nil {
			cfgErr = fmt.Errorf("config load: %w", cfgErr)
		}
	})
	return cfg, cfgErr
}

// Root returns the skills directory.
// Priority: --dir flag > SKILLD_DIR env var > skills.dir config > "skills".
func Root() string {
	if dir != "" {
		return dir
	}
	if env := os.Getenv(EnvDir); env != "" {
		return env
	}
	if c, err := Config(); err == nil {
		return c.SkillsDir()
	}
	return config.DefaultSkillsDir
}

// Author returns the configured author for audit entries, or "cli".
func Author() string {
	if c, err := Config(); err == nil && c.Author.Name != "" {
		return c.Author.Name
	}
	return "cli"
}

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if the error was printed (suppressing cobra's own output),
// or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Skills directory (overrides "+EnvDir+" and skills.dir)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
