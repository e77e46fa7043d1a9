/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Render writes markdown to the output writer. On a terminal, and unless
// raw is set, it is rendered with glamour; otherwise it is written as is.
// Under -o json the content is wrapped in {"content": ...}.
func Render(content string, raw bool) error {
	if JSON() {
		return PrintJSON(map[string]string{"content": content})
	}

	if !raw && out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, err := glamour.Render(content, "dark")
		if err == nil {
			fmt.Fprint(out, rendered)
			return nil
		}
	}

	fmt.Fprint(out, content)
	return nil
}
