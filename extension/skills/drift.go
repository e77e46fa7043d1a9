// drift.go implements the "skilld drift" command.

package skills

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/skilld/cmd"
	"github.com/jpl-au/skilld/extension"
	"github.com/jpl-au/skilld/internal/diff"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newDriftCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "drift <name>",
		Short: "Show how a skill on disk differs from the index",
		Long: `Compare a skill's metadata and documents on disk with what the index holds.

The index stores lower-cased text, so only changes that affect search results
are reported. Colour is used on a terminal unless --no-colour is given.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runDrift,
	}
	c.Flags().Bool(extension.FlagNoColour, false, "Disable coloured output")
	return c
}

func (e *Extension) runDrift(c *cobra.Command, args []string) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	name := args[0]

	noColour, _ := c.Flags().GetBool(extension.FlagNoColour)
	colour := !noColour && cmd.Out() == io.Writer(os.Stdout) && term.IsTerminal(int(os.Stdout.Fd()))

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	report, err := diff.Run(ctx, w, e.svc, name, colour)

	log.Event("cli:drift", "diff").Author(cmd.Author()).Skill(name).Detail("stale", report.Stale).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("drift %s: %w", name, err))
	}
	return cmd.PrintJSON(report)
}
