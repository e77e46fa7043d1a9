// stats.go implements the "skilld stats" command.

package skills

import (
	"github.com/jpl-au/skilld/cmd"
	"github.com/jpl-au/skilld/internal/format"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show index size and state",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s := e.svc.Stats()
			if cmd.JSON() {
				return cmd.PrintJSON(s)
			}
			return format.Stats(cmd.Out(), s)
		},
	}
}
