// reload.go implements the "skilld reload" command.
//
// The CLI already loads the index before every command, so reload is
// mostly useful under -o json to capture the build summary, or with a
// skill argument to check that one directory re-indexes cleanly.

package skills

import (
	"context"
	"fmt"

	"github.com/jpl-au/skilld/cmd"
	"github.com/jpl-au/skilld/internal/format"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/jpl-au/skilld/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload [skill]",
		Short: "Rebuild the index and report validation errors",
		Args:  cobra.MaximumNArgs(1),
		RunE:  e.runReload,
	}
}

func (e *Extension) runReload(c *cobra.Command, args []string) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		res service.ReloadResult
		err error
		dir string
	)
	if len(args) == 1 {
		dir = args[0]
		res, err = e.svc.UpdateSkill(ctx, dir)
	} else {
		res, err = e.svc.Reload(ctx)
	}

	log.Event("cli:reload", "reload").Author(cmd.Author()).Skill(dir).Generation(res.Generation).Detail("errors", len(res.Errors)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("reload: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	return format.Reload(cmd.Out(), res)
}
