// validate.go implements the "skilld validate" command. It exits non-zero
// when any skill has errors, so it can gate a commit or CI job.

package skills

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/skilld/cmd"
	"github.com/jpl-au/skilld/internal/format"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/spf13/cobra"
)

// ErrInvalid is returned when validation finds errors.
var ErrInvalid = errors.New("validation failed")

func (e *Extension) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every skill for errors and warnings",
		Long: `Build the skills directory afresh, without touching the served index, and
report errors (unparseable metadata, missing SKILL.md, missing sub-skill files)
and warnings (no tags, no sub-skills).`,
		Args: cobra.NoArgs,
		RunE: e.runValidate,
	}
}

func (e *Extension) runValidate(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := e.svc.Validate(ctx)

	log.Event("cli:validate", "validate").Author(cmd.Author()).
		Detail("checked", report.SkillsChecked).
		Detail("errors", len(report.Errors)).
		Detail("warnings", len(report.Warnings)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("validate: %w", err))
	}
	if cmd.JSON() {
		if err := cmd.PrintJSON(report); err != nil {
			return err
		}
	} else if err := format.Validation(cmd.Out(), report); err != nil {
		return err
	}

	if !report.Valid {
		c.SilenceUsage = true
		if cmd.JSON() {
			c.SilenceErrors = true
		}
		return fmt.Errorf("%w: %d errors", ErrInvalid, len(report.Errors))
	}
	return nil
}
