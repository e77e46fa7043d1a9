// list.go implements the "skilld list" command.

package skills

import (
	"fmt"

	"github.com/jpl-au/skilld/cmd"
	"github.com/jpl-au/skilld/extension"
	"github.com/jpl-au/skilld/internal/format"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newListCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List indexed skills",
		Long: `List every indexed skill with its description and sub-skill count.

Use --tree to show sub-skills beneath each skill, and --errors to include
validation errors from the same build.`,
		Args: cobra.NoArgs,
		RunE: e.runList,
	}
	c.Flags().BoolP("tree", "t", false, "Display sub-skills as a tree")
	c.Flags().BoolP(extension.FlagErrors, "e", false, "Show validation errors")
	return c
}

func (e *Extension) runList(c *cobra.Command, _ []string) error {
	tree, _ := c.Flags().GetBool("tree")
	showErrors, _ := c.Flags().GetBool(extension.FlagErrors)

	skills := e.svc.ListSkills()
	idx := e.svc.SkillIndex()

	log.Event("cli:list", "list").Author(cmd.Author()).Generation(idx.Generation).Detail("count", len(skills)).Write(nil)

	if cmd.JSON() {
		if showErrors {
			return cmd.PrintJSON(map[string]any{
				"skills":            skills,
				"validation_errors": idx.ValidationErrors,
			})
		}
		return cmd.PrintJSON(skills)
	}

	var err error
	if tree {
		err = format.Tree(cmd.Out(), skills)
	} else {
		err = format.List(cmd.Out(), skills)
	}
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if showErrors {
		return format.Problems(cmd.Out(), "error", idx.ValidationErrors)
	}
	return nil
}
