// show.go implements the "skilld show" command.

package skills

import (
	"fmt"

	"github.com/jpl-au/skilld/cmd"
	"github.com/jpl-au/skilld/extension"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <name> [sub-skill]",
		Short: "Print a skill or sub-skill document",
		Long: `Print the SKILL.md of a skill, or the document of one of its sub-skills.

  skilld show forms          # forms/SKILL.md
  skilld show forms react    # the react sub-skill of forms

Output is rendered on a terminal; use --raw for plain markdown.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runShow,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print raw markdown even on a terminal")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	name := args[0]

	if len(args) == 2 {
		sub := args[1]
		sc, err := e.svc.ReadSubSkill(name, sub)
		log.Event("cli:show", "read").Author(cmd.Author()).Skill(name).SubSkill(sub).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("show %s %s: %w", name, sub, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(sc)
		}
		return cmd.Render(sc.Content, raw)
	}

	sc, err := e.svc.ReadSkill(name)
	log.Event("cli:show", "read").Author(cmd.Author()).Skill(name).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show %s: %w", name, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(sc)
	}
	return cmd.Render(sc.Content, raw)
}
