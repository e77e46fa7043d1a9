// query.go implements the "skilld search" command.
//
// Metadata search (the default) ranks skills and sub-skills by name, tags,
// description and triggers. --content ranks documents by their text and
// prints a snippet beneath each hit.

package search

import (
	"fmt"
	"strings"

	"github.com/jpl-au/skilld/cmd"
	"github.com/jpl-au/skilld/extension"
	"github.com/jpl-au/skilld/internal/format"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/jpl-au/skilld/internal/search"
	"github.com/spf13/cobra"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query>...",
		Short: "Rank skills by metadata or document text",
		Long: `Rank skills by metadata, or documents by text with --content.

  skilld search forms
  skilld search --content "delta compression" -n 3

Multiple arguments are joined with spaces. A limit of 0 uses
search.skill_limit or search.content_limit from config.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().BoolP(extension.FlagContent, "c", false, "Search document text")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum results")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	content, _ := c.Flags().GetBool(extension.FlagContent)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)

	var (
		results []search.Result
		err     error
		kind    = "skills"
	)
	if content {
		kind = "content"
		results, err = e.svc.SearchContent(query, limit)
	} else {
		results, err = e.svc.SearchSkills(query, limit)
	}

	log.Event("cli:search", "search").
		Author(cmd.Author()).
		Detail("kind", kind).
		Detail("query", query).
		Detail("count", len(results)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", query, err))
	}

	if cmd.JSON() {
		if results == nil {
			results = []search.Result{}
		}
		return cmd.PrintJSON(results)
	}
	return format.Results(cmd.Out(), results)
}
