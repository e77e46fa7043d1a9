// guide.go implements the "skilld guide" command and the guide MCP tool.
//
// Guides are embedded in the binary. cmd.Render renders them on a terminal
// and leaves piped output as raw markdown so it can be fed to an LLM.

package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/skilld/cmd"
	"github.com/jpl-au/skilld/extension"
	"github.com/jpl-au/skilld/guide"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the skilld usage guide",
		Long: `Outputs the skilld guide for LLMs and humans.

  skilld guide           # main guide
  skilld guide layout    # how a skills directory is laid out
  skilld guide search    # how results are ranked`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			log.Event("cli:guide", "read").Author(cmd.Author()).Detail("topic", name).Write(err)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			raw, _ := c.Flags().GetBool(extension.FlagRaw)
			return cmd.Render(content, raw)
		},
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print raw markdown even on a terminal")
	return c
}

func guideTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("guide",
			mcp.WithDescription("Get usage documentation for skilld: skill layout, search ranking, tools"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g. 'layout', 'search') or empty for the main guide")),
		),
		Handler: guideHandler,
	}
}

func guideHandler(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	extCtx.Service().Track("guide")

	topic := ""
	if v, err := req.RequireString("topic"); err == nil {
		topic = v
	}

	content, err := guide.Get(topic)

	log.Event("mcp:guide", "read").Author("mcp").Detail("topic", topic).Write(err)

	if err != nil {
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return mcp.NewToolResultError(fmt.Sprintf("guide %q not found. Available: %s", topic, strings.Join(topics, ", "))), nil
	}
	return mcp.NewToolResultText(content), nil
}
