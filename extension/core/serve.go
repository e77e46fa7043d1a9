// serve.go implements the "skilld serve" command.
//
// serve is an indexless command: it builds its own service inside
// mcp.Serve, which keeps the watcher running and blocks until the client
// disconnects.

package core

import (
	"github.com/jpl-au/skilld/cmd"
	"github.com/jpl-au/skilld/extension"
	"github.com/jpl-au/skilld/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

The skills directory is resolved from --dir, then SKILLD_DIR, then skills.dir
in config:
  skilld serve --dir ~/skills

The index is rebuilt automatically when files change unless watch.enabled is
false or --watch=false is given.`,
		RunE: runServe,
	}
	c.Flags().Bool(extension.FlagWatch, true, "Rebuild the index when skill files change")
	return c
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, err := cmd.Config()
	if err != nil {
		return err
	}
	if watch, _ := c.Flags().GetBool(extension.FlagWatch); !watch {
		off := false
		cfg.Watch.Enabled = &off
	}
	return mcp.Serve(cmd.Root(), cfg)
}
