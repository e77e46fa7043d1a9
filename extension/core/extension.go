// Package core provides the core extension for skilld.
// It registers commands: serve, config, guide, version.
package core

import (
	"github.com/jpl-au/skilld/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance.
var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Indexless = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Commands returns the commands that do not operate on skills directly.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newServeCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools exposes the embedded guide to MCP clients.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{guideTool()}
}

// NoIndexCommands returns every core command.
// serve: builds and owns its own service for the life of the server.
// config, guide, version: never read the skills directory.
func (e *Extension) NoIndexCommands() []string {
	return []string{"serve", "config", "guide", "version"}
}
