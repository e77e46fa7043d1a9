// Package extension provides the plugin architecture for skilld. Extensions
// group related CLI commands and MCP tools and register at init time, so a
// new command set never has to touch the root command or the server.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for skilld extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context before their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Indexless is an optional interface for extensions with commands that do
// not need a loaded index. Commands returned by NoIndexCommands skip the
// initial reload in PersistentPreRunE.
//
// serve builds its own service, and guide, config and version never read
// the skills directory at all.
type Indexless interface {
	NoIndexCommands() []string
}
