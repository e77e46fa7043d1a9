// Package skills provides the skills extension: commands that read the
// index and the skills behind it.
// Registers commands: list, show, reload, validate, drift, stats.
package skills

import (
	"github.com/jpl-au/skilld/extension"
	"github.com/jpl-au/skilld/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the skills extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "skills".
func (e *Extension) Name() string { return "skills" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the skill browsing and maintenance commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newListCmd(),
		e.newShowCmd(),
		e.newReloadCmd(),
		e.newValidateCmd(),
		e.newDriftCmd(),
		e.newStatsCmd(),
	}
}

// MCPTools returns nil; the skill tools are registered by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
