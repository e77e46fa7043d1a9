// Package all imports all built-in skilld extensions.
// Import this package to register all built-in commands.
package all

import (
	_ "github.com/jpl-au/skilld/extension/core"
	_ "github.com/jpl-au/skilld/extension/search"
	_ "github.com/jpl-au/skilld/extension/skills"
)
