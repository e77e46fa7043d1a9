// flags.go defines constants for CLI flag names shared by extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "no-colour" -> FlagNoColour).

package extension

const (
	// Boolean flags

	FlagContent  = "content"   // Search document text instead of metadata
	FlagErrors   = "errors"    // Include validation errors in output
	FlagLocal    = "local"     // Use local scope
	FlagNoColour = "no-colour" // Disable ANSI colour in diffs
	FlagRaw      = "raw"       // Raw output without rendering
	FlagWatch    = "watch"     // Keep the watcher running (serve)

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
