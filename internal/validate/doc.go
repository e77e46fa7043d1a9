// Package validate provides input validation for skill metadata.
//
// This package enforces the metadata rules at the boundary between the
// filesystem and the index. Each validation function returns nil on success
// or a descriptive error on failure.
//
// # Validation Functions
//
// Name validates skill and sub-skill identifiers.
// Description validates the required human-readable summary.
// Tag validates tag strings (labels, not identifiers).
// SubSkillFile validates the relative file a sub-skill points at.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrInvalidName, ErrInvalidTag, etc.). Use errors.Is() for type-safe
// error checking:
//
//	if errors.Is(err, validate.ErrInvalidName) {
//	    // handle invalid name
//	}
package validate
