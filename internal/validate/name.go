// name.go implements skill name and description validation.

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxNameLen is the longest accepted skill name in bytes.
const MaxNameLen = 50

var namePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Name validates a skill name.
//
// Validation rules:
//   - Empty names rejected
//   - At most MaxNameLen bytes
//   - Lowercase alphanumeric and hyphens, no leading or trailing hyphen
func Name(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: name must be %d characters or less, got %d", ErrInvalidName, MaxNameLen, len(name))
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: name must be lowercase alphanumeric with hyphens, got %q", ErrInvalidName, name)
	}
	return nil
}

// SafeName reports whether name can be used to address a skill directory.
// Looser than Name: lookups accept mixed case and underscores so that
// directories created by hand remain reachable, but never separators or dots.
func SafeName(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// Description validates a skill description.
func Description(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidDescription)
	}
	return nil
}
