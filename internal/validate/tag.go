// tag.go implements tag string validation.
//
// Tags are free-form labels, so only clearly broken inputs (empty, null
// bytes) are rejected.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a tag string.
//
// Validation rules:
//   - Empty tags rejected (meaningless label)
//   - Null bytes rejected
func Tag(t string) error {
	if strings.TrimSpace(t) == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	return nil
}
