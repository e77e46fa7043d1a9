// errors.go defines sentinel errors for validation failures.
//
// Each error represents a distinct metadata validation category and is
// wrapped with fmt.Errorf by the validation functions, so callers can use
// errors.Is() to classify a failure while still getting a detailed message.

package validate

import "errors"

var (
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidTag         = errors.New("invalid tag")
	ErrInvalidSubSkill    = errors.New("invalid sub-skill")
)
