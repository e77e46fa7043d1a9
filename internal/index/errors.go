package index

import "fmt"

// ScanError reports that the skills root could not be listed. It is the
// only failure that prevents a rebuild; the previously published snapshot
// stays in place.
type ScanError struct {
	Root string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scanning %s: %v", e.Root, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
