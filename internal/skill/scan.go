// scan.go implements the scanner that turns a skills root into records.
//
// The scanner never fails because of a single skill. Each problem becomes a
// "<dir>: <reason>" string in ScanResult.Errors and, depending on severity,
// the directory is either excluded or indexed anyway:
//
//   - missing, unreadable or invalid metadata: excluded
//   - metadata name differs from the directory: included (excluded with
//     Layout.StrictNames)
//   - a sub-skill file missing on disk: included
//   - two directories claiming one name: the directory matching the name
//     keeps it, otherwise the first in directory order; the other is
//     excluded
//
// Only failing to list the root itself is returned as an error.

package skill

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// ScanResult holds the records found under a root and the validation errors
// raised while reading them.
type ScanResult struct {
	Records []Record
	Errors  []string
}

// Scan reads every skill directory directly under the root of fsys.
func Scan(fsys fs.FS, layout Layout) (ScanResult, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return ScanResult{}, err
	}

	var res ScanResult
	owner := make(map[string]int)
	for _, e := range entries {
		if !Candidate(fsys, e) {
			continue
		}
		dir := e.Name()
		rec, errs, ok := ScanDir(fsys, dir, layout)
		res.Errors = append(res.Errors, errs...)
		if !ok {
			continue
		}
		if i, dup := owner[rec.Name]; dup {
			prev := res.Records[i]
			if Displaces(rec, prev) {
				res.Errors = append(res.Errors, DuplicateError(prev.Dir, rec.Name, dir))
				res.Records[i] = rec
				continue
			}
			res.Errors = append(res.Errors, DuplicateError(dir, rec.Name, prev.Dir))
			continue
		}
		owner[rec.Name] = len(res.Records)
		res.Records = append(res.Records, rec)
	}

	slices.SortFunc(res.Records, func(a, b Record) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res, nil
}

// Displaces reports whether rec takes a name already held by prev: only a
// record whose directory matches the name can push out one that does not.
func Displaces(rec, prev Record) bool {
	return rec.Dir == rec.Name && prev.Dir != prev.Name
}

// DuplicateError formats the error for dir losing name to owner.
func DuplicateError(dir, name, owner string) string {
	return fmt.Sprintf("%s: duplicate skill name '%s' (already defined in %s)", dir, name, owner)
}

// Candidate reports whether a root entry should be treated as a skill
// directory. Hidden and underscore-prefixed names are skipped, and symlinks
// are followed so linked skill directories are indexed.
func Candidate(fsys fs.FS, e fs.DirEntry) bool {
	name := e.Name()
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return false
	}
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink != 0 {
		return IsDir(fsys, name)
	}
	return false
}

// ScanDir reads and validates the metadata of a single skill directory.
// ok is false when the directory must be left out of the index; errs lists
// every problem found either way.
func ScanDir(fsys fs.FS, dir string, layout Layout) (rec Record, errs []string, ok bool) {
	fail := func(format string, args ...any) {
		errs = append(errs, dir+": "+fmt.Sprintf(format, args...))
	}

	data, err := fs.ReadFile(fsys, path.Join(dir, layout.MetaFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fail("missing %s", layout.MetaFile)
		} else {
			fail("cannot read %s: %v", layout.MetaFile, err)
		}
		return Record{}, errs, false
	}

	rec, err = ParseMeta(data)
	if err != nil {
		fail("%v", err)
		return Record{}, errs, false
	}
	rec.Dir = dir

	if rec.Name != dir {
		fail("'name' field (%s) doesn't match directory name", rec.Name)
		if layout.StrictNames {
			return Record{}, errs, false
		}
	}

	for _, s := range rec.SubSkills {
		if !Exists(fsys, path.Join(dir, s.File)) {
			fail("sub-skill '%s' file not found: %s", s.Name, s.File)
		}
	}
	return rec, errs, true
}
