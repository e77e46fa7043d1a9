// subskill.go implements validation of sub-skill entries.
//
// Sub-skill files are resolved relative to the skill directory. The file
// must stay inside that directory: absolute paths, drive letters and ".."
// segments are rejected before anything touches the filesystem.

package validate

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// SubSkillName validates a sub-skill name. Sub-skill names are labels used
// in lookups, so only emptiness and null bytes are rejected.
func SubSkillName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidSubSkill)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: null byte in name", ErrInvalidSubSkill)
	}
	return nil
}

// SubSkillFile validates the file a sub-skill points at and returns it in
// clean, slash-separated form relative to the skill directory.
func SubSkillFile(file string) (string, error) {
	if strings.TrimSpace(file) == "" {
		return "", fmt.Errorf("%w: file cannot be empty", ErrInvalidSubSkill)
	}
	if strings.ContainsRune(file, 0) {
		return "", fmt.Errorf("%w: null byte in file", ErrInvalidSubSkill)
	}

	f := strings.ReplaceAll(file, "\\", "/")
	if strings.HasPrefix(f, "/") || (len(f) >= 2 && f[1] == ':') {
		return "", fmt.Errorf("%w: file cannot be absolute: %s", ErrInvalidSubSkill, file)
	}
	for _, seg := range strings.Split(f, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: file cannot contain '..': %s", ErrInvalidSubSkill, file)
		}
	}

	clean := path.Clean(f)
	if !fs.ValidPath(clean) || clean == "." {
		return "", fmt.Errorf("%w: invalid file path: %s", ErrInvalidSubSkill, file)
	}
	return clean, nil
}
