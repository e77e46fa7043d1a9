package watch

import (
	"path"
	"slices"
	"strings"

	"github.com/jpl-au/skilld/internal/skill"
)

// IgnoredDirs never contain skill content and are skipped by the watcher.
var IgnoredDirs = []string{".git", "node_modules", "__pycache__", "vendor", "dist", "build", "target"}

// Ignored reports whether a slash path relative to the root passes through
// a hidden or ignored directory, or is itself one.
func Ignored(rel string) bool {
	for seg := range strings.SplitSeq(rel, "/") {
		if seg == "" || seg == "." {
			continue
		}
		if strings.HasPrefix(seg, ".") || slices.Contains(IgnoredDirs, seg) {
			return true
		}
	}
	return false
}

// Relevant reports whether ev can change the index: a metadata or body
// file, any markdown file, or a directory appearing or disappearing.
func Relevant(ev Event) bool {
	if ev.Path == "" || Ignored(ev.Path) {
		return false
	}
	if ev.Op == OpChmod {
		return false
	}
	if ev.Dir {
		return ev.Op&(OpCreate|OpRemove|OpRename) != 0
	}

	base := path.Base(ev.Path)
	if base == skill.MetaFile || base == skill.BodyFile {
		return true
	}
	switch strings.ToLower(path.Ext(base)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
