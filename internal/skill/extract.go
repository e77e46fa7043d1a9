// extract.go implements the content extractor.
//
// Sources are read in a fixed order and the first record for a given file
// wins, so a reference document also listed as a sub-skill keeps the
// sub-skill's name:
//
//  1. the primary body (SKILL.md), sub-skill ""
//  2. sub-skill files named in the metadata
//  3. top-level files of each reference directory, named by file stem
//  4. markdown files in scripts/, named by stem without .md/.js/.ts
//
// Anything missing is skipped. The body's absence is reported by Validate,
// not here.

package skill

import (
	"io/fs"
	"path"
	"strings"
	"unicode/utf8"
)

// Extract reads every searchable document of rec from fsys.
func Extract(fsys fs.FS, rec Record, layout Layout) []*Content {
	dir := rec.Dir
	if dir == "" {
		dir = rec.Name
	}

	var out []*Content
	seen := make(map[string]bool)
	add := func(sub, file string, text bool) {
		if seen[file] {
			return
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, file))
		if err != nil {
			return
		}
		if !text && !utf8.Valid(data) {
			return
		}
		seen[file] = true
		out = append(out, NewContent(rec.Name, sub, file, strings.ToValidUTF8(string(data), "�")))
	}

	add("", layout.BodyFile, true)

	for _, s := range rec.SubSkills {
		add(s.Name, s.File, true)
	}

	for _, ref := range layout.ReferenceDirs {
		for _, name := range regularFiles(fsys, path.Join(dir, ref)) {
			add(stem(name), path.Join(ref, name), false)
		}
	}

	if layout.ScriptsDir != "" {
		for _, name := range regularFiles(fsys, path.Join(dir, layout.ScriptsDir)) {
			if !strings.HasSuffix(name, ".md") {
				continue
			}
			add(scriptStem(name), path.Join(layout.ScriptsDir, name), true)
		}
	}
	return out
}

// HasReferences reports whether the skill has a non-empty reference directory.
func HasReferences(fsys fs.FS, rec Record, layout Layout) bool {
	dir := rec.Dir
	if dir == "" {
		dir = rec.Name
	}
	for _, ref := range layout.ReferenceDirs {
		if len(regularFiles(fsys, path.Join(dir, ref))) > 0 {
			return true
		}
	}
	return false
}

// regularFiles lists the non-hidden regular files directly inside dir,
// sorted by name. A missing directory yields nothing.
func regularFiles(fsys fs.FS, dir string) []string {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") || !e.Type().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}

func stem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// scriptStem names a script document: "deploy.ts.md" becomes "deploy".
func scriptStem(name string) string {
	s := strings.TrimSuffix(name, ".md")
	for _, ext := range []string{".js", ".ts"} {
		s = strings.TrimSuffix(s, ext)
	}
	return s
}
