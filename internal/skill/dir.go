// dir.go provides the filesystem collaborator for the skills root.
//
// Security: all access goes through os.OpenRoot, so neither ".." segments
// nor symlinks pointing outside the skills directory can escape it. The
// root is reopened for every operation, which means a skills directory that
// is deleted and recreated is picked up by the next rebuild rather than
// leaving a stale handle behind.

package skill

import (
	"io/fs"
	"os"
)

// Dir is a skills root on the local filesystem. It implements fs.FS,
// fs.ReadDirFS, fs.ReadFileFS and fs.StatFS.
type Dir string

func (d Dir) with(op, name string, fn func(fs.FS) error) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	root, err := os.OpenRoot(string(d))
	if err != nil {
		return err
	}
	defer root.Close()
	return fn(root.FS())
}

// Open opens the named file. The file stays usable after the root handle
// used to open it is closed.
func (d Dir) Open(name string) (fs.File, error) {
	var f fs.File
	err := d.with("open", name, func(fsys fs.FS) error {
		var err error
		f, err = fsys.Open(name)
		return err
	})
	return f, err
}

// ReadDir reads the named directory, returning entries sorted by name.
func (d Dir) ReadDir(name string) ([]fs.DirEntry, error) {
	var entries []fs.DirEntry
	err := d.with("readdir", name, func(fsys fs.FS) error {
		var err error
		entries, err = fs.ReadDir(fsys, name)
		return err
	})
	return entries, err
}

// ReadFile reads the named file.
func (d Dir) ReadFile(name string) ([]byte, error) {
	var data []byte
	err := d.with("read", name, func(fsys fs.FS) error {
		var err error
		data, err = fs.ReadFile(fsys, name)
		return err
	})
	return data, err
}

// Stat returns file info for the named file.
func (d Dir) Stat(name string) (fs.FileInfo, error) {
	var info fs.FileInfo
	err := d.with("stat", name, func(fsys fs.FS) error {
		var err error
		info, err = fs.Stat(fsys, name)
		return err
	})
	return info, err
}

// IsDir reports whether name exists in fsys and is a directory.
func IsDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

// Exists reports whether name exists in fsys.
func Exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}
