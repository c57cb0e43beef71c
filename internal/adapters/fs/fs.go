// Package fs provides filesystem adapters for reading package manifests.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// OSFS implements ports.FileSystem using the operating system.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- manifest paths are computed by the resolver
	return os.ReadFile(path)
}

// MapFSAdapter adapts an fs.FS (typically fstest.MapFS) to ports.FileSystem,
// mounting it at a simulated absolute root.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// NewMapFSAdapter creates a new MapFSAdapter with the given root path and filesystem.
func NewMapFSAdapter(root string, fsys fs.FS) *MapFSAdapter {
	return &MapFSAdapter{
		FS:   fsys,
		Root: filepath.Clean(root),
	}
}

// Stat returns file info for the given path.
func (m *MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	rel, err := m.toRelPath("stat", path)
	if err != nil {
		return nil, err
	}
	return fs.Stat(m.FS, rel)
}

// ReadFile reads the entire file at path.
func (m *MapFSAdapter) ReadFile(path string) ([]byte, error) {
	rel, err := m.toRelPath("open", path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(m.FS, rel)
}

// toRelPath converts an absolute path into the slash-separated form fs.FS expects.
// Paths outside the root report fs.ErrNotExist.
func (m *MapFSAdapter) toRelPath(op, absPath string) (string, error) {
	p := filepath.Clean(absPath)
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(p), nil
	}

	if p == m.Root {
		return ".", nil
	}

	prefix := m.Root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(p, prefix) {
		return "", &fs.PathError{Op: op, Path: absPath, Err: fs.ErrNotExist}
	}

	return filepath.ToSlash(strings.TrimPrefix(p, prefix)), nil
}
