package ports

import "io/fs"

// FileSystem abstracts the filesystem operations needed to read manifests.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns file info for the given absolute path.
	Stat(path string) (fs.FileInfo, error)
	// ReadFile reads the entire file at the given absolute path.
	ReadFile(path string) ([]byte, error)
}
