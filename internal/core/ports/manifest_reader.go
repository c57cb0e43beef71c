package ports

import "go.trai.ch/pkgscope/internal/core/domain"

// ManifestReader reads and memoizes the recognized fields of manifest files.
//
//go:generate mockgen -source=manifest_reader.go -destination=mocks/mock_manifest_reader.go -package=mocks
type ManifestReader interface {
	// Read returns the extracted manifest at path. Absent, unreadable and malformed
	// files are reported through the result's outcome, never as an error.
	// The only error is a fatal integrity violation.
	Read(path string) (domain.ReadResult, error)
}
