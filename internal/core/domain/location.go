package domain

import (
	"net/url"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const fileScheme = "file"

// FileURL converts an absolute filesystem path into a file URL.
func FileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: fileScheme, Path: p}
	return u.String()
}

// Location is a normalized resolution input.
type Location struct {
	// Path is absolute and cleaned.
	Path string
	// IsDir is set when the input ended in a separator and names a directory.
	IsDir bool
}

// ParseLocation accepts an absolute or relative filesystem path or a file URL.
// Relative paths are made absolute against the working directory.
func ParseLocation(input string) (Location, error) {
	if input == "" {
		return Location{}, zerr.Wrap(ErrInvalidLocation, "empty location")
	}

	raw := input
	if strings.Contains(input, "://") || strings.HasPrefix(input, fileScheme+":") {
		u, err := url.Parse(input)
		if err != nil {
			return Location{}, zerr.With(zerr.Wrap(ErrInvalidLocation, err.Error()), "location", input)
		}
		if u.Scheme != fileScheme || (u.Host != "" && u.Host != "localhost") {
			return Location{}, zerr.With(zerr.Wrap(ErrInvalidLocation, "only file URLs are supported"), "location", input)
		}
		raw = filepath.FromSlash(u.Path)
		if raw == "" {
			return Location{}, zerr.With(zerr.Wrap(ErrInvalidLocation, "file URL has no path"), "location", input)
		}
	}

	isDir := strings.HasSuffix(raw, string(filepath.Separator)) || strings.HasSuffix(raw, "/")

	abs, err := filepath.Abs(raw)
	if err != nil {
		return Location{}, zerr.With(zerr.Wrap(ErrInvalidLocation, err.Error()), "location", input)
	}

	return Location{Path: abs, IsDir: isDir}, nil
}
