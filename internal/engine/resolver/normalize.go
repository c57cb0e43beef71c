// Package resolver implements package configuration lookup and scope discovery.
package resolver

import "go.trai.ch/pkgscope/internal/core/domain"

// Normalize converts an extracted manifest into the record cached for path.
func Normalize(raw *domain.RawManifest, path string) *domain.PackageConfig {
	return domain.NewFoundConfig(
		path,
		raw.Name,
		raw.Main,
		domain.ParsePackageType(raw.Type),
		raw.Exports,
		raw.Imports,
	)
}
