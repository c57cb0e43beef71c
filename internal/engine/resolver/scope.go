package resolver

import (
	"path/filepath"

	"go.trai.ch/pkgscope/internal/core/domain"
)

// Resolver finds the manifest governing a file location.
type Resolver struct {
	cache *Cache
}

// NewResolver creates a Resolver that loads manifests through cache.
func NewResolver(cache *Cache) *Resolver {
	return &Resolver{cache: cache}
}

// Cache returns the cache backing the resolver.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// ResolveScope returns the nearest existing manifest at or above location.
// The walk never loads a manifest whose directory is named node_modules and stops
// at the filesystem root. When nothing is found the returned record has Exists() == false.
func (r *Resolver) ResolveScope(location string) (*domain.PackageConfig, error) {
	trace, err := r.ResolveScopeTrace(location)
	if err != nil {
		return nil, err
	}
	return trace.Config, nil
}

// ResolveScopeTrace is ResolveScope that also returns every probed manifest location.
func (r *Resolver) ResolveScopeTrace(location string) (domain.ScopeTrace, error) {
	loc, err := domain.ParseLocation(location)
	if err != nil {
		return domain.ScopeTrace{}, err
	}

	dir := loc.Path
	if !loc.IsDir {
		dir = filepath.Dir(loc.Path)
	}
	candidate := filepath.Join(dir, domain.ManifestFileName)

	var probes []domain.ScopeProbe
	for {
		if isBoundary(candidate) {
			probes = append(probes, domain.ScopeProbe{
				Path:     domain.NewInternedString(candidate),
				Boundary: true,
			})
			// Not stored: a direct lookup of this path must still see its real content.
			return domain.ScopeTrace{
				Config:      domain.NewNotFoundConfig(candidate),
				Probes:      probes,
				Termination: domain.TerminationBoundary,
			}, nil
		}

		cfg, hit, err := r.cache.lookup(candidate)
		if err != nil {
			return domain.ScopeTrace{}, err
		}
		probes = append(probes, domain.ScopeProbe{
			Path:   domain.NewInternedString(candidate),
			Cached: hit,
			Exists: cfg.Exists(),
		})
		if cfg.Exists() {
			return domain.ScopeTrace{
				Config:      cfg,
				Probes:      probes,
				Termination: domain.TerminationFound,
			}, nil
		}

		next := filepath.Join(filepath.Dir(filepath.Dir(candidate)), domain.ManifestFileName)
		if next == candidate {
			break
		}
		candidate = next
	}

	return domain.ScopeTrace{
		Config:      r.cache.storeIfAbsent(candidate, domain.NewNotFoundConfig(candidate)),
		Probes:      probes,
		Termination: domain.TerminationRoot,
	}, nil
}

// isBoundary reports whether candidate sits directly inside a node_modules directory.
func isBoundary(candidate string) bool {
	return filepath.Base(filepath.Dir(candidate)) == domain.BoundaryDirName
}
