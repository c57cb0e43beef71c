package domain

// Termination describes why a scope walk stopped.
type Termination string

const (
	// TerminationFound means an existing manifest governs the location.
	TerminationFound Termination = "found"
	// TerminationBoundary means the walk reached a dependency boundary directory.
	TerminationBoundary Termination = "boundary"
	// TerminationRoot means the walk reached the filesystem root.
	TerminationRoot Termination = "root"
)

// ScopeProbe records one manifest location visited by a scope walk.
type ScopeProbe struct {
	Path     InternedString `json:"path" yaml:"path"`
	Cached   bool           `json:"cached" yaml:"cached"`
	Exists   bool           `json:"exists" yaml:"exists"`
	Boundary bool           `json:"boundary" yaml:"boundary"`
}

// ScopeTrace is the full account of a scope walk.
type ScopeTrace struct {
	Config      *PackageConfig
	Probes      []ScopeProbe
	Termination Termination
}

// Cached reports whether every loaded probe was served from the cache.
func (t ScopeTrace) Cached() bool {
	for _, p := range t.Probes {
		if !p.Boundary && !p.Cached {
			return false
		}
	}
	return true
}
