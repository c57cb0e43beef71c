package domain

const (
	// ManifestFileName is the name of the package manifest probed in every directory.
	ManifestFileName = "package.json"

	// BoundaryDirName is the dependency directory that a scope walk never crosses.
	BoundaryDirName = "node_modules"
)

// PackageType is the normalized module format declared by a manifest.
type PackageType string

const (
	// PackageTypeNone means the manifest declares no recognized type.
	PackageTypeNone PackageType = "none"
	// PackageTypeModule marks a package whose sources are ECMAScript modules.
	PackageTypeModule PackageType = "module"
	// PackageTypeCommonJS marks a package whose sources are traditional modules.
	PackageTypeCommonJS PackageType = "commonjs"
)

// ParsePackageType maps a raw "type" field to a PackageType.
// Only the exact strings "module" and "commonjs" are recognized; anything else,
// including values a future format might reserve, degrades to PackageTypeNone.
func ParsePackageType(raw string) PackageType {
	switch raw {
	case string(PackageTypeModule):
		return PackageTypeModule
	case string(PackageTypeCommonJS):
		return PackageTypeCommonJS
	default:
		return PackageTypeNone
	}
}

// RawManifest holds the recognized top-level fields extracted from a manifest.
// Empty strings mean the field was absent or not a string. A nil Exports or Imports
// means the field was absent or of an unrecognized kind.
type RawManifest struct {
	Name    string
	Main    string
	Type    string
	Exports *LazyTarget
	Imports *LazyTarget
}

// ReadOutcome classifies the result of reading a manifest location.
// Everything except OutcomeFound collapses to "not found" for resolution purposes;
// the distinction only exists for diagnostics.
type ReadOutcome uint8

const (
	// OutcomeAbsent means no file exists at the location.
	OutcomeAbsent ReadOutcome = iota
	// OutcomeUnreadable means the file exists but could not be read.
	OutcomeUnreadable
	// OutcomeDirectory means a directory sits at the manifest location.
	OutcomeDirectory
	// OutcomeMalformed means the content is empty, not JSON, or not a JSON object.
	OutcomeMalformed
	// OutcomeFound means the manifest was read and its fields extracted.
	OutcomeFound
)

// String returns the string representation of the ReadOutcome.
func (o ReadOutcome) String() string {
	switch o {
	case OutcomeAbsent:
		return "absent"
	case OutcomeUnreadable:
		return "unreadable"
	case OutcomeDirectory:
		return "directory"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeFound:
		return "found"
	default:
		return "unknown"
	}
}

// ReadResult is the tagged outcome of a manifest read.
type ReadResult struct {
	Outcome  ReadOutcome
	Manifest *RawManifest
}

// Found reports whether a manifest was read successfully.
func (r ReadResult) Found() bool {
	return r.Outcome == OutcomeFound && r.Manifest != nil
}

// NotFoundResult returns a ReadResult carrying the given failure outcome.
func NotFoundResult(outcome ReadOutcome) ReadResult {
	return ReadResult{Outcome: outcome}
}

// FoundResult returns a successful ReadResult for m.
func FoundResult(m *RawManifest) ReadResult {
	return ReadResult{Outcome: OutcomeFound, Manifest: m}
}
