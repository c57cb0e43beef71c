package domain

// PackageConfig is the normalized configuration of one manifest location.
// A PackageConfig is immutable once built; the lazily parsed exports and imports
// are materialized at most once and shared by every reader of the record.
type PackageConfig struct {
	path    InternedString
	exists  bool
	name    string
	main    string
	typ     PackageType
	exports *LazyTarget
	imports *LazyTarget
}

// NewFoundConfig builds the record for a manifest that was read successfully.
func NewFoundConfig(path string, name, main string, typ PackageType, exports, imports *LazyTarget) *PackageConfig {
	return &PackageConfig{
		path:    NewInternedString(path),
		exists:  true,
		name:    name,
		main:    main,
		typ:     typ,
		exports: exports,
		imports: imports,
	}
}

// NewNotFoundConfig builds the record cached for a location without a usable manifest.
func NewNotFoundConfig(path string) *PackageConfig {
	return &PackageConfig{
		path: NewInternedString(path),
		typ:  PackageTypeNone,
	}
}

// Path returns the absolute manifest path the record is keyed by.
func (c *PackageConfig) Path() string {
	return c.path.String()
}

// Exists reports whether a manifest was found and parsed at Path.
func (c *PackageConfig) Exists() bool {
	return c.exists
}

// Name returns the package name, or "" when unset.
func (c *PackageConfig) Name() string {
	return c.name
}

// Main returns the legacy entry point, or "" when unset.
func (c *PackageConfig) Main() string {
	return c.main
}

// Type returns the normalized package type.
func (c *PackageConfig) Type() PackageType {
	return c.typ
}

// Exports returns the parsed exports field and whether it is set.
func (c *PackageConfig) Exports() (Target, bool) {
	return materialize(c.exports)
}

// Imports returns the parsed imports field and whether it is set.
func (c *PackageConfig) Imports() (Target, bool) {
	return materialize(c.imports)
}

// RawExports returns the unparsed exports JSON, or nil when unset.
func (c *PackageConfig) RawExports() []byte {
	if c.exports == nil {
		return nil
	}
	return c.exports.Raw()
}

// RawImports returns the unparsed imports JSON, or nil when unset.
func (c *PackageConfig) RawImports() []byte {
	if c.imports == nil {
		return nil
	}
	return c.imports.Raw()
}

func materialize(l *LazyTarget) (Target, bool) {
	if l == nil {
		return Target{}, false
	}
	t, err := l.Value()
	if err != nil {
		// The reader validates the whole document before handing out raw fields,
		// so this only happens for hand-built records.
		return Target{Kind: TargetInvalid, Raw: string(l.Raw())}, true
	}
	return t, true
}
