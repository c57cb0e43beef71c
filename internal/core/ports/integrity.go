package ports

// IntegrityVerifier checks serialized manifest content against an allow-list.
//
//go:generate mockgen -source=integrity.go -destination=mocks/mock_integrity.go -package=mocks
type IntegrityVerifier interface {
	// AssertIntegrity returns an error when content does not match the policy
	// entry for the resource at location (a file URL).
	AssertIntegrity(location string, content []byte) error
}

// PolicyLoader builds an IntegrityVerifier from a policy manifest file.
type PolicyLoader interface {
	// Load reads the policy manifest at path.
	Load(path string) (IntegrityVerifier, error)
}
