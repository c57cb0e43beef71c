package policy

import "gopkg.in/yaml.v3"

// PolicyFile represents the structure of an integrity policy manifest.
// JSON policies are accepted as well since they are valid YAML.
type PolicyFile struct {
	Version   string                 `yaml:"version"`
	Resources map[string]ResourceDTO `yaml:"resources"`
}

// ResourceDTO is the policy entry for a single resource.
// Integrity is either the boolean true, an SRI string, or a list of SRI strings.
type ResourceDTO struct {
	Integrity yaml.Node `yaml:"integrity"`
}
