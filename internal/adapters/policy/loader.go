// Package policy provides the integrity policy loader and verifier.
package policy

import (
	"errors"
	"net/url"
	"path/filepath"

	"go.trai.ch/pkgscope/internal/core/domain"
	"go.trai.ch/pkgscope/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.PolicyLoader.
type Loader struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewLoader creates a new policy loader.
func NewLoader(fsys ports.FileSystem, logger ports.Logger) *Loader {
	return &Loader{fs: fsys, logger: logger}
}

// Load reads the policy manifest at path. Relative resource keys are resolved
// against the directory containing the policy.
func (l *Loader) Load(path string) (ports.IntegrityVerifier, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Join(domain.ErrPolicyReadFailed, zerr.With(err, "path", path))
	}

	data, err := l.fs.ReadFile(abs)
	if err != nil {
		return nil, errors.Join(domain.ErrPolicyReadFailed, zerr.With(err, "path", abs))
	}

	p, err := Parse(data, domain.FileURL(filepath.Dir(abs))+"/")
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}

	l.logger.Debug("integrity policy loaded", "path", abs, "resources", p.Len())
	return p, nil
}

// Parse builds a Policy from raw YAML or JSON. base is the URL relative keys are resolved against.
func Parse(data []byte, base string) (*Policy, error) {
	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(domain.ErrPolicyParseFailed, err)
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, errors.Join(domain.ErrPolicyParseFailed, zerr.With(err, "base", base))
	}

	p := &Policy{resources: make(map[string]resource, len(file.Resources))}
	for key, dto := range file.Resources {
		location, err := resolveKey(baseURL, key)
		if err != nil {
			return nil, errors.Join(domain.ErrPolicyParseFailed, zerr.With(err, "resource", key))
		}

		res, err := parseIntegrity(&dto.Integrity)
		if err != nil {
			return nil, errors.Join(domain.ErrPolicyParseFailed, zerr.With(err, "resource", key))
		}
		p.resources[location] = res
	}

	return p, nil
}

func resolveKey(base *url.URL, key string) (string, error) {
	if filepath.IsAbs(key) {
		return domain.FileURL(filepath.Clean(key)), nil
	}
	ref, err := url.Parse(key)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
