package policy

import (
	// Register the hash functions used by SRI digests.
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/base64"
	"strings"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/pkgscope/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Policy implements ports.IntegrityVerifier over a parsed policy manifest.
type Policy struct {
	resources map[string]resource
}

type resource struct {
	allowAll bool
	digests  []digest.Digest
}

// Len returns the number of resources the policy covers.
func (p *Policy) Len() int {
	return len(p.resources)
}

// AssertIntegrity checks content against the entry for location.
// A resource without an entry is rejected.
func (p *Policy) AssertIntegrity(location string, content []byte) error {
	res, ok := p.resources[location]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrIntegrityMissing, "resource not covered by policy"), "resource", location)
	}
	if res.allowAll {
		return nil
	}

	for _, d := range res.digests {
		if d.Algorithm().FromBytes(content) == d {
			return nil
		}
	}

	return zerr.With(zerr.Wrap(domain.ErrIntegrityMismatch, "content does not match policy"), "resource", location)
}

func parseIntegrity(node *yaml.Node) (resource, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!bool" {
			var allow bool
			if err := node.Decode(&allow); err != nil {
				return resource{}, err
			}
			if !allow {
				return resource{}, zerr.New("integrity must be true or an SRI string")
			}
			return resource{allowAll: true}, nil
		}
		return parseSRI(strings.Fields(node.Value))
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return resource{}, err
		}
		var tokens []string
		for _, v := range values {
			tokens = append(tokens, strings.Fields(v)...)
		}
		return parseSRI(tokens)
	default:
		return resource{}, zerr.New("missing integrity value")
	}
}

// parseSRI converts subresource integrity tokens ("sha384-<base64>[?opts]") into digests.
func parseSRI(tokens []string) (resource, error) {
	if len(tokens) == 0 {
		return resource{}, zerr.New("empty integrity value")
	}

	res := resource{digests: make([]digest.Digest, 0, len(tokens))}
	for _, token := range tokens {
		token, _, _ = strings.Cut(token, "?")
		name, encoded, ok := strings.Cut(token, "-")
		if !ok {
			return resource{}, zerr.With(zerr.New("malformed integrity token"), "token", token)
		}

		alg := digest.Algorithm(name)
		switch alg {
		case digest.SHA256, digest.SHA384, digest.SHA512:
		default:
			return resource{}, zerr.With(zerr.Wrap(domain.ErrUnsupportedIntegrity, "unknown algorithm"), "algorithm", name)
		}

		sum, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			sum, err = base64.RawStdEncoding.DecodeString(encoded)
		}
		if err != nil || len(sum) != alg.Size() {
			return resource{}, zerr.With(zerr.New("malformed integrity digest"), "token", token)
		}

		res.digests = append(res.digests, digest.NewDigestFromBytes(alg, sum))
	}

	return res, nil
}
