// Package manifest reads package.json files and extracts the fields used for resolution.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"sync"

	"go.trai.ch/pkgscope/internal/core/domain"
	"go.trai.ch/pkgscope/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Option configures a Reader.
type Option func(*Reader)

// WithVerifier enables integrity checks for manifests that declare a name.
func WithVerifier(v ports.IntegrityVerifier) Option {
	return func(r *Reader) {
		r.verifier = v
	}
}

// WithEagerParse materializes exports and imports at read time instead of on first access.
func WithEagerParse() Option {
	return func(r *Reader) {
		r.eager = true
	}
}

// Reader implements ports.ManifestReader. Results are memoized per path for the
// lifetime of the Reader and concurrent first reads of a path share one load.
type Reader struct {
	fs       ports.FileSystem
	logger   ports.Logger
	verifier ports.IntegrityVerifier
	eager    bool

	group   singleflight.Group
	mu      sync.RWMutex
	results map[string]readEntry
}

type readEntry struct {
	result domain.ReadResult
	err    error
}

// NewReader creates a Reader backed by the given filesystem.
func NewReader(fsys ports.FileSystem, logger ports.Logger, opts ...Option) *Reader {
	r := &Reader{
		fs:      fsys,
		logger:  logger,
		results: make(map[string]readEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read returns the extracted manifest at path.
func (r *Reader) Read(path string) (domain.ReadResult, error) {
	if e, ok := r.lookup(path); ok {
		return e.result, e.err
	}

	v, _, _ := r.group.Do(path, func() (any, error) {
		if e, ok := r.lookup(path); ok {
			return e, nil
		}
		e := r.load(path)
		r.mu.Lock()
		r.results[path] = e
		r.mu.Unlock()
		return e, nil
	})

	e, _ := v.(readEntry)
	return e.result, e.err
}

func (r *Reader) lookup(path string) (readEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.results[path]
	return e, ok
}

func (r *Reader) load(path string) readEntry {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		outcome := r.classify(path, err)
		r.logger.Debug("manifest not found", "path", path, "outcome", outcome.String(), "error", err)
		return readEntry{result: domain.NotFoundResult(outcome)}
	}

	m, err := r.parse(data)
	if err != nil {
		r.logger.Debug("manifest not found", "path", path, "outcome", domain.OutcomeMalformed.String(), "error", err)
		return readEntry{result: domain.NotFoundResult(domain.OutcomeMalformed)}
	}

	if r.verifier != nil && m.Name != "" {
		if err := r.verifier.AssertIntegrity(domain.FileURL(path), Canonical(m)); err != nil {
			return readEntry{err: errors.Join(domain.ErrIntegrityViolation, zerr.With(zerr.Wrap(err, "integrity check failed"), "path", path))}
		}
	}

	r.logger.Debug("manifest loaded", "path", path, "name", m.Name)
	return readEntry{result: domain.FoundResult(m)}
}

func (r *Reader) classify(path string, err error) domain.ReadOutcome {
	if errors.Is(err, iofs.ErrNotExist) {
		return domain.OutcomeAbsent
	}
	if info, statErr := r.fs.Stat(path); statErr == nil && info.IsDir() {
		return domain.OutcomeDirectory
	}
	return domain.OutcomeUnreadable
}

func (r *Reader) parse(data []byte) (*domain.RawManifest, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, zerr.New("empty manifest")
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, "invalid manifest JSON")
	}
	if doc == nil {
		return nil, zerr.New("manifest is not a JSON object")
	}

	m := &domain.RawManifest{
		Name: stringField(doc["name"]),
		Main: stringField(doc["main"]),
		Type: stringField(doc["type"]),
	}

	exports, err := targetField(doc["exports"], '"', '[', '{')
	if err != nil {
		return nil, err
	}
	imports, err := targetField(doc["imports"], '{')
	if err != nil {
		return nil, err
	}
	m.Exports, m.Imports = exports, imports

	if r.eager {
		for _, l := range []*domain.LazyTarget{m.Exports, m.Imports} {
			if l == nil {
				continue
			}
			if _, err := l.Value(); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func stringField(raw json.RawMessage) string {
	if len(raw) == 0 || raw[0] != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// targetField keeps raw as a lazily parsed target when its first byte is one of kinds.
func targetField(raw json.RawMessage, kinds ...byte) (*domain.LazyTarget, error) {
	if len(raw) == 0 || bytes.IndexByte(kinds, raw[0]) < 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, zerr.Wrap(err, "failed to compact target value")
	}
	return domain.NewLazyTarget(buf.Bytes()), nil
}

// Canonical serializes the recognized fields of m in the fixed order
// name, main, exports, imports, type. Unset fields are omitted.
func Canonical(m *domain.RawManifest) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	field := func(key string, value []byte) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(quote(key))
		buf.WriteByte(':')
		buf.Write(value)
	}
	str := func(key, value string) {
		if value == "" {
			return
		}
		field(key, quote(value))
	}

	str("name", m.Name)
	str("main", m.Main)
	if m.Exports != nil {
		field("exports", m.Exports.Raw())
	}
	if m.Imports != nil {
		field("imports", m.Imports.Raw())
	}
	str("type", m.Type)

	buf.WriteByte('}')
	return buf.Bytes()
}

func quote(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})
}
