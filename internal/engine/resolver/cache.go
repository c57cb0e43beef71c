package resolver

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pkgscope/internal/core/domain"
	"go.trai.ch/pkgscope/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

const shardCount = 16

type shard struct {
	mu      sync.RWMutex
	records map[string]*domain.PackageConfig
}

// Cache memoizes one PackageConfig per manifest path. Records are written once
// and never replaced; concurrent loaders of a path converge on the first stored value.
type Cache struct {
	reader ports.ManifestReader
	shards [shardCount]*shard
	group  singleflight.Group
}

// NewCache creates an empty Cache that loads manifests through reader.
func NewCache(reader ports.ManifestReader) *Cache {
	c := &Cache{reader: reader}
	for i := range c.shards {
		c.shards[i] = &shard{records: make(map[string]*domain.PackageConfig)}
	}
	return c
}

// GetOrLoad returns the record for the manifest at path, loading it on first use.
// Path may be absolute, relative or a file URL. No boundary rule is applied.
func (c *Cache) GetOrLoad(path string) (*domain.PackageConfig, error) {
	cfg, _, err := c.Lookup(path)
	return cfg, err
}

// Lookup is GetOrLoad that also reports whether the record was already cached.
func (c *Cache) Lookup(path string) (*domain.PackageConfig, bool, error) {
	loc, err := domain.ParseLocation(path)
	if err != nil {
		return nil, false, err
	}
	return c.lookup(loc.Path)
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.records)
		s.mu.RUnlock()
	}
	return n
}

// lookup expects key to be absolute and clean.
func (c *Cache) lookup(key string) (*domain.PackageConfig, bool, error) {
	if cfg, ok := c.get(key); ok {
		return cfg, true, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if cfg, ok := c.get(key); ok {
			return cfg, nil
		}

		res, err := c.reader.Read(key)
		if err != nil {
			return nil, err
		}

		cfg := domain.NewNotFoundConfig(key)
		if res.Found() {
			cfg = Normalize(res.Manifest, key)
		}
		return c.storeIfAbsent(key, cfg), nil
	})
	if err != nil {
		return nil, false, err
	}

	cfg, _ := v.(*domain.PackageConfig)
	return cfg, false, nil
}

func (c *Cache) shardFor(key string) *shard {
	return c.shards[xxhash.Sum64String(key)%shardCount]
}

func (c *Cache) get(key string) (*domain.PackageConfig, bool) {
	s := c.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.records[key]
	return cfg, ok
}

// storeIfAbsent stores cfg unless a record for key exists and returns the stored record.
func (c *Cache) storeIfAbsent(key string, cfg *domain.PackageConfig) *domain.PackageConfig {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[key]; ok {
		return existing
	}
	s.records[key] = cfg
	return cfg
}
