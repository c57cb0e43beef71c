package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pkgscope/internal/core/domain"
)

func TestNewNotFoundConfig(t *testing.T) {
	cfg := domain.NewNotFoundConfig("/proj/package.json")

	assert.Equal(t, "/proj/package.json", cfg.Path())
	assert.False(t, cfg.Exists())
	assert.Empty(t, cfg.Name())
	assert.Empty(t, cfg.Main())
	assert.Equal(t, domain.PackageTypeNone, cfg.Type())

	_, ok := cfg.Exports()
	assert.False(t, ok)
	_, ok = cfg.Imports()
	assert.False(t, ok)
	assert.Nil(t, cfg.RawExports())
	assert.Nil(t, cfg.RawImports())
}

func TestNewFoundConfig(t *testing.T) {
	exports := domain.NewLazyTarget([]byte(`"./index.js"`))
	imports := domain.NewLazyTarget([]byte(`{"#dep":"./dep.js"}`))

	cfg := domain.NewFoundConfig("/proj/package.json", "req", "./lib/req.js", domain.PackageTypeModule, exports, imports)

	assert.True(t, cfg.Exists())
	assert.Equal(t, "req", cfg.Name())
	assert.Equal(t, "./lib/req.js", cfg.Main())
	assert.Equal(t, domain.PackageTypeModule, cfg.Type())

	exp, ok := cfg.Exports()
	assert.True(t, ok)
	assert.Equal(t, domain.Target{Kind: domain.TargetString, Value: "./index.js"}, exp)

	imp, ok := cfg.Imports()
	assert.True(t, ok)
	assert.Equal(t, []string{"#dep"}, imp.Keys())
	assert.Equal(t, []byte(`{"#dep":"./dep.js"}`), cfg.RawImports())
}

func TestPackageConfig_UnparsableRawIsInvalid(t *testing.T) {
	cfg := domain.NewFoundConfig("/p/package.json", "", "", domain.PackageTypeNone, domain.NewLazyTarget([]byte(`{`)), nil)

	exp, ok := cfg.Exports()
	assert.True(t, ok)
	assert.Equal(t, domain.TargetInvalid, exp.Kind)
	assert.Equal(t, "{", exp.Raw)
}

func TestScopeTrace_Cached(t *testing.T) {
	trace := domain.ScopeTrace{Probes: []domain.ScopeProbe{
		{Cached: true},
		{Boundary: true},
	}}
	assert.True(t, trace.Cached())

	trace.Probes = append(trace.Probes, domain.ScopeProbe{Cached: false})
	assert.False(t, trace.Cached())
}
