package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pkgscope/internal/core/domain"
	"go.trai.ch/pkgscope/internal/engine/resolver"
)

func TestNormalize(t *testing.T) {
	exports := domain.NewLazyTarget([]byte(`"./index.js"`))
	raw := &domain.RawManifest{Name: "req", Main: "./lib/req.js", Type: "module", Exports: exports}

	cfg := resolver.Normalize(raw, "/proj/package.json")

	assert.True(t, cfg.Exists())
	assert.Equal(t, "/proj/package.json", cfg.Path())
	assert.Equal(t, "req", cfg.Name())
	assert.Equal(t, "./lib/req.js", cfg.Main())
	assert.Equal(t, domain.PackageTypeModule, cfg.Type())

	target, ok := cfg.Exports()
	assert.True(t, ok)
	assert.Equal(t, domain.Target{Kind: domain.TargetString, Value: "./index.js"}, target)

	_, ok = cfg.Imports()
	assert.False(t, ok)
}

func TestNormalize_Type(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.PackageType
	}{
		{raw: "module", want: domain.PackageTypeModule},
		{raw: "commonjs", want: domain.PackageTypeCommonJS},
		{raw: "", want: domain.PackageTypeNone},
		{raw: "Module", want: domain.PackageTypeNone},
		{raw: "wasm", want: domain.PackageTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := resolver.Normalize(&domain.RawManifest{Type: tt.raw}, "/p/package.json")
			assert.Equal(t, tt.want, cfg.Type())
		})
	}
}
