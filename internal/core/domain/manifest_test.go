package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pkgscope/internal/core/domain"
)

func TestParsePackageType(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.PackageType
	}{
		{"module", domain.PackageTypeModule},
		{"commonjs", domain.PackageTypeCommonJS},
		{"", domain.PackageTypeNone},
		{"none", domain.PackageTypeNone},
		{"Module", domain.PackageTypeNone},
		{"modules", domain.PackageTypeNone},
		{" module", domain.PackageTypeNone},
		{"wasm", domain.PackageTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ParsePackageType(tt.input))
		})
	}
}

func TestReadResult_Found(t *testing.T) {
	assert.True(t, domain.FoundResult(&domain.RawManifest{}).Found())
	assert.False(t, domain.ReadResult{Outcome: domain.OutcomeFound}.Found())

	for _, outcome := range []domain.ReadOutcome{
		domain.OutcomeAbsent,
		domain.OutcomeUnreadable,
		domain.OutcomeDirectory,
		domain.OutcomeMalformed,
	} {
		t.Run(outcome.String(), func(t *testing.T) {
			r := domain.NotFoundResult(outcome)
			assert.False(t, r.Found())
			assert.Nil(t, r.Manifest)
		})
	}
}

func TestReadOutcome_String(t *testing.T) {
	assert.Equal(t, "absent", domain.OutcomeAbsent.String())
	assert.Equal(t, "unreadable", domain.OutcomeUnreadable.String())
	assert.Equal(t, "directory", domain.OutcomeDirectory.String())
	assert.Equal(t, "malformed", domain.OutcomeMalformed.String())
	assert.Equal(t, "found", domain.OutcomeFound.String())
	assert.Equal(t, "unknown", domain.ReadOutcome(42).String())
}
