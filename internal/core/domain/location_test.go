package domain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgscope/internal/core/domain"
)

func TestFileURL(t *testing.T) {
	assert.Equal(t, "file:///proj/package.json", domain.FileURL("/proj/package.json"))
	assert.Equal(t, "file:///my%20proj/package.json", domain.FileURL("/my proj/package.json"))
}

func TestParseLocation(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  domain.Location
	}{
		{name: "absolute file", input: "/proj/src/index.js", want: domain.Location{Path: "/proj/src/index.js"}},
		{name: "unclean path", input: "/proj/src/../lib/./a.js", want: domain.Location{Path: "/proj/lib/a.js"}},
		{name: "trailing separator", input: "/proj/src/", want: domain.Location{Path: "/proj/src", IsDir: true}},
		{name: "file url", input: "file:///proj/src/index.js", want: domain.Location{Path: "/proj/src/index.js"}},
		{name: "file url directory", input: "file:///proj/src/", want: domain.Location{Path: "/proj/src", IsDir: true}},
		{name: "escaped file url", input: "file:///my%20proj/a.js", want: domain.Location{Path: "/my proj/a.js"}},
		{name: "localhost file url", input: "file://localhost/proj/a.js", want: domain.Location{Path: "/proj/a.js"}},
		{name: "relative", input: "src/index.js", want: domain.Location{Path: filepath.Join(wd, "src", "index.js")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseLocation(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, input := range []string{"", "https://example.com/a.js", "file://remote/a.js", "file://"} {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseLocation(input)
			assert.ErrorIs(t, err, domain.ErrInvalidLocation)
		})
	}
}
