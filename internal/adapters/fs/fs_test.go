package fs_test

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgscope/internal/adapters/fs"
)

func TestOSFS_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"a"}`), 0o600))

	osfs := fs.NewOSFS()

	data, err := osfs.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a"}`, string(data))

	info, err := osfs.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	_, err = osfs.ReadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, iofs.ErrNotExist))
}

func TestMapFSAdapter(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "proj")
	mapfs := fstest.MapFS{
		"package.json":         {Data: []byte(`{"name":"root"}`)},
		"lib/sub/package.json": {Data: []byte(`{"name":"sub"}`)},
	}
	adapter := fs.NewMapFSAdapter(root, mapfs)

	t.Run("reads absolute paths under root", func(t *testing.T) {
		data, err := adapter.ReadFile(filepath.Join(root, "lib", "sub", "package.json"))
		require.NoError(t, err)
		assert.Equal(t, `{"name":"sub"}`, string(data))
	})

	t.Run("stats the root itself", func(t *testing.T) {
		info, err := adapter.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("stats synthesized directories", func(t *testing.T) {
		info, err := adapter.Stat(filepath.Join(root, "lib"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("paths outside root do not exist", func(t *testing.T) {
		_, err := adapter.ReadFile(filepath.Join(string(filepath.Separator), "package.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, iofs.ErrNotExist)

		_, err = adapter.Stat(filepath.Join(string(filepath.Separator), "projx", "package.json"))
		assert.ErrorIs(t, err, iofs.ErrNotExist)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := adapter.ReadFile(filepath.Join(root, "nope", "package.json"))
		assert.ErrorIs(t, err, iofs.ErrNotExist)
	})
}
