package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/fsiface"
)

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(p, 0o755))
	}
}

func TestResolverPrefersStubsDirOverUserPath(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, filepath.Join(root, "src", "widget"), filepath.Join(root, "src", "widget-stubs"))

	r := NewResolver(fsiface.LocalFileSystem{}, "", "", "3")
	r.SetUserSearchPaths([]string{filepath.Join(root, "src")})

	p, ok := r.FindModule("widget")
	require.True(t, ok)
	require.True(t, p.IsStub)
	require.Equal(t, filepath.Join(root, "src", "widget-stubs"), p.Dir)
}

func TestResolverFallsBackToUserPath(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, filepath.Join(root, "src", "widget"))

	r := NewResolver(fsiface.LocalFileSystem{}, "", "", "3")
	r.SetUserSearchPaths([]string{filepath.Join(root, "src")})

	p, ok := r.FindModule("widget")
	require.True(t, ok)
	require.False(t, p.IsStub)
	require.Equal(t, KindUser, p.Kind)
}

func TestResolverTypeshedSearchOrder(t *testing.T) {
	root := t.TempDir()
	typeshed := filepath.Join(root, "typeshed")
	mkdirs(t, filepath.Join(typeshed, "stdlib", "2and3", "os"))

	r := NewResolver(fsiface.LocalFileSystem{}, typeshed, "", "3.11")
	p, ok := r.FindModule("os")
	require.True(t, ok)
	require.True(t, p.IsStub)
	require.Equal(t, filepath.Join(typeshed, "stdlib", "2and3", "os"), p.Dir)
}

func TestResolverMissReturnsFalse(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(fsiface.LocalFileSystem{}, "", "", "3")
	r.SetUserSearchPaths([]string{root})

	_, ok := r.FindModule("doesnotexist")
	require.False(t, ok)
}
