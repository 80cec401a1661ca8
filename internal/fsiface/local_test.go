package fsiface

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalFileSystemListEntriesRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "a.py"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "sub", "b.py"), []byte("y"), 0o644))

	fs := LocalFileSystem{}
	entries, err := fs.ListEntries(dir, "*.py", true)
	require.NoError(t, err)

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	require.Contains(t, paths, filepath.Join(dir, "pkg", "a.py"))
	require.Contains(t, paths, filepath.Join(dir, "pkg", "sub", "b.py"))
}

func TestLocalFileSystemExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.py")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	fs := LocalFileSystem{}
	require.True(t, fs.Exists(file))
	require.False(t, fs.IsDir(file))
	require.True(t, fs.IsDir(dir))
	require.False(t, fs.Exists(filepath.Join(dir, "missing.py")))
}
