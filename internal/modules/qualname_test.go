package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateQualifiedNameSitePackagesVersioned(t *testing.T) {
	root := t.TempDir()
	site := filepath.Join(root, "site-packages")
	modDir := filepath.Join(site, "requests")
	require.NoError(t, os.MkdirAll(modDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(site, "requests-2.31.0.dist-info"), 0o755))

	name := CalculateQualifiedName("requests", modDir, site, "", "3")
	require.Equal(t, "requests(2.31.0)", name)
}

func TestCalculateQualifiedNameStdlib(t *testing.T) {
	root := t.TempDir()
	stdlib := filepath.Join(root, "stdlib")
	modDir := filepath.Join(stdlib, "os")
	require.NoError(t, os.MkdirAll(modDir, 0o755))

	name := CalculateQualifiedName("os", modDir, "", stdlib, "3")
	require.Equal(t, "os(3)", name)
}

func TestCalculateQualifiedNameFallsBackToDigest(t *testing.T) {
	root := t.TempDir()
	modDir := filepath.Join(root, "mylib")
	require.NoError(t, os.MkdirAll(modDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "mylib.py"), []byte("x = 1\n"), 0o644))

	name := CalculateQualifiedName("mylib", modDir, "", "", "3")
	require.Contains(t, name, "mylib.")
	require.Greater(t, len(name), len("mylib."))
}

func TestCalculateQualifiedNameAmbiguousDistInfoFallsThrough(t *testing.T) {
	root := t.TempDir()
	site := filepath.Join(root, "site-packages")
	modDir := filepath.Join(site, "requests")
	require.NoError(t, os.MkdirAll(modDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(site, "requests-2.31.0.dist-info"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(site, "requests-2.30.0.dist-info"), 0o755))

	name := CalculateQualifiedName("requests", modDir, site, "", "3")
	require.Contains(t, name, "requests.", "ambiguous dist-info siblings must fall through to the digest policy")
}
