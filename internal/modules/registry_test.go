package modules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/fsiface"
	"github.com/kestrel-lang/kestrel/internal/token"
)

type stubParser struct{}

func (stubParser) Parse(path, content string) (*ast.Module, error) {
	return ast.NewModule(token.Span{}, path, nil), nil
}

type recordingAnalyzer struct{ analyzed []string }

func (a *recordingAnalyzer) AnalyzeModule(m *Module) error {
	a.analyzed = append(a.analyzed, m.Name)
	return nil
}

func newTestRegistry(t *testing.T, root string) (*Registry, *recordingAnalyzer) {
	t.Helper()
	r := NewResolver(fsiface.LocalFileSystem{}, "", "", "3")
	r.SetUserSearchPaths([]string{root})
	analyzer := &recordingAnalyzer{}
	return NewRegistry(fsiface.LocalFileSystem{}, r, stubParser{}, analyzer, nil), analyzer
}

func TestRegistryResolveLoadsAndAnalyzes(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "widget"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "widget", "widget.py"), []byte("x = 1\n"), 0o644))

	reg, analyzer := newTestRegistry(t, root)
	m, status := reg.Resolve(context.Background(), "widget")
	require.Equal(t, StatusOK, status)
	require.Equal(t, "widget", m.Name)
	require.Equal(t, StateAnalyzed, m.state())
	require.Contains(t, analyzer.analyzed, "widget")
}

func TestRegistryResolveUnresolvedOnMiss(t *testing.T) {
	root := t.TempDir()
	reg, _ := newTestRegistry(t, root)

	m, status := reg.Resolve(context.Background(), "doesnotexist")
	require.Equal(t, StatusUnresolved, status)
	require.Equal(t, KindUnresolved, m.Kind)
}

func TestRegistryResolveIsIdempotent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "widget"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "widget", "widget.py"), []byte("x = 1\n"), 0o644))

	reg, analyzer := newTestRegistry(t, root)
	m1, _ := reg.Resolve(context.Background(), "widget")
	m2, _ := reg.Resolve(context.Background(), "widget")
	require.Same(t, m1, m2)
	require.Len(t, analyzer.analyzed, 1, "a second resolve of the same module must not re-analyze")
}

func TestRegistrySpecializeAndGetSpecialized(t *testing.T) {
	root := t.TempDir()
	reg, _ := newTestRegistry(t, root)

	reg.Specialize("Widget[int]", func(name string) *Module {
		return newModule(name, "specialized."+name, KindSpecialized)
	})

	m, status := reg.Resolve(context.Background(), "Widget[int]")
	require.Equal(t, StatusOK, status)
	require.Equal(t, KindSpecialized, m.Kind)
	require.Equal(t, StateAnalyzed, m.state())

	got, ok := reg.GetSpecialized("Widget[int]")
	require.True(t, ok)
	require.Same(t, m, got)
}

func TestRegistryBuiltinsSingleton(t *testing.T) {
	root := t.TempDir()
	reg, _ := newTestRegistry(t, root)

	b := newModule("builtins", "builtins(3)", KindBuiltin)
	reg.SetBuiltins(b)
	reg.SetBuiltins(newModule("builtins", "builtins(3)", KindBuiltin)) // second call is a no-op

	require.Same(t, b, reg.Builtins())
}
