package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/config"
	"github.com/kestrel-lang/kestrel/internal/modules"
	"github.com/kestrel-lang/kestrel/internal/services"
	"github.com/kestrel-lang/kestrel/internal/token"
)

type fakeParser struct{}

func (fakeParser) Parse(path, content string) (*ast.Module, error) {
	return ast.NewModule(token.Span{}, path, nil), nil
}

func TestNewRequiresParser(t *testing.T) {
	_, err := services.New(services.Options{})
	require.Error(t, err)
}

func TestNewWiresRegistryAndEvaluator(t *testing.T) {
	svc, err := services.New(services.Options{
		Parser: fakeParser{},
		Config: &config.Config{LanguageVersion: "3", CacheEnabled: false},
	})
	require.NoError(t, err)
	require.NotNil(t, svc.Registry)
	require.NotNil(t, svc.Eval)
	require.Same(t, svc.Registry, svc.Eval.Registry, "evaluator must see the same Registry patched in after construction")

	builtins := svc.Registry.Builtins()
	require.NotNil(t, builtins, "New must install the builtins module")
	require.Equal(t, modules.KindBuiltin, builtins.Kind)

	require.Nil(t, svc.Cache, "cache disabled in config, Services.Cache must stay nil")
	require.NoError(t, svc.Close())
}

// TestNewKeepsSuppliedDefaultConfig passes a copy of config.Default()
// with CacheEnabled pinned off and checks its LanguageVersion survives
// wiring. It does not omit Options.Config: the default config enables
// the cache, and omitting it would open a live SQLite file.
func TestNewKeepsSuppliedDefaultConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CacheEnabled = false
	svc, err := services.New(services.Options{Parser: fakeParser{}, Config: cfg})
	require.NoError(t, err)
	require.Equal(t, "3", svc.Config.LanguageVersion)
}
