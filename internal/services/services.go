// Package services bundles the concrete collaborators every other
// component is injected with rather than reaching for through a
// package-level global (spec.md §9 Design Notes, "Services context
// struct" — "no statics": every cross-cutting dependency is threaded
// through explicit construction). Grounded on the teacher's top-level
// wiring in cmd/funxy (one main() building a Pipeline's collaborators by
// hand) and pkg/cli, generalized into a reusable struct so both a CLI
// entry point and a future LSP-style host can build the same graph.
package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kestrel-lang/kestrel/internal/cache"
	"github.com/kestrel-lang/kestrel/internal/calleval"
	"github.com/kestrel-lang/kestrel/internal/config"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/eval"
	"github.com/kestrel-lang/kestrel/internal/fsiface"
	"github.com/kestrel-lang/kestrel/internal/introspect"
	"github.com/kestrel-lang/kestrel/internal/modules"
	"github.com/kestrel-lang/kestrel/internal/progress"
)

// Services is the fully wired dependency graph one analysis run needs:
// Registry resolves imports, Evaluator walks modules (with Registry set
// post-construction to break the Evaluator<->Registry<->Analyzer
// three-way cycle), Diag collects reportable diagnostics, Cache
// persists analysis results across runs (spec.md §6.5), and Progress
// reports "N modules remaining" to an attached TTY (spec.md §5).
type Services struct {
	Config   *config.Config
	FS       fsiface.FileSystem
	Runner   fsiface.ProcessRunner
	Resolver *modules.Resolver
	Registry *modules.Registry
	Diag     *diag.Sink
	Cache    cache.Store
	Progress *progress.Ticker
	Eval     *eval.Evaluator
}

// Options configures New. Parser is the only required field: the
// lexer/parser is external to this core (spec.md §1, §6.2) and every
// other collaborator falls back to a production-shaped default.
type Options struct {
	Config *config.Config
	FS     fsiface.FileSystem
	Runner fsiface.ProcessRunner
	Parser modules.Parser

	// SiteDir is the installed-library search root (spec.md §4.C); empty
	// disables library resolution.
	SiteDir string

	// ProgressReporter receives "N modules remaining" updates; nil
	// disables progress reporting entirely (still safe: Services.Progress
	// is then nil and callers must check before use).
	ProgressReporter progress.Reporter

	// MaxDiagnosticsPerModule implements SPEC_FULL.md's supplemental
	// per-module diagnostic throttle; <= 0 disables it.
	MaxDiagnosticsPerModule int
}

// New builds one fully wired Services graph (spec.md §9 "bundle into a
// Services context struct threaded through construction").
func New(opts Options) (*Services, error) {
	if opts.Parser == nil {
		return nil, fmt.Errorf("services: Options.Parser is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	fs := opts.FS
	if fs == nil {
		fs = fsiface.LocalFileSystem{}
	}
	runner := opts.Runner
	if runner == nil {
		runner = fsiface.LocalProcessRunner{}
	}

	resolver := modules.NewResolver(fs, cfg.TypeshedRoot, opts.SiteDir, cfg.LanguageVersion)
	resolver.SetUserSearchPaths(cfg.UserSearchPaths)

	var helper introspect.Helper
	if cfg.IntrospectHelper != "" {
		helper = introspect.NewProcessHelper(runner, cfg.IntrospectHelper)
	}

	sink := diag.NewSink(reportableKind, opts.MaxDiagnosticsPerModule)

	// The Evaluator needs a Registry reference to resolve imports and
	// fall back to builtins; the Registry needs an Analyzer (the
	// Evaluator) to populate a newly loaded Module's scope. Neither can
	// be constructed complete on its own, so the Evaluator is built
	// first with Registry nil and patched once the Registry exists —
	// the same pattern the teacher's pipeline.go uses to break its own
	// Analyzer<->Loader cycle.
	walker := calleval.New()
	analyzer := eval.New(nil, sink, walker)

	registry := modules.NewRegistry(fs, resolver, opts.Parser, analyzer, helper)
	analyzer.Registry = registry

	registry.SetBuiltins(modules.NewBuiltinsModule("builtins"))

	var store cache.Store
	if cfg.CacheEnabled && cfg.CacheDir != "" {
		opened, err := cache.Open(filepath.Join(cfg.CacheDir, "analysis.db"))
		if err != nil {
			return nil, fmt.Errorf("services: opening cache: %w", err)
		}
		store = opened
	}

	var ticker *progress.Ticker
	if opts.ProgressReporter != nil {
		ticker = progress.NewTicker(opts.ProgressReporter)
	}

	return &Services{
		Config:   cfg,
		FS:       fs,
		Runner:   runner,
		Resolver: resolver,
		Registry: registry,
		Diag:     sink,
		Cache:    store,
		Progress: ticker,
		Eval:     analyzer,
	}, nil
}

// reportableKind implements spec.md §6.6's "Library, Stub, and Builtin
// diagnostics are suppressed" filter: only User modules are reportable.
func reportableKind(moduleKind int, _ string) bool {
	return modules.Kind(moduleKind) == modules.KindUser
}

// Close releases the cache database, if one was opened. Safe to call on
// a Services with no cache configured.
func (s *Services) Close() error {
	if s.Cache != nil {
		return s.Cache.Close()
	}
	return nil
}

// Analyze resolves and (transitively, via the Registry's own import
// handling) analyzes the named module, returning the diagnostics
// recorded against it once analysis settles (spec.md §4.C, §6.6).
func (s *Services) Analyze(ctx context.Context, moduleName string) ([]diag.Diagnostic, error) {
	m, status := s.Registry.Resolve(ctx, moduleName)
	if status == modules.StatusUnresolved || m == nil {
		return nil, fmt.Errorf("services: module %q not found", moduleName)
	}
	if !s.Registry.EnsureAnalyzed(ctx, m) {
		return nil, fmt.Errorf("services: module %q did not finish analysis", moduleName)
	}
	return s.Diag.For(m.QualifiedName()), nil
}
