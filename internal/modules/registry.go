package modules

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/fsiface"
	"github.com/kestrel-lang/kestrel/internal/introspect"
	"github.com/kestrel-lang/kestrel/internal/scope"
)

// maxRetries bounds Registry.Resolve's retry loop when a concurrent
// load is in progress (spec.md §4.C point 3, §5 "bounded at ~5 retries").
const maxRetries = 5

// Parser is the external lexer/parser contract (spec.md §1, §6.2):
// production wiring supplies a real parser; this core only consumes the
// resulting tree.
type Parser interface {
	Parse(path, content string) (*ast.Module, error)
}

// Analyzer walks a Module's parsed tree to populate its GlobalScope
// (spec.md §4.D/§4.F). It is injected rather than imported directly
// because internal/eval depends on internal/modules to resolve imports —
// importing it back here would cycle. internal/services wires the two
// together (spec.md §9 Design Notes, "bundle into a Services context").
type Analyzer interface {
	AnalyzeModule(m *Module) error
}

// Registry is the Module Registry & Resolver (spec.md §4.C): a
// concurrent qualified-name -> Module map with sentinel-based cycle
// breaking, grounded on the teacher's loader.go map-of-modules cache
// and cycle-detection map, generalized from single-threaded to the
// concurrent sentinel/NeedRetry protocol spec.md §5 requires.
type Registry struct {
	fs       fsiface.FileSystem
	resolver *Resolver
	parser   Parser
	analyzer Analyzer
	helper   introspect.Helper

	mu      sync.Mutex
	modules map[string]*Module // qualified name -> Module

	builtinsOnce sync.Once
	builtins     *Module

	specializedFactories map[string]func(name string) *Module
}

func NewRegistry(fs fsiface.FileSystem, resolver *Resolver, parser Parser, analyzer Analyzer, helper introspect.Helper) *Registry {
	return &Registry{
		fs:                   fs,
		resolver:             resolver,
		parser:               parser,
		analyzer:             analyzer,
		helper:               helper,
		modules:              make(map[string]*Module),
		specializedFactories: make(map[string]func(name string) *Module),
	}
}

// SetBuiltins installs the pre-built, immutable builtins module (spec.md
// §4.C point 1: "Builtins are resolved to a cached singleton").
func (r *Registry) SetBuiltins(m *Module) {
	r.builtinsOnce.Do(func() {
		r.builtins = m
		r.mu.Lock()
		r.modules[m.QualifiedName()] = m
		r.mu.Unlock()
	})
}

func (r *Registry) Builtins() *Module { return r.builtins }

// Specialize registers a host-supplied factory for a specialized module
// name (spec.md §4.C point 6, resolver's "specialize(name, factory)").
func (r *Registry) Specialize(name string, factory func(name string) *Module) {
	r.mu.Lock()
	r.specializedFactories[name] = factory
	r.mu.Unlock()
}

// GetSpecialized returns a previously constructed specialized module.
func (r *Registry) GetSpecialized(name string) (*Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules["specialized:"+name]
	return m, ok
}

// Resolve returns the loaded Module for a dotted import name, retrying
// while a concurrent load is in flight (spec.md §4.C point 3, §5).
func (r *Registry) Resolve(ctx context.Context, name string) (*Module, LoadStatus) {
	if factory, ok := r.specializedFactory(name); ok {
		return r.resolveSpecialized(name, factory), StatusOK
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		m, status := r.resolveOnce(ctx, name)
		if status != StatusNeedRetry {
			return m, status
		}
		select {
		case <-ctx.Done():
			return nil, StatusNeedRetry
		case <-time.After(time.Millisecond):
		}
	}
	return nil, StatusNeedRetry
}

func (r *Registry) specializedFactory(name string) (func(name string) *Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.specializedFactories[name]
	return f, ok
}

func (r *Registry) resolveSpecialized(name string, factory func(name string) *Module) *Module {
	r.mu.Lock()
	if m, ok := r.modules["specialized:"+name]; ok {
		r.mu.Unlock()
		return m
	}
	r.mu.Unlock()

	m := factory(name)
	m.Kind = KindSpecialized
	m.setState(StateAnalyzed) // spec.md §3.2: Specialized modules skip directly to Analyzed
	r.pairStub(m)

	r.mu.Lock()
	r.modules["specialized:"+name] = m
	r.mu.Unlock()
	return m
}

// resolveOnce performs one lookup-or-load pass: check the map, insert a
// sentinel on miss, load, and replace the sentinel atomically on
// success (spec.md §4.C points 2,3,5).
func (r *Registry) resolveOnce(ctx context.Context, name string) (*Module, LoadStatus) {
	path, found := r.resolver.FindModule(name)
	if !found {
		return r.unresolved(name), StatusUnresolved
	}

	qualified := CalculateQualifiedName(name, path.Dir, r.resolver.SiteDir(), r.resolver.TypeshedRoot(), r.resolver.LanguageVersion())

	r.mu.Lock()
	if existing, ok := r.modules[qualified]; ok {
		r.mu.Unlock()
		if existing.state() == StateLoading {
			select {
			case <-existing.waitHandle():
				return existing, StatusOK
			default:
				return nil, StatusNeedRetry
			}
		}
		return existing, StatusOK
	}
	sentinel := newModule(name, qualified, path.Kind)
	sentinel.setState(StateLoading)
	r.modules[qualified] = sentinel
	r.mu.Unlock()

	loaded, err := r.load(ctx, name, path)
	if err != nil {
		loaded = r.markUnresolved(sentinel, name)
	} else {
		r.mu.Lock()
		r.modules[qualified] = loaded
		r.mu.Unlock()
		sentinel.setState(StateAnalyzed)
	}

	r.loadStubFor(ctx, name, loaded)
	return loaded, StatusOK
}

func (r *Registry) unresolved(name string) *Module {
	m := newModule(name, "unresolved."+name, KindUnresolved)
	m.setState(StateAnalyzed)
	return m
}

func (r *Registry) markUnresolved(sentinel *Module, name string) *Module {
	sentinel.Kind = KindUnresolved
	sentinel.setState(StateAnalyzed)
	return sentinel
}

// load reads and parses a module's source files, then hands off to the
// Analyzer (spec.md §4.C point 4: user/library search paths). A directory
// with no source files goes to loadCompiled, which parses the
// introspection helper's output instead of files on disk.
func (r *Registry) load(ctx context.Context, name string, path *ModulePath) (*Module, error) {
	files, err := detectSourceFiles(path.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing module dir %s: %w", path.Dir, err)
	}
	if len(files) == 0 {
		if r.helper != nil {
			return r.loadCompiled(ctx, name, path)
		}
		return nil, fmt.Errorf("no source files found in %s", path.Dir)
	}
	sort.Strings(files)

	qualified := CalculateQualifiedName(name, path.Dir, r.resolver.SiteDir(), r.resolver.TypeshedRoot(), r.resolver.LanguageVersion())
	m := newModule(name, qualified, path.Kind)
	m.FilePath = files[0]

	var sb strings.Builder
	var mod *ast.Module
	for _, f := range files {
		content, err := r.fs.ReadText(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		sb.WriteString(content)
		parsed, err := r.parser.Parse(f, content)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		if mod == nil {
			mod = parsed
		} else {
			mod.Statements = append(mod.Statements, parsed.Statements...)
		}
	}
	m.Content = sb.String()
	m.Scope = scope.NewGlobalScope(mod, qualified)

	if r.analyzer != nil {
		if err := r.analyzer.AnalyzeModule(m); err != nil {
			return nil, fmt.Errorf("analyzing %s: %w", name, err)
		}
	}
	m.setState(StateAnalyzed)
	return m, nil
}

// loadCompiled scrapes a compiled module's interface via the external
// introspection helper (spec.md §4.C point 4b, §6.3).
func (r *Registry) loadCompiled(ctx context.Context, name string, path *ModulePath) (*Module, error) {
	source, err := r.helper.Introspect(ctx, name, path.Dir)
	if err != nil {
		return nil, fmt.Errorf("introspecting compiled module %s: %w", name, err)
	}
	qualified := CalculateQualifiedName(name, path.Dir, r.resolver.SiteDir(), r.resolver.TypeshedRoot(), r.resolver.LanguageVersion()) + "." + uuid.NewString()[:8]
	m := newModule(name, qualified, KindCompiledBuiltin)
	parsed, err := r.parser.Parse(path.Dir, source)
	if err != nil {
		return nil, fmt.Errorf("parsing introspected %s: %w", name, err)
	}
	m.Content = source
	m.Scope = scope.NewGlobalScope(parsed, qualified)
	if r.analyzer != nil {
		if err := r.analyzer.AnalyzeModule(m); err != nil {
			return nil, fmt.Errorf("analyzing introspected %s: %w", name, err)
		}
	}
	m.setState(StateAnalyzed)
	return m, nil
}

// loadStubFor loads name's typeshed stub in parallel with the primary
// load and pairs the two (spec.md §4.C point 4c: "loaded in parallel as
// Stub, paired with the primary").
func (r *Registry) loadStubFor(ctx context.Context, name string, primary *Module) {
	if primary == nil || primary.Kind == KindStub {
		return
	}
	stubPath, found := r.resolver.FindModule(name)
	if !found || !stubPath.IsStub {
		return
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stub, err := r.load(ctx, name, stubPath)
		if err != nil {
			return
		}
		r.pairStubPointer(primary, stub)
	}()
	wg.Wait()
}

func (r *Registry) pairStubPointer(primary, stub *Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	primary.PairStub(stub)
	r.modules[stub.QualifiedName()] = stub
}

func (r *Registry) pairStub(m *Module) {
	// Specialized modules still pair with a stub when one resolves
	// under the same name (spec.md §4.C point 6).
	stubPath, found := r.resolver.FindModule(m.Name)
	if !found || !stubPath.IsStub {
		return
	}
	stub, err := r.load(context.Background(), m.Name, stubPath)
	if err != nil {
		return
	}
	m.PairStub(stub)
}

// EnsureAnalyzed blocks until m reaches StateAnalyzed for its current
// Version, bounded by maxRetries waits on its task handle (spec.md §5).
func (r *Registry) EnsureAnalyzed(ctx context.Context, m *Module) bool {
	for attempt := 0; attempt < maxRetries; attempt++ {
		if m.state() == StateAnalyzed {
			return true
		}
		select {
		case <-m.waitHandle():
			return m.state() == StateAnalyzed
		case <-ctx.Done():
			return false
		case <-time.After(100 * time.Millisecond):
		}
	}
	return m.state() == StateAnalyzed
}
