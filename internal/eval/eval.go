// Package eval implements the Expression Evaluator and Symbol Table
// (spec.md §4.D): one dispatch per syntax-tree node via ast.Visitor,
// producing values.Member results, plus the per-module lazy definition
// cache and recursion guard (§4.D.8). Grounded on the teacher's
// internal/evaluator package: a single Evaluator struct threading
// mutable walk state (current scope, current module) through a visitor
// whose methods stash their result in one field rather than returning
// it, matching ast.Visitor's no-return-value contract.
package eval

import (
	"context"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/binder"
	"github.com/kestrel-lang/kestrel/internal/diag"
	"github.com/kestrel-lang/kestrel/internal/generics"
	"github.com/kestrel-lang/kestrel/internal/modules"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// BodyWalker performs the Call Evaluator's body walk (spec.md §4.F). It
// is declared here, narrow, rather than imported from internal/calleval
// so that package can depend on eval (to reach *Evaluator's exported
// Eval/PushScope surface) without a cycle back.
type BodyWalker interface {
	Walk(e *Evaluator, overload *values.Overload, args *binder.ArgumentSet) values.Member
}

// symbolEntry is one pending-or-resolved definition (spec.md §4.D.8).
type symbolEntry struct {
	member    values.Member
	evaluated bool
}

// Evaluator walks one module's syntax tree at a time (spec.md §5
// "single-threaded cooperative per module analysis" — concurrency is at
// module granularity only, supervised by the Registry).
type Evaluator struct {
	ast.BaseVisitor

	Registry *modules.Registry
	Diag     *diag.Sink
	Walker   BodyWalker

	module     *modules.Module
	scopes     []*scope.Scope
	guard      map[ast.Node]bool
	sym        map[ast.Node]*symbolEntry
	classStack []*values.ClassType

	result values.Member
}

func New(registry *modules.Registry, sink *diag.Sink, walker BodyWalker) *Evaluator {
	return &Evaluator{Registry: registry, Diag: sink, Walker: walker}
}

var _ modules.Analyzer = (*Evaluator)(nil)
var _ binder.Evaluator = (*Evaluator)(nil)
var _ generics.Evaluator = (*Evaluator)(nil)
var _ ast.Visitor = (*Evaluator)(nil)

// AnalyzeModule implements modules.Analyzer: walks m's top-level
// statements into m.Scope, which the Registry has already created
// (spec.md §4.C point 4, §2 "Registry parses, then hands the syntax
// tree to a Module Walker driven by D").
func (e *Evaluator) AnalyzeModule(m *modules.Module) error {
	prevModule, prevScopes, prevGuard, prevSym := e.module, e.scopes, e.guard, e.sym
	e.module = m
	e.scopes = []*scope.Scope{m.Scope.Scope}
	e.guard = make(map[ast.Node]bool)
	e.sym = make(map[ast.Node]*symbolEntry)
	defer func() {
		e.module, e.scopes, e.guard, e.sym = prevModule, prevScopes, prevGuard, prevSym
	}()

	mod, ok := m.AnalysisResult.(*ast.Module)
	if !ok {
		mod = moduleNode(m)
	}
	if mod == nil {
		return nil
	}
	for _, stmt := range mod.Statements {
		e.execStatement(stmt)
	}
	m.AnalysisResult = m.Scope
	return nil
}

// moduleNode recovers the parsed tree from m.Scope.Node, the form the
// Registry stores it in (spec.md §4.C's load() passes the parsed
// *ast.Module straight into scope.NewGlobalScope).
func moduleNode(m *modules.Module) *ast.Module {
	mod, _ := m.Scope.Node.(*ast.Module)
	return mod
}

func (e *Evaluator) currentScope() *scope.Scope { return e.scopes[len(e.scopes)-1] }

// loc builds the Location Declare/AddReference expect, tagging span with
// the module currently being walked.
func (e *Evaluator) loc(span token.Span) token.Location {
	id := ""
	if e.module != nil {
		id = e.module.QualifiedName()
	}
	return token.Location{ModuleID: id, Span: span}
}

// PushScope/PopScope give internal/calleval (and nested class/function
// definition evaluation here) scoped acquisition with guaranteed release
// on every exit path (spec.md §5 "the walker guarantees pop-on-exception
// semantics").
func (e *Evaluator) PushScope(kind scope.Kind, node ast.Node) *scope.Scope {
	s := scope.NewScope(kind, node, e.currentScope())
	e.scopes = append(e.scopes, s)
	return s
}

func (e *Evaluator) PopScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *Evaluator) CurrentModule() *modules.Module { return e.module }

// currentClass returns the ClassType currently being built, or nil
// outside a class body (spec.md §4.F point 4: "only when the function's
// first parameter is indeed the class's self").
func (e *Evaluator) currentClass() *values.ClassType {
	if len(e.classStack) == 0 {
		return nil
	}
	return e.classStack[len(e.classStack)-1]
}

// Lookup implements generics.ScopeLookup with the builtins fallback
// scope.Scope.Lookup itself cannot perform (spec.md §4.B "on miss, fall
// through to the builtins module's global scope"): the same two-step
// lookup VisitIdentifier does, exposed so annotation conversion
// (`x: int`, a bare builtin name with no index expression) resolves
// builtin type names the same way a plain name reference would.
func (e *Evaluator) Lookup(name string, opts scope.LookupOptions) (*scope.Variable, *scope.Scope, bool) {
	if v, s, ok := e.currentScope().Lookup(name, opts); ok {
		return v, s, true
	}
	if opts&scope.OptBuiltins != 0 {
		if b := e.builtinsScope(); b != nil {
			if v, s, ok := b.Lookup(name, scope.OptLocal); ok {
				return v, s, true
			}
		}
	}
	return nil, nil, false
}

// Eval implements binder.Evaluator and generics.Evaluator: evaluate one
// expression to a Member via the Visitor dispatch below.
func (e *Evaluator) Eval(expr ast.Expression) values.Member {
	if expr == nil {
		return values.NewInstance(values.UnknownType)
	}
	expr.Accept(e)
	r := e.result
	e.result = nil
	if r == nil {
		return values.NewInstance(values.UnknownType)
	}
	return r
}

func (e *Evaluator) set(m values.Member) { e.result = m }

func (e *Evaluator) report(span token.Span, code, message string) {
	if e.Diag == nil || e.module == nil {
		return
	}
	e.Diag.Report(int(e.module.Kind), e.module.QualifiedName(), diag.Diagnostic{
		Message: message, Span: span, Code: code, Severity: diag.SeverityWarning, Source: diag.SourceAnalysis,
	})
}

// execStatement dispatches a statement by evaluating it through the
// Visitor; statement Visit methods have no meaningful "result" and
// instead mutate scope directly.
func (e *Evaluator) execStatement(stmt ast.Statement) {
	stmt.Accept(e)
}

func (e *Evaluator) VisitBlockStmt(b *ast.BlockStmt) {
	for _, s := range b.Statements {
		e.execStatement(s)
	}
}

func (e *Evaluator) VisitExpressionStmt(s *ast.ExpressionStmt) {
	e.Eval(s.Value)
}

func (e *Evaluator) VisitGlobalStmt(s *ast.GlobalStmt) {
	for _, n := range s.Names {
		e.currentScope().Global[n] = true
	}
}

func (e *Evaluator) VisitNonlocalStmt(s *ast.NonlocalStmt) {
	for _, n := range s.Names {
		e.currentScope().NonLocal[n] = true
	}
}

func (e *Evaluator) VisitReturnStmt(s *ast.ReturnStmt) {
	// Bare evaluation for side effects; internal/calleval intercepts
	// ReturnStmt itself during a body walk and short-circuits there
	// (spec.md §4.F point 4) — reaching here means a return outside a
	// tracked call-evaluator walk, which has no result to report to.
	if s.Value != nil {
		e.Eval(s.Value)
	}
}

func (e *Evaluator) VisitImportStatement(s *ast.ImportStatement) {
	ctx := context.Background()
	m, status := e.Registry.Resolve(ctx, s.ModuleName)
	if status == modules.StatusUnresolved || m == nil {
		e.declareImportFallback(s)
		return
	}
	modType := e.moduleType(m)
	modMember := &values.ModuleMember{ModuleType: modType}

	if !s.IsFrom {
		name := s.ModuleName
		if s.Alias != "" {
			name = s.Alias
		}
		e.currentScope().Declare(name, modMember, scope.SourceImport, e.loc(s.Span()))
		return
	}
	for i, fromName := range s.FromNames {
		alias := fromName
		if i < len(s.FromAlias) && s.FromAlias[i] != "" {
			alias = s.FromAlias[i]
		}
		member, ok := modType.GetMember(fromName)
		if !ok {
			member = values.NewInstance(values.UnknownType)
		}
		e.currentScope().Declare(alias, member, scope.SourceImport, e.loc(s.Span()))
	}
}

func (e *Evaluator) declareImportFallback(s *ast.ImportStatement) {
	if !s.IsFrom {
		name := s.ModuleName
		if s.Alias != "" {
			name = s.Alias
		}
		e.currentScope().Declare(name, values.NewInstance(values.UnknownType), scope.SourceImport, e.loc(s.Span()))
		return
	}
	for i, fromName := range s.FromNames {
		alias := fromName
		if i < len(s.FromAlias) && s.FromAlias[i] != "" {
			alias = s.FromAlias[i]
		}
		e.currentScope().Declare(alias, values.NewInstance(values.UnknownType), scope.SourceImport, e.loc(s.Span()))
	}
}

// moduleType builds the Type seen at import sites. When m has a paired
// stub, member queries consult the stub first (spec.md §3.2 "Stub →
// PrimaryModule, Primary → Stub", Glossary "Primary module / Stub...
// when both are present, member queries consult the stub first").
func (e *Evaluator) moduleType(m *modules.Module) *values.ModuleType {
	return &values.ModuleType{Name: m.Name, QualifiedName: m.QualifiedName(), Module: m, Scope: stubFirstScope(m)}
}

func stubFirstScope(m *modules.Module) values.MemberProvider {
	if m.Stub != nil && m.Stub.Scope != nil {
		return &stubPairedScope{primary: m.Scope, stub: m.Stub.Scope}
	}
	return m.Scope
}

// stubPairedScope answers member queries against the stub scope first,
// falling back to the primary module's own scope.
type stubPairedScope struct {
	primary *scope.GlobalScope
	stub    *scope.GlobalScope
}

func (s *stubPairedScope) GetMember(name string) (values.Member, bool) {
	if s.stub != nil {
		if m, ok := s.stub.GetMember(name); ok {
			return m, true
		}
	}
	if s.primary != nil {
		return s.primary.GetMember(name)
	}
	return nil, false
}

func (s *stubPairedScope) MemberNames() []string {
	seen := make(map[string]bool)
	var names []string
	if s.stub != nil {
		for _, n := range s.stub.MemberNames() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	if s.primary != nil {
		for _, n := range s.primary.MemberNames() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

func (e *Evaluator) VisitAssignmentStmt(s *ast.AssignmentStmt) {
	val := e.Eval(s.Value)
	if s.Annotation != nil {
		annType := generics.ConvertAnnotation(e, e, s.Annotation)
		if !values.IsUnknown(annType) {
			val = values.NewInstance(annType)
		}
	}
	e.bindPattern(s.Target, val, e.loc(s.Span()))
}

func (e *Evaluator) bindPattern(pat ast.Pattern, val values.Member, loc token.Location) {
	switch p := pat.(type) {
	case *ast.Identifier:
		e.currentScope().Declare(p.Name, val, scope.SourceDeclaration, loc)
	case *ast.TuplePattern:
		for _, el := range p.Elements {
			e.bindPattern(el, values.NewInstance(values.UnknownType), loc)
		}
	case *ast.ListPattern:
		for _, el := range p.Elements {
			e.bindPattern(el, values.NewInstance(values.UnknownType), loc)
		}
	case *ast.MemberExpr:
		// `obj.attr = value` outside a tracked call-evaluator walk: the
		// receiver is still evaluated for its reference side effects,
		// but the member table is not updated here — only a `self.x =
		// ...` assignment inside a body walk does that (spec.md §4.F
		// point 4, implemented in internal/calleval).
		e.Eval(p.Target)
	}
}

// ExecStatement exposes execStatement to internal/calleval's body
// walker, which dispatches statement kinds it does not itself
// special-case (ExpressionStmt, Global/NonlocalStmt, nested
// FunctionDef/ClassDef, import statements, ...) through ordinary
// Visitor dispatch rather than duplicating every VisitXStmt method.
func (e *Evaluator) ExecStatement(stmt ast.Statement) {
	e.execStatement(stmt)
}

// BindPattern exposes bindPattern to internal/calleval, which must
// special-case a `self.x = value` target (spec.md §4.F point 4) before
// falling back to ordinary pattern binding for everything else.
func (e *Evaluator) BindPattern(pat ast.Pattern, val values.Member, span token.Span) {
	e.bindPattern(pat, val, e.loc(span))
}

func (e *Evaluator) VisitModule(*ast.Module) {}

func (e *Evaluator) VisitTuplePattern(*ast.TuplePattern) {}
func (e *Evaluator) VisitListPattern(*ast.ListPattern)   {}

func (e *Evaluator) VisitErrorExpr(x *ast.ErrorExpr) {
	e.set(values.NewInstance(values.UnknownType))
}
