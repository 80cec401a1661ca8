package eval

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// VisitIdentifier implements Name reference resolution (spec.md §4.D.1):
// a normal lookup against the current scope, falling back to the
// builtins module's global scope when nothing local/nonlocal/global
// matches. scope.Scope.Lookup does not itself perform that fallback —
// OptBuiltins only gates the bit, the actual builtins lookup lives here
// so package scope stays free of a dependency on modules.Registry.
func (e *Evaluator) VisitIdentifier(id *ast.Identifier) {
	if v, owner, ok := e.currentScope().Lookup(id.Name, scope.Normal); ok {
		v.AddReference(e.loc(id.Span()))
		_ = owner
		e.set(e.ensureEvaluated(v))
		return
	}

	if b := e.builtinsScope(); b != nil {
		if v, _, ok := b.Lookup(id.Name, scope.OptLocal); ok {
			v.AddReference(e.loc(id.Span()))
			e.set(e.ensureEvaluated(v))
			return
		}
	}

	e.set(values.NewInstance(values.UnknownType))
}

// builtinsScope returns the builtins module's scope, or nil when the
// module currently being walked IS the builtins module (no fallback to
// itself) or no Registry/builtins module is configured.
func (e *Evaluator) builtinsScope() *scope.GlobalScope {
	if e.Registry == nil {
		return nil
	}
	b := e.Registry.Builtins()
	if b == nil || b == e.module || b.Scope == nil {
		return nil
	}
	return b.Scope
}

// ensureEvaluated reads off a Variable's already-bound Member. Variables
// are always declared with a concrete Member up front (this evaluator
// walks statements eagerly, top to bottom), so the lazy half of spec.md
// §4.D.8 only matters for the recursive-definition case handled by
// ensureNode below; a plain name reference never itself needs the
// guard.
func (e *Evaluator) ensureEvaluated(v *scope.Variable) values.Member {
	if v.Value == nil {
		return values.NewInstance(values.UnknownType)
	}
	return v.Value
}

// ensureNode memoizes the result of evaluating node via compute exactly
// once, short-circuiting a re-entrant call (e.g. a class referencing
// its own name in a base-class or annotation position while that class
// is still being built) to Unknown rather than recursing forever
// (spec.md §4.D.8 "a definition under active evaluation resolves to
// Unknown for any re-entrant reference").
func (e *Evaluator) ensureNode(node ast.Node, compute func() values.Member) values.Member {
	if entry, ok := e.sym[node]; ok {
		if entry.evaluated {
			return entry.member
		}
		return values.NewInstance(values.UnknownType)
	}
	if e.guard[node] {
		return values.NewInstance(values.UnknownType)
	}
	e.guard[node] = true
	entry := &symbolEntry{}
	e.sym[node] = entry
	defer delete(e.guard, node)

	m := compute()
	entry.member = m
	entry.evaluated = true
	return m
}
