package eval

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// captureElements evaluates every element of els, keeps the types of the
// first values.MaxCapturedElements, and reports whether every element
// was captured (spec.md §4.D.6, §8.4).
func (e *Evaluator) captureElements(els []ast.Expression) ([]values.Type, bool) {
	exact := true
	types := make([]values.Type, 0, len(els))
	for i, el := range els {
		t := e.Eval(el).Type()
		if i < values.MaxCapturedElements {
			types = append(types, t)
			continue
		}
		exact = false
	}
	return types, exact
}

func (e *Evaluator) VisitListExpr(l *ast.ListExpr) {
	types, exact := e.captureElements(l.Elements)
	content := values.NewUnion(types...)
	e.set(values.NewInstance(values.NewListLike(values.CollList, content, e.builtinsModuleRef(), exact)))
}

func (e *Evaluator) VisitTupleExpr(t *ast.TupleExpr) {
	types, exact := e.captureElements(t.Elements)
	content := values.NewUnion(types...)
	e.set(values.NewInstance(values.NewListLike(values.CollTuple, content, e.builtinsModuleRef(), exact)))
}

func (e *Evaluator) VisitSetExpr(s *ast.SetExpr) {
	types, exact := e.captureElements(s.Elements)
	content := values.NewUnion(types...)
	e.set(values.NewInstance(values.NewListLike(values.CollSet, content, e.builtinsModuleRef(), exact)))
}

func (e *Evaluator) VisitDictExpr(d *ast.DictExpr) {
	exact := true
	keyTypes := make([]values.Type, 0, len(d.Pairs))
	valTypes := make([]values.Type, 0, len(d.Pairs))
	for i, p := range d.Pairs {
		k := e.Eval(p.Key).Type()
		v := e.Eval(p.Value).Type()
		if i < values.MaxCapturedElements {
			keyTypes = append(keyTypes, k)
			valTypes = append(valTypes, v)
			continue
		}
		exact = false
	}
	e.set(values.NewInstance(values.NewDict(values.NewUnion(keyTypes...), values.NewUnion(valTypes...), e.builtinsModuleRef(), exact)))
}

// VisitComprehensionForClause binds its loop variable (or evaluates its
// filter condition) against the comprehension scope the enclosing
// GeneratorExpr has already pushed; it carries no independent result.
func (e *Evaluator) VisitComprehensionForClause(c *ast.ComprehensionForClause) {
	switch c.Kind {
	case ast.CompFor:
		iterable := e.Eval(c.Iterable).Type()
		e.bindPattern(c.Target, values.NewInstance(elementTypeOf(iterable)), e.loc(c.Span()))
	case ast.CompIf:
		e.Eval(c.Cond)
	}
	e.set(values.NewInstance(values.UnknownType))
}

func elementTypeOf(t values.Type) values.Type {
	switch it := t.(type) {
	case *values.IteratorType:
		return it.Element
	case *values.CollectionType:
		if it.Kind == values.CollDict {
			return it.KeyType()
		}
		return it.ElementType()
	default:
		return values.UnknownType
	}
}

// VisitGeneratorExpr implements every comprehension form (spec.md
// §4.D.6): clauses run in their own scope, which is popped before
// returning so loop variables never leak into the enclosing scope.
func (e *Evaluator) VisitGeneratorExpr(g *ast.GeneratorExpr) {
	e.PushScope(scope.KindComprehension, g)
	defer e.PopScope()

	for _, clause := range g.Clauses {
		e.Eval(clause)
	}

	outType := e.Eval(g.Output).Type()

	switch {
	case g.IsDictComp:
		valType := e.Eval(g.OutputVal).Type()
		e.set(values.NewInstance(values.NewDict(outType, valType, e.builtinsModuleRef(), false)))
	case g.IsSetComp:
		e.set(values.NewInstance(values.NewListLike(values.CollSet, outType, e.builtinsModuleRef(), false)))
	case g.IsListComp:
		e.set(values.NewInstance(values.NewListLike(values.CollList, outType, e.builtinsModuleRef(), false)))
	default:
		e.set(values.NewInstance(values.NewIterator(outType, e.builtinsModuleRef())))
	}
}
