package eval

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/generics"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// VisitIndexExpr implements Index/subscript (spec.md §4.D.4): a Type
// receiver (a class or builtin type read as itself) goes through
// Generic Instantiation first; anything else is treated as subscripting
// an instance, with slice/tuple passthrough ahead of plain index
// delegation to the collection's content type or a `__getitem__` call.
func (e *Evaluator) VisitIndexExpr(idx *ast.IndexExpr) {
	target := e.Eval(idx.Target)

	if target.MemberKind() == values.KindClass {
		e.set(generics.Instantiate(e, target, idx.Index, target.DeclaringModule()))
		return
	}

	e.set(e.indexInstance(target, idx.Index))
}

func (e *Evaluator) indexInstance(target values.Member, indexExpr ast.Expression) values.Member {
	_, isSlice := indexExpr.(*ast.SliceExpr)
	if _, isTuple := indexExpr.(*ast.TupleExpr); isTuple {
		isSlice = true // spec.md §4.D.4: "If the index is a slice or tuple, return t unchanged"
	}
	e.Eval(indexExpr) // side effects / reference tracking regardless of shape

	t := target.Type()
	if isSlice {
		return values.NewInstance(t) // slicing preserves the target's type
	}
	if coll, ok := t.(*values.CollectionType); ok {
		if coll.Kind == values.CollDict {
			return values.NewInstance(coll.ValueType())
		}
		return values.NewInstance(coll.ElementType())
	}

	if member, ok := t.GetMember("__getitem__"); ok {
		if fn, ok := member.(*values.FunctionType); ok {
			return e.invoke(fn, target, []ast.Argument{{Kind: ast.ArgPositional, Value: indexExpr}}, indexExpr.Span())
		}
	}
	return values.NewInstance(values.UnknownType)
}

// VisitSliceExpr evaluates each present bound for its side effects;
// the slice itself carries no independent Type (spec.md §4.D.4 treats
// slicing as passthrough on the target's type, not the slice
// expression).
func (e *Evaluator) VisitSliceExpr(s *ast.SliceExpr) {
	if s.Start != nil {
		e.Eval(s.Start)
	}
	if s.Stop != nil {
		e.Eval(s.Stop)
	}
	if s.Step != nil {
		e.Eval(s.Step)
	}
	e.set(values.NewInstance(values.UnknownType))
}
