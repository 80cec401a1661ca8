package eval

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/generics"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// VisitConstantExpr implements literal folding (spec.md §3.1, §4.D):
// every ConstantKind maps onto one fixed BuiltinID, and the node's raw
// payload rides along unchanged as the Constant's Value. Only unary
// negation (negateConstant) reads it back with TryGet; binary operators
// and and/or do not fold payloads.
func (e *Evaluator) VisitConstantExpr(c *ast.ConstantExpr) {
	id, ok := builtinIDForConstant(c.Kind)
	if !ok {
		e.set(values.NewInstance(values.UnknownType))
		return
	}
	t := values.NewBuiltinType(id, e.builtinsModuleRef())
	e.set(values.NewConstant(t, c.Value))
}

func builtinIDForConstant(kind ast.ConstantKind) (values.BuiltinID, bool) {
	switch kind {
	case ast.ConstInt:
		return values.BInt, true
	case ast.ConstFloat:
		return values.BFloat, true
	case ast.ConstComplex:
		return values.BComplex, true
	case ast.ConstBool:
		return values.BBool, true
	case ast.ConstStr:
		return values.BStr, true
	case ast.ConstBytes:
		return values.BBytes, true
	case ast.ConstUnicode:
		return values.BUnicode, true
	case ast.ConstEllipsis:
		return values.BEllipsis, true
	case ast.ConstNone:
		return values.BNone, true
	default:
		return 0, false
	}
}

// VisitFStringExpr walks every literal and interpolated part for its
// reference side effects (spec.md §4.D.1); the expression itself always
// folds to a plain str instance, since the interpolated parts' actual
// runtime formatting is not modeled.
func (e *Evaluator) VisitFStringExpr(f *ast.FStringExpr) {
	for i, part := range f.Parts {
		e.Eval(part)
		if i < len(f.Specs) && f.Specs[i] != nil {
			f.Specs[i].Accept(e)
		}
	}
	e.set(values.NewInstance(values.NewBuiltinType(values.BStr, e.builtinsModuleRef())))
}

// VisitFormatSpecifier evaluates the `:spec` tail of an f-string
// replacement field. Its Text is a bare literal template, not an
// expression to walk, so this only needs to report a type for callers
// that Accept it directly.
func (e *Evaluator) VisitFormatSpecifier(*ast.FormatSpecifier) {
	e.set(values.NewInstance(values.NewBuiltinType(values.BStr, e.builtinsModuleRef())))
}

// VisitYieldExpr evaluates the yielded value for its side effects
// (spec.md §3.1 "YieldExpr marks the enclosing function as a
// generator"). The expression's own value — what a caller's `.send()`
// would supply — is never modeled, so it always folds to Unknown;
// propagating Value's type into the enclosing function's declared
// return type as Iterator[T] is left to the function's own return-type
// annotation, same as any other undeclared return.
func (e *Evaluator) VisitYieldExpr(y *ast.YieldExpr) {
	if y.Value != nil {
		e.Eval(y.Value)
	}
	e.set(values.NewInstance(values.UnknownType))
}

// VisitLambdaExpr builds a single-overload FunctionType from an inline
// lambda (spec.md §3.1, §4.E): parameters declare into a throwaway
// function scope so the body expression resolves names the same way an
// ordinary function body would, and the resulting Type becomes the
// Overload's ReturnType directly — a lambda has no statement body for
// internal/calleval to walk, so runOverload's body-less path (return
// ReturnType verbatim) is what actually answers a call to it.
func (e *Evaluator) VisitLambdaExpr(l *ast.LambdaExpr) {
	e.set(e.buildLambda(l))
}

func (e *Evaluator) buildLambda(l *ast.LambdaExpr) *values.FunctionType {
	params := make([]values.Param, 0, len(l.Params))
	for _, p := range l.Params {
		annotation := values.UnknownType
		if p.Annotation != nil {
			annotation = generics.ConvertAnnotation(e, e, p.Annotation)
		}
		params = append(params, values.Param{
			Name:       p.Name,
			Kind:       p.Kind,
			Annotation: annotation,
			Default:    p.Default,
			HasDefault: p.Default != nil,
		})
	}

	child := e.PushScope(scope.KindFunction, l)
	scope.DeclareImplicitDunders(child)
	for _, p := range params {
		child.Declare(p.Name, values.NewInstance(p.Annotation), scope.SourceDeclaration, e.loc(l.Span()))
	}
	ret := e.Eval(l.Body)
	e.PopScope()

	ov := &values.Overload{
		Params:     params,
		ReturnType: ret.Type(),
		IsLambda:   true,
	}
	return values.NewFunctionType("<lambda>", e.moduleRef(), ov)
}
