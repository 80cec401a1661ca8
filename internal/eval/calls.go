package eval

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/binder"
	"github.com/kestrel-lang/kestrel/internal/generics"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// VisitCallExpr implements Call dispatch (spec.md §4.D.3, §4.D.7): the
// Target evaluates to one of a closed set of callable shapes, each
// routed to the matching construction/invocation path.
func (e *Evaluator) VisitCallExpr(c *ast.CallExpr) {
	target := e.Eval(c.Target)
	e.set(e.callTarget(target, c.Args, c.Span()))
}

func (e *Evaluator) callTarget(target values.Member, args []ast.Argument, span token.Span) values.Member {
	switch t := target.(type) {
	case *values.BoundMethod:
		if t.Function != nil {
			return e.invoke(t.Function, t.Self, args, span)
		}
		if t.PlainType != nil {
			return e.constructInstance(t.PlainType, args, span)
		}
	case *values.MethodMember:
		return e.invoke(t.FunctionType, nil, args, span)
	case *values.FunctionType:
		return e.invoke(t, nil, args, span)
	case *values.ClassType:
		return e.constructInstance(t, args, span)
	case *values.BuiltinType:
		return e.constructInstance(t, args, span)
	case values.Instance:
		return e.callInstance(t, args, span)
	case values.Constant:
		return e.callInstance(t.Instance, args, span)
	}
	return values.NewInstance(values.UnknownType)
}

// callInstance handles calling an Instance directly, i.e. `__call__`
// (spec.md §4.D.7 "Instance with __call__").
func (e *Evaluator) callInstance(inst values.Instance, args []ast.Argument, span token.Span) values.Member {
	member, ok := inst.T.GetMember("__call__")
	if !ok {
		return values.NewInstance(values.UnknownType)
	}
	fn, ok := member.(*values.FunctionType)
	if !ok {
		return values.NewInstance(values.UnknownType)
	}
	return e.invoke(fn, inst, args, span)
}

// constructInstance implements the ClassType/BuiltinType constructor
// path (spec.md §4.D.7 "ClassType constructor via __init__", §4.G
// "For constructor call, determine Specifics from __init__"). Builtins
// carry no modeled __init__, so calling one just yields a plain
// Instance; user classes resolve __init__, specialize generics from its
// declared parameter annotations or the argument types, then walk the
// body for `self.x = ...` side effects.
func (e *Evaluator) constructInstance(t values.Type, args []ast.Argument, span token.Span) values.Member {
	ct, ok := t.(*values.ClassType)
	if !ok {
		for _, a := range args {
			if a.Value != nil {
				e.Eval(a.Value)
			}
		}
		return values.NewInstance(t)
	}

	initMember, hasInit := ct.GetMember("__init__")
	initFn, _ := initMember.(*values.FunctionType)
	if !hasInit || initFn == nil || len(initFn.Overloads) == 0 {
		return values.NewInstance(t)
	}

	as, ov := binder.SelectOverload(e, initFn, nil, args)
	if ov == nil {
		return values.NewInstance(t)
	}

	specific := t
	if ct.IsGeneric() {
		argValues := make([]values.Member, 0, len(as.Bindings))
		for _, b := range as.Bindings[1:] { // skip self
			argValues = append(argValues, b.Value)
		}
		specifics := generics.ConstructorSpecifics(ov, argValues)
		if len(specifics) > 0 {
			specific = generics.CreateSpecificType(ct, nil, specifics, ct.Module)
		}
	}

	instance := values.NewInstance(specific)
	if len(as.Bindings) > 0 {
		as.Bindings[0].Value = instance // self
	}
	e.runOverload(initFn, ov, as, span)
	return instance
}

// invoke implements §4.D.7.1's function-call algorithm: select the
// overload, bind its arguments, then evaluate the body.
func (e *Evaluator) invoke(fn *values.FunctionType, receiver values.Member, args []ast.Argument, span token.Span) values.Member {
	as, ov := binder.SelectOverload(e, fn, receiver, args)
	if ov == nil {
		return values.NewInstance(values.UnknownType)
	}
	return e.runOverload(fn, ov, as, span)
}

// runOverload declares the bound parameters in a fresh scope and
// computes the call's result: a stub or body-less overload resolves
// directly from its declared ReturnType; otherwise the Call Evaluator's
// BodyWalker (spec.md §4.F, internal/calleval) walks the body, guarded
// against re-entrant recursion on the same FunctionDef (spec.md §4.D.8).
func (e *Evaluator) runOverload(fn *values.FunctionType, ov *values.Overload, as *binder.ArgumentSet, span token.Span) values.Member {
	for _, be := range as.Errors {
		e.report(span, "bind-error", be.Message)
	}

	child := e.PushScope(scope.KindFunction, ov.Body)
	defer e.PopScope()
	scope.DeclareImplicitDunders(child)
	as.DeclareParametersInScope(child, e.loc(span))

	if ov.IsStub || ov.Body == nil || e.Walker == nil {
		if !values.IsUnknown(ov.ReturnType) {
			return values.NewInstance(ov.ReturnType)
		}
		return values.NewInstance(values.UnknownType)
	}

	if !e.EnterCall(ov.Body) {
		return values.NewInstance(values.UnknownType)
	}
	defer e.ExitCall(ov.Body)

	return e.Walker.Walk(e, ov, as)
}

// EnterCall/ExitCall guard a FunctionDef body against re-entrant
// evaluation (spec.md §4.D.8, §4.F): a call already in progress for the
// same body resolves any nested re-entry to Unknown instead of
// recursing without bound.
func (e *Evaluator) EnterCall(node ast.Node) bool {
	if e.guard[node] {
		return false
	}
	e.guard[node] = true
	return true
}

func (e *Evaluator) ExitCall(node ast.Node) {
	delete(e.guard, node)
}
