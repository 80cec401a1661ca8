package eval

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// VisitMemberExpr implements Member access (spec.md §4.D.2): look the
// name up on the target's Type, then narrow the result according to
// what kind of receiver produced it.
func (e *Evaluator) VisitMemberExpr(m *ast.MemberExpr) {
	target := e.Eval(m.Target)
	member, ok := target.Type().GetMember(m.Name)
	if !ok {
		e.set(values.NewInstance(values.UnknownType))
		return
	}
	e.set(e.resolveMember(m, target, member))
}

// resolveMember applies §4.D.2's four receiver rules:
//  1. module target — member returned unchanged.
//  2. class (not instance) receiver — a non-static, non-classmethod
//     method comes back unbound (MethodMember), still needing an
//     explicit receiver argument at the call site.
//  3. instance receiver, Property member — invoked immediately with no
//     arguments; the member expression's value IS the getter's result.
//  4. instance receiver, plain-Type member (a nested class or builtin
//     type read off an instance) — wrapped as a BoundType carrying the
//     instance as the implicit receiver for a later call.
func (e *Evaluator) resolveMember(m *ast.MemberExpr, receiver, member values.Member) values.Member {
	switch receiver.MemberKind() {
	case values.KindModule:
		return member

	case values.KindClass:
		if fn, ok := member.(*values.FunctionType); ok && !isStaticOrClassMethod(fn) {
			return &values.MethodMember{FunctionType: fn}
		}
		return member

	case values.KindInstance:
		if prop, ok := member.(*values.PropertyType); ok {
			return e.invoke(prop.FunctionType, receiver, nil, m.Span())
		}
		if fn, ok := member.(*values.FunctionType); ok && !isStaticOrClassMethod(fn) {
			return values.NewBoundMethod(fn, receiver)
		}
		switch t := member.(type) {
		case *values.ClassType:
			return values.NewBoundType(t, receiver)
		case *values.BuiltinType:
			return values.NewBoundType(t, receiver)
		}
		return member

	default:
		return member
	}
}

func isStaticOrClassMethod(fn *values.FunctionType) bool {
	if len(fn.Overloads) == 0 {
		return false
	}
	ov := fn.Overloads[0]
	return ov.IsStatic || ov.IsClassMethod
}
