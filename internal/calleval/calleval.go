// Package calleval implements the Call Evaluator's body walk (spec.md
// §4.F): given an already-bound ArgumentSet and the scope runOverload
// has already pushed and populated, walk the overload's statements,
// short-circuit on the first non-Unknown return, and fold `self.x = ...`
// assignments into the declaring instance's class so later reads of
// that attribute see an inferred type instead of Unknown. Grounded on
// the teacher's call-frame walk in internal/evaluator (expressions_calls.go,
// object_control.go): a dedicated walk function threaded through the
// same Evaluator/ArgumentSet rather than a second visitor, since the
// statements it walks are already ordinary ast.Statement nodes internal/eval
// knows how to dispatch.
package calleval

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/binder"
	"github.com/kestrel-lang/kestrel/internal/eval"
	"github.com/kestrel-lang/kestrel/internal/generics"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// Walker implements eval.BodyWalker.
type Walker struct{}

func New() *Walker { return &Walker{} }

var _ eval.BodyWalker = (*Walker)(nil)

// Walk implements eval.BodyWalker. Scope push/pop and parameter
// declaration already happened in runOverload; this only walks
// statements and reports the call's inferred result.
func (w *Walker) Walk(e *eval.Evaluator, overload *values.Overload, args *binder.ArgumentSet) values.Member {
	selfClass := selfReceiverClass(overload, args)
	if result, ok := walkStatements(e, overload.Body.Body, selfClass); ok {
		return result
	}
	return values.NewInstance(values.UnknownType)
}

// selfReceiverClass reports the ClassType self.x assignments should
// update, or nil when this call has no self binding at all (spec.md
// §4.F point 4: "only when the function's first parameter is indeed
// the class's self").
func selfReceiverClass(overload *values.Overload, args *binder.ArgumentSet) *values.ClassType {
	if len(overload.Params) == 0 || overload.Params[0].Name != "self" {
		return nil
	}
	if len(args.Bindings) == 0 || args.Bindings[0].Value == nil {
		return nil
	}
	ct, ok := args.Bindings[0].Value.Type().(*values.ClassType)
	if !ok {
		return nil
	}
	return ct
}

// walkStatements walks stmts in order. A BlockStmt (the flattened
// representation of an if/while/for body) is walked transparently in
// the same self-tracking, return-tracking context; a nested
// FunctionDef/ClassDef is dispatched through ordinary Visitor dispatch
// (building its own Type) but never descended into for self.x
// harvesting or return short-circuiting — it opens its own call frame
// entirely, evaluated later on its own CallExpr.
func walkStatements(e *eval.Evaluator, stmts []ast.Statement, selfClass *values.ClassType) (values.Member, bool) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.BlockStmt:
			if result, ok := walkStatements(e, s.Statements, selfClass); ok {
				return result, true
			}
		case *ast.ReturnStmt:
			if s.Value == nil {
				continue
			}
			val := e.Eval(s.Value)
			if !values.IsUnknown(val.Type()) {
				return val, true
			}
		case *ast.AssignmentStmt:
			walkAssignment(e, s, selfClass)
		default:
			e.ExecStatement(stmt)
		}
	}
	return nil, false
}

// walkAssignment mirrors Evaluator.VisitAssignmentStmt, inserting the
// one extra step it cannot do on its own: recording a `self.x = value`
// target into the declaring instance's class member map (spec.md §4.F
// point 4).
func walkAssignment(e *eval.Evaluator, s *ast.AssignmentStmt, selfClass *values.ClassType) {
	val := e.Eval(s.Value)
	if s.Annotation != nil {
		if annType := generics.ConvertAnnotation(e, e, s.Annotation); !values.IsUnknown(annType) {
			val = values.NewInstance(annType)
		}
	}

	if me, name, ok := selfAttribute(s.Target, selfClass); ok {
		e.Eval(me.Target) // reference the `self` receiver, matching bindPattern's plain-MemberExpr case
		selfClass.Members[name] = val
		return
	}

	e.BindPattern(s.Target, val, s.Span())
}

// selfAttribute reports the attribute name of a `self.<name> = ...`
// target, true only when selfClass is non-nil and the receiver
// expression is a bare `self` reference.
func selfAttribute(pat ast.Pattern, selfClass *values.ClassType) (*ast.MemberExpr, string, bool) {
	if selfClass == nil {
		return nil, "", false
	}
	me, ok := pat.(*ast.MemberExpr)
	if !ok {
		return nil, "", false
	}
	id, ok := me.Target.(*ast.Identifier)
	if !ok || id.Name != "self" {
		return nil, "", false
	}
	return me, me.Name, true
}
