package eval_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/calleval"
	"github.com/kestrel-lang/kestrel/internal/eval"
	"github.com/kestrel-lang/kestrel/internal/modules"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// newModule wraps stmts in a synthetic *modules.Module whose
// AnalysisResult is already the parsed tree, the shape
// Evaluator.AnalyzeModule expects without going through a Registry.
func newModule(stmts ...ast.Statement) *modules.Module {
	tree := ast.NewModule(token.Span{}, "test.py", stmts)
	return &modules.Module{
		Name:           "m",
		Qualified:      "m",
		Kind:           modules.KindUser,
		Scope:          scope.NewGlobalScope(tree, "m"),
		AnalysisResult: tree,
	}
}

func newEvaluator() *eval.Evaluator {
	return eval.New(nil, nil, calleval.New())
}

func lookup(t *testing.T, m *modules.Module, name string) values.Member {
	t.Helper()
	v, _, ok := m.Scope.Lookup(name, scope.OptLocal)
	require.True(t, ok, "expected %q to be declared", name)
	return v.Value
}

func TestSimpleAssignmentInfersConstant(t *testing.T) {
	assign := &ast.AssignmentStmt{
		Target: ast.NewIdentifier(token.Span{}, "x"),
		Value:  ast.NewIntConstant(token.Span{}, big.NewInt(1)),
	}
	m := newModule(assign)

	require.NoError(t, newEvaluator().AnalyzeModule(m))

	x := lookup(t, m, "x")
	c, ok := x.(values.Constant)
	require.True(t, ok, "expected a folded Constant, got %T", x)
	bt, ok := c.Type().(*values.BuiltinType)
	require.True(t, ok)
	require.Equal(t, values.BInt, bt.ID)

	n, ok := values.TryGet[*big.Int](c)
	require.True(t, ok)
	require.Equal(t, int64(1), n.Int64())
}

func TestStringConstantFolds(t *testing.T) {
	assign := &ast.AssignmentStmt{
		Target: ast.NewIdentifier(token.Span{}, "s"),
		Value:  &ast.ConstantExpr{Kind: ast.ConstStr, Value: "hi"},
	}
	m := newModule(assign)

	require.NoError(t, newEvaluator().AnalyzeModule(m))

	s := lookup(t, m, "s")
	c, ok := s.(values.Constant)
	require.True(t, ok)
	require.Equal(t, values.BStr, c.Type().(*values.BuiltinType).ID)
	str, ok := values.TryGet[string](c)
	require.True(t, ok)
	require.Equal(t, "hi", str)
}

// TestClassSelfAttributeInference builds:
//
//	class Foo:
//	    def __init__(self):
//	        self.x = 1
//	f = Foo()
//
// and checks that constructing Foo records x's inferred type on the
// class (spec.md §4.F point 4), reachable afterward off the ClassType
// itself (the shallow member map every instance shares).
func TestClassSelfAttributeInference(t *testing.T) {
	selfX := &ast.AssignmentStmt{
		Target: &ast.MemberExpr{Target: ast.NewIdentifier(token.Span{}, "self"), Name: "x"},
		Value:  ast.NewIntConstant(token.Span{}, big.NewInt(1)),
	}
	initDef := &ast.FunctionDef{
		Name:   ast.NewIdentifier(token.Span{}, "__init__"),
		Params: []ast.Parameter{{Name: "self", Kind: ast.ParamPositionalOrKeyword}},
		Body:   []ast.Statement{selfX},
	}
	classDef := &ast.ClassDef{
		Name: ast.NewIdentifier(token.Span{}, "Foo"),
		Body: []ast.Statement{initDef},
	}
	construct := &ast.AssignmentStmt{
		Target: ast.NewIdentifier(token.Span{}, "f"),
		Value:  &ast.CallExpr{Target: ast.NewIdentifier(token.Span{}, "Foo")},
	}
	m := newModule(classDef, construct)

	require.NoError(t, newEvaluator().AnalyzeModule(m))

	foo := lookup(t, m, "Foo")
	ct, ok := foo.(*values.ClassType)
	require.True(t, ok)

	xVal, ok := ct.Members["x"]
	require.True(t, ok, "expected self.x to be recorded on the class")
	bt, ok := xVal.Type().(*values.BuiltinType)
	require.True(t, ok)
	require.Equal(t, values.BInt, bt.ID)

	f := lookup(t, m, "f")
	inst, ok := f.(values.Instance)
	require.True(t, ok)
	require.Equal(t, values.Type(ct), inst.Type())
}

// TestOverloadChainMerging builds two `@overload`-decorated defs
// followed by the implementation and checks they merge onto one
// FunctionType (spec.md §3.1 "Overloads").
func TestOverloadChainMerging(t *testing.T) {
	overloadDecorator := []ast.Decorator{{Expression: ast.NewIdentifier(token.Span{}, "overload")}}
	first := &ast.FunctionDef{
		Name:       ast.NewIdentifier(token.Span{}, "f"),
		Decorators: overloadDecorator,
		IsStub:     true,
	}
	second := &ast.FunctionDef{
		Name:       ast.NewIdentifier(token.Span{}, "f"),
		Decorators: overloadDecorator,
		IsStub:     true,
	}
	impl := &ast.FunctionDef{
		Name: ast.NewIdentifier(token.Span{}, "f"),
		Body: []ast.Statement{},
	}
	m := newModule(first, second, impl)

	require.NoError(t, newEvaluator().AnalyzeModule(m))

	f := lookup(t, m, "f")
	fn, ok := f.(*values.FunctionType)
	require.True(t, ok)
	require.Len(t, fn.Overloads, 3)
}

// TestRecursiveCallAbsorbsToUnknown checks that a function calling
// itself resolves the re-entrant call to Unknown rather than looping
// forever (spec.md §4.D.8, §4.F).
func TestRecursiveCallAbsorbsToUnknown(t *testing.T) {
	recurse := &ast.ExpressionStmt{
		Value: &ast.CallExpr{Target: ast.NewIdentifier(token.Span{}, "f")},
	}
	ret := &ast.ReturnStmt{Value: &ast.CallExpr{Target: ast.NewIdentifier(token.Span{}, "f")}}
	def := &ast.FunctionDef{
		Name: ast.NewIdentifier(token.Span{}, "f"),
		Body: []ast.Statement{recurse, ret},
	}
	call := &ast.AssignmentStmt{
		Target: ast.NewIdentifier(token.Span{}, "r"),
		Value:  &ast.CallExpr{Target: ast.NewIdentifier(token.Span{}, "f")},
	}
	m := newModule(def, call)

	require.NoError(t, newEvaluator().AnalyzeModule(m))

	r := lookup(t, m, "r")
	require.True(t, values.IsUnknown(r.Type()))
}

// TestLambdaBuildsSingleOverloadFunction checks that a lambda's body
// expression resolves in a scope where its parameters are declared, and
// that the declared parameter shows up on the resulting Overload.
func TestLambdaBuildsSingleOverloadFunction(t *testing.T) {
	lambda := &ast.LambdaExpr{
		Params: []ast.Parameter{{Name: "x", Kind: ast.ParamPositionalOrKeyword}},
		Body:   ast.NewIdentifier(token.Span{}, "x"),
	}
	assign := &ast.AssignmentStmt{
		Target: ast.NewIdentifier(token.Span{}, "f"),
		Value:  lambda,
	}
	m := newModule(assign)

	require.NoError(t, newEvaluator().AnalyzeModule(m))

	f := lookup(t, m, "f")
	fn, ok := f.(*values.FunctionType)
	require.True(t, ok)
	require.Len(t, fn.Overloads, 1)
	require.True(t, fn.Overloads[0].IsLambda)
	require.Len(t, fn.Overloads[0].Params, 1)
	require.Equal(t, "x", fn.Overloads[0].Params[0].Name)
}

// TestNestedFunctionDefNotRecursed checks that a nested FunctionDef
// inside a call's body is built as its own Type (spec.md §4.F point 4's
// "opens its own call frame entirely") without disrupting the enclosing
// call's own return short-circuit.
func TestNestedFunctionDefNotRecursed(t *testing.T) {
	innerReturn := &ast.ReturnStmt{Value: ast.NewIntConstant(token.Span{}, big.NewInt(1))}
	inner := &ast.FunctionDef{
		Name: ast.NewIdentifier(token.Span{}, "inner"),
		Body: []ast.Statement{innerReturn},
	}
	outerReturn := &ast.ReturnStmt{Value: ast.NewIntConstant(token.Span{}, big.NewInt(2))}
	outer := &ast.FunctionDef{
		Name: ast.NewIdentifier(token.Span{}, "outer"),
		Body: []ast.Statement{inner, outerReturn},
	}
	call := &ast.AssignmentStmt{
		Target: ast.NewIdentifier(token.Span{}, "x"),
		Value:  &ast.CallExpr{Target: ast.NewIdentifier(token.Span{}, "outer")},
	}
	m := newModule(outer, call)

	require.NoError(t, newEvaluator().AnalyzeModule(m))

	x := lookup(t, m, "x")
	c, ok := x.(values.Constant)
	require.True(t, ok, "expected outer()'s own return, got %T", x)
	n, ok := values.TryGet[*big.Int](c)
	require.True(t, ok)
	require.Equal(t, int64(2), n.Int64())
}

// TestAndOrShortCircuitTyping checks spec.md §4.D.5: `and` always yields
// bool; `or` yields its left operand when it is non-Unknown.
func TestAndOrShortCircuitTyping(t *testing.T) {
	andAssign := &ast.AssignmentStmt{
		Target: ast.NewIdentifier(token.Span{}, "a"),
		Value: &ast.AndExpr{
			Left:  ast.NewIntConstant(token.Span{}, big.NewInt(1)),
			Right: ast.NewIntConstant(token.Span{}, big.NewInt(2)),
		},
	}
	orAssign := &ast.AssignmentStmt{
		Target: ast.NewIdentifier(token.Span{}, "o"),
		Value: &ast.OrExpr{
			Left:  ast.NewIntConstant(token.Span{}, big.NewInt(3)),
			Right: ast.NewIntConstant(token.Span{}, big.NewInt(4)),
		},
	}
	m := newModule(andAssign, orAssign)

	require.NoError(t, newEvaluator().AnalyzeModule(m))

	a := lookup(t, m, "a")
	require.Equal(t, values.BBool, a.Type().(*values.BuiltinType).ID)

	o := lookup(t, m, "o")
	require.Equal(t, values.BInt, o.Type().(*values.BuiltinType).ID)
}
