package binder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// fakeEval resolves an Identifier argument expression to a Member by
// name, standing in for internal/eval.Evaluator.
type fakeEval struct {
	byName map[string]values.Member
}

func (f *fakeEval) Eval(expr ast.Expression) values.Member {
	id, ok := expr.(*ast.Identifier)
	if !ok {
		return values.NewInstance(values.UnknownType)
	}
	if v, ok := f.byName[id.Name]; ok {
		return v
	}
	return values.NewInstance(values.UnknownType)
}

func ident(name string) ast.Expression { return ast.NewIdentifier(token.Span{}, name) }

func posArg(name string) ast.Argument  { return ast.Argument{Kind: ast.ArgPositional, Value: ident(name)} }
func kwArg(key, name string) ast.Argument {
	return ast.Argument{Kind: ast.ArgKeyword, Name: key, Value: ident(name)}
}

func intParam(name string) values.Param {
	return values.Param{Name: name, Kind: ast.ParamPositionalOrKeyword, Annotation: values.UnknownType}
}

func TestNewArgumentSetBindsPositionalArgs(t *testing.T) {
	intType := values.NewBuiltinType(values.BInt, nil)
	eval := &fakeEval{byName: map[string]values.Member{"a": values.NewInstance(intType), "b": values.NewInstance(intType)}}
	ov := &values.Overload{Params: []values.Param{intParam("x"), intParam("y")}}

	as := NewArgumentSet(eval, ov, nil, []ast.Argument{posArg("a"), posArg("b")})

	require.Empty(t, as.Errors)
	require.Len(t, as.Bindings, 2)
	require.Equal(t, "x", as.Bindings[0].Param.Name)
	require.NotNil(t, as.Bindings[0].Value)
	require.NotNil(t, as.Bindings[1].Value)
}

func TestNewArgumentSetBindsKeywordArgs(t *testing.T) {
	eval := &fakeEval{byName: map[string]values.Member{"v": values.NewInstance(values.UnknownType)}}
	ov := &values.Overload{Params: []values.Param{intParam("x"), intParam("y")}}

	as := NewArgumentSet(eval, ov, nil, []ast.Argument{kwArg("y", "v")})
	require.Empty(t, as.Errors)
	require.Nil(t, as.Bindings[0].Value) // x unbound
	require.NotNil(t, as.Bindings[1].Value)
}

func TestNewArgumentSetReportsUnexpectedKeyword(t *testing.T) {
	eval := &fakeEval{byName: map[string]values.Member{}}
	ov := &values.Overload{Params: []values.Param{intParam("x")}}

	as := NewArgumentSet(eval, ov, nil, []ast.Argument{kwArg("z", "v")})
	require.Len(t, as.Errors, 1)
	require.Contains(t, as.Errors[0].Message, "unexpected keyword")
}

func TestNewArgumentSetReportsMissingRequiredPositional(t *testing.T) {
	eval := &fakeEval{byName: map[string]values.Member{}}
	ov := &values.Overload{Params: []values.Param{intParam("x"), intParam("y")}}

	as := NewArgumentSet(eval, ov, nil, []ast.Argument{posArg("a")})
	require.Len(t, as.Errors, 1)
	require.Contains(t, as.Errors[0].Message, "missing required positional")
}

func TestNewArgumentSetOverflowGoesToStarArgs(t *testing.T) {
	eval := &fakeEval{byName: map[string]values.Member{}}
	ov := &values.Overload{Params: []values.Param{
		intParam("x"),
		{Name: "rest", Kind: ast.ParamStarArgs},
	}}

	as := NewArgumentSet(eval, ov, nil, []ast.Argument{posArg("a"), posArg("b"), posArg("c")})
	require.Empty(t, as.Errors)
	require.Len(t, as.StarArgs, 2)
}

func TestNewArgumentSetOverflowWithoutStarArgsErrors(t *testing.T) {
	eval := &fakeEval{byName: map[string]values.Member{}}
	ov := &values.Overload{Params: []values.Param{intParam("x")}}

	as := NewArgumentSet(eval, ov, nil, []ast.Argument{posArg("a"), posArg("b")})
	require.Len(t, as.Errors, 1)
	require.Contains(t, as.Errors[0].Message, "too many positional")
}

func TestEvaluateFallsBackToDefaultThenUnknown(t *testing.T) {
	eval := &fakeEval{byName: map[string]values.Member{"d": values.NewInstance(values.UnknownType)}}
	ov := &values.Overload{Params: []values.Param{
		{Name: "x", Kind: ast.ParamPositionalOrKeyword, Annotation: values.UnknownType, Default: ident("d")},
		{Name: "y", Kind: ast.ParamPositionalOrKeyword, Annotation: values.UnknownType},
	}}

	as := NewArgumentSet(eval, ov, nil, nil)
	as.Evaluate()

	require.NotNil(t, as.Bindings[0].Value)
	require.NotNil(t, as.Bindings[1].Value)
	require.True(t, values.IsUnknown(as.Bindings[1].Value.Type()))
}

func TestDeclareParametersInScopeDeclaresEachBinding(t *testing.T) {
	eval := &fakeEval{byName: map[string]values.Member{"a": values.NewInstance(values.UnknownType)}}
	ov := &values.Overload{Params: []values.Param{intParam("x")}}

	as := NewArgumentSet(eval, ov, nil, []ast.Argument{posArg("a")})
	as.Evaluate()

	s := scope.NewScope(scope.KindFunction, nil, nil)
	as.DeclareParametersInScope(s, token.Location{})

	v, ok := s.Vars.Get("x")
	require.True(t, ok)
	require.NotNil(t, v.Value)
}

func TestSelectOverloadPrefersAnnotationMatch(t *testing.T) {
	intType := values.NewBuiltinType(values.BInt, nil)
	strType := values.NewBuiltinType(values.BStr, nil)
	eval := &fakeEval{byName: map[string]values.Member{"a": values.NewInstance(strType)}}

	fn := &values.FunctionType{
		Name: "f",
		Overloads: []*values.Overload{
			{Params: []values.Param{{Name: "x", Kind: ast.ParamPositionalOrKeyword, Annotation: intType}}},
			{Params: []values.Param{{Name: "x", Kind: ast.ParamPositionalOrKeyword, Annotation: strType}}},
		},
	}

	_, ov := SelectOverload(eval, fn, nil, []ast.Argument{posArg("a")})
	require.Same(t, fn.Overloads[1], ov)
}

func TestSelectOverloadSingleOverloadShortcut(t *testing.T) {
	eval := &fakeEval{byName: map[string]values.Member{}}
	fn := &values.FunctionType{Name: "f", Overloads: []*values.Overload{{Params: []values.Param{intParam("x")}}}}

	as, ov := SelectOverload(eval, fn, nil, nil)
	require.Same(t, fn.Overloads[0], ov)
	require.NotNil(t, as)
}

func TestNewArgumentSetPreBindsReceiverToLeadingParam(t *testing.T) {
	intType := values.NewBuiltinType(values.BInt, nil)
	eval := &fakeEval{byName: map[string]values.Member{"a": values.NewInstance(intType)}}
	ov := &values.Overload{Params: []values.Param{intParam("self"), intParam("x")}}
	receiver := values.NewInstance(intType)

	as := NewArgumentSet(eval, ov, receiver, []ast.Argument{posArg("a")})

	require.Empty(t, as.Errors)
	require.Equal(t, receiver, as.Bindings[0].Value)
	require.NotNil(t, as.Bindings[1].Value)
}

func TestSelectOverloadPrefersErrorFreeCandidate(t *testing.T) {
	eval := &fakeEval{byName: map[string]values.Member{}}
	fn := &values.FunctionType{
		Name: "f",
		Overloads: []*values.Overload{
			{Params: []values.Param{intParam("x"), intParam("y")}},
			{Params: []values.Param{intParam("x")}},
		},
	}

	// Only one positional argument supplied: overload 0 reports a
	// missing-parameter error, overload 1 binds cleanly.
	_, ov := SelectOverload(eval, fn, nil, []ast.Argument{posArg("a")})
	require.Same(t, fn.Overloads[1], ov)
}
