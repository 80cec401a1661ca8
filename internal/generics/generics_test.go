package generics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

type fakeEval struct {
	byName map[string]values.Member
}

func (f *fakeEval) Eval(expr ast.Expression) values.Member {
	id, ok := expr.(*ast.Identifier)
	if !ok {
		return values.NewInstance(values.UnknownType)
	}
	return f.byName[id.Name]
}

func ident(name string) ast.Expression { return ast.NewIdentifier(token.Span{}, name) }

func TestInstantiateBuiltinListProducesCollectionType(t *testing.T) {
	listType := values.NewBuiltinType(values.BList, nil)
	listMember := values.NewInstance(listType)
	intType := values.NewBuiltinType(values.BInt, nil)

	eval := &fakeEval{byName: map[string]values.Member{"int": values.NewInstance(intType)}}

	result := Instantiate(eval, listMember, ident("int"), nil)
	coll, ok := result.Type().(*values.CollectionType)
	require.True(t, ok)
	require.Equal(t, values.CollList, coll.Kind)
	require.Same(t, intType, coll.ElementType())
}

func TestInstantiateDictProducesTwoContentSlots(t *testing.T) {
	dictType := values.NewBuiltinType(values.BDict, nil)
	dictMember := values.NewInstance(dictType)
	strType := values.NewBuiltinType(values.BStr, nil)
	intType := values.NewBuiltinType(values.BInt, nil)

	eval := &fakeEval{byName: map[string]values.Member{
		"str": values.NewInstance(strType),
		"int": values.NewInstance(intType),
	}}

	idx := &ast.TupleExpr{Elements: []ast.Expression{ident("str"), ident("int")}}
	result := Instantiate(eval, dictMember, idx, nil)
	coll, ok := result.Type().(*values.CollectionType)
	require.True(t, ok)
	require.Same(t, strType, coll.KeyType())
	require.Same(t, intType, coll.ValueType())
}

func TestInstantiateUserClassSpecializes(t *testing.T) {
	T := &values.GenericParameter{Name: "T"}
	box := values.NewClassType("Box", nil, nil)
	box.GenericParams = []*values.GenericParameter{T}
	boxMember := values.NewInstance(box)

	intType := values.NewBuiltinType(values.BInt, nil)
	eval := &fakeEval{byName: map[string]values.Member{"int": values.NewInstance(intType)}}

	result := Instantiate(eval, boxMember, ident("int"), nil)
	specialized, ok := result.Type().(*values.ClassType)
	require.True(t, ok)
	require.Equal(t, intType, specialized.Specialized["T"])
}

func TestInstantiateAllParametersReturnsUnknown(t *testing.T) {
	T := &values.GenericParameter{Name: "T"}
	list := values.NewBuiltinType(values.BList, nil)
	listMember := values.NewInstance(list)

	eval := &fakeEval{byName: map[string]values.Member{"T": values.NewInstance(T)}}

	result := Instantiate(eval, listMember, ident("T"), nil)
	require.True(t, values.IsUnknown(result.Type()))
}

func TestInstantiateGenericMarkerWithOnlyParameters(t *testing.T) {
	genericClass := values.NewClassType("Generic", nil, nil)
	genericMember := values.NewInstance(genericClass)
	T := &values.GenericParameter{Name: "T"}

	eval := &fakeEval{byName: map[string]values.Member{"T": values.NewInstance(T)}}

	result := Instantiate(eval, genericMember, ident("T"), nil)
	marker, ok := result.Type().(*values.GenericClassParameter)
	require.True(t, ok)
	require.Len(t, marker.Params, 1)
}

func TestConstructorSpecificsPrefersAnnotations(t *testing.T) {
	intType := values.NewBuiltinType(values.BInt, nil)
	ov := &values.Overload{Params: []values.Param{
		{Name: "self", Kind: ast.ParamPositionalOrKeyword, Annotation: values.UnknownType},
		{Name: "x", Kind: ast.ParamPositionalOrKeyword, Annotation: intType},
	}}

	specifics := ConstructorSpecifics(ov, nil)
	require.Equal(t, []values.Type{intType}, specifics)
}

func TestConstructorSpecificsFallsBackToArgTypes(t *testing.T) {
	strType := values.NewBuiltinType(values.BStr, nil)
	ov := &values.Overload{Params: []values.Param{
		{Name: "self", Kind: ast.ParamPositionalOrKeyword, Annotation: values.UnknownType},
		{Name: "x", Kind: ast.ParamPositionalOrKeyword, Annotation: values.UnknownType},
	}}

	specifics := ConstructorSpecifics(ov, []values.Member{values.NewInstance(strType)})
	require.Equal(t, []values.Type{strType}, specifics)
}

func TestConvertAnnotationResolvesPlainName(t *testing.T) {
	intType := values.NewBuiltinType(values.BInt, nil)
	g := scope.NewGlobalScope(nil, "m")
	g.Declare("int", values.NewInstance(intType), scope.SourceBuiltin, token.Location{})

	eval := &fakeEval{}
	result := ConvertAnnotation(eval, g, ident("int"))
	require.Same(t, intType, result)
}

func TestConvertAnnotationIndexExprUsesGenericPath(t *testing.T) {
	listType := values.NewBuiltinType(values.BList, nil)
	listMember := values.NewInstance(listType)
	intType := values.NewBuiltinType(values.BInt, nil)

	eval := &fakeEval{byName: map[string]values.Member{
		"List": listMember,
		"int":  values.NewInstance(intType),
	}}

	idx := &ast.IndexExpr{Target: ident("List"), Index: ident("int")}
	result := ConvertAnnotation(eval, scope.NewGlobalScope(nil, "m"), idx)
	coll, ok := result.(*values.CollectionType)
	require.True(t, ok)
	require.Same(t, intType, coll.ElementType())
}
