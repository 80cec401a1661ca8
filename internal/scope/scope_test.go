package scope

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

type fakeModule string

func (f fakeModule) QualifiedName() string { return string(f) }

func loc() token.Location { return token.Location{ModuleID: "m"} }

func TestDeclareDoesNotClobberKnownWithUnknown(t *testing.T) {
	g := NewGlobalScope(nil, "m")
	mod := fakeModule("m")
	known := values.NewInstance(values.NewBuiltinType(values.BInt, mod))

	g.Declare("x", known, SourceDeclaration, loc())
	g.Declare("x", values.NewInstance(values.UnknownType), SourceDeclaration, loc())

	v, ok := g.Vars.Get("x")
	require.True(t, ok)
	require.False(t, values.IsUnknown(v.Value.Type()), "known binding must survive an Unknown overwrite")
}

func TestLookupWalksOuterScopes(t *testing.T) {
	g := NewGlobalScope(nil, "m")
	mod := fakeModule("m")
	g.Declare("shared", values.NewInstance(values.NewBuiltinType(values.BStr, mod)), SourceDeclaration, loc())

	fn := NewScope(KindFunction, nil, g.Scope)
	v, owner, ok := fn.Lookup("shared", Normal)
	require.True(t, ok)
	require.Same(t, g.Scope, owner)
	require.Equal(t, "shared", v.Name)
}

func TestNonlocalRedirectsToEnclosingFunction(t *testing.T) {
	g := NewGlobalScope(nil, "m")
	outer := NewScope(KindFunction, nil, g.Scope)
	mod := fakeModule("m")
	outer.Declare("counter", values.NewInstance(values.NewBuiltinType(values.BInt, mod)), SourceDeclaration, loc())

	inner := NewScope(KindFunction, nil, outer)
	inner.NonLocal["counter"] = true

	v, owner, ok := inner.Lookup("counter", Normal)
	require.True(t, ok)
	require.Same(t, outer, owner)
	require.Equal(t, "counter", v.Name)
}

func TestClassScopeNotVisibleToNestedFunction(t *testing.T) {
	g := NewGlobalScope(nil, "m")
	class := NewScope(KindClass, nil, g.Scope)
	mod := fakeModule("m")
	class.Declare("attr", values.NewInstance(values.NewBuiltinType(values.BInt, mod)), SourceDeclaration, loc())

	method := NewScope(KindFunction, nil, class)
	_, _, ok := method.Lookup("attr", Normal)
	require.False(t, ok, "a class body's own names are not in a nested function's lexical scope")
}

func TestImportAliasForwardsReferences(t *testing.T) {
	g := NewGlobalScope(nil, "m")
	src := NewVariable("helper", nil, SourceDeclaration, loc())
	alias := g.Link("h", src)

	alias.AddReference(loc())
	require.Len(t, src.References, 1, "references on the alias must forward to the parent variable")
	require.Empty(t, alias.References)
}

func TestDeclareImplicitDunders(t *testing.T) {
	g := NewGlobalScope(nil, "m")
	class := NewScope(KindClass, nil, g.Scope)
	DeclareImplicitDunders(class)

	for _, n := range ClassScopeDunders {
		_, ok := class.Vars.Get(n)
		require.True(t, ok, "expected %s to be declared", n)
	}
}

func TestVariableCollectionPreservesInsertionOrder(t *testing.T) {
	c := NewVariableCollection()
	c.Put(NewVariable("b", nil, SourceDeclaration, loc()))
	c.Put(NewVariable("a", nil, SourceDeclaration, loc()))
	c.Put(NewVariable("b", nil, SourceDeclaration, loc()))

	require.Equal(t, []string{"b", "a"}, c.Names())
}
