// Package generics implements Generic Instantiation (spec.md §4.G):
// parameterizing a generic class or builtin container with concrete
// type arguments, and the Type Annotation Converter that maps a
// syntactic annotation to a Type. Grounded on the teacher's dispatch
// style in internal/evaluator (type-switch over a closed variant set
// rather than a visitor), since the inputs here are already-evaluated
// values.Member/Type values, not syntax needing an Accept call.
package generics

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// Evaluator is the narrow slice of internal/eval.Evaluator this package
// needs. Declared locally (as internal/binder does) so generics has no
// import edge back to eval.
type Evaluator interface {
	Eval(expr ast.Expression) values.Member
}

// indices splits an IndexExpr's Index into one expression per generic
// argument: `G[T]` has one, `G[K, V]` parses its Index as a TupleExpr.
func indices(index ast.Expression) []ast.Expression {
	if t, ok := index.(*ast.TupleExpr); ok {
		return t.Elements
	}
	return []ast.Expression{index}
}

// classify splits evaluated index values into generic parameters and
// specific types (spec.md §4.G point 1).
func classify(members []values.Member) (params []*values.GenericParameter, specifics []values.Type) {
	for _, m := range members {
		t := m.Type()
		if gp, ok := t.(*values.GenericParameter); ok {
			params = append(params, gp)
			continue
		}
		specifics = append(specifics, t)
	}
	return params, specifics
}

// Instantiate implements §4.G's full algorithm for `target[index]` where
// target evaluates to targetMember. declaringModule identifies the
// module producing any new specialized Type.
func Instantiate(eval Evaluator, targetMember values.Member, indexExpr ast.Expression, declaringModule values.ModuleRef) values.Member {
	exprs := indices(indexExpr)
	members := make([]values.Member, 0, len(exprs))
	for _, e := range exprs {
		members = append(members, eval.Eval(e))
	}

	params, specifics := classify(members)

	if isGenericMarker(targetMember) && len(specifics) == 0 {
		return values.NewInstance((&values.GenericClassParameter{Params: params, Module: declaringModule}))
	}

	if len(specifics) == 0 {
		// All indices are parameters on a non-"Generic" target: spec.md
		// §4.G point 4, "do not resolve a generic with a generic".
		return values.NewInstance(values.UnknownType)
	}

	specific := CreateSpecificType(targetMember.Type(), params, specifics, declaringModule)
	return values.NewInstance(specific)
}

// isGenericMarker reports whether targetMember names the special
// `Generic` base-class marker (spec.md §4.G point 2). Builtins carry no
// dedicated "Generic" id; the marker is recognized by class name, the
// same way the teacher recognizes sentinel builtin names in its term
// builtins table.
func isGenericMarker(targetMember values.Member) bool {
	ct, ok := targetMember.Type().(*values.ClassType)
	return ok && ct.Name == "Generic"
}

// CreateSpecificType implements `G.create_specific_type` (spec.md §4.G
// point 3): builtin generic containers produce a new CollectionType;
// user classes produce a ClassType with a specialization map. Mixed
// parameter/specific indices keep unresolved parameters as themselves
// (spec.md §4.G point 4's coarse rule).
func CreateSpecificType(target values.Type, params []*values.GenericParameter, specifics []values.Type, declaringModule values.ModuleRef) values.Type {
	switch t := target.(type) {
	case *values.BuiltinType:
		return specializeBuiltin(t, params, specifics, declaringModule)
	case *values.ClassType:
		return specializeClass(t, params, specifics)
	default:
		return values.UnknownType
	}
}

func specializeBuiltin(t *values.BuiltinType, params []*values.GenericParameter, specifics []values.Type, mod values.ModuleRef) values.Type {
	all := mergeOrdered(params, specifics)
	switch t.ID {
	case values.BList:
		return values.NewListLike(values.CollList, first(all), mod, true)
	case values.BSet:
		return values.NewListLike(values.CollSet, first(all), mod, true)
	case values.BFrozenSet:
		return values.NewListLike(values.CollSet, first(all), mod, true)
	case values.BTuple:
		return values.NewListLike(values.CollTuple, first(all), mod, true)
	case values.BDict:
		if len(all) < 2 {
			return values.NewDict(values.UnknownType, values.UnknownType, mod, true)
		}
		return values.NewDict(all[0], all[1], mod, true)
	default:
		return values.UnknownType
	}
}

func first(ts []values.Type) values.Type {
	if len(ts) == 0 {
		return values.UnknownType
	}
	return ts[0]
}

// mergeOrdered is a placeholder order-preserving merge used when the
// evaluator cannot recover which original index slot each parameter or
// specific came from (spec.md §4.G does not mandate positional
// fidelity for the coarse mixed case) — specifics are listed first,
// remaining parameter slots keep themselves as Unknown-bounded types.
func mergeOrdered(params []*values.GenericParameter, specifics []values.Type) []values.Type {
	out := make([]values.Type, 0, len(params)+len(specifics))
	out = append(out, specifics...)
	for _, p := range params {
		out = append(out, p)
	}
	return out
}

func specializeClass(t *values.ClassType, params []*values.GenericParameter, specifics []values.Type) values.Type {
	if !t.IsGeneric() {
		return t
	}
	subst := make(map[string]values.Type, len(t.GenericParams))
	si := 0
	for _, gp := range t.GenericParams {
		if si < len(specifics) {
			subst[gp.Name] = specifics[si]
			si++
			continue
		}
		subst[gp.Name] = gp // unresolved parameter stands in for itself
	}
	return t.Specialize(subst)
}

// ConstructorSpecifics determines the specific types for `G(args)`
// (spec.md §4.G "For constructor call..."): from the `__init__`
// overload's declared parameter annotations when present, else from the
// evaluated argument Types.
func ConstructorSpecifics(initOverload *values.Overload, argValues []values.Member) []values.Type {
	if initOverload != nil {
		var fromAnnotations []values.Type
		for _, p := range initOverload.Params {
			if p.Name == "self" {
				continue
			}
			if !values.IsUnknown(p.Annotation) {
				fromAnnotations = append(fromAnnotations, p.Annotation)
			}
		}
		if len(fromAnnotations) > 0 {
			return fromAnnotations
		}
	}
	specifics := make([]values.Type, 0, len(argValues))
	for _, v := range argValues {
		if v == nil {
			continue
		}
		specifics = append(specifics, v.Type())
	}
	return specifics
}

// ScopeLookup is the narrow slice of scope.Scope/GlobalScope the
// annotation converter needs: resolving a bare name to the Member it
// denotes (spec.md §4.G "options default: Global | Builtins").
type ScopeLookup interface {
	Lookup(name string, opts scope.LookupOptions) (*scope.Variable, *scope.Scope, bool)
}

// ConvertAnnotation implements the Type Annotation Converter (spec.md
// §4.G): an IndexExpr annotation (`x: List[int]`) flows through
// Instantiate; any other expression resolves the annotation name via
// scope lookup with the spec's default options.
func ConvertAnnotation(eval Evaluator, lookup ScopeLookup, expr ast.Expression) values.Type {
	if idx, ok := expr.(*ast.IndexExpr); ok {
		targetMember := eval.Eval(idx.Target)
		result := Instantiate(eval, targetMember, idx.Index, targetMember.DeclaringModule())
		return result.Type()
	}

	id, ok := expr.(*ast.Identifier)
	if !ok {
		return values.UnknownType
	}
	v, _, found := lookup.Lookup(id.Name, scope.OptGlobal|scope.OptBuiltins)
	if !found {
		return values.UnknownType
	}
	return v.Value.Type()
}
