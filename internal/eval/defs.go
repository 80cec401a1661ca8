package eval

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/generics"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// VisitFunctionDef implements the FunctionType half of spec.md §3.1 /
// §4.D.8: turn one FunctionDef into an Overload, either merging it onto
// an existing FunctionType when the preceding declaration of the same
// name was `@overload`-decorated (spec.md §3.1 "Overloads", example 4),
// or declaring a fresh FunctionType/PropertyType. Building happens
// eagerly as the statement is walked (this evaluator is a top-to-bottom
// walker, per the comment on ensureEvaluated), guarded by ensureNode
// only to satisfy spec.md §4.D.8's re-entrancy rule should the
// annotations reference the definition's own node recursively.
func (e *Evaluator) VisitFunctionDef(f *ast.FunctionDef) {
	e.ensureNode(f, func() values.Member { return e.buildFunctionDef(f) })
}

func (e *Evaluator) buildFunctionDef(f *ast.FunctionDef) values.Member {
	ov := e.buildOverload(f)

	if f.HasDecorator("property") {
		prop := values.NewPropertyType(values.NewFunctionType(f.Name.Name, e.moduleRef(), ov))
		prop.DeclaringClass = e.currentClass()
		e.currentScope().Declare(f.Name.Name, prop, scope.SourceDeclaration, e.loc(f.Span()))
		return prop
	}

	if existing := e.overloadContinuation(f); existing != nil {
		existing.Overloads = append(existing.Overloads, ov)
		e.currentScope().Declare(f.Name.Name, existing, scope.SourceDeclaration, e.loc(f.Span()))
		return existing
	}

	fn := values.NewFunctionType(f.Name.Name, e.moduleRef(), ov)
	fn.DeclaringClass = e.currentClass()
	e.currentScope().Declare(f.Name.Name, fn, scope.SourceDeclaration, e.loc(f.Span()))
	return fn
}

// overloadContinuation reports the FunctionType already bound to f's
// name in the current (local) scope when its most recent Overload came
// from an `@overload`-decorated FunctionDef — the signal that the
// physical definition now being visited extends that group rather than
// replacing it (spec.md §3.1 "Multiple FunctionDefs with the same Name
// and an @overload-decorated predecessor chain combine into one
// FunctionType").
func (e *Evaluator) overloadContinuation(f *ast.FunctionDef) *values.FunctionType {
	v, _, ok := e.currentScope().Lookup(f.Name.Name, scope.OptLocal)
	if !ok {
		return nil
	}
	fn, ok := v.Value.(*values.FunctionType)
	if !ok || len(fn.Overloads) == 0 {
		return nil
	}
	last := fn.Overloads[len(fn.Overloads)-1]
	if last.Body != nil && last.Body != f && last.Body.HasDecorator("overload") {
		return fn
	}
	return nil
}

// buildOverload converts one FunctionDef into an Overload (spec.md
// §3.1): parameter annotations and the return annotation are resolved
// in the scope active where the def appears (not the function's own
// body scope, since parameters are not yet declared).
func (e *Evaluator) buildOverload(f *ast.FunctionDef) *values.Overload {
	params := make([]values.Param, 0, len(f.Params))
	for _, p := range f.Params {
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

	returnType := values.UnknownType
	if f.ReturnType != nil {
		returnType = generics.ConvertAnnotation(e, e, f.ReturnType)
	}

	return &values.Overload{
		Params:        params,
		ReturnType:    returnType,
		Body:          f,
		IsStub:        f.IsStub,
		IsStatic:      f.HasDecorator("staticmethod"),
		IsClassMethod: f.HasDecorator("classmethod"),
		IsLambda:      f.IsLambda,
	}
}

// VisitClassDef implements the ClassType half of spec.md §3.1: evaluate
// the base-class expressions (splitting out a `Generic[T, ...]` marker
// into GenericParams per spec.md §4.G point 2), declare the ClassType
// in the enclosing scope before walking the body so self-referential
// annotations resolve rather than looping, then walk the body into a
// fresh class scope and copy its declarations into the ClassType's
// member map.
func (e *Evaluator) VisitClassDef(c *ast.ClassDef) {
	e.ensureNode(c, func() values.Member { return e.buildClassDef(c) })
}

func (e *Evaluator) buildClassDef(c *ast.ClassDef) values.Member {
	var bases []values.Type
	var genericParams []*values.GenericParameter
	for _, b := range c.Bases {
		baseMember := e.Eval(b)
		if gcp, ok := baseMember.Type().(*values.GenericClassParameter); ok {
			genericParams = append(genericParams, gcp.Params...)
			continue
		}
		bases = append(bases, baseMember.Type())
	}
	for _, name := range c.TypeParams {
		genericParams = append(genericParams, &values.GenericParameter{Name: name, Module: e.moduleRef()})
	}

	ct := values.NewClassType(c.Name.Name, e.moduleRef(), bases)
	ct.GenericParams = genericParams

	// Declare before the body is walked: a method whose signature refers
	// back to the class by name (a common forward-reference pattern)
	// resolves to this same ClassType object, which keeps accumulating
	// members as the body continues (spec.md §8.1 invariant 5, "two
	// imports/references to the same qualified name resolve to the same
	// object").
	e.currentScope().Declare(c.Name.Name, ct, scope.SourceDeclaration, e.loc(c.Span()))

	classScope := e.PushScope(scope.KindClass, c)
	scope.DeclareImplicitDunders(classScope)
	e.classStack = append(e.classStack, ct)
	for _, stmt := range c.Body {
		e.execStatement(stmt)
	}
	e.classStack = e.classStack[:len(e.classStack)-1]
	e.PopScope()

	for _, v := range classScope.Vars.Variables() {
		if v.Value != nil {
			ct.Members[v.Name] = v.Value
		}
	}

	return ct
}

func (e *Evaluator) moduleRef() values.ModuleRef {
	if e.module != nil {
		return e.module
	}
	return nil
}
