// Package binder implements Argument Binding & Overload Selection
// (spec.md §4.E): constructing the logical per-call-site binding
// against one overload's formal parameters, and picking which overload
// a call resolves to. Grounded on the teacher's argument-handling style
// in internal/evaluator (error entries attached to a candidate rather
// than aborting the call), generalized to the spec's loose `==`
// overload-matching rule.
package binder

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// Evaluator is the narrow slice of internal/eval.Evaluator this package
// needs: evaluating an argument or default-value expression to a
// Member. Declared here (not imported from internal/eval) so binder has
// no dependency on eval; eval's Evaluator satisfies this structurally.
type Evaluator interface {
	Eval(expr ast.Expression) values.Member
}

// BindError records one arity/name mismatch found while constructing an
// ArgumentSet (spec.md §4.E point 2: "errors are attached to the
// candidate but do not abort").
type BindError struct {
	Message string
}

// Binding is the resolved value for one formal parameter.
type Binding struct {
	Param values.Param
	Value values.Member // nil until Evaluate() runs
}

// ArgumentSet is the logical binding for one call site against one
// overload (spec.md §4.E).
type ArgumentSet struct {
	Overload *values.Overload
	Receiver values.Member // nil for an unbound/standalone call
	Bindings []*Binding
	StarArgs []values.Member // positional overflow captured by *args
	KwArgs   map[string]values.Member
	Errors   []BindError

	eval Evaluator
}

// NewArgumentSet enumerates overload's formal parameters and walks the
// actual call-site arguments left to right, assigning each to a formal
// (spec.md §4.E points 1-2).
func NewArgumentSet(eval Evaluator, overload *values.Overload, receiver values.Member, args []ast.Argument) *ArgumentSet {
	as := &ArgumentSet{Overload: overload, Receiver: receiver, eval: eval, KwArgs: make(map[string]values.Member)}

	byName := make(map[string]*Binding)
	var positional []*Binding
	var hasStarArgs, hasKwArgs bool

	for _, p := range overload.Params {
		switch p.Kind {
		case ast.ParamStarArgs:
			hasStarArgs = true
			continue
		case ast.ParamDoubleStarKwargs:
			hasKwArgs = true
			continue
		}
		b := &Binding{Param: p}
		as.Bindings = append(as.Bindings, b)
		byName[p.Name] = b
		if p.Kind != ast.ParamKeywordOnly {
			positional = append(positional, b)
		}
	}

	// A non-nil receiver pre-binds the leading positional parameter
	// (self/cls) before call-site args are walked (spec.md §4.D.7.1: a
	// bound call never supplies its own receiver as an explicit
	// argument).
	if receiver != nil && len(positional) > 0 {
		positional[0].Value = receiver
		positional = positional[1:]
	}

	posIdx := 0
	for _, arg := range args {
		switch arg.Kind {
		case ast.ArgPositional:
			if posIdx < len(positional) && positional[posIdx].Value == nil {
				positional[posIdx].Value = as.evalArg(arg.Value)
				posIdx++
				continue
			}
			if hasStarArgs {
				as.StarArgs = append(as.StarArgs, as.evalArg(arg.Value))
				continue
			}
			as.Errors = append(as.Errors, BindError{Message: "too many positional arguments"})
		case ast.ArgKeyword:
			if b, ok := byName[arg.Name]; ok {
				b.Value = as.evalArg(arg.Value)
				continue
			}
			if hasKwArgs {
				as.KwArgs[arg.Name] = as.evalArg(arg.Value)
				continue
			}
			as.Errors = append(as.Errors, BindError{Message: "unexpected keyword argument: " + arg.Name})
		case ast.ArgStarSplat:
			// A splatted sequence's element types are not individually
			// knowable here; record the evaluated iterable as a single
			// best-effort StarArgs entry.
			as.StarArgs = append(as.StarArgs, as.evalArg(arg.Value))
		case ast.ArgDoubleSplat:
			as.KwArgs["**"] = as.evalArg(arg.Value)
		}
	}

	for _, b := range positional[posIdx:] {
		if b.Param.Default == nil {
			as.Errors = append(as.Errors, BindError{Message: "missing required positional argument: " + b.Param.Name})
		}
	}

	return as
}

func (as *ArgumentSet) evalArg(e ast.Expression) values.Member {
	if as.eval == nil || e == nil {
		return nil
	}
	return as.eval.Eval(e)
}

// Evaluate produces a concrete value for each formal: the actual
// value if bound, else the evaluated default, else the annotated
// Type's Unknown sentinel (spec.md §4.E point 3).
func (as *ArgumentSet) Evaluate() {
	for _, b := range as.Bindings {
		if b.Value != nil {
			continue
		}
		if b.Param.Default != nil {
			b.Value = as.evalArg(b.Param.Default)
			continue
		}
		b.Value = values.NewInstance(values.UnknownType)
	}
}

// DeclareParametersInScope introduces each bound parameter as a
// Variable in s with the bound Type (spec.md §4.E point 4).
func (as *ArgumentSet) DeclareParametersInScope(s *scope.Scope, loc token.Location) {
	for _, b := range as.Bindings {
		v := b.Value
		if v == nil {
			v = values.NewInstance(values.UnknownType)
		}
		s.Declare(b.Param.Name, v, scope.SourceDeclaration, loc)
	}
}

// ErrorCount is used by overload selection to prefer the candidate
// with the fewest binding errors (spec.md §4.D.7.1 point 2).
func (as *ArgumentSet) ErrorCount() int { return len(as.Errors) }

// SelectOverload implements spec.md §4.D.7.1 point 2's overload
// resolution: build one ArgumentSet candidate per overload, prefer an
// error-free candidate whose bound argument Types match the formal
// annotations by `==`; failing that, the first error-free candidate;
// failing that, the candidate with the fewest errors.
func SelectOverload(eval Evaluator, fn *values.FunctionType, receiver values.Member, args []ast.Argument) (*ArgumentSet, *values.Overload) {
	if len(fn.Overloads) == 1 {
		ov := fn.Overloads[0]
		as := NewArgumentSet(eval, ov, receiver, args)
		as.Evaluate()
		return as, ov
	}

	var best *ArgumentSet
	var bestOverload *values.Overload
	var firstClean *ArgumentSet
	var firstCleanOverload *values.Overload

	for _, ov := range fn.Overloads {
		as := NewArgumentSet(eval, ov, receiver, args)
		as.Evaluate()

		if as.ErrorCount() == 0 {
			if firstClean == nil {
				firstClean, firstCleanOverload = as, ov
			}
			if annotationsMatchArgs(as) {
				return as, ov
			}
		}

		if best == nil || as.ErrorCount() < best.ErrorCount() {
			best, bestOverload = as, ov
		}
	}

	if firstClean != nil {
		return firstClean, firstCleanOverload
	}
	return best, bestOverload
}

// annotationsMatchArgs reports whether every bound parameter's resolved
// value Type equals (by `==`) its formal annotation, skipping
// parameters left with no annotation (spec.md §4.D.7.1 point 2's loose
// `==` match — exact Type identity, not assignability).
func annotationsMatchArgs(as *ArgumentSet) bool {
	for _, b := range as.Bindings {
		if values.IsUnknown(b.Param.Annotation) {
			continue
		}
		if b.Value == nil {
			continue
		}
		if b.Value.Type() != b.Param.Annotation {
			return false
		}
	}
	return true
}
