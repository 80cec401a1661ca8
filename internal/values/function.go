package values

import (
	"strings"

	"github.com/kestrel-lang/kestrel/internal/ast"
)

// Param is one formal parameter of an Overload, with its annotation
// already resolved to a Type (spec.md §3.1 "Each overload carries a
// parameter list").
type Param struct {
	Name       string
	Kind       ast.ParamKind
	Annotation Type // UnknownType if the parameter carries no annotation
	Default    ast.Expression
	HasDefault bool
}

// Overload is one signature of a FunctionType (spec.md §3.1).
type Overload struct {
	Params         []Param
	ReturnType     Type // UnknownType if undeclared
	Body           *ast.FunctionDef
	IsStub         bool
	IsStatic       bool
	IsClassMethod  bool
	IsLambda       bool
	IsSpecialized  bool
}

// FunctionType is a named function or method with one or more Overloads
// (spec.md §3.1 "ordered non-empty list of Overloads").
type FunctionType struct {
	Name           string
	Module         ModuleRef
	Overloads      []*Overload
	DeclaringClass *ClassType // nil for free functions
}

func NewFunctionType(name string, mod ModuleRef, overloads ...*Overload) *FunctionType {
	return &FunctionType{Name: name, Module: mod, Overloads: overloads}
}

func (f *FunctionType) String() string {
	if len(f.Overloads) == 0 {
		return f.Name + "(...)"
	}
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, p := range f.Overloads[0].Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
	}
	sb.WriteByte(')')
	return sb.String()
}

func (f *FunctionType) DeclaringModule() ModuleRef      { return f.Module }
func (f *FunctionType) GetMember(string) (Member, bool) { return nil, false }
func (f *FunctionType) MemberNames() []string            { return nil }

func (f *FunctionType) MemberKind() MemberKind { return KindFunction }
func (f *FunctionType) Type() Type             { return f }

// PropertyType behaves like a FunctionType but is invoked with no
// arguments when read off an instance (spec.md §3.1, §4.D.2).
type PropertyType struct {
	*FunctionType
}

func NewPropertyType(fn *FunctionType) *PropertyType {
	return &PropertyType{FunctionType: fn}
}

func (p *PropertyType) MemberKind() MemberKind { return KindProperty }
func (p *PropertyType) Type() Type             { return p }

// MethodMember marks a FunctionType as bound to a declaring class without
// yet binding a receiver (spec.md §3.1 MemberKind "Method" — the
// unbound-function case produced by §4.D.2's class-receiver rule).
type MethodMember struct {
	*FunctionType
}

func (m *MethodMember) MemberKind() MemberKind { return KindMethod }
func (m *MethodMember) Type() Type             { return m.FunctionType }

// BoundMethod/BoundType (the receiver-qualified callable produced by
// §4.D.2) are defined in instance.go, alongside Instance/Constant.
