package values

// GenericParameter is a named placeholder used only in type-expression
// position (spec.md §3.1, Glossary "Generic placeholder / parameter").
type GenericParameter struct {
	Name   string
	Module ModuleRef
	Bounds []Type
}

func (g *GenericParameter) String() string { return g.Name }

func (g *GenericParameter) DeclaringModule() ModuleRef { return g.Module }

func (g *GenericParameter) GetMember(name string) (Member, bool) {
	for _, b := range g.Bounds {
		if m, ok := b.GetMember(name); ok {
			return m, true
		}
	}
	return nil, false
}

func (g *GenericParameter) MemberNames() []string {
	var names []string
	for _, b := range g.Bounds {
		names = append(names, b.MemberNames()...)
	}
	return names
}

// IsGenericParameter reports whether t is itself a placeholder, as
// opposed to a specific Type — the classification spec.md §4.G's
// generic-instantiation algorithm performs on every index argument.
func IsGenericParameter(t Type) bool {
	_, ok := t.(*GenericParameter)
	return ok
}

// GenericClassParameter is the marker produced by indexing `Generic`
// with only parameters, e.g. `Generic[T]` in a class's base list
// (spec.md §4.G point 2). It carries no members of its own; a class
// declaration consumes it purely as a base-class marker.
type GenericClassParameter struct {
	Params []*GenericParameter
	Module ModuleRef
}

func (g *GenericClassParameter) String() string { return "Generic[...]" }

func (g *GenericClassParameter) DeclaringModule() ModuleRef { return g.Module }

func (g *GenericClassParameter) GetMember(string) (Member, bool) { return nil, false }

func (g *GenericClassParameter) MemberNames() []string { return nil }

func (g *GenericClassParameter) MemberKind() MemberKind { return KindGeneric }
func (g *GenericClassParameter) Type() Type             { return g }
