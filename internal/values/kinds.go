// Package values implements the type/value model described in spec.md
// §3.1 and §4.A: the closed set of semantic entities the evaluator
// produces, and the capabilities every Type exposes. Per spec.md's
// Design Notes ("deep interface hierarchy... collapse into a tagged
// variant Type with one associated VTable per variant"), each Type
// variant below is its own Go struct implementing the Type interface;
// callers type-switch on the concrete variant where VTable-style
// dispatch would otherwise be needed (operator tables, call dispatch —
// see internal/eval and internal/binder, which depend on this package
// rather than the reverse, to avoid a cycle through module/scope state).
package values

// MemberKind is the closed set of observable entity kinds (spec.md §3.1).
type MemberKind int

const (
	KindUnknown MemberKind = iota
	KindModule
	KindClass
	KindFunction
	KindProperty
	KindMethod
	KindInstance
	KindConstant
	KindVariable
	KindGeneric
	KindUnion
	KindIterator
	KindBoundMethod
)

func (k MemberKind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindModule:
		return "Module"
	case KindClass:
		return "Class"
	case KindFunction:
		return "Function"
	case KindProperty:
		return "Property"
	case KindMethod:
		return "Method"
	case KindInstance:
		return "Instance"
	case KindConstant:
		return "Constant"
	case KindVariable:
		return "Variable"
	case KindGeneric:
		return "Generic"
	case KindUnion:
		return "Union"
	case KindIterator:
		return "Iterator"
	case KindBoundMethod:
		return "BoundMethod"
	default:
		return "?"
	}
}

// ModuleRef identifies the module that first introduced a symbol
// (spec.md §3.1 "declaring_module"). It is declared here, rather than
// the concrete *modules.Module it is usually satisfied by, so that this
// package never imports internal/modules — modules imports values, not
// the reverse (spec.md Design Notes, "bundle into a Services context").
type ModuleRef interface {
	QualifiedName() string
}

// MemberProvider answers member queries on behalf of a Type that does
// not hold its own member table directly — principally ModuleType,
// whose members live in a GlobalScope owned by internal/scope.
type MemberProvider interface {
	GetMember(name string) (Member, bool)
	MemberNames() []string
}

// Member = { kind, declaring_module } plus its Type (spec.md §3.1).
type Member interface {
	MemberKind() MemberKind
	DeclaringModule() ModuleRef
	Type() Type
}

// Type is the polymorphic value every Member carries (spec.md §4.A).
// The table of operations in §4.A (get_member, member_names, call,
// index, create_instance) is split across two surfaces:
//   - GetMember/MemberNames are structural and variant-local, so they
//     are methods here.
//   - call/index/create_instance need an Evaluator and an ArgumentSet
//     to do their work (overload selection, body walking); putting them
//     on Type would make this package depend on internal/eval. They are
//     free functions in internal/eval that type-switch on Type instead.
type Type interface {
	String() string
	DeclaringModule() ModuleRef
	GetMember(name string) (Member, bool)
	MemberNames() []string
}

// IsUnknown reports whether t is the Unknown sentinel (spec.md §3.1
// invariant: "The Unknown Type is a singleton sentinel").
func IsUnknown(t Type) bool {
	_, ok := t.(unknownType)
	return ok
}
