package values

// BuiltinID enumerates the fixed set of builtin type ids (spec.md §3.1).
type BuiltinID int

const (
	BInt BuiltinID = iota
	BLong // language v2.x only; distinct from BInt per spec.md §4.D.5.1 promotion table
	BFloat
	BComplex
	BBool
	BStr
	BBytes
	BUnicode
	BList
	BTuple
	BDict
	BSet
	BFrozenSet
	BNone
	BEllipsis
	BFunction
	BTypeMeta // the builtin "type" (spec.md: BuiltinType(id) "Type")
	BModule
	BIterator
)

func (id BuiltinID) String() string {
	switch id {
	case BInt:
		return "int"
	case BLong:
		return "long"
	case BFloat:
		return "float"
	case BComplex:
		return "complex"
	case BBool:
		return "bool"
	case BStr:
		return "str"
	case BBytes:
		return "bytes"
	case BUnicode:
		return "unicode"
	case BList:
		return "list"
	case BTuple:
		return "tuple"
	case BDict:
		return "dict"
	case BSet:
		return "set"
	case BFrozenSet:
		return "frozenset"
	case BNone:
		return "None"
	case BEllipsis:
		return "ellipsis"
	case BFunction:
		return "function"
	case BTypeMeta:
		return "type"
	case BModule:
		return "module"
	case BIterator:
		return "iterator"
	default:
		return "?"
	}
}

// IsIntegerLike / IsStringLike / IsSupportedBuiltin group builtin ids the
// way spec.md §4.D.5.1's promotion table groups them, so the arithmetic
// dispatcher in internal/eval can test membership without repeating the
// switch at every call site.

func (id BuiltinID) IsIntegerLike() bool {
	return id == BInt || id == BLong || id == BBool
}

func (id BuiltinID) IsStringLike() bool {
	return id == BStr || id == BBytes || id == BUnicode
}

func (id BuiltinID) IsSupportedArithmetic() bool {
	switch id {
	case BBool, BInt, BLong, BFloat, BComplex, BStr, BBytes, BUnicode:
		return true
	default:
		return false
	}
}

// BuiltinType is one of the fixed builtin types (spec.md §3.1). Builtins
// have no user-declared members of their own; special-case operator
// dunders are supplied directly by internal/eval's promotion table
// rather than by a member map here, since spec.md §4.D.5.1 dispatches
// on BuiltinID directly for the common case.
type BuiltinType struct {
	ID     BuiltinID
	Module ModuleRef // the builtins module
}

func NewBuiltinType(id BuiltinID, mod ModuleRef) *BuiltinType {
	return &BuiltinType{ID: id, Module: mod}
}

func (t *BuiltinType) String() string                  { return t.ID.String() }
func (t *BuiltinType) DeclaringModule() ModuleRef       { return t.Module }
func (t *BuiltinType) GetMember(string) (Member, bool)  { return nil, false }
func (t *BuiltinType) MemberNames() []string            { return nil }

// MemberKind/Type let a BuiltinType stand directly as a Member, the same
// way ClassType does: binding the name "int" in the builtins scope to a
// Member whose Type() is itself lets §4.D.2's "receiver is a class, not
// an instance" check treat builtin type names the same as user classes.
func (t *BuiltinType) MemberKind() MemberKind { return KindClass }
func (t *BuiltinType) Type() Type             { return t }

// SameBuiltin reports whether two types are both BuiltinType with the
// same id — the `==` comparison spec.md §4.D.7.1 overload selection and
// §4.D.5.1 promotion both rely on.
func SameBuiltin(a, b Type) (BuiltinID, bool) {
	ba, ok := a.(*BuiltinType)
	if !ok {
		return 0, false
	}
	bb, ok := b.(*BuiltinType)
	if !ok || bb.ID != ba.ID {
		return 0, false
	}
	return ba.ID, true
}
