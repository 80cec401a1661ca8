package values

import "fmt"

// CollectionKind distinguishes the four builtin parameterized
// collections (spec.md §3.1).
type CollectionKind int

const (
	CollList CollectionKind = iota
	CollTuple
	CollSet
	CollDict
)

func (k CollectionKind) builtinID() BuiltinID {
	switch k {
	case CollList:
		return BList
	case CollTuple:
		return BTuple
	case CollSet:
		return BSet
	case CollDict:
		return BDict
	default:
		return BList
	}
}

// MaxCapturedElements bounds how many literal elements a collection
// literal captures before Exact flips to false (spec.md §4.D.6, §8.4).
const MaxCapturedElements = 1000

// CollectionType parameterizes List/Tuple/Set by one content Type, Dict
// by two (key, value) — spec.md §3.1. Exact records whether a literal's
// full contents were captured (spec.md §4.D.6, §8.4 boundary case).
type CollectionType struct {
	Kind    CollectionKind
	Content []Type // len 1 for List/Tuple/Set, len 2 (key, value) for Dict
	Module  ModuleRef
	Exact   bool
}

func NewListLike(kind CollectionKind, content Type, mod ModuleRef, exact bool) *CollectionType {
	return &CollectionType{Kind: kind, Content: []Type{content}, Module: mod, Exact: exact}
}

func NewDict(key, value Type, mod ModuleRef, exact bool) *CollectionType {
	return &CollectionType{Kind: CollDict, Content: []Type{key, value}, Module: mod, Exact: exact}
}

func (t *CollectionType) String() string {
	switch t.Kind {
	case CollDict:
		return fmt.Sprintf("dict[%s, %s]", t.Content[0].String(), t.Content[1].String())
	default:
		return fmt.Sprintf("%s[%s]", t.Kind.builtinID().String(), t.ElementType().String())
	}
}

// ElementType is the single content type for List/Tuple/Set.
func (t *CollectionType) ElementType() Type {
	if len(t.Content) == 0 {
		return UnknownType
	}
	return t.Content[0]
}

// KeyType / ValueType are defined only for Dict.
func (t *CollectionType) KeyType() Type {
	if len(t.Content) < 2 {
		return UnknownType
	}
	return t.Content[0]
}

func (t *CollectionType) ValueType() Type {
	if len(t.Content) < 2 {
		return UnknownType
	}
	return t.Content[1]
}

func (t *CollectionType) DeclaringModule() ModuleRef { return t.Module }

func (t *CollectionType) GetMember(string) (Member, bool) { return nil, false }

func (t *CollectionType) MemberNames() []string { return nil }
