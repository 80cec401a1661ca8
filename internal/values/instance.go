package values

import "fmt"

// Instance is a value of Type T (spec.md §3.1). Indexing and calling an
// Instance are evaluator operations (internal/eval), not methods here —
// see the comment on the Type interface.
type Instance struct {
	T Type
}

func NewInstance(t Type) Instance { return Instance{T: t} }

func (i Instance) MemberKind() MemberKind     { return KindInstance }
func (i Instance) DeclaringModule() ModuleRef { return i.T.DeclaringModule() }
func (i Instance) Type() Type                 { return i.T }
func (i Instance) String() string             { return fmt.Sprintf("Instance(%s)", i.T.String()) }

// Constant is an Instance carrying a literal payload (spec.md §3.1);
// internal/eval folds the payload only for unary integer negation.
// Constant.Type() always equals its T (spec.md §3.1
// invariant "Constant is always subordinate to its Type").
type Constant struct {
	Instance
	Value interface{} // *big.Int, float64, complex128, bool, string, []byte, nil
}

func NewConstant(t Type, value interface{}) Constant {
	return Constant{Instance: NewInstance(t), Value: value}
}

func (c Constant) MemberKind() MemberKind { return KindConstant }
func (c Constant) String() string         { return fmt.Sprintf("Constant(%s, %v)", c.T.String(), c.Value) }

// TryGet returns c.Value narrowed to T, following spec.md §4.A's
// `try_get<T>()`.
func TryGet[T any](c Constant) (T, bool) {
	v, ok := c.Value.(T)
	return v, ok
}

// BoundMethod is a callable whose first parameter is pre-supplied
// (spec.md §3.1, Glossary). Function is nil when what's bound is a
// plain Type read off an instance rather than an actual method — the
// BoundType case spec.md §4.D.2 describes; PlainType is set instead in
// that case. Both share one MemberKind (KindBoundMethod) because both
// are "receiver-qualified callables" per the Glossary entry that groups
// them; the spec's closed MemberKind set has no separate slot for
// BoundType, so this core resolves that ambiguity by reusing the
// callable kind and distinguishing the two cases on the struct fields
// (see DESIGN.md, Open Question: BoundType member kind).
type BoundMethod struct {
	Function  *FunctionType
	PlainType Type // set instead of Function for the BoundType case
	Self      Member
}

func NewBoundMethod(fn *FunctionType, self Member) *BoundMethod {
	return &BoundMethod{Function: fn, Self: self}
}

func NewBoundType(t Type, self Member) *BoundMethod {
	return &BoundMethod{PlainType: t, Self: self}
}

func (b *BoundMethod) MemberKind() MemberKind { return KindBoundMethod }

func (b *BoundMethod) DeclaringModule() ModuleRef {
	if b.Function != nil {
		return b.Function.DeclaringModule()
	}
	if b.PlainType != nil {
		return b.PlainType.DeclaringModule()
	}
	return nil
}

func (b *BoundMethod) Type() Type {
	if b.Function != nil {
		return b.Function
	}
	return b.PlainType
}

func (b *BoundMethod) String() string {
	if b.Function != nil {
		return "bound:" + b.Function.String()
	}
	if b.PlainType != nil {
		return "bound-type:" + b.PlainType.String()
	}
	return "bound:?"
}
