package values

import "fmt"

// IteratorType is the element type produced by `Next` (spec.md §3.1).
type IteratorType struct {
	Element Type
	Module  ModuleRef
}

func NewIterator(element Type, mod ModuleRef) *IteratorType {
	return &IteratorType{Element: element, Module: mod}
}

func (t *IteratorType) String() string                    { return fmt.Sprintf("Iterator[%s]", t.Element.String()) }
func (t *IteratorType) DeclaringModule() ModuleRef         { return t.Module }
func (t *IteratorType) GetMember(string) (Member, bool)    { return nil, false }
func (t *IteratorType) MemberNames() []string               { return nil }
