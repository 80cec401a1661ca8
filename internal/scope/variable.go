package scope

import (
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// Source records how a variable came to exist (spec.md §3.3).
type Source int

const (
	SourceDeclaration Source = iota
	SourceImport
	SourceBuiltin
	SourceLocality // bound via a `global`/`nonlocal` modifier
)

// Variable is a named binding inside a Scope (spec.md §3.3). It
// implements values.Member directly (MemberKind = Variable), matching
// the closed MemberKind set in spec.md §3.1, which lists "Variable"
// alongside Module/Class/etc. GlobalScope.GetMember does not return the
// Variable itself; it unwraps it and returns the bound Value.
type Variable struct {
	Name       string
	Value      values.Member
	Source     Source
	Definition token.Location
	References []token.Location

	// Parent is set when this Variable is an import alias: reference
	// tracking forwards to the variable in the module that originally
	// declared the name (spec.md §3.3 "may hold a back-link to its
	// parent variable in the source module").
	Parent *Variable
}

func NewVariable(name string, value values.Member, source Source, def token.Location) *Variable {
	return &Variable{Name: name, Value: value, Source: source, Definition: def}
}

func (v *Variable) MemberKind() values.MemberKind { return values.KindVariable }

func (v *Variable) DeclaringModule() values.ModuleRef {
	if v.Value == nil {
		return nil
	}
	return v.Value.DeclaringModule()
}

func (v *Variable) Type() values.Type {
	if v.Value == nil {
		return values.UnknownType
	}
	return v.Value.Type()
}

// AddReference records a use-site location, forwarding through Parent
// so find-usages sees aliasing (spec.md §3.3, Design Notes "Reference
// tracking").
func (v *Variable) AddReference(loc token.Location) {
	target := v
	for target.Parent != nil {
		target = target.Parent
	}
	target.References = append(target.References, loc)
}

// VariableCollection is an insertion-ordered, single-valued map of
// names to Variables (spec.md §3.3: "last write wins; iteration order
// follows first declaration order").
type VariableCollection struct {
	order []string
	byName map[string]*Variable
}

func NewVariableCollection() *VariableCollection {
	return &VariableCollection{byName: make(map[string]*Variable)}
}

func (c *VariableCollection) Get(name string) (*Variable, bool) {
	v, ok := c.byName[name]
	return v, ok
}

// Put inserts v, or overwrites in place if name was already present —
// this preserves the original position in Names()/iteration order even
// though the binding itself changes (last write wins on value, not on
// position).
func (c *VariableCollection) Put(v *Variable) {
	if _, ok := c.byName[v.Name]; !ok {
		c.order = append(c.order, v.Name)
	}
	c.byName[v.Name] = v
}

func (c *VariableCollection) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *VariableCollection) Variables() []*Variable {
	out := make([]*Variable, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.byName[n])
	}
	return out
}

func (c *VariableCollection) Len() int { return len(c.order) }
