package values

// ClassType is a user-declared class (spec.md §3.1). Members holds the
// class's own declarations; inherited names are resolved on demand by
// walking Bases in MRO order.
type ClassType struct {
	Name          string
	Module        ModuleRef
	Bases         []Type // ordered as declared
	Members       map[string]Member
	GenericParams []*GenericParameter // empty for non-generic classes
	Specialized   map[string]Type     // generic param name -> concrete Type; nil when unspecialized

	mro    []Type // cached linearization, computed lazily
	mroSet bool
}

func NewClassType(name string, mod ModuleRef, bases []Type) *ClassType {
	return &ClassType{
		Name:    name,
		Module:  mod,
		Bases:   bases,
		Members: make(map[string]Member),
	}
}

func (c *ClassType) String() string { return c.Name }

func (c *ClassType) DeclaringModule() ModuleRef { return c.Module }

// MemberKind/Type let a ClassType stand directly as a Member: spec.md
// §4.D.2 relies on "the target's Type equals the target itself" to
// detect a class (rather than instance) receiver.
func (c *ClassType) MemberKind() MemberKind { return KindClass }
func (c *ClassType) Type() Type             { return c }

// MRO returns the method-resolution order: c itself first, then bases
// depth-first with later duplicates dropped. This is a deliberately
// coarse, linearization-stable approximation of C3 (spec.md §4.A
// "C3-like; document deviations" — true C3 requires monotonicity
// checks across multiple inheritance diamonds that this core does not
// attempt; last-declared-base-wins ties are resolved by first occurrence
// instead of C3's merge rule).
func (c *ClassType) MRO() []Type {
	if c.mroSet {
		return c.mro
	}
	c.mroSet = true
	seen := make(map[*ClassType]bool)
	var order []Type
	var walk func(t Type)
	walk = func(t Type) {
		ct, ok := t.(*ClassType)
		if !ok {
			order = append(order, t)
			return
		}
		if seen[ct] {
			return
		}
		seen[ct] = true
		order = append(order, ct)
		for _, b := range ct.Bases {
			walk(b)
		}
	}
	walk(c)
	c.mro = order
	return c.mro
}

// GetMember searches own members then bases in MRO order (spec.md §4.A).
func (c *ClassType) GetMember(name string) (Member, bool) {
	for _, t := range c.MRO() {
		if ct, ok := t.(*ClassType); ok {
			if m, ok := ct.Members[name]; ok {
				return m, true
			}
			continue
		}
		if m, ok := t.GetMember(name); ok {
			return m, true
		}
	}
	return nil, false
}

// MemberNames lists own-plus-inherited member names, own names first.
func (c *ClassType) MemberNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range c.MRO() {
		if ct, ok := t.(*ClassType); ok {
			for n := range ct.Members {
				if !seen[n] {
					seen[n] = true
					names = append(names, n)
				}
			}
			continue
		}
		for _, n := range t.MemberNames() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// IsGeneric reports whether the class declares unbound generic
// parameters (spec.md §4.G).
func (c *ClassType) IsGeneric() bool {
	return len(c.GenericParams) > 0 && c.Specialized == nil
}

// Specialize returns a copy of c with Specialized set to subst, used by
// internal/generics when parameterizing a generic class (spec.md §4.G
// "ClassType with a specialization map"). Members are shared with the
// original; callers that need specialized member types apply subst
// themselves at the point of use.
func (c *ClassType) Specialize(subst map[string]Type) *ClassType {
	clone := *c
	clone.Specialized = subst
	clone.mroSet = false
	clone.mro = nil
	return &clone
}
