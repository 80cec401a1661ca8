package values

import "strings"

// UnionType is a non-empty, deduplicated, first-seen-ordered sequence
// of Types (spec.md §3.1).
type UnionType struct {
	Options []Type
}

// NewUnion builds a UnionType from ts, deduplicating by String() and
// preserving first-seen order. If exactly one distinct type remains it
// is returned directly rather than wrapped (a one-element union is not
// a union — spec.md §3.1 "non-empty, deduplicated").
func NewUnion(ts ...Type) Type {
	seen := make(map[string]bool)
	var out []Type
	for _, t := range ts {
		if t == nil {
			continue
		}
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	switch len(out) {
	case 0:
		return UnknownType
	case 1:
		return out[0]
	default:
		return &UnionType{Options: out}
	}
}

func (u *UnionType) String() string {
	parts := make([]string, len(u.Options))
	for i, t := range u.Options {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

func (u *UnionType) DeclaringModule() ModuleRef {
	if len(u.Options) == 0 {
		return nil
	}
	return u.Options[0].DeclaringModule()
}

// GetMember on a union looks the name up on every option and only
// succeeds when every option agrees; otherwise a caller needing a
// narrowed type should check each option directly. This is a
// conservative default; the evaluator rarely calls GetMember directly
// on a Union (member access narrows per spec.md §4.D.2 rules first).
func (u *UnionType) GetMember(name string) (Member, bool) {
	if len(u.Options) == 0 {
		return nil, false
	}
	first, ok := u.Options[0].GetMember(name)
	if !ok {
		return nil, false
	}
	for _, t := range u.Options[1:] {
		if _, ok := t.GetMember(name); !ok {
			return nil, false
		}
	}
	return first, true
}

func (u *UnionType) MemberNames() []string {
	if len(u.Options) == 0 {
		return nil
	}
	counts := make(map[string]int)
	var order []string
	for _, t := range u.Options {
		for _, n := range t.MemberNames() {
			if counts[n] == 0 {
				order = append(order, n)
			}
			counts[n]++
		}
	}
	var names []string
	for _, n := range order {
		if counts[n] == len(u.Options) {
			names = append(names, n)
		}
	}
	return names
}

// Contains reports whether t is one of u's options (by String()).
func (u *UnionType) Contains(t Type) bool {
	key := t.String()
	for _, o := range u.Options {
		if o.String() == key {
			return true
		}
	}
	return false
}
