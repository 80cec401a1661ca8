// Package scope implements nested lexical scopes and the variable
// collection each owns (spec.md §3.3, §4.B).
package scope

// Kind distinguishes why a Scope exists; it gates which implicit
// dunder attributes get declared (spec.md §3.3) and which lookup rules
// apply (spec.md §4.B "ClassMembers").
type Kind int

const (
	KindGlobal Kind = iota
	KindClass
	KindFunction
	KindComprehension
)

// LookupOptions is the bitmask spec.md §4.B defines for lookup().
type LookupOptions uint8

const (
	OptLocal LookupOptions = 1 << iota
	OptNonlocal
	OptGlobal
	OptBuiltins
	OptClassMembers
)

// Normal is shorthand for Local | Nonlocal | Global | Builtins
// (spec.md §4.B).
const Normal = OptLocal | OptNonlocal | OptGlobal | OptBuiltins

func (o LookupOptions) has(flag LookupOptions) bool { return o&flag != 0 }
