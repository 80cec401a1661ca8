package scope

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// Scope is one lexical nesting level (spec.md §3.3, §4.B). Node is the
// AST node that introduced it (Module, ClassDef, FunctionDef, or a
// comprehension clause) and is nil for synthetic scopes built in tests.
type Scope struct {
	Kind     Kind
	Node     ast.Node
	Vars     *VariableCollection
	Children []*Scope
	Outer    *Scope

	// NonLocal and Global record names a `nonlocal`/`global` statement
	// redirected to an enclosing scope (spec.md §4.B "Locality").
	NonLocal map[string]bool
	Global   map[string]bool
}

func NewScope(kind Kind, node ast.Node, outer *Scope) *Scope {
	s := &Scope{
		Kind:     kind,
		Node:     node,
		Vars:     NewVariableCollection(),
		Outer:    outer,
		NonLocal: make(map[string]bool),
		Global:   make(map[string]bool),
	}
	if outer != nil {
		outer.Children = append(outer.Children, s)
	}
	return s
}

// Declare binds name to value in this scope (spec.md §3.3). It refuses
// to overwrite an existing, more-precise binding with Unknown — spec.md
// §8.1 invariant 2, "assigning Unknown over a previously known variable
// does not erase it" — and has no parameter that forces such an
// overwrite; otherwise it replaces by insertion order, matching VariableCollection's
// last-write-wins rule.
func (s *Scope) Declare(name string, value values.Member, source Source, loc token.Location) *Variable {
	if existing, ok := s.Vars.Get(name); ok {
		if value != nil && values.IsUnknown(value.Type()) && existing.Value != nil && !values.IsUnknown(existing.Value.Type()) {
			return existing
		}
		existing.Value = value
		existing.Source = source
		return existing
	}
	v := NewVariable(name, value, source, loc)
	s.Vars.Put(v)
	return v
}

// Link binds name to an existing Variable owned by another scope,
// recording parent to forward references (spec.md §3.3 "back-link to
// its parent variable"); used for `import x as y` and `from m import x`.
func (s *Scope) Link(name string, parent *Variable) *Variable {
	v := &Variable{Name: name, Value: parent.Value, Source: SourceImport, Parent: parent}
	s.Vars.Put(v)
	return v
}

// Lookup walks scopes according to opts (spec.md §4.B). It returns the
// Variable found, the Scope that owns it, and whether anything matched.
func (s *Scope) Lookup(name string, opts LookupOptions) (*Variable, *Scope, bool) {
	if opts.has(OptLocal) {
		if v, ok := s.Vars.Get(name); ok && !s.Global[name] && !s.NonLocal[name] {
			return v, s, true
		}
	}

	if opts.has(OptNonlocal) && (s.NonLocal[name] || s.Global[name]) {
		for outer := s.Outer; outer != nil; outer = outer.Outer {
			if outer.Kind == KindGlobal {
				break
			}
			if v, ok := outer.Vars.Get(name); ok {
				return v, outer, true
			}
		}
	}

	if opts.has(OptNonlocal) {
		for outer := s.Outer; outer != nil; outer = outer.Outer {
			if outer.Kind == KindClass {
				continue // class bodies are not visible to nested functions
			}
			if outer.Kind == KindGlobal {
				break
			}
			if v, ok := outer.Vars.Get(name); ok {
				return v, outer, true
			}
		}
	}

	if opts.has(OptGlobal) {
		g := s.enclosingGlobal()
		if g != nil {
			if v, ok := g.Vars.Get(name); ok {
				return v, g, true
			}
		}
	}

	if opts.has(OptClassMembers) {
		for outer := s; outer != nil; outer = outer.Outer {
			if outer.Kind == KindClass {
				if v, ok := outer.Vars.Get(name); ok {
					return v, outer, true
				}
			}
		}
	}

	return nil, nil, false
}

func (s *Scope) enclosingGlobal() *Scope {
	for cur := s; cur != nil; cur = cur.Outer {
		if cur.Kind == KindGlobal {
			return cur
		}
	}
	return nil
}

// EnumerateTowardsGlobal yields this scope then each ancestor up to and
// including the module scope, the order spec.md §4.B's lookup algorithm
// walks in.
func (s *Scope) EnumerateTowardsGlobal() []*Scope {
	var chain []*Scope
	for cur := s; cur != nil; cur = cur.Outer {
		chain = append(chain, cur)
	}
	return chain
}

// GlobalScope is the module-level Scope, wrapped so it can satisfy
// values.MemberProvider and stand in as a ModuleType's Scope field
// (spec.md §3.1 ModuleType, §4.C).
type GlobalScope struct {
	*Scope
	ModuleName string
}

func NewGlobalScope(node ast.Node, moduleName string) *GlobalScope {
	return &GlobalScope{Scope: NewScope(KindGlobal, node, nil), ModuleName: moduleName}
}

func (g *GlobalScope) GetMember(name string) (values.Member, bool) {
	v, _, ok := g.Lookup(name, OptLocal)
	if !ok || v.Value == nil {
		return nil, false
	}
	return v.Value, true
}

func (g *GlobalScope) MemberNames() []string {
	return g.Vars.Names()
}

var _ values.MemberProvider = (*GlobalScope)(nil)
