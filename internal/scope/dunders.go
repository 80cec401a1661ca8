package scope

// Implicit dunder attributes synthesized per scope kind (spec.md §3.3).
// This core does not model precise builtin types for code/closure/dict
// objects, so every synthesized dunder is typed Unknown rather than a
// built-in type.
var (
	ClassScopeDunders = []string{
		"__class__", "__name__", "__doc__", "__dict__",
	}

	FunctionScopeDunders = []string{
		"__name__", "__doc__", "__closure__", "__func__",
		"__globals__", "__defaults__", "__self__", "__code__",
	}
)

// DeclareImplicitDunders seeds s.Vars with the synthesized attributes
// for s.Kind (spec.md §3.3). It is a no-op for scopes that declare none.
func DeclareImplicitDunders(s *Scope) {
	var names []string
	switch s.Kind {
	case KindClass:
		names = ClassScopeDunders
	case KindFunction:
		names = FunctionScopeDunders
	default:
		return
	}
	for _, n := range names {
		if _, ok := s.Vars.Get(n); ok {
			continue
		}
		s.Vars.Put(&Variable{Name: n, Source: SourceBuiltin})
	}
}
