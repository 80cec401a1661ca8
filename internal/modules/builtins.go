package modules

import (
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// builtinTypeNames lists the builtin ids every language installation
// exposes as a global name (spec.md §3.1's BuiltinID set, minus the
// internal-only markers BFunction/BTypeMeta/BModule/BIterator which have
// no corresponding source-level constructor name). BLong, BUnicode and
// BEllipsis are not declared; BNone is declared separately as the None
// instance.
var builtinTypeNames = []values.BuiltinID{
	values.BInt, values.BFloat, values.BComplex, values.BBool,
	values.BStr, values.BBytes, values.BList, values.BTuple,
	values.BDict, values.BSet, values.BFrozenSet,
}

// NewBuiltinsModule constructs the singleton Builtins module (spec.md
// §4.C point 1, §4.B "Builtins" lookup option): a GlobalScope whose
// variables name every builtin type, ready to be installed via
// Registry.SetBuiltins.
func NewBuiltinsModule(qualifiedName string) *Module {
	m := newModule("builtins", qualifiedName, KindBuiltin)
	g := scope.NewGlobalScope(nil, qualifiedName)
	m.Scope = g

	for _, id := range builtinTypeNames {
		bt := values.NewBuiltinType(id, m)
		g.Declare(id.String(), bt, scope.SourceBuiltin, token.Location{ModuleID: qualifiedName})
	}
	g.Declare("None", values.NewInstance(values.NewBuiltinType(values.BNone, m)), scope.SourceBuiltin, token.Location{ModuleID: qualifiedName})

	m.setState(StateAnalyzed)
	return m
}
