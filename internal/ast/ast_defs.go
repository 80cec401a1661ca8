package ast

// Decorator is a `@expr` line above a def. The evaluator only gives
// special meaning to a closed set of decorator names (`overload`,
// `staticmethod`, `classmethod`, `property`) — spec.md §3.1 "Overloads"
// and §4.D.2; anything else is evaluated but otherwise ignored.
type Decorator struct {
	Expression Expression
}

// FunctionDef declares one overload of a function or method (spec.md
// §3.1 FunctionType/Overloads). Multiple FunctionDefs with the same
// Name and an `@overload`-decorated predecessor chain combine into one
// FunctionType with several Overloads.
type FunctionDef struct {
	base
	Name        *Identifier
	Params      []Parameter
	ReturnType  Type // nil if undeclared
	Body        []Statement
	Decorators  []Decorator
	IsAsync     bool
	IsStub      bool // body is `...` or a docstring only
	IsLambda    bool // synthesized from a LambdaExpr, for uniform handling
}

func (f *FunctionDef) Accept(v Visitor) { v.VisitFunctionDef(f) }
func (f *FunctionDef) statementNode()   {}

// HasDecorator reports whether one of the function's decorators is a
// bare name reference equal to name (e.g. "overload", "staticmethod").
func (f *FunctionDef) HasDecorator(name string) bool {
	for _, d := range f.Decorators {
		if id, ok := d.Expression.(*Identifier); ok && id.Name == name {
			return true
		}
	}
	return false
}

// ClassDef declares a class (spec.md §3.1 ClassType).
type ClassDef struct {
	base
	Name        *Identifier
	Bases       []Expression // base-class expressions; may include Generic[T] markers
	Body        []Statement
	TypeParams  []string // generic parameter names declared via Generic[T, ...] base
}

func (c *ClassDef) Accept(v Visitor) { v.VisitClassDef(c) }
func (c *ClassDef) statementNode()   {}
