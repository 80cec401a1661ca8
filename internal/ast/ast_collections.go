package ast

// ListExpr, TupleExpr, SetExpr are homogeneous-syntax collection
// literals; DictExpr pairs keys and values. Capture is bounded to 1000
// elements by the evaluator, not by the parser (spec.md §4.D.6).
type ListExpr struct {
	base
	Elements []Expression
}

func (e *ListExpr) Accept(v Visitor) { v.VisitListExpr(e) }
func (e *ListExpr) expressionNode()  {}

type TupleExpr struct {
	base
	Elements []Expression
}

func (e *TupleExpr) Accept(v Visitor) { v.VisitTupleExpr(e) }
func (e *TupleExpr) expressionNode()  {}

type SetExpr struct {
	base
	Elements []Expression
}

func (e *SetExpr) Accept(v Visitor) { v.VisitSetExpr(e) }
func (e *SetExpr) expressionNode()  {}

// DictPair is one `key: value` entry of a DictExpr.
type DictPair struct {
	Key, Value Expression
}

type DictExpr struct {
	base
	Pairs []DictPair
}

func (e *DictExpr) Accept(v Visitor) { v.VisitDictExpr(e) }
func (e *DictExpr) expressionNode()  {}

// CompClauseKind distinguishes the two kinds of clause a comprehension
// can chain: `for x in xs` and `if cond`.
type CompClauseKind int

const (
	CompFor CompClauseKind = iota
	CompIf
)

// ComprehensionForClause is one `for target in iterable` or `if cond`
// clause of a comprehension, in source order (spec.md §6.2).
type ComprehensionForClause struct {
	base
	Kind     CompClauseKind
	Target   Pattern    // set when Kind == CompFor
	Iterable Expression // set when Kind == CompFor
	Cond     Expression // set when Kind == CompIf
}

func (c *ComprehensionForClause) Accept(v Visitor) { v.VisitComprehensionForClause(c) }
func (c *ComprehensionForClause) expressionNode()  {}

// GeneratorExpr is the body of any comprehension form: list, set, dict,
// and the bare `(x for x in xs)` generator expression. Which literal
// syntax wrapped it is recorded only in IsDictComp/IsSetComp/IsListComp
// (set by the parser from the surrounding brackets), which determine the
// produced CollectionType (spec.md §4.D.6).
type GeneratorExpr struct {
	base
	Output     Expression // the element expression; for dict comps this is Key
	OutputVal  Expression // set only for dict comprehensions: the value expression
	Clauses    []*ComprehensionForClause
	IsDictComp bool
	IsSetComp  bool
	IsListComp bool // `[... for ...]`; false with IsDictComp/IsSetComp false means a bare `(... for ...)` generator
}

func (e *GeneratorExpr) Accept(v Visitor) { v.VisitGeneratorExpr(e) }
func (e *GeneratorExpr) expressionNode()  {}
