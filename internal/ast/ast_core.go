// Package ast defines the syntax-tree contract the evaluator consumes.
// The lexer/parser that produces these nodes is an external collaborator
// (spec.md §1, §6.2); this package only fixes the node shapes and the
// visitor dispatch the rest of the core relies on.
package ast

import "github.com/kestrel-lang/kestrel/internal/token"

// Node is the base interface implemented by every syntax-tree node.
type Node interface {
	Span() token.Span
	Accept(v Visitor)
}

// Statement is a Node that appears in a statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Pattern appears on the left of an assignment or a comprehension clause
// and may bind more than one name (tuple/list unpacking).
type Pattern interface {
	Node
	patternNode()
}

// base embeds a Span so every concrete node gets Span() for free.
type base struct {
	span token.Span
}

func (b base) Span() token.Span { return b.span }

// Module is the root node of one parsed source file.
type Module struct {
	base
	Path       string // absolute file path, empty for synthetic modules
	Statements []Statement
}

func NewModule(span token.Span, path string, stmts []Statement) *Module {
	return &Module{base: base{span}, Path: path, Statements: stmts}
}

func (m *Module) Accept(v Visitor) { v.VisitModule(m) }

// Identifier names a binding site or a reference to one.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(span token.Span, name string) *Identifier {
	return &Identifier{base: base{span}, Name: name}
}

func (i *Identifier) Accept(v Visitor)  { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()   {}
func (i *Identifier) patternNode()      {}

// TuplePattern / ListPattern unpack an iterable into several names, e.g.
// `(a, b) = pair`.
type TuplePattern struct {
	base
	Elements []Pattern
}

func (p *TuplePattern) Accept(v Visitor) { v.VisitTuplePattern(p) }
func (p *TuplePattern) patternNode()     {}

type ListPattern struct {
	base
	Elements []Pattern
}

func (p *ListPattern) Accept(v Visitor) { v.VisitListPattern(p) }
func (p *ListPattern) patternNode()     {}

// ImportStatement binds a module (or a set of names from it) into scope.
// `import a.b.c [as alias]` or `from a.b import x, y [as z]`.
type ImportStatement struct {
	base
	ModuleName string   // dotted import path, e.g. "os.path"
	Alias      string   // empty if none
	FromNames  []string // non-empty for `from M import a, b`
	FromAlias  []string // parallel to FromNames; empty string means no alias
	IsFrom     bool
	Level      int // number of leading dots for relative imports
}

func (s *ImportStatement) Accept(v Visitor) { v.VisitImportStatement(s) }
func (s *ImportStatement) statementNode()   {}

// AssignmentStmt covers simple and pattern assignment, and the annotated
// form `x: T = value` (spec.md §4.G "Type annotations").
type AssignmentStmt struct {
	base
	Target     Pattern
	Annotation Type // nil if absent
	Value      Expression
}

func (s *AssignmentStmt) Accept(v Visitor) { v.VisitAssignmentStmt(s) }
func (s *AssignmentStmt) statementNode()   {}

// ReturnStmt is `return [expr]`.
type ReturnStmt struct {
	base
	Value Expression // nil for bare `return`
}

func (s *ReturnStmt) Accept(v Visitor) { v.VisitReturnStmt(s) }
func (s *ReturnStmt) statementNode()   {}

// ExpressionStmt wraps an expression evaluated purely for side effects.
type ExpressionStmt struct {
	base
	Value Expression
}

func (s *ExpressionStmt) Accept(v Visitor) { v.VisitExpressionStmt(s) }
func (s *ExpressionStmt) statementNode()   {}

// GlobalStmt / NonlocalStmt record the scoping modifiers named in
// spec.md §3.3 ("NonLocals and Globals").
type GlobalStmt struct {
	base
	Names []string
}

func (s *GlobalStmt) Accept(v Visitor) { v.VisitGlobalStmt(s) }
func (s *GlobalStmt) statementNode()   {}

type NonlocalStmt struct {
	base
	Names []string
}

func (s *NonlocalStmt) Accept(v Visitor) { v.VisitNonlocalStmt(s) }
func (s *NonlocalStmt) statementNode()   {}

// BlockStmt groups statements under a compound statement (if/for/while
// bodies, function/class bodies).
type BlockStmt struct {
	base
	Statements []Statement
}

func (s *BlockStmt) Accept(v Visitor) { v.VisitBlockStmt(s) }
func (s *BlockStmt) statementNode()   {}

// ErrorExpr stands in for a syntax error the parser recovered from; it
// evaluates to Unknown (spec.md §6.2).
type ErrorExpr struct {
	base
}

func (e *ErrorExpr) Accept(v Visitor) { v.VisitErrorExpr(e) }
func (e *ErrorExpr) expressionNode()  {}
