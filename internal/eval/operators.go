package eval

import (
	"math/big"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/token"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// builtinsModuleRef is the ModuleRef new builtin-result Types should
// declare themselves against, matching how the builtins themselves are
// declared (nil when no Registry/builtins module is wired, e.g. in
// package-level unit tests).
func (e *Evaluator) builtinsModuleRef() values.ModuleRef {
	if e.Registry == nil {
		return nil
	}
	if b := e.Registry.Builtins(); b != nil {
		return b
	}
	return nil
}

func (e *Evaluator) boolType() values.Type {
	return values.NewBuiltinType(values.BBool, e.builtinsModuleRef())
}

// VisitUnaryExpr implements the unary half of spec.md §4.D.5. `not`/`is`/
// `is not` always produce bool; `-N` on a literal integer folds into a
// new Constant; arithmetic unary operators otherwise pass a supported
// builtin operand's type straight through, else fall back to the
// matching dunder's declared return type.
func (e *Evaluator) VisitUnaryExpr(u *ast.UnaryExpr) {
	operand := e.Eval(u.Operand)

	switch u.Op {
	case ast.UnaryNot, ast.UnaryIs, ast.UnaryIsNot:
		e.set(values.NewInstance(e.boolType()))
		return
	}

	if u.Op == ast.UnaryNeg {
		if c, ok := operand.(values.Constant); ok {
			if folded, ok := negateConstant(c); ok {
				e.set(folded)
				return
			}
		}
	}

	if bt, ok := operand.Type().(*values.BuiltinType); ok && bt.ID.IsSupportedArithmetic() {
		e.set(values.NewInstance(bt))
		return
	}

	if dunder := unaryDunder(u.Op); dunder != "" {
		if rt, ok := e.dunderReturnType(operand.Type(), dunder); ok {
			e.set(values.NewInstance(rt))
			return
		}
	}
	e.set(values.NewInstance(values.UnknownType))
}

// negateConstant folds literal integer negation into a new Constant
// (spec.md §4.D.5: "For literal integers, -N is folded into a new
// Constant"), reusing the same *big.Int payload TryGet already exposes.
func negateConstant(c values.Constant) (values.Constant, bool) {
	n, ok := values.TryGet[*big.Int](c)
	if !ok {
		return values.Constant{}, false
	}
	return values.NewConstant(c.Type(), new(big.Int).Neg(n)), true
}

func unaryDunder(op ast.UnaryOp) string {
	switch op {
	case ast.UnaryNeg:
		return "__neg__"
	case ast.UnaryPos:
		return "__pos__"
	case ast.UnaryInvert:
		return "__invert__"
	default:
		return ""
	}
}

// VisitBinaryExpr implements spec.md §4.D.5.1's promotion table; the
// actual priority-ordered dispatch lives in applyBinary.
func (e *Evaluator) VisitBinaryExpr(b *ast.BinaryExpr) {
	left := e.Eval(b.Left)
	right := e.Eval(b.Right)
	e.set(e.applyBinary(b.Op, left, right, b.Left, b.Right, b.Span()))
}

// applyBinary implements spec.md §4.D.5's priority-ordered binary
// dispatch rules in order:
//  1. both sides Unknown: Bool if comparison, else Unknown.
//  2. `+` on two same-kind collections with concrete contents: concat.
//  3. `%` with a string-like left operand: same string-like type.
//  4. both supported builtins: the §4.D.5.1 arithmetic promotion table.
//  5. call the operator dunder on the left, then the reflected dunder on
//     the right; if the left is a supported builtin and the op is a
//     comparison, swap and invert (`a < b` becomes `b > a`).
//  6. nothing resolved: Bool if comparison, else the non-Unknown side.
func (e *Evaluator) applyBinary(op ast.BinaryOp, left, right values.Member, leftExpr, rightExpr ast.Expression, span token.Span) values.Member {
	if op == ast.OpIn || op == ast.OpNotIn {
		return values.NewInstance(e.boolType())
	}

	lt, rt := left.Type(), right.Type()

	// Rule 1.
	if values.IsUnknown(lt) && values.IsUnknown(rt) {
		if isComparisonOp(op) {
			return values.NewInstance(e.boolType())
		}
		return values.NewInstance(values.UnknownType)
	}

	// Rule 2.
	if op == ast.OpAdd {
		if coll, ok := concatCollections(lt, rt); ok {
			return values.NewInstance(coll)
		}
	}

	// Rule 3.
	if op == ast.OpMod {
		if lb, ok := lt.(*values.BuiltinType); ok && lb.ID.IsStringLike() {
			return values.NewInstance(lb)
		}
	}

	// Rule 4.
	if id, ok := promoteBuiltins(lt, rt); ok {
		if isComparisonOp(op) {
			return values.NewInstance(e.boolType())
		}
		return values.NewInstance(values.NewBuiltinType(id, e.builtinsModuleRef()))
	}

	// Rule 5.
	if dunder := binaryDunder(op); dunder != "" {
		if result, ok := e.invokeDunder(lt, dunder, left, rightExpr, span); ok {
			return result
		}
		if reflected := reflectedDunder(op); reflected != "" {
			if result, ok := e.invokeDunder(rt, reflected, right, leftExpr, span); ok {
				return result
			}
		}
		if isComparisonOp(op) {
			if lb, ok := lt.(*values.BuiltinType); ok && lb.ID.IsSupportedArithmetic() {
				swapped := binaryDunder(swapComparison(op))
				if result, ok := e.invokeDunder(rt, swapped, right, leftExpr, span); ok {
					return result
				}
			}
		}
	}

	// Rule 6.
	if isComparisonOp(op) {
		return values.NewInstance(e.boolType())
	}
	if values.IsUnknown(lt) {
		return values.NewInstance(rt)
	}
	return values.NewInstance(lt)
}

func isComparisonOp(op ast.BinaryOp) bool {
	switch op {
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpEq, ast.OpNe:
		return true
	default:
		return false
	}
}

// swapComparison maps a comparison operator to the one applied when its
// operands are swapped (`a < b` becomes `b > a`); `==`/`!=` are symmetric.
func swapComparison(op ast.BinaryOp) ast.BinaryOp {
	switch op {
	case ast.OpLt:
		return ast.OpGt
	case ast.OpLe:
		return ast.OpGe
	case ast.OpGt:
		return ast.OpLt
	case ast.OpGe:
		return ast.OpLe
	default:
		return op
	}
}

// concatCollections implements rule 2: two CollectionTypes of the same
// Kind concatenate into a new collection whose content types are the
// union of both sides' (spec.md §4.D.5 point 2).
func concatCollections(lt, rt values.Type) (*values.CollectionType, bool) {
	lc, lok := lt.(*values.CollectionType)
	rc, rok := rt.(*values.CollectionType)
	if !lok || !rok || lc.Kind != rc.Kind {
		return nil, false
	}
	exact := lc.Exact && rc.Exact
	if lc.Kind == values.CollDict {
		key := values.NewUnion(lc.KeyType(), rc.KeyType())
		val := values.NewUnion(lc.ValueType(), rc.ValueType())
		return values.NewDict(key, val, lc.Module, exact), true
	}
	elem := values.NewUnion(lc.ElementType(), rc.ElementType())
	return values.NewListLike(lc.Kind, elem, lc.Module, exact), true
}

// binaryDunder is the fixed operator->special-method mapping spec.md's
// Glossary leaves unfilled; this table follows the one-to-one naming
// the teacher's own builtin dispatch tables use for arithmetic dunders.
func binaryDunder(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "__add__"
	case ast.OpSub:
		return "__sub__"
	case ast.OpMul:
		return "__mul__"
	case ast.OpDiv:
		return "__truediv__"
	case ast.OpFloorDiv:
		return "__floordiv__"
	case ast.OpMod:
		return "__mod__"
	case ast.OpPow:
		return "__pow__"
	case ast.OpMatMul:
		return "__matmul__"
	case ast.OpLShift:
		return "__lshift__"
	case ast.OpRShift:
		return "__rshift__"
	case ast.OpBitAnd:
		return "__and__"
	case ast.OpBitOr:
		return "__or__"
	case ast.OpBitXor:
		return "__xor__"
	case ast.OpLt:
		return "__lt__"
	case ast.OpLe:
		return "__le__"
	case ast.OpGt:
		return "__gt__"
	case ast.OpGe:
		return "__ge__"
	case ast.OpEq:
		return "__eq__"
	case ast.OpNe:
		return "__ne__"
	default:
		return ""
	}
}

// reflectedDunder is the r-prefixed sibling consulted when the left
// operand has no dunder for op (spec.md §4.D.5 rule 5). Comparisons have
// no r-prefixed sibling of their own — their reflection is the
// swap-and-invert case applyBinary handles separately — so this reports
// none for them.
func reflectedDunder(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "__radd__"
	case ast.OpSub:
		return "__rsub__"
	case ast.OpMul:
		return "__rmul__"
	case ast.OpDiv:
		return "__rtruediv__"
	case ast.OpFloorDiv:
		return "__rfloordiv__"
	case ast.OpMod:
		return "__rmod__"
	case ast.OpPow:
		return "__rpow__"
	case ast.OpMatMul:
		return "__rmatmul__"
	case ast.OpLShift:
		return "__rlshift__"
	case ast.OpRShift:
		return "__rrshift__"
	case ast.OpBitAnd:
		return "__rand__"
	case ast.OpBitOr:
		return "__ror__"
	case ast.OpBitXor:
		return "__rxor__"
	default:
		return ""
	}
}

// invokeDunder looks up name on t and, if it resolves to a FunctionType,
// actually calls it through e.invoke — mirroring members.go's Property
// dispatch and index.go's `__getitem__` dispatch — so overload selection
// and the Call Evaluator (spec.md §4.F) run instead of reading a static
// return annotation off the first overload.
func (e *Evaluator) invokeDunder(t values.Type, name string, receiver values.Member, argExpr ast.Expression, span token.Span) (values.Member, bool) {
	member, ok := t.GetMember(name)
	if !ok {
		return nil, false
	}
	fn, ok := member.(*values.FunctionType)
	if !ok {
		return nil, false
	}
	return e.invoke(fn, receiver, []ast.Argument{{Kind: ast.ArgPositional, Value: argExpr}}, span), true
}

// dunderReturnType looks up name on t and reports the first overload's
// declared return type, if any. Used only by VisitUnaryExpr: unary
// dunders take no further operand to bind, so reading the declared
// return annotation directly is equivalent to invoking them.
func (e *Evaluator) dunderReturnType(t values.Type, name string) (values.Type, bool) {
	member, ok := t.GetMember(name)
	if !ok {
		return nil, false
	}
	fn, ok := member.(*values.FunctionType)
	if !ok || len(fn.Overloads) == 0 {
		return nil, false
	}
	rt := fn.Overloads[0].ReturnType
	if values.IsUnknown(rt) {
		return nil, false
	}
	return rt, true
}

// numericRank orders the builtin ids spec.md §4.D.5.1's promotion table
// promotes along; -1 means "not part of the numeric ladder".
func numericRank(id values.BuiltinID) int {
	switch id {
	case values.BBool:
		return 0
	case values.BInt:
		return 1
	case values.BLong:
		return 2
	case values.BFloat:
		return 3
	case values.BComplex:
		return 4
	default:
		return -1
	}
}

// promoteBuiltins implements the builtin/builtin half of the promotion
// table: identical ids pass through, numeric ids promote to the higher
// rank, anything else (including any non-numeric string-like mismatch)
// is left to the dunder fallback.
func promoteBuiltins(l, r values.Type) (values.BuiltinID, bool) {
	lb, lok := l.(*values.BuiltinType)
	rb, rok := r.(*values.BuiltinType)
	if !lok || !rok {
		return 0, false
	}
	if lb.ID == rb.ID && lb.ID.IsSupportedArithmetic() {
		return lb.ID, true
	}
	lr, rr := numericRank(lb.ID), numericRank(rb.ID)
	if lr < 0 || rr < 0 {
		return 0, false
	}
	if lr >= rr {
		return lb.ID, true
	}
	return rb.ID, true
}

// VisitAndExpr / VisitOrExpr both evaluate their full Left and Right for
// symbol-table side effects even though a runtime would short-circuit
// (spec.md §4.D.5). `and` always yields Bool; `or` yields the left
// operand when it is non-Unknown, else the right, else Bool (spec.md
// §4.D.5 "Boolean and/or").
func (e *Evaluator) VisitAndExpr(a *ast.AndExpr) {
	e.Eval(a.Left)
	e.Eval(a.Right)
	e.set(values.NewInstance(e.boolType()))
}

func (e *Evaluator) VisitOrExpr(o *ast.OrExpr) {
	left := e.Eval(o.Left)
	right := e.Eval(o.Right)
	if !values.IsUnknown(left.Type()) {
		e.set(left)
		return
	}
	if !values.IsUnknown(right.Type()) {
		e.set(right)
		return
	}
	e.set(values.NewInstance(e.boolType()))
}

// VisitConditionalExpr evaluates the condition for its side effects and
// reports the union of the two branches (spec.md §4.D.5 — ternary is
// not itself a promotion-table operator, so no narrowing is attempted).
func (e *Evaluator) VisitConditionalExpr(c *ast.ConditionalExpr) {
	e.Eval(c.Condition)
	then := e.Eval(c.Then)
	els := e.Eval(c.Else)
	e.set(values.NewInstance(values.NewUnion(then.Type(), els.Type())))
}

// VisitNamedExpr implements the walrus operator: Value's result is both
// the expression's value and the new binding for Target in the current
// scope.
func (e *Evaluator) VisitNamedExpr(n *ast.NamedExpr) {
	val := e.Eval(n.Value)
	e.currentScope().Declare(n.Target.Name, val, scope.SourceDeclaration, e.loc(n.Span()))
	e.set(val)
}
