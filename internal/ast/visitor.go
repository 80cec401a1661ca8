package ast

// Visitor dispatches on concrete node type. The evaluator (internal/eval)
// implements Visitor once per expression-evaluation pass; this keeps the
// "one dispatch per expression variant" structure spec.md §4.D calls for
// without a giant type switch duplicated across callers.
type Visitor interface {
	VisitModule(*Module)
	VisitIdentifier(*Identifier)
	VisitTuplePattern(*TuplePattern)
	VisitListPattern(*ListPattern)
	VisitImportStatement(*ImportStatement)
	VisitAssignmentStmt(*AssignmentStmt)
	VisitReturnStmt(*ReturnStmt)
	VisitExpressionStmt(*ExpressionStmt)
	VisitGlobalStmt(*GlobalStmt)
	VisitNonlocalStmt(*NonlocalStmt)
	VisitBlockStmt(*BlockStmt)
	VisitErrorExpr(*ErrorExpr)

	VisitConstantExpr(*ConstantExpr)
	VisitMemberExpr(*MemberExpr)
	VisitCallExpr(*CallExpr)
	VisitIndexExpr(*IndexExpr)
	VisitSliceExpr(*SliceExpr)
	VisitUnaryExpr(*UnaryExpr)
	VisitBinaryExpr(*BinaryExpr)
	VisitAndExpr(*AndExpr)
	VisitOrExpr(*OrExpr)
	VisitConditionalExpr(*ConditionalExpr)
	VisitNamedExpr(*NamedExpr)
	VisitYieldExpr(*YieldExpr)
	VisitFormatSpecifier(*FormatSpecifier)
	VisitFStringExpr(*FStringExpr)
	VisitLambdaExpr(*LambdaExpr)

	VisitListExpr(*ListExpr)
	VisitTupleExpr(*TupleExpr)
	VisitSetExpr(*SetExpr)
	VisitDictExpr(*DictExpr)
	VisitComprehensionForClause(*ComprehensionForClause)
	VisitGeneratorExpr(*GeneratorExpr)

	VisitFunctionDef(*FunctionDef)
	VisitClassDef(*ClassDef)
}

// BaseVisitor implements Visitor with no-op methods so a caller that
// only cares about a handful of node kinds can embed it and override
// the rest, matching the teacher's Visitor convention.
type BaseVisitor struct{}

func (BaseVisitor) VisitModule(*Module)                               {}
func (BaseVisitor) VisitIdentifier(*Identifier)                       {}
func (BaseVisitor) VisitTuplePattern(*TuplePattern)                   {}
func (BaseVisitor) VisitListPattern(*ListPattern)                     {}
func (BaseVisitor) VisitImportStatement(*ImportStatement)             {}
func (BaseVisitor) VisitAssignmentStmt(*AssignmentStmt)               {}
func (BaseVisitor) VisitReturnStmt(*ReturnStmt)                       {}
func (BaseVisitor) VisitExpressionStmt(*ExpressionStmt)               {}
func (BaseVisitor) VisitGlobalStmt(*GlobalStmt)                       {}
func (BaseVisitor) VisitNonlocalStmt(*NonlocalStmt)                   {}
func (BaseVisitor) VisitBlockStmt(*BlockStmt)                         {}
func (BaseVisitor) VisitErrorExpr(*ErrorExpr)                         {}
func (BaseVisitor) VisitConstantExpr(*ConstantExpr)                   {}
func (BaseVisitor) VisitMemberExpr(*MemberExpr)                       {}
func (BaseVisitor) VisitCallExpr(*CallExpr)                           {}
func (BaseVisitor) VisitIndexExpr(*IndexExpr)                         {}
func (BaseVisitor) VisitSliceExpr(*SliceExpr)                         {}
func (BaseVisitor) VisitUnaryExpr(*UnaryExpr)                         {}
func (BaseVisitor) VisitBinaryExpr(*BinaryExpr)                       {}
func (BaseVisitor) VisitAndExpr(*AndExpr)                             {}
func (BaseVisitor) VisitOrExpr(*OrExpr)                               {}
func (BaseVisitor) VisitConditionalExpr(*ConditionalExpr)             {}
func (BaseVisitor) VisitNamedExpr(*NamedExpr)                         {}
func (BaseVisitor) VisitYieldExpr(*YieldExpr)                         {}
func (BaseVisitor) VisitFormatSpecifier(*FormatSpecifier)             {}
func (BaseVisitor) VisitFStringExpr(*FStringExpr)                     {}
func (BaseVisitor) VisitLambdaExpr(*LambdaExpr)                       {}
func (BaseVisitor) VisitListExpr(*ListExpr)                           {}
func (BaseVisitor) VisitTupleExpr(*TupleExpr)                         {}
func (BaseVisitor) VisitSetExpr(*SetExpr)                             {}
func (BaseVisitor) VisitDictExpr(*DictExpr)                           {}
func (BaseVisitor) VisitComprehensionForClause(*ComprehensionForClause) {}
func (BaseVisitor) VisitGeneratorExpr(*GeneratorExpr)                 {}
func (BaseVisitor) VisitFunctionDef(*FunctionDef)                     {}
func (BaseVisitor) VisitClassDef(*ClassDef)                           {}
