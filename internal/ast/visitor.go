package ast

// Visitor receives one call per concrete node type during a traversal.
// The semantic analyzer does not implement it (it dispatches with a type
// switch); Accept on each node dispatches to the matching method rather than
// the walker switching on node type itself, keeping traversal open to
// extension (a future pretty-printer or linter can implement Visitor without
// touching ast).
type Visitor interface {
	VisitProgram(*Program)

	VisitNamedType(*NamedType)
	VisitArrayTypeExpr(*ArrayTypeExpr)
	VisitRangeTypeExpr(*RangeTypeExpr)

	VisitParameter(*Parameter)
	VisitFunctionDeclaration(*FunctionDeclaration)
	VisitVariableDeclaration(*VariableDeclaration)

	VisitBlock(*Block)

	VisitReturnStatement(*ReturnStatement)
	VisitYieldStatement(*YieldStatement)
	VisitAssignmentStatement(*AssignmentStatement)
	VisitExpressionStatement(*ExpressionStatement)
	VisitConditionalStatement(*ConditionalStatement)
	VisitForInStatement(*ForInStatement)
	VisitWhileStatement(*WhileStatement)
	VisitBreakStatement(*BreakStatement)
	VisitContinueStatement(*ContinueStatement)

	VisitIdentifier(*Identifier)
	VisitIntegerLiteral(*IntegerLiteral)
	VisitFloatLiteral(*FloatLiteral)
	VisitStringLiteral(*StringLiteral)
	VisitBooleanLiteral(*BooleanLiteral)
	VisitArrayLiteral(*ArrayLiteral)
	VisitIndexExpression(*IndexExpression)
	VisitSliceExpression(*SliceExpression)
	VisitBinaryExpression(*BinaryExpression)
	VisitUnaryExpression(*UnaryExpression)
	VisitConversionExpression(*ConversionExpression)
	VisitCallExpression(*CallExpression)
	VisitRangeExpression(*RangeExpression)
	VisitForInExpression(*ForInExpression)
	VisitConditionalExpression(*ConditionalExpression)
}
