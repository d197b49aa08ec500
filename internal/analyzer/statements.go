package analyzer

import (
	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
)

// analyzeStatement dispatches a statement to its sub-analyzer. insideExprBlock
// is forwarded to ReturnStatement handling, where a bare return is rejected
// specifically inside an expression block (spec §4.8).
func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	a.analyzeStatementCtx(stmt, false)
}

func (a *Analyzer) analyzeStatementCtx(stmt ast.Statement, insideExprBlock bool) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		a.analyzeVariableDeclaration(s)
	case *ast.FunctionDeclaration:
		// Nested function declarations are not part of this language;
		// treated as a structural error rather than silently ignored.
		a.addError(diag.KindStructural, diag.CodeUnknownNode, s, "function declarations are only legal at the top level")
	case *ast.ReturnStatement:
		a.analyzeReturnStatement(s, insideExprBlock)
	case *ast.YieldStatement:
		a.addError(diag.KindStructural, diag.CodeYieldOutsideExprBlock, s, "yield (-> expr) is only legal as the last statement of an expression block")
	case *ast.AssignmentStatement:
		a.analyzeAssignmentStatement(s)
	case *ast.ExpressionStatement:
		a.analyzeExpression(s.Expression, nil)
	case *ast.ConditionalStatement:
		a.analyzeConditionalStatement(s)
	case *ast.ForInStatement:
		a.analyzeForInStatement(s)
	case *ast.WhileStatement:
		a.analyzeWhileStatement(s)
	case *ast.BreakStatement:
		a.analyzeBreakStatement(s)
	case *ast.ContinueStatement:
		a.analyzeContinueStatement(s)
	case *ast.Block:
		a.analyzeNonValueBlock(s)
	default:
		a.addError(diag.KindStructural, diag.CodeUnknownNode, s, "unrecognized statement node")
	}
}
