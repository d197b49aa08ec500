package analyzer

import (
	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/typesystem"
)

// analyzeNonValueBlock analyzes a FunctionBlock or StatementBlock: neither
// position yields a value (a function body hands its value back only through
// return), so yield is rejected and no particular last statement is required
// (spec §4.4's block-class table).
func (a *Analyzer) analyzeNonValueBlock(b *ast.Block) {
	a.table.EnterScope()
	defer a.table.ExitScope()
	for _, stmt := range b.Statements {
		a.analyzeStatementCtx(stmt, false)
	}
}

// analyzeExpressionBlock analyzes a block used in value position (spec
// §4.4). It returns the block's type and whether the block turned out to
// require an annotation that target did not supply — the caller decides how
// to phrase that error, since the binding site differs (a variable
// declaration, a call argument, a return statement).
func (a *Analyzer) analyzeExpressionBlock(b *ast.Block, target typesystem.Type) (typesystem.Type, bool) {
	a.table.EnterScope()
	defer a.table.ExitScope()

	if len(b.Statements) == 0 {
		a.addError(diag.KindStructural, diag.CodeBlockFallsThrough, b, "expression block is empty; it must end with -> expr or return expr")
		return a.setType(b, typesystem.Unknown{}), false
	}

	body := b.Statements[:len(b.Statements)-1]
	last := b.Statements[len(b.Statements)-1]

	disqualified := false
	allBindingsComptime := true
	for _, stmt := range body {
		if containsCallOrConditional(stmt) {
			disqualified = true
		}
		a.analyzeStatementCtx(stmt, true)
		if decl, ok := stmt.(*ast.VariableDeclaration); ok {
			if t, ok2 := a.TypeMap[decl]; !ok2 || !typesystem.IsComptime(t) {
				allBindingsComptime = false
			}
		}
	}

	switch s := last.(type) {
	case *ast.YieldStatement:
		if containsCallOrConditional(s) {
			disqualified = true
		}
		provisionalComptime := !disqualified && allBindingsComptime

		if provisionalComptime {
			valueType := a.analyzeExpression(s.Value, nil)
			if typesystem.IsComptime(valueType) {
				if target == nil {
					return a.setType(b, valueType), false
				}
				return a.setType(b, a.typeValueAgainstTarget(s, s.Value, target)), false
			}
			// The yield turned out concrete despite no calls or
			// conditionals in the block (e.g. it references a
			// concrete outer variable) — it is a runtime block.
			if target == nil {
				return a.setType(b, typesystem.Unknown{}), true
			}
			if !typesystem.Coerce(valueType, target) && !typesystem.Equal(valueType, target) {
				a.addError(diag.KindType, diag.CodeTypeMismatch, s, "block yields %s but context expects %s", valueType.String(), target.String())
				return a.setType(b, typesystem.Unknown{}), false
			}
			return a.setType(b, target), false
		}

		if target == nil {
			return a.setType(b, typesystem.Unknown{}), true
		}
		result := a.typeValueAgainstTarget(s, s.Value, target)
		return a.setType(b, result), false

	case *ast.ReturnStatement:
		a.analyzeReturnStatement(s, true)
		if target != nil {
			return a.setType(b, target), false
		}
		return a.setType(b, typesystem.TypeVoid), false

	default:
		a.analyzeStatementCtx(last, true)
		a.addError(diag.KindStructural, diag.CodeBlockFallsThrough, last, "expression block must end with -> expr or return expr")
		return a.setType(b, typesystem.Unknown{}), false
	}
}

// containsCallOrConditional reports whether node structurally contains a
// function call or a conditional anywhere beneath it. It disqualifies a
// block from compile-time-evaluable classification regardless of the actual
// types involved (spec §4.4).
func containsCallOrConditional(node ast.Node) bool {
	switch n := node.(type) {
	case nil:
		return false
	case *ast.CallExpression:
		return true
	case *ast.ConditionalStatement, *ast.ConditionalExpression:
		return true
	case *ast.VariableDeclaration:
		return containsCallOrConditional(n.Value)
	case *ast.AssignmentStatement:
		return containsCallOrConditional(n.Value)
	case *ast.ExpressionStatement:
		return containsCallOrConditional(n.Expression)
	case *ast.ReturnStatement:
		return n.Value != nil && containsCallOrConditional(n.Value)
	case *ast.YieldStatement:
		return containsCallOrConditional(n.Value)
	case *ast.Block:
		for _, s := range n.Statements {
			if containsCallOrConditional(s) {
				return true
			}
		}
		return false
	case *ast.BinaryExpression:
		return containsCallOrConditional(n.Left) || containsCallOrConditional(n.Right)
	case *ast.UnaryExpression:
		return containsCallOrConditional(n.Operand)
	case *ast.ConversionExpression:
		return containsCallOrConditional(n.Operand)
	case *ast.IndexExpression:
		return containsCallOrConditional(n.Array) || containsCallOrConditional(n.Index)
	case *ast.SliceExpression:
		return containsCallOrConditional(n.Array)
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			if containsCallOrConditional(el) {
				return true
			}
		}
		return false
	case *ast.ForInStatement, *ast.WhileStatement, *ast.ForInExpression:
		return true // a loop is never compile-time-evaluable in this analyzer
	default:
		return false
	}
}

// analyzeConditionalStatement analyzes an if/elif*/else chain used for
// control flow only: every branch is a StatementBlock.
func (a *Analyzer) analyzeConditionalStatement(c *ast.ConditionalStatement) {
	cond := a.analyzeExpression(c.Condition, typesystem.TypeBool)
	if !isUnknown(cond) && !typesystem.Equal(cond, typesystem.TypeBool) {
		a.addError(diag.KindContract, diag.CodeNonBoolIfCondition, c.Condition, "condition must be bool, found %s", cond.String())
	}
	a.analyzeNonValueBlock(c.Consequence)
	for _, clause := range c.ElseClauses {
		if clause.Condition != nil {
			ccond := a.analyzeExpression(clause.Condition, typesystem.TypeBool)
			if !isUnknown(ccond) && !typesystem.Equal(ccond, typesystem.TypeBool) {
				a.addError(diag.KindContract, diag.CodeNonBoolIfCondition, clause.Condition, "condition must be bool, found %s", ccond.String())
			}
		}
		a.analyzeNonValueBlock(clause.Body)
	}
}

// analyzeConditionalExpression analyzes an if/elif*/else chain used in value
// position: every branch is an ExpressionBlock and target is pushed down to
// each branch uniformly. A final unconditional else is required so the
// expression is guaranteed to produce a value on every path (supplementing
// spec §4.4, which defines the block-class table but leaves branch
// unification for a value-position conditional unspecified — see DESIGN.md).
func (a *Analyzer) analyzeConditionalExpression(c *ast.ConditionalExpression, target typesystem.Type) typesystem.Type {
	cond := a.analyzeExpression(c.Condition, typesystem.TypeBool)
	if !isUnknown(cond) && !typesystem.Equal(cond, typesystem.TypeBool) {
		a.addError(diag.KindContract, diag.CodeNonBoolIfCondition, c.Condition, "condition must be bool, found %s", cond.String())
	}

	hasFinalElse := false
	for _, clause := range c.ElseClauses {
		if clause.Condition == nil {
			hasFinalElse = true
		}
	}
	if !hasFinalElse {
		a.addError(diag.KindStructural, diag.CodeBlockFallsThrough, c, "conditional expression must have a final else branch to produce a value on every path")
	}

	resultType, needsAnnot := a.analyzeExpressionBlock(c.Consequence, target)
	if needsAnnot {
		a.addError(diag.KindContract, diag.CodeRuntimeBlockNoAnnot, c.Consequence, "branch requires explicit type context to determine its type")
		resultType = typesystem.Unknown{}
	}

	for _, clause := range c.ElseClauses {
		if clause.Condition != nil {
			ccond := a.analyzeExpression(clause.Condition, typesystem.TypeBool)
			if !isUnknown(ccond) && !typesystem.Equal(ccond, typesystem.TypeBool) {
				a.addError(diag.KindContract, diag.CodeNonBoolIfCondition, clause.Condition, "condition must be bool, found %s", ccond.String())
			}
		}
		branchType, branchNeedsAnnot := a.analyzeExpressionBlock(clause.Body, target)
		if branchNeedsAnnot {
			a.addError(diag.KindContract, diag.CodeRuntimeBlockNoAnnot, clause.Body, "branch requires explicit type context to determine its type")
			branchType = typesystem.Unknown{}
		}
		if target == nil && !typesystem.Equal(branchType, resultType) && !isUnknown(branchType) && !isUnknown(resultType) {
			a.addError(diag.KindType, diag.CodeTypeMismatch, clause.Body, "conditional expression branches disagree on type: %s vs %s", resultType.String(), branchType.String())
		}
	}

	if target != nil {
		return a.setType(c, target)
	}
	return a.setType(c, resultType)
}
