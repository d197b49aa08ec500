package analyzer

import (
	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/typesystem"
)

// analyzeRangeExpression analyzes start..end (or the unbounded start..,
// legal only in for-in statement position, spec §4.10).
func (a *Analyzer) analyzeRangeExpression(e *ast.RangeExpression, allowUnbounded bool) typesystem.Type {
	startType := a.analyzeExpression(e.Start, nil)
	if e.End == nil {
		if !allowUnbounded {
			a.addError(diag.KindContract, diag.CodeUnboundedRangeInExpr, e, "unbounded range is only legal as a for-in statement's iterable")
		}
		return a.setType(e, typesystem.Range{Element: startType})
	}

	endType := a.analyzeExpression(e.End, nil)
	elem, ok := combineNumeric(startType, endType)
	if !ok {
		a.addError(diag.KindType, diag.CodeMixedConcrete, e, "range endpoints %s and %s do not share a type", startType.String(), endType.String())
		elem = typesystem.Unknown{}
	}
	return a.setType(e, typesystem.Range{Element: elem})
}

// combineNumeric applies the transparent-costs rule without anchoring a
// diagnostic, for callers (like range endpoints) that want to phrase their
// own error message.
func combineNumeric(x, y typesystem.Type) (typesystem.Type, bool) {
	xComptime := typesystem.IsComptime(x)
	yComptime := typesystem.IsComptime(y)
	switch {
	case xComptime && yComptime:
		return typesystem.UnifyComptime(x, y)
	case xComptime && !yComptime:
		if typesystem.Coerce(x, y) {
			return y, true
		}
		return typesystem.Unknown{}, false
	case !xComptime && yComptime:
		if typesystem.Coerce(y, x) {
			return x, true
		}
		return typesystem.Unknown{}, false
	default:
		if typesystem.Equal(x, y) {
			return x, true
		}
		return typesystem.Unknown{}, false
	}
}

// analyzeIterableElementType resolves the per-iteration element type of a
// for-in's iterable, which may be a range or an array (concrete or comptime).
func (a *Analyzer) analyzeIterableElementType(iterable ast.Expression, allowUnbounded bool) typesystem.Type {
	if re, ok := iterable.(*ast.RangeExpression); ok {
		rt := a.analyzeRangeExpression(re, allowUnbounded)
		if r, ok2 := rt.(typesystem.Range); ok2 {
			return r.Element
		}
		return typesystem.Unknown{}
	}

	t := a.analyzeExpression(iterable, nil)
	switch v := t.(type) {
	case typesystem.Array:
		return v.Element
	case typesystem.ComptimeArray:
		if len(v.Dims) <= 1 {
			if v.FloatElement {
				return typesystem.TypeComptimeFloat
			}
			return typesystem.TypeComptimeInt
		}
		return typesystem.ComptimeArray{FloatElement: v.FloatElement, Dims: v.Dims[1:]}
	default:
		if !isUnknown(t) {
			a.addError(diag.KindType, diag.CodeTypeMismatch, iterable, "cannot iterate over a value of type %s", t.String())
		}
		return typesystem.Unknown{}
	}
}

// analyzeForInStatement analyzes the control-flow form of for-in: the body
// is a StatementBlock, no value is produced (spec §4.10).
func (a *Analyzer) analyzeForInStatement(s *ast.ForInStatement) {
	elemType := a.analyzeIterableElementType(s.Iterable, true)

	if err := a.table.DeclareLabel(s.Label); err != nil {
		a.addError(diag.KindScope, diag.CodeDuplicateLabel, s, "%s", err)
	}

	a.table.EnterScope()
	if err := a.table.DeclareLoopVariable(s.VarName, elemType); err != nil {
		a.addError(diag.KindScope, diag.CodeDuplicateDecl, s, "%s", err)
	}
	a.loopDepth++
	for _, stmt := range s.Body.Statements {
		a.analyzeStatementCtx(stmt, false)
	}
	a.loopDepth--
	a.table.ExitScope()

	a.table.ExitLabel(s.Label)
}

// analyzeWhileStatement analyzes a while loop; the condition must be bool.
func (a *Analyzer) analyzeWhileStatement(s *ast.WhileStatement) {
	cond := a.analyzeExpression(s.Condition, typesystem.TypeBool)
	if !isUnknown(cond) && !typesystem.Equal(cond, typesystem.TypeBool) {
		a.addError(diag.KindContract, diag.CodeNonBoolWhileCondition, s.Condition, "while condition must be bool, found %s", cond.String())
	}

	if err := a.table.DeclareLabel(s.Label); err != nil {
		a.addError(diag.KindScope, diag.CodeDuplicateLabel, s, "%s", err)
	}

	a.loopDepth++
	a.analyzeNonValueBlock(s.Body)
	a.loopDepth--

	a.table.ExitLabel(s.Label)
}

func (a *Analyzer) analyzeBreakStatement(s *ast.BreakStatement) {
	if a.loopDepth == 0 {
		a.addError(diag.KindStructural, diag.CodeBreakOutsideLoop, s, "break outside of a loop")
		return
	}
	if s.Label != "" && !a.table.HasLabel(s.Label) {
		a.addError(diag.KindScope, diag.CodeUnknownLabel, s, "break targets unknown label %q", s.Label)
	}
}

func (a *Analyzer) analyzeContinueStatement(s *ast.ContinueStatement) {
	if a.loopDepth == 0 {
		a.addError(diag.KindStructural, diag.CodeContinueOutsideLoop, s, "continue outside of a loop")
		return
	}
	if s.Label != "" && !a.table.HasLabel(s.Label) {
		a.addError(diag.KindScope, diag.CodeUnknownLabel, s, "continue targets unknown label %q", s.Label)
	}
}

// analyzeForInExpression analyzes the array-building form of for-in (spec
// §4.10): each -> elem reachable inside Body, possibly guarded by
// conditionals, contributes one element. The element type comes from
// target, the binding's mandatory annotation; the resulting array's size is
// left runtime-determined (Size == -1) when the annotation used [_], since
// the number of contributing yields is not generally known at analysis time.
func (a *Analyzer) analyzeForInExpression(e *ast.ForInExpression, target typesystem.Type) typesystem.Type {
	arrTarget, isArr := target.(typesystem.Array)
	elemTarget := typesystem.Type(typesystem.Unknown{})
	if isArr {
		elemTarget = arrTarget.Element
	}

	elemType := a.analyzeIterableElementType(e.Iterable, false)

	a.table.EnterScope()
	if err := a.table.DeclareLoopVariable(e.VarName, elemType); err != nil {
		a.addError(diag.KindScope, diag.CodeDuplicateDecl, e, "%s", err)
	}
	a.loopDepth++
	a.analyzeLoopExpressionBody(e.Body, elemTarget)
	a.loopDepth--
	a.table.ExitScope()

	if !isArr {
		return a.setType(e, typesystem.Unknown{})
	}
	return a.setType(e, typesystem.Array{Element: elemTarget, Size: arrTarget.Size})
}

// analyzeLoopExpressionBody walks a loop-expression body looking for every
// yield reachable through nested conditionals, validating each against
// elemTarget; ordinary statements are analyzed normally.
func (a *Analyzer) analyzeLoopExpressionBody(b *ast.Block, elemTarget typesystem.Type) {
	a.table.EnterScope()
	defer a.table.ExitScope()
	for _, stmt := range b.Statements {
		a.analyzeLoopBodyStatement(stmt, elemTarget)
	}
}

func (a *Analyzer) analyzeLoopBodyStatement(stmt ast.Statement, elemTarget typesystem.Type) {
	switch s := stmt.(type) {
	case *ast.YieldStatement:
		a.typeValueAgainstTarget(s, s.Value, elemTarget)
	case *ast.ConditionalStatement:
		cond := a.analyzeExpression(s.Condition, typesystem.TypeBool)
		if !isUnknown(cond) && !typesystem.Equal(cond, typesystem.TypeBool) {
			a.addError(diag.KindContract, diag.CodeNonBoolIfCondition, s.Condition, "condition must be bool, found %s", cond.String())
		}
		a.analyzeLoopExpressionBody(s.Consequence, elemTarget)
		for _, clause := range s.ElseClauses {
			if clause.Condition != nil {
				ccond := a.analyzeExpression(clause.Condition, typesystem.TypeBool)
				if !isUnknown(ccond) && !typesystem.Equal(ccond, typesystem.TypeBool) {
					a.addError(diag.KindContract, diag.CodeNonBoolIfCondition, clause.Condition, "condition must be bool, found %s", ccond.String())
				}
			}
			a.analyzeLoopExpressionBody(clause.Body, elemTarget)
		}
	case *ast.Block:
		a.analyzeLoopExpressionBody(s, elemTarget)
	default:
		a.analyzeStatementCtx(stmt, false)
	}
}
