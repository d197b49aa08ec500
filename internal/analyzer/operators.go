package analyzer

import (
	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/typesystem"
)

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "\\": true}

// analyzeBinaryExpression implements the transparent-costs rule (spec §4.5):
// a comptime operand adapts silently to whatever concrete type it meets, but
// two different concrete types never combine without an explicit expr:T
// conversion, even a widening one.
func (a *Analyzer) analyzeBinaryExpression(e *ast.BinaryExpression) typesystem.Type {
	left := a.analyzeExpression(e.Left, nil)
	right := a.analyzeExpression(e.Right, nil)

	if isUnknown(left) || isUnknown(right) {
		return a.setType(e, typesystem.Unknown{})
	}

	switch {
	case logicalOps[e.Operator]:
		if !typesystem.Equal(left, typesystem.TypeBool) || !typesystem.Equal(right, typesystem.TypeBool) {
			a.addError(diag.KindType, diag.CodeTypeMismatch, e, "operator %s requires bool operands", e.Operator)
			return a.setType(e, typesystem.Unknown{})
		}
		return a.setType(e, typesystem.TypeBool)

	case comparisonOps[e.Operator]:
		a.resolveOperandTypes(e, left, right, e.Operator)
		return a.setType(e, typesystem.TypeBool)

	case arithmeticOps[e.Operator]:
		result := a.resolveOperandTypes(e, left, right, e.Operator)
		return a.setType(e, result)

	default:
		a.addError(diag.KindStructural, diag.CodeUnknownNode, e, "unrecognized operator %q", e.Operator)
		return a.setType(e, typesystem.Unknown{})
	}
}

func isUnknown(t typesystem.Type) bool {
	_, ok := t.(typesystem.Unknown)
	return ok
}

// resolveOperandTypes applies the transparent-costs combination rule and
// returns the resulting type; for comparison operators the caller discards
// the result since the expression's own type is always bool.
func (a *Analyzer) resolveOperandTypes(e *ast.BinaryExpression, left, right typesystem.Type, op string) typesystem.Type {
	leftComptime := typesystem.IsComptime(left)
	rightComptime := typesystem.IsComptime(right)

	switch {
	case leftComptime && rightComptime:
		unified, ok := typesystem.UnifyComptime(left, right)
		if !ok {
			a.addError(diag.KindType, diag.CodeMixedConcrete, e, "operands of %s do not share a comptime type", op)
			return typesystem.Unknown{}
		}
		if op == "/" {
			return typesystem.TypeComptimeFloat
		}
		if op == "\\" && !typesystem.IsInteger(unified) {
			a.addError(diag.KindType, diag.CodeMixedConcrete, e, "integer division (\\) requires integer operands")
			return typesystem.Unknown{}
		}
		return unified

	case leftComptime && !rightComptime:
		if !typesystem.Coerce(left, right) {
			a.addError(diag.KindType, diag.CodeTypeMismatch, e, "comptime operand cannot adapt to %s", right.String())
			return typesystem.Unknown{}
		}
		if op == "/" && !typesystem.IsFloat(right) {
			a.addError(diag.KindType, diag.CodeMixedConcrete, e,
				"true division (/) between a comptime operand and %s requires a float type; use \\ for integer division or convert explicitly", right.String())
			return typesystem.Unknown{}
		}
		return right

	case !leftComptime && rightComptime:
		if !typesystem.Coerce(right, left) {
			a.addError(diag.KindType, diag.CodeTypeMismatch, e, "comptime operand cannot adapt to %s", left.String())
			return typesystem.Unknown{}
		}
		if op == "/" && !typesystem.IsFloat(left) {
			a.addError(diag.KindType, diag.CodeMixedConcrete, e,
				"true division (/) between %s and a comptime operand requires a float type; use \\ for integer division or convert explicitly", left.String())
			return typesystem.Unknown{}
		}
		return left

	default:
		if !typesystem.Equal(left, right) {
			a.addError(diag.KindType, diag.CodeMixedConcrete, e,
				"mixing %s and %s requires an explicit conversion (value:%s)", left.String(), right.String(), left.String())
			return typesystem.Unknown{}
		}
		if op == "/" && !typesystem.IsFloat(left) {
			a.addError(diag.KindType, diag.CodeMixedConcrete, e,
				"true division (/) between two %s values requires a float type; use \\ for integer division", left.String())
			return typesystem.Unknown{}
		}
		if op == "\\" && !typesystem.IsInteger(left) {
			a.addError(diag.KindType, diag.CodeMixedConcrete, e, "integer division (\\) requires integer operands")
			return typesystem.Unknown{}
		}
		return left
	}
}

func (a *Analyzer) analyzeUnaryExpression(e *ast.UnaryExpression) typesystem.Type {
	operand := a.analyzeExpression(e.Operand, nil)
	if isUnknown(operand) {
		return a.setType(e, typesystem.Unknown{})
	}
	switch e.Operator {
	case "!":
		if !typesystem.Equal(operand, typesystem.TypeBool) {
			a.addError(diag.KindType, diag.CodeTypeMismatch, e, "! requires a bool operand")
			return a.setType(e, typesystem.Unknown{})
		}
		return a.setType(e, typesystem.TypeBool)
	case "-":
		if !typesystem.IsInteger(operand) && !typesystem.IsFloat(operand) {
			a.addError(diag.KindType, diag.CodeTypeMismatch, e, "unary - requires a numeric operand")
			return a.setType(e, typesystem.Unknown{})
		}
		return a.setType(e, operand)
	default:
		a.addError(diag.KindStructural, diag.CodeUnknownNode, e, "unrecognized unary operator %q", e.Operator)
		return a.setType(e, typesystem.Unknown{})
	}
}
