package analyzer

import (
	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/typesystem"
)

// analyzeExpression dispatches an expression to its sub-analyzer and records
// its type in TypeMap. target is the type the surrounding context expects
// (a binding's annotation, a call argument's parameter type, a return
// statement's function return type); it is nil where no context applies.
// Every path sets exactly one type for expr — the invariant spec §5 names:
// "either an error is recorded that names the node, or the node has exactly
// one assigned type" (both may hold; Unknown is used on the error path).
func (a *Analyzer) analyzeExpression(expr ast.Expression, target typesystem.Type) typesystem.Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		return a.analyzeIdentifier(e)
	case *ast.IntegerLiteral:
		return a.setType(e, typesystem.TypeComptimeInt)
	case *ast.FloatLiteral:
		return a.setType(e, typesystem.TypeComptimeFloat)
	case *ast.StringLiteral:
		return a.setType(e, typesystem.TypeString)
	case *ast.BooleanLiteral:
		return a.setType(e, typesystem.TypeBool)
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(e, target)
	case *ast.IndexExpression:
		return a.analyzeIndexExpression(e)
	case *ast.SliceExpression:
		return a.analyzeSliceExpression(e)
	case *ast.BinaryExpression:
		return a.analyzeBinaryExpression(e)
	case *ast.UnaryExpression:
		return a.analyzeUnaryExpression(e)
	case *ast.ConversionExpression:
		return a.analyzeConversionExpression(e)
	case *ast.CallExpression:
		return a.analyzeCallExpression(e)
	case *ast.RangeExpression:
		return a.analyzeRangeExpression(e, false)
	case *ast.ForInExpression:
		return a.analyzeForInExpression(e, target)
	case *ast.ConditionalExpression:
		return a.analyzeConditionalExpression(e, target)
	case *ast.Block:
		result, needsAnnot := a.analyzeExpressionBlock(e, target)
		if needsAnnot && target == nil {
			a.addError(diag.KindContract, diag.CodeRuntimeBlockNoAnnot, e,
				"expression block requires explicit type context to determine its type")
			return a.setType(e, typesystem.Unknown{})
		}
		return result
	default:
		a.addError(diag.KindStructural, diag.CodeUnknownNode, expr, "unrecognized expression node")
		return a.setType(expr, typesystem.Unknown{})
	}
}

func (a *Analyzer) analyzeIdentifier(id *ast.Identifier) typesystem.Type {
	sym, ok := a.table.Lookup(id.Name)
	if !ok {
		a.addError(diag.KindScope, diag.CodeUndefinedIdentifier, id, "undefined identifier %q", id.Name)
		return a.setType(id, typesystem.Unknown{})
	}
	return a.setType(id, sym.Type)
}

// analyzeArrayLiteral computes a ComptimeArray when every element is itself
// comptime-typed, unifying elementwise via typesystem.UnifyComptime. When the
// first element is already concrete, the literal instead takes that
// element's type as its own [N]T, and every other element must Coerce into
// T (spec §4.3: "a concrete [N]T derived from the first concrete element").
// A literal whose elements cannot be reconciled either way is a type error
// (spec §3, §4.2).
func (a *Analyzer) analyzeArrayLiteral(lit *ast.ArrayLiteral, target typesystem.Type) typesystem.Type {
	var elemTarget typesystem.Type
	if arr, ok := target.(typesystem.Array); ok {
		elemTarget = arr.Element
	}

	if len(lit.Elements) == 0 {
		return a.setType(lit, typesystem.ComptimeArray{Dims: []int{0}})
	}

	elemTypes := make([]typesystem.Type, len(lit.Elements))
	for i, el := range lit.Elements {
		elemTypes[i] = a.analyzeExpression(el, elemTarget)
	}

	if _, unk := elemTypes[0].(typesystem.Unknown); unk {
		return a.setType(lit, typesystem.Unknown{})
	}

	// First element already concrete: the literal's type is [N]T, fixed by
	// that element, and every remaining element must coerce into T.
	if !typesystem.IsComptime(elemTypes[0]) {
		elemType := elemTypes[0]
		ok := true
		for i, t := range elemTypes[1:] {
			if _, unk := t.(typesystem.Unknown); unk {
				ok = false
				continue
			}
			if !typesystem.Coerce(t, elemType) {
				a.addError(diag.KindType, diag.CodeMixedConcrete, lit.Elements[i+1],
					"array literal element of type %s does not match the array's element type %s", t.String(), elemType.String())
				ok = false
			}
		}
		if !ok {
			return a.setType(lit, typesystem.Unknown{})
		}
		return a.setType(lit, typesystem.Array{Element: elemType, Size: len(lit.Elements)})
	}

	// Nested array literals: unify dimension structure across elements.
	if inner, ok := elemTypes[0].(typesystem.ComptimeArray); ok {
		dims := append([]int{len(lit.Elements)}, inner.Dims...)
		floatElem := inner.FloatElement
		for _, t := range elemTypes[1:] {
			it, ok2 := t.(typesystem.ComptimeArray)
			if !ok2 || len(it.Dims) != len(inner.Dims) {
				a.addError(diag.KindType, diag.CodeArrayDimMismatch, lit, "array literal elements have inconsistent shapes")
				return a.setType(lit, typesystem.Unknown{})
			}
			for d := range it.Dims {
				if it.Dims[d] != inner.Dims[d] {
					a.addError(diag.KindType, diag.CodeArraySizeMismatch, lit, "array literal elements have inconsistent shapes")
					return a.setType(lit, typesystem.Unknown{})
				}
			}
			floatElem = floatElem || it.FloatElement
		}
		return a.setType(lit, typesystem.ComptimeArray{FloatElement: floatElem, Dims: dims})
	}

	// Flat literal: every element must unify to a single comptime scalar.
	acc := elemTypes[0]
	comptimeOK := typesystem.IsComptime(acc)
	for _, t := range elemTypes[1:] {
		unified, ok := typesystem.UnifyComptime(acc, t)
		if !ok {
			comptimeOK = false
			break
		}
		acc = unified
	}
	if !comptimeOK {
		a.addError(diag.KindType, diag.CodeMixedConcrete, lit, "array literal elements do not share a single comptime type")
		return a.setType(lit, typesystem.Unknown{})
	}
	floatElem := false
	if b, ok := acc.(typesystem.Basic); ok {
		floatElem = b.Kind == typesystem.ComptimeFloat
	}
	return a.setType(lit, typesystem.ComptimeArray{FloatElement: floatElem, Dims: []int{len(lit.Elements)}})
}

func (a *Analyzer) analyzeIndexExpression(e *ast.IndexExpression) typesystem.Type {
	arrType := a.analyzeExpression(e.Array, nil)
	a.analyzeExpression(e.Index, typesystem.TypeUsize)

	switch t := arrType.(type) {
	case typesystem.Array:
		return a.setType(e, t.Element)
	case typesystem.ComptimeArray:
		if len(t.Dims) <= 1 {
			leaf := typesystem.TypeComptimeInt
			if t.FloatElement {
				leaf = typesystem.TypeComptimeFloat
			}
			return a.setType(e, leaf)
		}
		return a.setType(e, typesystem.ComptimeArray{FloatElement: t.FloatElement, Dims: t.Dims[1:]})
	default:
		if _, unk := t.(typesystem.Unknown); !unk {
			a.addError(diag.KindType, diag.CodeTypeMismatch, e, "cannot index a value of type %s", arrType.String())
		}
		return a.setType(e, typesystem.Unknown{})
	}
}

// analyzeSliceExpression handles both a[lo..hi] (a runtime sub-range) and
// a[..] (the explicit copy operator that is the only legal source for a
// concrete-array flatten, spec §4.6). Both forms take the sliced operand's
// own type unchanged.
func (a *Analyzer) analyzeSliceExpression(e *ast.SliceExpression) typesystem.Type {
	arrType := a.analyzeExpression(e.Array, nil)
	if e.Low != nil {
		a.analyzeExpression(e.Low, typesystem.TypeUsize)
	}
	if e.High != nil {
		a.analyzeExpression(e.High, typesystem.TypeUsize)
	}
	return a.setType(e, arrType)
}
