package analyzer

import (
	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/typesystem"
)

// analyzeReturnStatement validates a return against the enclosing function's
// declared return type (spec §4.8). insideExprBlock rejects a bare return
// with a more specific message, since an expression block must produce a
// value and "return" with no value can never satisfy that.
func (a *Analyzer) analyzeReturnStatement(r *ast.ReturnStatement, insideExprBlock bool) {
	if !a.table.InFunction() {
		a.addError(diag.KindStructural, diag.CodeUnknownNode, r, "return outside of a function body")
		return
	}
	returnType := a.table.CurrentReturnType()

	if r.Value == nil {
		if insideExprBlock {
			a.addError(diag.KindStructural, diag.CodeBareReturnInExprBlock, r, "bare return is not legal inside an expression block, which must produce a value")
			return
		}
		if !typesystem.Equal(returnType, typesystem.TypeVoid) {
			a.addError(diag.KindType, diag.CodeTypeMismatch, r, "function must return a value of type %s", returnType.String())
		}
		return
	}

	if typesystem.Equal(returnType, typesystem.TypeVoid) {
		a.addError(diag.KindStructural, diag.CodeReturnValueInVoid, r, "function returns void and may not return a value")
		a.analyzeExpression(r.Value, nil)
		return
	}

	a.typeValueAgainstTarget(r, r.Value, returnType)
}
