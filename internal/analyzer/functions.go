package analyzer

import (
	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/typesystem"
)

// analyzeCallExpression resolves a call against the global function table
// (populated by the pre-pass, spec §4.6) and checks each argument against
// its parameter's declared type using the same coercion/materialization
// rules a variable declaration uses (spec §4.7).
func (a *Analyzer) analyzeCallExpression(e *ast.CallExpression) typesystem.Type {
	sig, ok := a.table.LookupFunction(e.Function)
	if !ok {
		a.addError(diag.KindScope, diag.CodeUndefinedFunction, e, "call to undefined function %q", e.Function)
		for _, arg := range e.Arguments {
			a.analyzeExpression(arg, nil)
		}
		return a.setType(e, typesystem.Unknown{})
	}

	if len(e.Arguments) != len(sig.Parameters) {
		a.addError(diag.KindType, diag.CodeArgCountMismatch, e, "function %q expects %d argument(s), found %d", e.Function, len(sig.Parameters), len(e.Arguments))
		for _, arg := range e.Arguments {
			a.analyzeExpression(arg, nil)
		}
		return a.setType(e, sig.ReturnType)
	}

	for i, arg := range e.Arguments {
		param := sig.Parameters[i]
		a.typeValueAgainstTarget(arg, arg, param.Type)
	}

	return a.setType(e, sig.ReturnType)
}
