package analyzer

import (
	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/symbols"
	"github.com/kiinaq/hexen/internal/typesystem"
)

// registerFunctionSignatures is the pre-pass (spec §4.6): every function's
// name, parameter types, and return type are entered into the global
// function table before any body is analyzed, so forward and mutual
// reference between functions work without declaration order mattering.
func (a *Analyzer) registerFunctionSignatures(prog *ast.Program) {
	for _, fn := range prog.Functions {
		returnType, err := a.resolveTypeExpr(fn.ReturnType)
		if err != nil {
			a.addError(diag.KindType, diag.CodeTypeMismatch, fn, "function %q: %s", fn.Name, err)
			returnType = typesystem.Unknown{}
		}

		seen := make(map[string]bool, len(fn.Parameters))
		params := make([]symbols.Param, 0, len(fn.Parameters))
		for _, p := range fn.Parameters {
			if seen[p.Name] {
				a.addError(diag.KindScope, diag.CodeDuplicateParam, p, "duplicate parameter name %q in function %q", p.Name, fn.Name)
				continue
			}
			seen[p.Name] = true

			pType, err := a.resolveTypeExpr(p.TypeAnnotation)
			if err != nil {
				a.addError(diag.KindType, diag.CodeTypeMismatch, p, "parameter %q: %s", p.Name, err)
				pType = typesystem.Unknown{}
			}
			if typesystem.Equal(pType, typesystem.TypeVoid) {
				a.addError(diag.KindContract, diag.CodeVoidParam, p, "parameter %q may not have type void", p.Name)
			}
			params = append(params, symbols.Param{Name: p.Name, Type: pType, Mutable: p.Mutable})
		}

		sig := symbols.Signature{Name: fn.Name, Parameters: params, ReturnType: returnType}
		if err := a.table.DeclareFunction(sig); err != nil {
			a.addError(diag.KindScope, diag.CodeDuplicateDecl, fn, "%s", err)
		}
	}
}

// analyzeFunctionDeclaration analyzes one function body. The signature was
// already registered and validated during the pre-pass, so this only binds
// parameters into a fresh scope and walks the body (spec §4.6, §4.9's
// mut-parameter obligation).
func (a *Analyzer) analyzeFunctionDeclaration(fn *ast.FunctionDeclaration) {
	sig, ok := a.table.LookupFunction(fn.Name)
	if !ok {
		// Registration failed for this function (duplicate name); the
		// pre-pass already reported it.
		return
	}

	a.table.EnterScope()
	a.table.EnterFunction(sig.ReturnType)

	for _, p := range sig.Parameters {
		if err := a.table.DeclareParameter(p.Name, p.Type, p.Mutable); err != nil {
			a.addError(diag.KindScope, diag.CodeDuplicateDecl, fn, "%s", err)
		}
	}

	a.analyzeNonValueBlock(fn.Body)

	if typesystem.Equal(sig.ReturnType, typesystem.TypeVoid) {
		for _, name := range a.table.ModifiedParameters() {
			for _, p := range sig.Parameters {
				if p.Name == name && p.Mutable {
					a.addError(diag.KindContract, diag.CodeVoidMutParamModified, fn,
						"function %q returns void but mutates parameter %q; void functions may not report results through mut parameters", fn.Name, name)
				}
			}
		}
	}

	a.table.ExitFunction()
	a.table.ExitScope()
}

// analyzeVariableDeclaration analyzes a val or mut binding (spec §4.6).
func (a *Analyzer) analyzeVariableDeclaration(decl *ast.VariableDeclaration) {
	if _, isBlock := decl.Value.(*ast.Block); isBlock {
		a.analyzeBlockBoundDeclaration(decl)
		return
	}
	if _, isLoopExpr := decl.Value.(*ast.ForInExpression); isLoopExpr {
		a.analyzeLoopBoundDeclaration(decl)
		return
	}

	var target typesystem.Type
	if decl.TypeAnnotation != nil {
		t, err := a.resolveTypeExpr(decl.TypeAnnotation)
		if err != nil {
			a.addError(diag.KindType, diag.CodeTypeMismatch, decl, "%q: %s", decl.Name, err)
			t = typesystem.Unknown{}
		}
		target = t
	}

	declaredType := a.typeValueAgainstTarget(decl, decl.Value, target)
	a.finishDeclaration(decl, declaredType)
}

// typeValueAgainstTarget analyzes value with target (nil means "infer"),
// applying comptime materialization and the array-flatten rule, and reports
// a mismatch when neither applies (spec §4.2, §4.6).
func (a *Analyzer) typeValueAgainstTarget(node ast.Node, value ast.Expression, target typesystem.Type) typesystem.Type {
	valueType := a.analyzeExpression(value, target)

	if target == nil {
		return valueType
	}

	if arr, ok := valueType.(typesystem.ComptimeArray); ok {
		res := typesystem.Materialize(arr, target)
		switch res.Kind {
		case typesystem.MaterializeOK:
			return res.Type
		case typesystem.SizeMismatch:
			a.addError(diag.KindType, diag.CodeArraySizeMismatch, node,
				"array size mismatch: expected %d elements, found %d", res.Expected, res.Actual)
		case typesystem.DimMismatch:
			a.addError(diag.KindType, diag.CodeArrayDimMismatch, node, "array dimension count does not match annotation")
		case typesystem.ElementMismatch:
			a.addError(diag.KindType, diag.CodeArrayElemMismatch, node, "array element type does not match annotation")
		}
		return typesystem.Unknown{}
	}

	if concreteArr, ok := valueType.(typesystem.Array); ok {
		if targetArr, ok2 := target.(typesystem.Array); ok2 {
			if typesystem.Equal(concreteArr, targetArr) {
				return target
			}
			_, isFlatten := value.(*ast.SliceExpression)
			if isFlatten || !a.opts.StrictFlattenPolicy {
				return a.checkFlatten(node, concreteArr, targetArr)
			}
			a.addError(diag.KindType, diag.CodeFlattenNeedsCopy, node,
				"assigning a concrete array of a different shape requires the explicit copy operator v[..]")
			return typesystem.Unknown{}
		}
	}

	if typesystem.Coerce(valueType, target) {
		return target
	}

	a.addError(diag.KindType, diag.CodeTypeMismatch, node,
		"type mismatch: cannot use %s as %s without an explicit conversion (value:%s)",
		valueType.String(), target.String(), target.String())
	return typesystem.Unknown{}
}

// checkFlatten validates a v[..] concrete-array flatten-copy against the
// binding's target shape: the total element count must match exactly and
// the leaf element type must be identical (spec §4.6, strict flatten
// policy — see DESIGN.md's Open Question resolution). A one-dimensional [_]T
// target takes its size from the source's total element count.
func (a *Analyzer) checkFlatten(node ast.Node, source, target typesystem.Array) typesystem.Type {
	srcDims, srcLeaf, ok1 := typesystem.ArrayDims(source)
	tgtDims, tgtLeaf, ok2 := typesystem.ArrayDims(target)
	if !ok1 || !ok2 {
		a.addError(diag.KindType, diag.CodeArrayDimMismatch, node, "array shape could not be resolved for flatten copy")
		return typesystem.Unknown{}
	}
	if !typesystem.Equal(srcLeaf, tgtLeaf) {
		a.addError(diag.KindType, diag.CodeArrayElemMismatch, node, "flattened array element type %s does not match target %s", srcLeaf.String(), tgtLeaf.String())
		return typesystem.Unknown{}
	}
	if len(tgtDims) == 1 && tgtDims[0] < 0 {
		return typesystem.Array{Element: tgtLeaf, Size: typesystem.Product(srcDims)}
	}
	if typesystem.Product(srcDims) != typesystem.Product(tgtDims) {
		a.addError(diag.KindType, diag.CodeArraySizeMismatch, node,
			"flatten copy changes total element count: expected %d, found %d", typesystem.Product(tgtDims), typesystem.Product(srcDims))
		return typesystem.Unknown{}
	}
	return target
}

// finishDeclaration binds decl.Name in the current scope once its type has
// been determined.
func (a *Analyzer) finishDeclaration(decl *ast.VariableDeclaration, declaredType typesystem.Type) {
	a.setType(decl, declaredType)
	if err := a.table.DeclareVariable(decl.Name, declaredType, decl.Mutable); err != nil {
		a.addError(diag.KindScope, diag.CodeDuplicateDecl, decl, "%s", err)
	}
}

// analyzeBlockBoundDeclaration handles `val name [: T] = { ... }`, where the
// contract for a runtime expression block (an explicit annotation is
// mandatory) is enforced at the binding site (spec §4.4, §4.6).
func (a *Analyzer) analyzeBlockBoundDeclaration(decl *ast.VariableDeclaration) {
	block := decl.Value.(*ast.Block)

	var target typesystem.Type
	if decl.TypeAnnotation != nil {
		t, err := a.resolveTypeExpr(decl.TypeAnnotation)
		if err != nil {
			a.addError(diag.KindType, diag.CodeTypeMismatch, decl, "%q: %s", decl.Name, err)
			t = typesystem.Unknown{}
		}
		target = t
	}

	result, needsAnnotation := a.analyzeExpressionBlock(block, target)
	if needsAnnotation && target == nil {
		a.addError(diag.KindContract, diag.CodeRuntimeBlockNoAnnot, decl,
			"binding %q initializes from a runtime expression block and must carry an explicit type annotation", decl.Name)
		a.finishDeclaration(decl, typesystem.Unknown{})
		return
	}
	a.finishDeclaration(decl, result)
}

// analyzeLoopBoundDeclaration handles `val name : [_]T = for x in r { ... }`
// (spec §4.10): the element type comes from the annotation, which is
// mandatory since a loop expression has no other way to fix its element type.
func (a *Analyzer) analyzeLoopBoundDeclaration(decl *ast.VariableDeclaration) {
	loopExpr := decl.Value.(*ast.ForInExpression)

	if decl.TypeAnnotation == nil {
		a.addError(diag.KindContract, diag.CodeRuntimeBlockNoAnnot, decl,
			"binding %q initializes from a loop expression and must carry an explicit element type annotation", decl.Name)
		a.analyzeForInExpression(loopExpr, typesystem.Unknown{})
		a.finishDeclaration(decl, typesystem.Unknown{})
		return
	}

	target, err := a.resolveTypeExpr(decl.TypeAnnotation)
	if err != nil {
		a.addError(diag.KindType, diag.CodeTypeMismatch, decl, "%q: %s", decl.Name, err)
		target = typesystem.Unknown{}
	}
	result := a.analyzeForInExpression(loopExpr, target)
	a.finishDeclaration(decl, result)
}
