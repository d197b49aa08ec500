package analyzer

import (
	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/symbols"
	"github.com/kiinaq/hexen/internal/typesystem"
)

// analyzeAssignmentStatement validates target = value (spec §4.9): target
// must resolve to a mutable variable or mutable parameter, and value is
// checked against target's declared type with the same rules a variable
// declaration's initializer uses.
func (a *Analyzer) analyzeAssignmentStatement(s *ast.AssignmentStatement) {
	sym, ok := a.table.Lookup(s.Target.Name)
	if !ok {
		a.addError(diag.KindScope, diag.CodeUndefinedIdentifier, s.Target, "undefined identifier %q", s.Target.Name)
		a.analyzeExpression(s.Value, nil)
		return
	}

	switch {
	case sym.IsLoopVar:
		a.addError(diag.KindMutability, diag.CodeAssignLoopVar, s.Target, "cannot assign to loop variable %q", s.Target.Name)
	case !sym.Mutable && sym.Kind == symbols.ParameterKind:
		a.addError(diag.KindMutability, diag.CodeAssignImmutableParam, s.Target, "parameter %q is not declared mut and cannot be assigned to", s.Target.Name)
	case !sym.Mutable:
		a.addError(diag.KindMutability, diag.CodeAssignImmutableVar, s.Target, "variable %q is not declared mut and cannot be assigned to", s.Target.Name)
	}

	a.typeValueAgainstTarget(s, s.Value, sym.Type)

	if sym.Kind == symbols.ParameterKind {
		a.table.SetParameterModified(s.Target.Name)
	}
}

// conversionCategory groups a type for the purpose of the conversion
// operator's category-boundary rule (spec §4.9): conversion may cross
// between numeric kinds (including comptime) but never between numeric,
// bool, string, or void.
type conversionCategory int

const (
	categoryNumeric conversionCategory = iota
	categoryBool
	categoryString
	categoryVoid
	categoryOther
)

func categorize(t typesystem.Type) conversionCategory {
	b, ok := t.(typesystem.Basic)
	if !ok {
		return categoryOther
	}
	switch b.Kind {
	case typesystem.I32, typesystem.I64, typesystem.F32, typesystem.F64, typesystem.Usize,
		typesystem.ComptimeInt, typesystem.ComptimeFloat:
		return categoryNumeric
	case typesystem.Bool:
		return categoryBool
	case typesystem.String:
		return categoryString
	case typesystem.Void:
		return categoryVoid
	default:
		return categoryOther
	}
}

// analyzeConversionExpression validates expr:T, the one construct permitted
// to cross a concrete type boundary (spec §3, §4.9). It permits any
// numeric-to-numeric conversion, including ones that lose precision, and
// rejects conversions that cross into or out of bool, string, or void.
func (a *Analyzer) analyzeConversionExpression(e *ast.ConversionExpression) typesystem.Type {
	sourceType := a.analyzeExpression(e.Operand, nil)
	targetType, err := a.resolveTypeExpr(e.TargetType)
	if err != nil {
		a.addError(diag.KindType, diag.CodeBadConversion, e, "%s", err)
		return a.setType(e, typesystem.Unknown{})
	}
	if isUnknown(sourceType) {
		return a.setType(e, targetType)
	}

	srcCat := categorize(sourceType)
	tgtCat := categorize(targetType)
	if srcCat != tgtCat || srcCat == categoryOther {
		a.addError(diag.KindType, diag.CodeBadConversion, e, "cannot convert %s to %s: conversion may not cross type categories", sourceType.String(), targetType.String())
		return a.setType(e, typesystem.Unknown{})
	}

	return a.setType(e, targetType)
}
