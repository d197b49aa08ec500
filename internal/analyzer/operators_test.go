package analyzer

import (
	"testing"

	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
)

func TestComptimeOperandAdaptsToConcretePartner(t *testing.T) {
	prog := program(nil,
		valDecl("x", namedType("i64"), intLit(100)),
		valDecl("y", nil, binOp("+", ident("x"), intLit(1))),
	)
	diags := runAnalysis(prog)
	mustNoDiags(t, diags)
}

func TestComparisonAlwaysProducesBool(t *testing.T) {
	prog := program(nil,
		valDecl("a", nil, intLit(1)),
		valDecl("b", nil, intLit(2)),
		valDecl("isLess", namedType("bool"), binOp("<", ident("a"), ident("b"))),
	)
	diags := runAnalysis(prog)
	mustNoDiags(t, diags)
}

func TestLogicalOperatorRequiresBoolOperands(t *testing.T) {
	prog := program(nil,
		valDecl("x", nil, intLit(1)),
		valDecl("y", nil, &ast.BinaryExpression{Position: p, Operator: "&&", Left: ident("x"), Right: ident("x")}),
	)
	diags := runAnalysis(prog)
	if !hasCode(diags, diag.CodeTypeMismatch) {
		t.Fatalf("expected %s, got:\n%s", diag.CodeTypeMismatch, messages(diags))
	}
}

func TestTrueDivisionOfConcreteIntsRequiresConversion(t *testing.T) {
	prog := program(nil,
		valDecl("x", namedType("i32"), intLit(7)),
		valDecl("y", namedType("i32"), intLit(2)),
		valDecl("q", nil, binOp("/", ident("x"), ident("y"))),
	)
	diags := runAnalysis(prog)
	if !hasCode(diags, diag.CodeMixedConcrete) {
		t.Fatalf("expected true division between two i32 values to require an explicit float conversion, got:\n%s", messages(diags))
	}
}

func TestIntegerDivisionOnFloatsRejected(t *testing.T) {
	prog := program(nil,
		valDecl("x", namedType("f64"), floatLit(7)),
		valDecl("y", namedType("f64"), floatLit(2)),
		valDecl("q", nil, binOp("\\", ident("x"), ident("y"))),
	)
	diags := runAnalysis(prog)
	if !hasCode(diags, diag.CodeMixedConcrete) {
		t.Fatalf("expected integer division (\\) on floats to be rejected, got:\n%s", messages(diags))
	}
}

func TestUnaryNotRequiresBool(t *testing.T) {
	prog := program(nil,
		valDecl("flag", nil, &ast.UnaryExpression{Position: p, Operator: "!", Operand: intLit(1)}),
	)
	diags := runAnalysis(prog)
	if !hasCode(diags, diag.CodeTypeMismatch) {
		t.Fatalf("expected %s, got:\n%s", diag.CodeTypeMismatch, messages(diags))
	}
}
