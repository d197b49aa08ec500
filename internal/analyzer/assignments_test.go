package analyzer

import (
	"testing"

	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/diag"
)

func conv(e ast.Expression, t ast.TypeExpr) *ast.ConversionExpression {
	return &ast.ConversionExpression{Position: p, Operand: e, TargetType: t}
}

func TestNumericConversionAllowsPrecisionLoss(t *testing.T) {
	decl := valDecl("x", namedType("f64"), floatLit(3.9))
	narrowed := valDecl("y", namedType("i32"), conv(ident("x"), namedType("i32")))
	prog := program(nil, decl, narrowed)
	mustNoDiags(t, runAnalysis(prog))
}

func TestConversionRejectsCrossingCategoryBoundary(t *testing.T) {
	decl := valDecl("ok", namedType("bool"), &ast.BooleanLiteral{Position: p, Value: true})
	bad := valDecl("asInt", namedType("i32"), conv(ident("ok"), namedType("i32")))
	prog := program(nil, decl, bad)
	diags := runAnalysis(prog)
	if !hasCode(diags, diag.CodeBadConversion) {
		t.Fatalf("expected %s, got:\n%s", diag.CodeBadConversion, messages(diags))
	}
}

func TestAssignToImmutableVariableRejected(t *testing.T) {
	decl := valDecl("x", namedType("i32"), intLit(1))
	assign := &ast.AssignmentStatement{Position: p, Target: ident("x"), Value: intLit(2)}
	prog := program(nil, decl, assign)
	diags := runAnalysis(prog)
	if !hasCode(diags, diag.CodeAssignImmutableVar) {
		t.Fatalf("expected %s, got:\n%s", diag.CodeAssignImmutableVar, messages(diags))
	}
}

func TestAssignToMutableVariableAccepted(t *testing.T) {
	decl := mutDecl("x", namedType("i32"), intLit(1))
	assign := &ast.AssignmentStatement{Position: p, Target: ident("x"), Value: intLit(2)}
	prog := program(nil, decl, assign)
	mustNoDiags(t, runAnalysis(prog))
}

func TestAssignToImmutableParameterRejected(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Position: p,
		Name:     "f",
		Parameters: []*ast.Parameter{
			{Position: p, Name: "x", TypeAnnotation: namedType("i32")},
		},
		ReturnType: namedType("void"),
		Body: funcBlock(
			&ast.AssignmentStatement{Position: p, Target: ident("x"), Value: intLit(1)},
		),
	}
	prog := program([]*ast.FunctionDeclaration{fn})
	diags := runAnalysis(prog)
	if !hasCode(diags, diag.CodeAssignImmutableParam) {
		t.Fatalf("expected %s, got:\n%s", diag.CodeAssignImmutableParam, messages(diags))
	}
}
