package analyzer

import (
	"strings"
	"testing"

	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/config"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/token"
)

// Hexen's lexer and parser are out of scope for this module (spec §1), so
// tests build small AST fragments directly rather than parsing source text,
// the way the teacher's analyzeSource helper drives its own pipeline.

var p = token.Position{Line: 1, Column: 1}

func ident(name string) *ast.Identifier { return &ast.Identifier{Position: p, Name: name} }
func intLit(v int64) *ast.IntegerLiteral { return &ast.IntegerLiteral{Position: p, Value: v} }
func floatLit(v float64) *ast.FloatLiteral { return &ast.FloatLiteral{Position: p, Value: v} }
func namedType(name string) *ast.NamedType { return &ast.NamedType{Position: p, Name: name} }

func binOp(op string, l, r ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{Position: p, Operator: op, Left: l, Right: r}
}

func valDecl(name string, t ast.TypeExpr, value ast.Expression) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Position: p, Name: name, TypeAnnotation: t, Value: value}
}

func mutDecl(name string, t ast.TypeExpr, value ast.Expression) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Position: p, Name: name, TypeAnnotation: t, Value: value, Mutable: true}
}

func exprBlock(stmts ...ast.Statement) *ast.Block {
	return &ast.Block{Position: p, Kind: ast.ExpressionBlock, Statements: stmts}
}

func funcBlock(stmts ...ast.Statement) *ast.Block {
	return &ast.Block{Position: p, Kind: ast.FunctionBlock, Statements: stmts}
}

func yield(v ast.Expression) *ast.YieldStatement { return &ast.YieldStatement{Position: p, Value: v} }
func ret(v ast.Expression) *ast.ReturnStatement   { return &ast.ReturnStatement{Position: p, Value: v} }

func program(fns []*ast.FunctionDeclaration, stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Position: p, Functions: fns, Statements: stmts}
}

func runAnalysis(prog *ast.Program) []*diag.Diagnostic {
	a := New(config.Default(), nil)
	return a.Analyze(prog).Diagnostics
}

func hasCode(diags []*diag.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func messages(diags []*diag.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func mustNoDiags(t *testing.T, diags []*diag.Diagnostic) {
	t.Helper()
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got:\n%s", messages(diags))
	}
}
