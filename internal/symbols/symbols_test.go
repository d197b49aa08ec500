package symbols

import (
	"testing"

	"github.com/kiinaq/hexen/internal/typesystem"
)

func TestDeclareAndLookup(t *testing.T) {
	tbl := NewTable(nil)
	if err := tbl.DeclareVariable("x", typesystem.TypeI32, false); err != nil {
		t.Fatal(err)
	}
	sym, ok := tbl.Lookup("x")
	if !ok || !typesystem.Equal(sym.Type, typesystem.TypeI32) {
		t.Fatalf("expected x: i32, got %v, %v", sym, ok)
	}
}

func TestDuplicateDeclarationInSameScopeFails(t *testing.T) {
	tbl := NewTable(nil)
	if err := tbl.DeclareVariable("x", typesystem.TypeI32, false); err != nil {
		t.Fatal(err)
	}
	if err := tbl.DeclareVariable("x", typesystem.TypeI64, false); err == nil {
		t.Fatal("expected duplicate declaration in the same scope to fail")
	}
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	tbl := NewTable(nil)
	if err := tbl.DeclareVariable("x", typesystem.TypeI32, false); err != nil {
		t.Fatal(err)
	}
	tbl.EnterScope()
	if err := tbl.DeclareVariable("x", typesystem.TypeString, false); err != nil {
		t.Fatalf("shadowing in an inner scope should be allowed: %v", err)
	}
	sym, _ := tbl.Lookup("x")
	if !typesystem.Equal(sym.Type, typesystem.TypeString) {
		t.Fatalf("expected innermost binding to win, got %v", sym.Type)
	}
	tbl.ExitScope()
	sym, _ = tbl.Lookup("x")
	if !typesystem.Equal(sym.Type, typesystem.TypeI32) {
		t.Fatalf("expected outer binding to be visible again, got %v", sym.Type)
	}
}

func TestLookupSearchesOuterScopes(t *testing.T) {
	tbl := NewTable(nil)
	tbl.DeclareVariable("y", typesystem.TypeI32, false)
	tbl.EnterScope()
	if _, ok := tbl.Lookup("y"); !ok {
		t.Fatal("expected outer-scope binding to remain visible from an inner scope")
	}
}

func TestFunctionTableSupportsForwardReference(t *testing.T) {
	tbl := NewTable(nil)
	sig := Signature{Name: "helper", ReturnType: typesystem.TypeI32}
	if err := tbl.DeclareFunction(sig); err != nil {
		t.Fatal(err)
	}
	got, ok := tbl.LookupFunction("helper")
	if !ok || got.Name != "helper" {
		t.Fatalf("expected to resolve helper, got %v, %v", got, ok)
	}
}

func TestModifiedParametersTracksAssignments(t *testing.T) {
	tbl := NewTable(nil)
	tbl.EnterFunction(typesystem.TypeVoid)
	tbl.DeclareParameter("acc", typesystem.TypeI32, true)
	tbl.SetParameterModified("acc")
	mods := tbl.ModifiedParameters()
	if len(mods) != 1 || mods[0] != "acc" {
		t.Fatalf("expected [acc], got %v", mods)
	}
	tbl.ExitFunction()
	if tbl.InFunction() {
		t.Fatal("expected InFunction to be false after ExitFunction")
	}
}

func TestLabelStackRejectsDuplicates(t *testing.T) {
	tbl := NewTable(nil)
	if err := tbl.DeclareLabel("outer"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.DeclareLabel("outer"); err == nil {
		t.Fatal("expected duplicate label to fail")
	}
	if !tbl.HasLabel("outer") {
		t.Fatal("expected HasLabel to find the active label")
	}
	tbl.ExitLabel("outer")
	if tbl.HasLabel("outer") {
		t.Fatal("expected label to no longer be active after ExitLabel")
	}
}
