package diag

import (
	"testing"

	"github.com/kiinaq/hexen/internal/token"
)

func TestNewAnchorsPosition(t *testing.T) {
	d := New(KindType, CodeTypeMismatch, nil, "mismatch: %s", "i32")
	if d.Message != "mismatch: i32" {
		t.Fatalf("unexpected message: %q", d.Message)
	}
	if d.Pos.IsValid() {
		t.Fatal("expected a nil node to produce an invalid position")
	}
}

func TestSinkOrdersByPosition(t *testing.T) {
	s := NewSink(0)
	s.Add(&Diagnostic{Kind: KindType, Code: CodeTypeMismatch, Pos: token.Position{Line: 5, Column: 1}})
	s.Add(&Diagnostic{Kind: KindType, Code: CodeTypeMismatch, Pos: token.Position{Line: 1, Column: 1}})
	s.Add(&Diagnostic{Kind: KindType, Code: CodeTypeMismatch, Pos: token.Position{Line: 3, Column: 1}})

	out := s.Diagnostics()
	if out[0].Pos.Line != 1 || out[1].Pos.Line != 3 || out[2].Pos.Line != 5 {
		t.Fatalf("expected diagnostics sorted by position, got %v, %v, %v", out[0].Pos, out[1].Pos, out[2].Pos)
	}
}

func TestSinkRespectsMaxErrors(t *testing.T) {
	s := NewSink(2)
	for i := 0; i < 5; i++ {
		s.Add(&Diagnostic{Kind: KindType, Code: CodeTypeMismatch})
	}
	if len(s.Diagnostics()) != 2 {
		t.Fatalf("expected MaxErrors to cap retained diagnostics at 2, got %d", len(s.Diagnostics()))
	}
}

func TestEmpty(t *testing.T) {
	s := NewSink(0)
	if !s.Empty() {
		t.Fatal("expected a fresh sink to be empty")
	}
	s.Add(&Diagnostic{Kind: KindInternal, Code: CodeInternal})
	if s.Empty() {
		t.Fatal("expected sink to report non-empty after Add")
	}
}
