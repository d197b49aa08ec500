package typesystem

import "testing"

func TestUnifyComptimeIntInt(t *testing.T) {
	got, ok := UnifyComptime(TypeComptimeInt, TypeComptimeInt)
	if !ok || !Equal(got, TypeComptimeInt) {
		t.Fatalf("got %v, %v", got, ok)
	}
}

func TestUnifyComptimeIntFloatPromotesToFloat(t *testing.T) {
	got, ok := UnifyComptime(TypeComptimeInt, TypeComptimeFloat)
	if !ok || !Equal(got, TypeComptimeFloat) {
		t.Fatalf("got %v, %v", got, ok)
	}
}

func TestUnifyComptimeRejectsConcrete(t *testing.T) {
	if _, ok := UnifyComptime(TypeComptimeInt, TypeI32); ok {
		t.Fatal("expected UnifyComptime to reject a concrete operand")
	}
}

func TestCoerceComptimeIntoAnyConcreteNumeric(t *testing.T) {
	for _, target := range []Type{TypeI32, TypeI64, TypeF32, TypeF64, TypeUsize} {
		if !Coerce(TypeComptimeInt, target) {
			t.Errorf("expected comptime_int to coerce into %s", target)
		}
	}
}

func TestCoerceComptimeFloatRejectsIntTargets(t *testing.T) {
	if Coerce(TypeComptimeFloat, TypeI32) {
		t.Fatal("comptime_float must not coerce into i32")
	}
}

func TestCoerceNeverWidensConcreteToConcrete(t *testing.T) {
	if Coerce(TypeI32, TypeI64) {
		t.Fatal("concrete-to-concrete coercion must never be implicit, even widening i32 -> i64")
	}
}

func TestMaterializeExactSizeOK(t *testing.T) {
	src := ComptimeArray{Dims: []int{3}}
	res := Materialize(src, Array{Size: 3, Element: TypeI32})
	if res.Kind != MaterializeOK {
		t.Fatalf("expected MaterializeOK, got %v", res.Kind)
	}
}

func TestMaterializeSizeMismatch(t *testing.T) {
	src := ComptimeArray{Dims: []int{2}}
	res := Materialize(src, Array{Size: 3, Element: TypeI32})
	if res.Kind != SizeMismatch || res.Expected != 3 || res.Actual != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestMaterializeInferredSizeAcceptsAnyCount(t *testing.T) {
	src := ComptimeArray{Dims: []int{5}}
	res := Materialize(src, Array{Size: -1, Element: TypeI32})
	if res.Kind != MaterializeOK {
		t.Fatalf("expected MaterializeOK for [_] inference, got %v", res.Kind)
	}
	arr, ok := res.Type.(Array)
	if !ok || arr.Size != 5 {
		t.Fatalf("expected inferred size 5, got %v", res.Type)
	}
}

func TestMaterializeDimMismatch(t *testing.T) {
	src := ComptimeArray{Dims: []int{2, 2}}
	res := Materialize(src, Array{Size: 2, Element: TypeI32})
	if res.Kind != DimMismatch {
		t.Fatalf("expected DimMismatch, got %v", res.Kind)
	}
}

func TestProductAndArrayDims(t *testing.T) {
	shape := Array{Size: 2, Element: Array{Size: 3, Element: TypeI32}}
	dims, leaf, ok := ArrayDims(shape)
	if !ok || len(dims) != 2 || dims[0] != 2 || dims[1] != 3 || !Equal(leaf, TypeI32) {
		t.Fatalf("unexpected dims=%v leaf=%v ok=%v", dims, leaf, ok)
	}
	if Product(dims) != 6 {
		t.Fatalf("expected product 6, got %d", Product(dims))
	}
}
