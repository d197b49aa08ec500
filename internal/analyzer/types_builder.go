package analyzer

import (
	"fmt"

	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/typesystem"
)

// namedScalars maps every spec-recognized scalar annotation name to its type.
var namedScalars = map[string]typesystem.Type{
	"i32":    typesystem.TypeI32,
	"i64":    typesystem.TypeI64,
	"f32":    typesystem.TypeF32,
	"f64":    typesystem.TypeF64,
	"bool":   typesystem.TypeBool,
	"string": typesystem.TypeString,
	"void":   typesystem.TypeVoid,
	"usize":  typesystem.TypeUsize,
}

// resolveTypeExpr converts a parsed type annotation into a typesystem.Type.
// An ArrayTypeExpr with Inferred set resolves to Array{Size: -1, ...}, a
// placeholder later filled in by typesystem.Materialize for a comptime array
// or by checkFlatten for a v[..] copy (spec §4.2, §4.6).
func (a *Analyzer) resolveTypeExpr(te ast.TypeExpr) (typesystem.Type, error) {
	switch t := te.(type) {
	case *ast.NamedType:
		typ, ok := namedScalars[t.Name]
		if !ok {
			return typesystem.Unknown{}, fmt.Errorf("unknown type name %q", t.Name)
		}
		return typ, nil
	case *ast.ArrayTypeExpr:
		elem, err := a.resolveTypeExpr(t.Element)
		if err != nil {
			return typesystem.Unknown{}, err
		}
		size := t.Size
		if t.Inferred {
			size = -1
		}
		return typesystem.Array{Element: elem, Size: size}, nil
	case *ast.RangeTypeExpr:
		elem, err := a.resolveTypeExpr(t.Element)
		if err != nil {
			return typesystem.Unknown{}, err
		}
		return typesystem.Range{Element: elem}, nil
	default:
		return typesystem.Unknown{}, fmt.Errorf("unrecognized type annotation node")
	}
}
