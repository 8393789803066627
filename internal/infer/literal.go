package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferLiteral implements §4.6.1: booleans unify with Bool, integer and
// floating literals with Num.
func inferLiteral(lit hir.Literal) typesystem.Type {
	switch lit.Kind {
	case hir.LitTrue, hir.LitFalse:
		return typesystem.TBool{}
	case hir.LitVoid:
		return typesystem.Unit()
	case hir.LitUInt, hir.LitFloat:
		return typesystem.TNum{}
	default:
		return typesystem.TNum{}
	}
}
