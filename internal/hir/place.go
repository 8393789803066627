package hir

import "github.com/neverRare/butter-typeinfer/internal/typesystem"

// PlaceKind discriminates the place-expression forms (§4.6.3, §6).
type PlaceKind int

const (
	PlaceVar PlaceKind = iota
	PlaceProperty
	PlaceIndex
	PlaceSlice
	PlaceDeref
	PlaceLen
)

// PlaceExpr is an lvalue: something that can be read, indexed into, or
// assigned through. Place expressions additionally carry a mutability
// variable once inferred (§4.6.3) — tracked out-of-band by the driver,
// not stored on the node itself, since it is only meaningful transiently
// during inference.
type PlaceExpr struct {
	Kind PlaceKind
	Ty   typesystem.Type

	Var      string
	Property *PropertyPlace
	Index    *IndexPlace
	Slice    *SlicePlace
	Deref    *Expr
	Len      *Expr
}

type PropertyPlace struct {
	Expr Expr
	Name string
}

type IndexPlace struct {
	Expr  Expr
	Index Expr
}

type SlicePlace struct {
	Expr  Expr
	Range RangeExpr
}
