// Package hir defines the untyped high-level intermediate representation
// the inference core consumes, and the decorated shape it produces
// (§6 External Interfaces). Lexing, parsing and pretty-printing are
// external collaborators (§1 Non-goals) — nothing in this package builds
// nodes from source text.
//
// Rust's source HIR decorates every node with a generic type parameter
// (Expr<'a, T>, Pattern<T>, ...) that is () before inference and Type
// after. This port uses a concrete Ty typesystem.Type field instead,
// left nil until the inference driver fills it in — ordinary in-place
// AST decoration rather than a generic rewrite, which keeps every HIR
// node a plain concrete struct.
package hir

import "github.com/neverRare/butter-typeinfer/internal/typesystem"

// LiteralKind enumerates the literal forms (hir/src/expr.rs Literal).
type LiteralKind int

const (
	LitTrue LiteralKind = iota
	LitFalse
	LitVoid
	LitUInt
	LitFloat
)

type Literal struct {
	Kind     LiteralKind
	UIntVal  uint64
	FloatVal float64
}

// ExprKind discriminates the expression forms an Expr node can hold.
type ExprKind int

const (
	EKindLiteral ExprKind = iota
	EKindTag
	EKindAssign
	EKindParallelAssign
	EKindArray
	EKindArrayRange
	EKindRecord
	EKindTuple
	EKindUnary
	EKindBinary
	EKindPlace
	EKindCall
	EKindControlFlow
	EKindFun
	EKindJump
)

// Expr is one node of the untyped-or-typed expression tree. Exactly the
// field matching Kind is populated; Ty is nil until the driver visits
// this node.
type Expr struct {
	Kind ExprKind
	Ty   typesystem.Type

	Literal Literal
	Tag     *TagExpr
	Assign  *AssignExpr
	// ParallelAssign holds a sequence of independent single assignments
	// (§4.6.7); EKindParallelAssign uses this field, not Assign.
	ParallelAssign []AssignExpr
	Array          []Element
	ArrayRange     *RangeExpr
	Record         *RecordExpr
	Tuple          *CollectionExpr
	Unary          *UnaryExpr
	Binary         *BinaryExpr
	Place          *PlaceExpr
	Call           *CallExpr
	ControlFlow    *ControlFlow
	Fun            *FunExpr
	Jump           *JumpExpr
}

// ElementKind distinguishes a plain array element from a splatted one
// (§4.6.4).
type ElementKind int

const (
	ElementPlain ElementKind = iota
	ElementSplat
)

type Element struct {
	Expr Expr
	Kind ElementKind
}

// Field is a named record/record-tuple component.
type Field struct {
	Name string
	Expr Expr
}

// RecordExpr is a keyed record construction, optionally with splats
// (§4.6.4). Splats and named fields can both be present:
// `(x = 1, *rest)`.
type RecordExpr struct {
	Splats []Expr
	Fields []Field
}

// CollectionExpr is a positional tuple construction, optionally with
// splats, mirroring RecordExpr's shape for the unnamed case.
type CollectionExpr struct {
	Splats []Expr
	Elems  []Expr
}

type TagExpr struct {
	Tag  string
	Expr *Expr // nil when the tag carries no payload
}

// AssignExpr is a single `place <- expr` assignment (§4.6.7).
type AssignExpr struct {
	Place PlaceExpr
	Expr  Expr
}

type UnaryKind int

const (
	UnaryMinus UnaryKind = iota
	UnaryRef
	UnaryNot
	UnaryMove
	UnaryClone
)

type UnaryExpr struct {
	Kind UnaryKind
	Expr Expr
}

type BinaryKind int

const (
	BinAdd BinaryKind = iota
	BinSub
	BinMultiply
	BinDiv
	BinFloorDiv
	BinMod
	BinAnd
	BinOr
	BinLazyAnd
	BinLazyOr
	BinEqual
	BinNotEqual
	BinGreater
	BinGreaterEqual
	BinLess
	BinLessEqual
	BinConcatenate
)

type BinaryExpr struct {
	Kind  BinaryKind
	Left  Expr
	Right Expr
}

// BoundKind is the range-bound inclusivity (§6).
type BoundKind int

const (
	BoundInclusive BoundKind = iota
	BoundExclusive
)

type Bound struct {
	Kind BoundKind
	Expr Expr
}

type RangeExpr struct {
	Left  *Bound
	Right *Bound
}

// ArgKind discriminates the four call-argument shapes (§4.6.6).
type ArgKind int

const (
	ArgUnit ArgKind = iota
	ArgSplat
	ArgRecord
	ArgTuple
)

type Arg struct {
	Kind   ArgKind
	Splat  *Expr
	Record *RecordExpr
	Tuple  *CollectionExpr
}

type CallExpr struct {
	Callee Expr
	Arg    Arg
}

type FunExpr struct {
	// Param preserves the original insertion order, unlike the source
	// HashMap-backed draft — order matters for RecordTuple positional
	// unification at the call site.
	Param []Field2
	Body  *Expr
	Ty    typesystem.Type
}

// Field2 pairs a parameter name with its binding pattern.
type Field2 struct {
	Name    string
	Pattern Pattern
}

type JumpKind int

const (
	JumpBreak JumpKind = iota
	JumpContinue
	JumpReturn
)

type JumpExpr struct {
	Kind JumpKind
	Expr *Expr // nil for a bare break/continue/return
}
