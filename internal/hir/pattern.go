package hir

import "github.com/neverRare/butter-typeinfer/internal/typesystem"

// PatternKind discriminates the destructuring forms a Pattern can take
// (§4.6.11, §6). Only Var is load-bearing in the original source; the
// rest are stubbed there. This port implements Record/Tuple/Array/Tag/Ref
// in full as well (see SPEC_FULL.md Supplemented Features) because the
// record/tuple/tag construction rules in §4.6.4 need a destructuring
// counterpart to exercise splat and row behavior end to end.
type PatternKind int

const (
	PatTrue PatternKind = iota
	PatFalse
	PatUInt
	PatInt
	PatIgnore
	PatVar
	PatRecord
	PatTuple
	PatArray
	PatTag
	PatRef
)

type Pattern struct {
	Kind PatternKind
	Ty   typesystem.Type

	UIntVal uint64
	IntVal  int64
	Var     *VarPattern
	Record  *RecordPattern
	// Tuple and Array share a shape: an ordered list of sub-patterns,
	// optionally with one rest sub-pattern splicing the remainder.
	Tuple *ListPattern
	Array *ListPattern
	Tag   *TagPattern
	Ref   *Pattern
}

// VarPattern binds an identifier, optionally as mutable and/or as a
// reference (§4.6.11).
type VarPattern struct {
	Ident     string
	Mutable   bool
	BindToRef bool
}

type RecordPattern struct {
	Fields map[string]Pattern
	Rest   *Pattern
}

type ListPattern struct {
	// Left/Right surround an optional Rest sub-pattern; when Rest is
	// nil, Left holds the entire closed list and Right is empty.
	Left  []Pattern
	Rest  *Pattern
	Right []Pattern
}

type TagPattern struct {
	Tag     string
	Pattern *Pattern
}
