package hir

import "github.com/neverRare/butter-typeinfer/internal/typesystem"

type StatementKind int

const (
	StmtDeclare StatementKind = iota
	StmtFunDeclare
	StmtExpr
)

type Statement struct {
	Kind       StatementKind
	Declare    *DeclareStatement
	FunDeclare *FunDeclareStatement
	Expr       *Expr
}

// DeclareStatement binds expr's inferred type into pattern (§4.6.10).
type DeclareStatement struct {
	Pattern Pattern
	Expr    Expr
}

// FunDeclareStatement is a named function declaration, generalized at
// its declaration site (ML-like let) per the decision recorded in
// SPEC_FULL.md §9 — the original source leaves this todo!().
type FunDeclareStatement struct {
	Ident string
	Fun   FunExpr
	Ty    typesystem.Type
}
