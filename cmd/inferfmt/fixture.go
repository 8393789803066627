package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/neverRare/butter-typeinfer/internal/hir"
)

// fixtureDoc is the on-disk shape of an inferfmt input file: a plain YAML
// document describing a sequence of top-level statements, written by hand
// rather than produced by a lexer/parser (those are external collaborators
// per SPEC_FULL.md's Non-goals). It exists only to give this command
// something to run infer.Program against.
type fixtureDoc struct {
	Statements []stmtSpec `yaml:"statements"`
}

type stmtSpec struct {
	Declare *declareSpec `yaml:"declare,omitempty"`
	Expr    *exprSpec    `yaml:"expr,omitempty"`
}

type declareSpec struct {
	Pattern string   `yaml:"pattern"`
	Mut     bool     `yaml:"mut,omitempty"`
	Expr    exprSpec `yaml:"expr"`
}

// exprSpec is a one-of descriptor for hir.Expr, mirroring internal/prelude's
// TypeSpec: exactly one field should be populated per node.
type exprSpec struct {
	Num    *float64    `yaml:"num,omitempty"`
	Bool   *bool       `yaml:"bool,omitempty"`
	Var    string      `yaml:"var,omitempty"`
	Binary *binarySpec `yaml:"binary,omitempty"`
	Array  []exprSpec  `yaml:"array,omitempty"`
	Tuple  []exprSpec  `yaml:"tuple,omitempty"`
}

type binarySpec struct {
	Op    string   `yaml:"op"`
	Left  exprSpec `yaml:"left"`
	Right exprSpec `yaml:"right"`
}

var binaryOps = map[string]hir.BinaryKind{
	"add":      hir.BinAdd,
	"sub":      hir.BinSub,
	"mul":      hir.BinMultiply,
	"div":      hir.BinDiv,
	"eq":       hir.BinEqual,
	"ne":       hir.BinNotEqual,
	"gt":       hir.BinGreater,
	"lt":       hir.BinLess,
	"concat":   hir.BinConcatenate,
	"and":      hir.BinAnd,
	"or":       hir.BinOr,
	"lazyand":  hir.BinLazyAnd,
	"lazyor":   hir.BinLazyOr,
}

// parseFixture decodes data into the untyped HIR statements infer.Program
// expects.
func parseFixture(data []byte) ([]hir.Statement, error) {
	var doc fixtureDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	statements := make([]hir.Statement, len(doc.Statements))
	for i, s := range doc.Statements {
		stmt, err := s.build()
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		statements[i] = stmt
	}
	return statements, nil
}

func (s stmtSpec) build() (hir.Statement, error) {
	switch {
	case s.Declare != nil:
		expr, err := s.Declare.Expr.build()
		if err != nil {
			return hir.Statement{}, err
		}
		return hir.Statement{
			Kind: hir.StmtDeclare,
			Declare: &hir.DeclareStatement{
				Pattern: hir.Pattern{
					Kind: hir.PatVar,
					Var: &hir.VarPattern{
						Ident:   s.Declare.Pattern,
						Mutable: s.Declare.Mut,
					},
				},
				Expr: expr,
			},
		}, nil
	case s.Expr != nil:
		expr, err := s.Expr.build()
		if err != nil {
			return hir.Statement{}, err
		}
		return hir.Statement{Kind: hir.StmtExpr, Expr: &expr}, nil
	default:
		return hir.Statement{}, fmt.Errorf("empty statement")
	}
}

func (e exprSpec) build() (hir.Expr, error) {
	switch {
	case e.Num != nil:
		return hir.Expr{Kind: hir.EKindLiteral, Literal: hir.Literal{Kind: hir.LitFloat, FloatVal: *e.Num}}, nil
	case e.Bool != nil:
		kind := hir.LitFalse
		if *e.Bool {
			kind = hir.LitTrue
		}
		return hir.Expr{Kind: hir.EKindLiteral, Literal: hir.Literal{Kind: kind}}, nil
	case e.Var != "":
		return hir.Expr{Kind: hir.EKindPlace, Place: &hir.PlaceExpr{Kind: hir.PlaceVar, Var: e.Var}}, nil
	case e.Binary != nil:
		op, ok := binaryOps[e.Binary.Op]
		if !ok {
			return hir.Expr{}, fmt.Errorf("unknown binary op %q", e.Binary.Op)
		}
		left, err := e.Binary.Left.build()
		if err != nil {
			return hir.Expr{}, err
		}
		right, err := e.Binary.Right.build()
		if err != nil {
			return hir.Expr{}, err
		}
		return hir.Expr{Kind: hir.EKindBinary, Binary: &hir.BinaryExpr{Kind: op, Left: left, Right: right}}, nil
	case e.Array != nil:
		elems := make([]hir.Element, len(e.Array))
		for i, el := range e.Array {
			sub, err := el.build()
			if err != nil {
				return hir.Expr{}, err
			}
			elems[i] = hir.Element{Kind: hir.ElementPlain, Expr: sub}
		}
		return hir.Expr{Kind: hir.EKindArray, Array: elems}, nil
	case e.Tuple != nil:
		elems := make([]hir.Expr, len(e.Tuple))
		for i, el := range e.Tuple {
			sub, err := el.build()
			if err != nil {
				return hir.Expr{}, err
			}
			elems[i] = sub
		}
		return hir.Expr{Kind: hir.EKindTuple, Tuple: &hir.CollectionExpr{Elems: elems}}, nil
	default:
		return hir.Expr{}, fmt.Errorf("empty expr spec")
	}
}
