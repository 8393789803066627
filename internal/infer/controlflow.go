package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferBlock implements §4.6.9 Block: statements thread through a
// cloned environment under a block-local substitution accumulator
// (never the ambient one, mirroring the ground truth's `more_subs`),
// so that bindings a statement introduces never leak past the block;
// only after the tail expression is inferred against the post-
// statement environment does the accumulator compose into the
// caller's ambient substitution.
func inferBlock(c *Ctx, env *tyenv.Env, b *hir.Block) (typesystem.Type, error) {
	envClone := env.Clone()
	blockSubs := typesystem.NewSubs()
	stmtCtx := &Ctx{VS: c.VS, Subs: blockSubs, loops: c.loops}
	for i := range b.Statements {
		if err := inferStatement(stmtCtx, envClone, &b.Statements[i]); err != nil {
			return nil, err
		}
	}
	var tailTy typesystem.Type = typesystem.Unit()
	if b.Tail != nil {
		var err error
		tailTy, err = InferExpr(c, envClone, b.Tail)
		if err != nil {
			return nil, err
		}
	}
	tailTy, err := typesystem.ApplyType(blockSubs, tailTy)
	if err != nil {
		return nil, err
	}
	if err := c.Subs.ComposeWith(blockSubs); err != nil {
		return nil, err
	}
	return tailTy, nil
}

// inferIf implements §4.6.9 If: the condition unifies with Bool, and
// the body/else branches unify pairwise (else defaulting to unit).
func inferIf(c *Ctx, env *tyenv.Env, ifExpr *hir.IfExpr) (typesystem.Type, error) {
	condTy, err := InferExpr(c, env, &ifExpr.Cond)
	if err != nil {
		return nil, err
	}
	if err := c.unify(condTy, typesystem.TBool{}); err != nil {
		return nil, err
	}
	bodyTy, err := inferBlock(c, env, &ifExpr.Body)
	if err != nil {
		return nil, err
	}
	elseTy := typesystem.Type(typesystem.Unit())
	if ifExpr.ElsePart != nil {
		elseTy, err = inferControlFlow(c, env, ifExpr.ElsePart)
		if err != nil {
			return nil, err
		}
	}
	moreSubs, err := typesystem.UnifyType(bodyTy, elseTy, c.VS)
	if err != nil {
		return nil, err
	}
	resultTy, err := typesystem.ApplyType(moreSubs, bodyTy)
	if err != nil {
		return nil, err
	}
	if err := c.Subs.ComposeWith(moreSubs); err != nil {
		return nil, err
	}
	return resultTy, nil
}

// inferControlFlow dispatches §4.6.9's forms. For/While/Loop/Match are
// reserved per the decision recorded in SPEC_FULL.md §9: each reports
// ErrUnsupportedControlFlow rather than guessing a semantics the
// ground truth itself leaves as a todo!().
func inferControlFlow(c *Ctx, env *tyenv.Env, cf *hir.ControlFlow) (typesystem.Type, error) {
	switch cf.Kind {
	case hir.CFBlock:
		return inferBlock(c, env, cf.Block)
	case hir.CFIf:
		return inferIf(c, env, cf.If)
	case hir.CFFor, hir.CFWhile, hir.CFLoop, hir.CFMatch:
		return nil, ErrUnsupportedControlFlow
	default:
		return nil, typeError(typesystem.MismatchCons)
	}
}
