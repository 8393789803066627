package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/config"
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferJump implements §4.6.8: Return unifies its (unit if absent)
// expression type against the "return" binding installed inside a
// function body; Break unifies against the innermost loop's result
// variable (§9 "Break/Continue" decision); Continue is unconstrained.
// Every jump yields a fresh variable as its own type — jumps are
// bottom-typed, unifiable with whatever context expects of them.
func inferJump(c *Ctx, env *tyenv.Env, j *hir.JumpExpr) (typesystem.Type, error) {
	switch j.Kind {
	case hir.JumpReturn:
		exprTy, err := inferJumpPayload(c, env, j.Expr)
		if err != nil {
			return nil, err
		}
		sm, ok := env.Get(config.ReturnIdent)
		if !ok {
			return nil, typeError(typesystem.UnboundVar)
		}
		returnTy, err := sm.Scheme.Instantiate(c.VS)
		if err != nil {
			return nil, err
		}
		if err := c.unify(exprTy, returnTy); err != nil {
			return nil, err
		}
		return typesystem.TVar{V: c.VS.NewVar()}, nil
	case hir.JumpBreak:
		exprTy, err := inferJumpPayload(c, env, j.Expr)
		if err != nil {
			return nil, err
		}
		if err := c.unifyBreakAgainstLoop(exprTy); err != nil {
			return nil, err
		}
		return typesystem.TVar{V: c.VS.NewVar()}, nil
	case hir.JumpContinue:
		return typesystem.TVar{V: c.VS.NewVar()}, nil
	default:
		return nil, typeError(typesystem.MismatchCons)
	}
}

func inferJumpPayload(c *Ctx, env *tyenv.Env, e *hir.Expr) (typesystem.Type, error) {
	if e == nil {
		return typesystem.Unit(), nil
	}
	return InferExpr(c, env, e)
}
