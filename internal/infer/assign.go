package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferAssign implements §4.6.7: a bare-variable place is checked
// against E's mutability flag first (UnboundVar / AssignedImm), then
// expr and place are inferred, any mutability variable the place
// carries is unified with Mut, and the place's type is unified with
// the expression's. Assignment always yields unit.
func inferAssign(c *Ctx, env *tyenv.Env, a *hir.AssignExpr) error {
	if a.Place.Kind == hir.PlaceVar {
		sm, ok := env.Get(a.Place.Var)
		if !ok {
			return typeError(typesystem.UnboundVar)
		}
		if !sm.IsMut {
			return typeError(typesystem.AssignedImm)
		}
	}
	exprTy, err := InferExpr(c, env, &a.Expr)
	if err != nil {
		return err
	}
	placeTy, mut, err := InferPlace(c, env, &a.Place)
	if err != nil {
		return err
	}
	if mut != nil {
		if err := c.unifyMut(mut, typesystem.MMut{}); err != nil {
			return err
		}
	}
	return c.unify(placeTy, exprTy)
}

// inferParallelAssign implements §4.6.7's "sequence of independent
// single assignments" rule: the result is unit regardless of arity.
func inferParallelAssign(c *Ctx, env *tyenv.Env, assigns []hir.AssignExpr) error {
	for i := range assigns {
		if err := inferAssign(c, env, &assigns[i]); err != nil {
			return err
		}
	}
	return nil
}
