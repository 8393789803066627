package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferStatement implements §4.6.10's three statement forms.
func inferStatement(c *Ctx, env *tyenv.Env, s *hir.Statement) error {
	switch s.Kind {
	case hir.StmtDeclare:
		return inferDeclare(c, env, s.Declare)
	case hir.StmtFunDeclare:
		return inferFunDeclare(c, env, s.FunDeclare)
	case hir.StmtExpr:
		_, err := InferExpr(c, env, s.Expr)
		return err
	default:
		return typeError(typesystem.MismatchCons)
	}
}

// inferDeclare implements Declare: infer expr, infer pattern (which
// extends env with fresh bindings), unify the two types, then apply
// the resulting substitution to env so later statements and the tail
// expression see the refined bindings.
func inferDeclare(c *Ctx, env *tyenv.Env, d *hir.DeclareStatement) error {
	exprTy, err := InferExpr(c, env, &d.Expr)
	if err != nil {
		return err
	}
	patTy, err := inferPattern(c, env, &d.Pattern)
	if err != nil {
		return err
	}
	moreSubs, err := typesystem.UnifyType(exprTy, patTy, c.VS)
	if err != nil {
		return err
	}
	if err := env.Substitute(moreSubs); err != nil {
		return err
	}
	return c.Subs.ComposeWith(moreSubs)
}

// inferFunDeclare implements the ML-like-let generalization decision
// recorded in SPEC_FULL.md §9: a monomorphic Fun(α, β) placeholder is
// pre-registered under the function's own name (supporting
// self-recursion inside the body), the body is inferred and unified
// against that placeholder, and only then is the refined type
// generalized and rebound.
func inferFunDeclare(c *Ctx, env *tyenv.Env, fd *hir.FunDeclareStatement) error {
	env.Remove(fd.Ident)
	placeholder := typesystem.TFun{
		Param:  typesystem.TVar{V: c.VS.NewVar()},
		Result: typesystem.TVar{V: c.VS.NewVar()},
	}
	env.Insert(fd.Ident, tyenv.SchemeMut{
		IsMut:  false,
		Scheme: tyenv.Scheme{ForAll: typesystem.NewVarSet(), Ty: placeholder},
	})
	funTy, err := inferFun(c, env, &fd.Fun)
	if err != nil {
		return err
	}
	if err := c.unify(funTy, placeholder); err != nil {
		return err
	}
	ty, err := c.apply(placeholder)
	if err != nil {
		return err
	}
	env.Insert(fd.Ident, tyenv.SchemeMut{IsMut: false, Scheme: env.Generalize(ty)})
	fd.Ty = ty
	return nil
}
