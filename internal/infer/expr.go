package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// InferExpr is the top-level dispatcher over hir.Expr (§4.6, §6): it
// produces a type for e, decorates e.Ty in place, and mutates c's
// ambient substitution and env as the specific rule requires.
func InferExpr(c *Ctx, env *tyenv.Env, e *hir.Expr) (typesystem.Type, error) {
	var ty typesystem.Type
	var err error
	switch e.Kind {
	case hir.EKindLiteral:
		ty = inferLiteral(e.Literal)
	case hir.EKindTag:
		ty, err = inferTag(c, env, e.Tag)
	case hir.EKindAssign:
		err = inferAssign(c, env, e.Assign)
		ty = typesystem.Unit()
	case hir.EKindParallelAssign:
		err = inferParallelAssign(c, env, e.ParallelAssign)
		ty = typesystem.Unit()
	case hir.EKindArray:
		ty, err = inferArray(c, env, e.Array)
	case hir.EKindArrayRange:
		err = inferRangeBounds(c, env, e.ArrayRange)
		ty = typesystem.TArray{Elem: typesystem.TNum{}}
	case hir.EKindRecord:
		ty, err = inferRecord(c, env, e.Record)
	case hir.EKindTuple:
		ty, err = inferTuple(c, env, e.Tuple)
	case hir.EKindUnary:
		ty, err = inferUnary(c, env, e.Unary)
	case hir.EKindBinary:
		ty, err = inferBinary(c, env, e.Binary)
	case hir.EKindPlace:
		ty, _, err = InferPlace(c, env, e.Place)
	case hir.EKindCall:
		ty, err = inferCall(c, env, e.Call)
	case hir.EKindControlFlow:
		ty, err = inferControlFlow(c, env, e.ControlFlow)
	case hir.EKindFun:
		ty, err = inferFun(c, env, e.Fun)
	case hir.EKindJump:
		ty, err = inferJump(c, env, e.Jump)
	default:
		err = typeError(typesystem.MismatchCons)
	}
	if err != nil {
		return nil, err
	}
	e.Ty = ty
	return ty, nil
}
