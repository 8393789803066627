package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferArg implements §4.6.6's four argument shapes.
func inferArg(c *Ctx, env *tyenv.Env, arg *hir.Arg) (typesystem.Type, error) {
	switch arg.Kind {
	case hir.ArgUnit:
		return typesystem.Unit(), nil
	case hir.ArgSplat:
		ty, err := InferExpr(c, env, arg.Splat)
		if err != nil {
			return nil, err
		}
		v := c.VS.NewVar()
		shell := typesystem.TRecordTuple{Elems: typesystem.OrderedAndNamed{Row: true, Rest: v}}
		moreSubs, err := typesystem.UnifyType(ty, typesystem.TVar{V: v}, c.VS)
		if err != nil {
			return nil, err
		}
		resolved, err := typesystem.ApplyType(moreSubs, shell)
		if err != nil {
			return nil, err
		}
		if err := c.Subs.ComposeWith(moreSubs); err != nil {
			return nil, err
		}
		return resolved, nil
	case hir.ArgRecord:
		return inferRecord(c, env, arg.Record)
	case hir.ArgTuple:
		return inferTuple(c, env, arg.Tuple)
	default:
		return nil, typeError(typesystem.MismatchCons)
	}
}

// inferCall implements §4.6.6's Call rule exactly, including its one
// documented departure from textual production order (§5): callee and
// argument are each inferred under their own independent local
// substitution, and the three local substitutions compose into the
// caller's ambient Subs in the REVERSE of the order they were created
// (subs3, then subs2, then subs1) — ground-truthed against
// original_source/type-system/src/expr.rs's Call::infer.
func inferCall(c *Ctx, env *tyenv.Env, call *hir.CallExpr) (typesystem.Type, error) {
	resultVar := c.VS.NewVar()

	subs1 := typesystem.NewSubs()
	ctx1 := &Ctx{VS: c.VS, Subs: subs1}
	calleeTy, err := InferExpr(ctx1, env, &call.Callee)
	if err != nil {
		return nil, err
	}

	env2 := env.Clone()
	if err := env2.Substitute(subs1); err != nil {
		return nil, err
	}

	subs2 := typesystem.NewSubs()
	ctx2 := &Ctx{VS: c.VS, Subs: subs2}
	argTy, err := inferArg(ctx2, env2, &call.Arg)
	if err != nil {
		return nil, err
	}

	calleeTy, err = typesystem.ApplyType(subs2, calleeTy)
	if err != nil {
		return nil, err
	}

	subs3, err := typesystem.UnifyType(calleeTy, typesystem.TFun{Param: argTy, Result: typesystem.TVar{V: resultVar}}, c.VS)
	if err != nil {
		return nil, err
	}

	resultTy, err := typesystem.ApplyType(subs3, typesystem.TVar{V: resultVar})
	if err != nil {
		return nil, err
	}

	if err := c.Subs.ComposeWith(subs3); err != nil {
		return nil, err
	}
	if err := c.Subs.ComposeWith(subs2); err != nil {
		return nil, err
	}
	if err := c.Subs.ComposeWith(subs1); err != nil {
		return nil, err
	}
	return resultTy, nil
}
