package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/config"
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferFun ports the commented Fun<()> draft in
// original_source/type-system/src/expr.rs: each parameter binds a
// fresh variable (via its full pattern, a generalization of the
// draft's bare-identifier params), the reserved "return" identifier is
// installed for the body to unify Return jumps against, and the body
// infers under its own local substitution before the function's
// parameter/result types are refined by it and composed back.
func inferFun(c *Ctx, env *tyenv.Env, f *hir.FunExpr) (typesystem.Type, error) {
	funEnv := env.Clone()
	paramTypes := make([]typesystem.NamedType, len(f.Param))
	bodySubs := typesystem.NewSubs()
	bodyCtx := &Ctx{VS: c.VS, Subs: bodySubs}
	for i := range f.Param {
		fld := &f.Param[i]
		ty, err := inferPattern(bodyCtx, funEnv, &fld.Pattern)
		if err != nil {
			return nil, err
		}
		paramTypes[i] = typesystem.NamedType{Name: fld.Name, Ty: ty}
	}
	returnVar := c.VS.NewVar()
	funEnv.Insert(config.ReturnIdent, tyenv.SchemeMut{
		IsMut:  false,
		Scheme: tyenv.Scheme{ForAll: typesystem.NewVarSet(), Ty: typesystem.TVar{V: returnVar}},
	})

	bodyTy, err := InferExpr(bodyCtx, funEnv, f.Body)
	if err != nil {
		return nil, err
	}

	paramTy, err := typesystem.ApplyType(bodySubs, typesystem.TRecordTuple{
		Elems: typesystem.OrderedAndNamed{Row: false, Seq: paramTypes},
	})
	if err != nil {
		return nil, err
	}
	returnTy, err := typesystem.ApplyType(bodySubs, typesystem.TVar{V: returnVar})
	if err != nil {
		return nil, err
	}
	if err := c.Subs.ComposeWith(bodySubs); err != nil {
		return nil, err
	}

	moreSubs, err := typesystem.UnifyType(returnTy, bodyTy, c.VS)
	if err != nil {
		return nil, err
	}
	finalBodyTy, err := typesystem.ApplyType(moreSubs, bodyTy)
	if err != nil {
		return nil, err
	}
	if err := c.Subs.ComposeWith(moreSubs); err != nil {
		return nil, err
	}

	f.Ty = typesystem.TFun{Param: paramTy, Result: finalBodyTy}
	return f.Ty, nil
}
