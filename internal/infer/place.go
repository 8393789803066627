package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferExprWithMut infers e, additionally surfacing the mutability
// variable a nested place expression carries (§4.6.3): non-place
// expressions never carry one.
func inferExprWithMut(c *Ctx, env *tyenv.Env, e *hir.Expr) (typesystem.Type, typesystem.MutType, error) {
	if e.Kind == hir.EKindPlace {
		ty, mut, err := InferPlace(c, env, e.Place)
		if err != nil {
			return nil, nil, err
		}
		e.Ty = ty
		return ty, mut, nil
	}
	ty, err := InferExpr(c, env, e)
	if err != nil {
		return nil, nil, err
	}
	return ty, nil, nil
}

// InferPlace implements §4.6.3: every variant returns its type plus an
// optional mutability variable representing the mutability of the
// containing reference, propagated from the receiver where applicable.
func InferPlace(c *Ctx, env *tyenv.Env, p *hir.PlaceExpr) (typesystem.Type, typesystem.MutType, error) {
	switch p.Kind {
	case hir.PlaceVar:
		sm, ok := env.Get(p.Var)
		if !ok {
			return nil, nil, typeError(typesystem.UnboundVar)
		}
		ty, err := sm.Scheme.Instantiate(c.VS)
		if err != nil {
			return nil, nil, err
		}
		p.Ty = ty
		return ty, nil, nil
	case hir.PlaceProperty:
		recvTy, mut, err := inferExprWithMut(c, env, &p.Property.Expr)
		if err != nil {
			return nil, nil, err
		}
		fieldVar := c.VS.NewVar()
		rest := c.VS.NewVar()
		shape := typesystem.TRecord{Keyed: typesystem.Keyed{
			Fields: map[string]typesystem.Type{p.Property.Name: typesystem.TVar{V: fieldVar}},
			Rest:   &rest,
		}}
		if err := c.unify(recvTy, shape); err != nil {
			return nil, nil, err
		}
		ty, err := c.apply(typesystem.TVar{V: fieldVar})
		if err != nil {
			return nil, nil, err
		}
		p.Ty = ty
		return ty, mut, nil
	case hir.PlaceIndex:
		recvTy, mut, err := inferExprWithMut(c, env, &p.Index.Expr)
		if err != nil {
			return nil, nil, err
		}
		idxTy, err := InferExpr(c, env, &p.Index.Index)
		if err != nil {
			return nil, nil, err
		}
		if err := c.unify(idxTy, typesystem.TNum{}); err != nil {
			return nil, nil, err
		}
		elemVar := c.VS.NewVar()
		if err := c.unify(recvTy, typesystem.TArray{Elem: typesystem.TVar{V: elemVar}}); err != nil {
			return nil, nil, err
		}
		ty, err := c.apply(typesystem.TVar{V: elemVar})
		if err != nil {
			return nil, nil, err
		}
		p.Ty = ty
		return ty, mut, nil
	case hir.PlaceSlice:
		recvTy, mut, err := inferExprWithMut(c, env, &p.Slice.Expr)
		if err != nil {
			return nil, nil, err
		}
		elemVar := c.VS.NewVar()
		if err := c.unify(recvTy, typesystem.TArray{Elem: typesystem.TVar{V: elemVar}}); err != nil {
			return nil, nil, err
		}
		if err := inferRangeBounds(c, env, &p.Slice.Range); err != nil {
			return nil, nil, err
		}
		elemTy, err := c.apply(typesystem.TVar{V: elemVar})
		if err != nil {
			return nil, nil, err
		}
		ty := typesystem.TArray{Elem: elemTy}
		p.Ty = ty
		return ty, mut, nil
	case hir.PlaceDeref:
		recvTy, inherited, err := inferExprWithMut(c, env, p.Deref)
		if err != nil {
			return nil, nil, err
		}
		mut := inherited
		if mut == nil {
			mut = typesystem.MVar{V: c.VS.NewVar()}
		}
		elemVar := c.VS.NewVar()
		if err := c.unify(recvTy, typesystem.TRef{Mut: mut, Elem: typesystem.TVar{V: elemVar}}); err != nil {
			return nil, nil, err
		}
		ty, err := c.apply(typesystem.TVar{V: elemVar})
		if err != nil {
			return nil, nil, err
		}
		p.Ty = ty
		return ty, mut, nil
	case hir.PlaceLen:
		recvTy, err := InferExpr(c, env, p.Len)
		if err != nil {
			return nil, nil, err
		}
		elemVar := c.VS.NewVar()
		if err := c.unify(recvTy, typesystem.TArray{Elem: typesystem.TVar{V: elemVar}}); err != nil {
			return nil, nil, err
		}
		ty := typesystem.Type(typesystem.TNum{})
		p.Ty = ty
		return ty, nil, nil
	default:
		return nil, nil, typeError(typesystem.MismatchCons)
	}
}

// inferRangeBounds unifies each present bound's expression type with
// Num (§4.6.3 "Slicing... the range bounds (if any) must unify with
// Num").
func inferRangeBounds(c *Ctx, env *tyenv.Env, r *hir.RangeExpr) error {
	if r.Left != nil {
		ty, err := InferExpr(c, env, &r.Left.Expr)
		if err != nil {
			return err
		}
		if err := c.unify(ty, typesystem.TNum{}); err != nil {
			return err
		}
	}
	if r.Right != nil {
		ty, err := InferExpr(c, env, &r.Right.Expr)
		if err != nil {
			return err
		}
		if err := c.unify(ty, typesystem.TNum{}); err != nil {
			return err
		}
	}
	return nil
}
