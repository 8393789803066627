package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferUnary implements §4.6.5's unary rules.
func inferUnary(c *Ctx, env *tyenv.Env, u *hir.UnaryExpr) (typesystem.Type, error) {
	switch u.Kind {
	case hir.UnaryMinus:
		ty, err := InferExpr(c, env, &u.Expr)
		if err != nil {
			return nil, err
		}
		if err := c.unify(ty, typesystem.TNum{}); err != nil {
			return nil, err
		}
		return typesystem.TNum{}, nil
	case hir.UnaryNot:
		ty, err := InferExpr(c, env, &u.Expr)
		if err != nil {
			return nil, err
		}
		if err := c.unify(ty, typesystem.TBool{}); err != nil {
			return nil, err
		}
		return typesystem.TBool{}, nil
	case hir.UnaryRef:
		ty, mut, err := inferExprWithMut(c, env, &u.Expr)
		if err != nil {
			return nil, err
		}
		if mut == nil {
			mut = typesystem.MVar{V: c.VS.NewVar()}
		}
		return typesystem.TRef{Mut: mut, Elem: ty}, nil
	case hir.UnaryMove, hir.UnaryClone:
		return InferExpr(c, env, &u.Expr)
	default:
		return nil, typeError(typesystem.MismatchCons)
	}
}

// inferBinary implements §4.6.5's binary rules.
func inferBinary(c *Ctx, env *tyenv.Env, b *hir.BinaryExpr) (typesystem.Type, error) {
	leftTy, err := InferExpr(c, env, &b.Left)
	if err != nil {
		return nil, err
	}
	rightTy, err := InferExpr(c, env, &b.Right)
	if err != nil {
		return nil, err
	}
	switch b.Kind {
	case hir.BinAdd, hir.BinSub, hir.BinMultiply, hir.BinDiv, hir.BinFloorDiv, hir.BinMod:
		if err := c.unify(leftTy, typesystem.TNum{}); err != nil {
			return nil, err
		}
		if err := c.unify(rightTy, typesystem.TNum{}); err != nil {
			return nil, err
		}
		return typesystem.TNum{}, nil
	case hir.BinEqual, hir.BinNotEqual, hir.BinGreater, hir.BinGreaterEqual, hir.BinLess, hir.BinLessEqual:
		if err := c.unify(leftTy, typesystem.TNum{}); err != nil {
			return nil, err
		}
		if err := c.unify(rightTy, typesystem.TNum{}); err != nil {
			return nil, err
		}
		return typesystem.TBool{}, nil
	case hir.BinAnd, hir.BinOr, hir.BinLazyAnd, hir.BinLazyOr:
		if err := c.unify(leftTy, typesystem.TBool{}); err != nil {
			return nil, err
		}
		if err := c.unify(rightTy, typesystem.TBool{}); err != nil {
			return nil, err
		}
		return typesystem.TBool{}, nil
	case hir.BinConcatenate:
		elemVar := c.VS.NewVar()
		if err := c.unify(leftTy, typesystem.TArray{Elem: typesystem.TVar{V: elemVar}}); err != nil {
			return nil, err
		}
		elemTy, err := c.apply(typesystem.TVar{V: elemVar})
		if err != nil {
			return nil, err
		}
		if err := c.unify(rightTy, typesystem.TArray{Elem: elemTy}); err != nil {
			return nil, err
		}
		elemTy, err = c.apply(elemTy)
		if err != nil {
			return nil, err
		}
		return typesystem.TArray{Elem: elemTy}, nil
	default:
		return nil, typeError(typesystem.MismatchCons)
	}
}
