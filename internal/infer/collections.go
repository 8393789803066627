package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferArray implements §4.6.4 Array: a fresh element variable is
// refined element by element, a splat element unifying with Array(α)
// instead of α directly.
func inferArray(c *Ctx, env *tyenv.Env, elems []hir.Element) (typesystem.Type, error) {
	elemVar := c.VS.NewVar()
	var elemTy typesystem.Type = typesystem.TVar{V: elemVar}
	for i := range elems {
		el := &elems[i]
		ty, err := InferExpr(c, env, &el.Expr)
		if err != nil {
			return nil, err
		}
		var unifyTo typesystem.Type
		if el.Kind == hir.ElementSplat {
			unifyTo = typesystem.TArray{Elem: elemTy}
		} else {
			unifyTo = elemTy
		}
		if err := c.unify(ty, unifyTo); err != nil {
			return nil, err
		}
		elemTy, err = c.apply(elemTy)
		if err != nil {
			return nil, err
		}
	}
	return typesystem.TArray{Elem: elemTy}, nil
}

// inferRecord implements §4.6.4 Record: named fields build a closed
// Keyed; each splat in turn unifies its expression's type with a fresh
// rest variable and folds whatever concrete fields that variable
// resolves to back into the accumulated Keyed (via the same
// Keyed.substitute machinery unification already uses). The original
// source models at most one splat per record (WithSplat{left,splat,
// right}); this port folds N splats in sequence.
func inferRecord(c *Ctx, env *tyenv.Env, r *hir.RecordExpr) (typesystem.Type, error) {
	fields := make(map[string]typesystem.Type, len(r.Fields))
	for _, f := range r.Fields {
		ty, err := InferExpr(c, env, &f.Expr)
		if err != nil {
			return nil, err
		}
		fields[f.Name] = ty
	}
	var rest *typesystem.Var
	for i := range r.Splats {
		ty, err := InferExpr(c, env, &r.Splats[i])
		if err != nil {
			return nil, err
		}
		v := c.VS.NewVar()
		if err := c.unify(ty, typesystem.TVar{V: v}); err != nil {
			return nil, err
		}
		applied, err := c.apply(typesystem.TRecord{Keyed: typesystem.Keyed{Fields: fields, Rest: &v}})
		if err != nil {
			return nil, err
		}
		rt := applied.(typesystem.TRecord)
		fields = rt.Keyed.Fields
		rest = rt.Keyed.Rest
	}
	return typesystem.TRecord{Keyed: typesystem.Keyed{Fields: fields, Rest: rest}}, nil
}

// inferTuple implements §4.6.4 Tuple, analogous to inferRecord using
// OrderedAndType instead of Keyed. All fixed elements are modeled as
// the prefix before any splat (the original's `right` fixed-tail list
// has no hir.CollectionExpr counterpart in this port).
func inferTuple(c *Ctx, env *tyenv.Env, t *hir.CollectionExpr) (typesystem.Type, error) {
	seq := make([]typesystem.Type, 0, len(t.Elems))
	for i := range t.Elems {
		ty, err := InferExpr(c, env, &t.Elems[i])
		if err != nil {
			return nil, err
		}
		seq = append(seq, ty)
	}
	elems := typesystem.OrderedAndType{Row: false, Seq: seq}
	for i := range t.Splats {
		ty, err := InferExpr(c, env, &t.Splats[i])
		if err != nil {
			return nil, err
		}
		v := c.VS.NewVar()
		if err := c.unify(ty, typesystem.TVar{V: v}); err != nil {
			return nil, err
		}
		var left, right []typesystem.Type
		if elems.Row {
			left, right = elems.Left, elems.Right
		} else {
			left = elems.Seq
		}
		applied, err := c.apply(typesystem.TTuple{Elems: typesystem.OrderedAndType{Row: true, Left: left, Rest: v, Right: right}})
		if err != nil {
			return nil, err
		}
		elems = applied.(typesystem.TTuple).Elems
	}
	return typesystem.TTuple{Elems: elems}, nil
}

// inferTag implements §4.6.4 Tag: `@name expr?` produces a one-field
// open Union, the payload defaulting to unit when absent.
func inferTag(c *Ctx, env *tyenv.Env, t *hir.TagExpr) (typesystem.Type, error) {
	innerTy := typesystem.Type(typesystem.Unit())
	if t.Expr != nil {
		var err error
		innerTy, err = InferExpr(c, env, t.Expr)
		if err != nil {
			return nil, err
		}
	}
	rest := c.VS.NewVar()
	return typesystem.TUnion{Keyed: typesystem.Keyed{
		Fields: map[string]typesystem.Type{t.Tag: innerTy},
		Rest:   &rest,
	}}, nil
}
