package infer

import (
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// inferPattern implements §4.6.11. Var is the only variant the ground
// truth implements; the rest (True/False/UInt/Int/Ignore/Record/Tuple/
// Array/Tag/Ref) are supplemented here (SPEC_FULL.md Supplemented
// Features) by constraining via unification mirroring the matching
// expression-construction rule in §4.6.4, and extending env for every
// captured variable. Unlike the original signature (var_state, env
// only), this port threads the full Ctx through non-Var patterns since
// they need access to the ambient substitution to unify.
func inferPattern(c *Ctx, env *tyenv.Env, p *hir.Pattern) (typesystem.Type, error) {
	switch p.Kind {
	case hir.PatVar:
		ty := inferVarPattern(c, env, p.Var)
		p.Ty = ty
		return ty, nil
	case hir.PatTrue, hir.PatFalse:
		p.Ty = typesystem.TBool{}
		return typesystem.TBool{}, nil
	case hir.PatUInt, hir.PatInt:
		p.Ty = typesystem.TNum{}
		return typesystem.TNum{}, nil
	case hir.PatIgnore:
		ty := typesystem.Type(typesystem.TVar{V: c.VS.NewVar()})
		p.Ty = ty
		return ty, nil
	case hir.PatRecord:
		return inferRecordPattern(c, env, p)
	case hir.PatTuple:
		ty, err := inferListPattern(c, env, p.Tuple, false)
		if err != nil {
			return nil, err
		}
		p.Ty = ty
		return ty, nil
	case hir.PatArray:
		ty, err := inferListPattern(c, env, p.Array, true)
		if err != nil {
			return nil, err
		}
		p.Ty = ty
		return ty, nil
	case hir.PatTag:
		return inferTagPattern(c, env, p)
	case hir.PatRef:
		inner, err := inferPattern(c, env, p.Ref)
		if err != nil {
			return nil, err
		}
		ty := typesystem.Type(typesystem.TRef{Mut: typesystem.MVar{V: c.VS.NewVar()}, Elem: inner})
		p.Ty = ty
		return ty, nil
	default:
		return nil, typeError(typesystem.MismatchCons)
	}
}

// inferVarPattern implements §4.6.11's Var rule: a fresh variable is
// allocated and bound in env (wrapped in a fresh Ref when bind_to_ref),
// while the pattern's own returned type is always the bare variable —
// any later unification on it flows through to the env binding via
// substitution.
func inferVarPattern(c *Ctx, env *tyenv.Env, vp *hir.VarPattern) typesystem.Type {
	v := c.VS.NewNamed(vp.Ident)
	bindTy := typesystem.Type(typesystem.TVar{V: v})
	if vp.BindToRef {
		bindTy = typesystem.TRef{Mut: typesystem.MVar{V: c.VS.NewVar()}, Elem: bindTy}
	}
	env.Insert(vp.Ident, tyenv.SchemeMut{
		IsMut:  vp.Mutable,
		Scheme: tyenv.Scheme{ForAll: typesystem.NewVarSet(), Ty: bindTy},
	})
	return typesystem.TVar{V: v}
}

// inferRecordPattern mirrors §4.6.4's Record construction rule for
// destructuring: each field sub-pattern's type is collected into a
// Keyed, and an optional rest sub-pattern captures whatever fields are
// not named.
func inferRecordPattern(c *Ctx, env *tyenv.Env, p *hir.Pattern) (typesystem.Type, error) {
	rp := p.Record
	fields := make(map[string]typesystem.Type, len(rp.Fields))
	for name, sub := range rp.Fields {
		subCopy := sub
		ty, err := inferPattern(c, env, &subCopy)
		if err != nil {
			return nil, err
		}
		fields[name] = ty
		rp.Fields[name] = subCopy
	}
	var rest *typesystem.Var
	if rp.Rest != nil {
		restTy, err := inferPattern(c, env, rp.Rest)
		if err != nil {
			return nil, err
		}
		v := c.VS.NewVar()
		if err := c.unify(restTy, typesystem.TVar{V: v}); err != nil {
			return nil, err
		}
		rest = &v
	}
	ty := typesystem.TRecord{Keyed: typesystem.Keyed{Fields: fields, Rest: rest}}
	p.Ty = ty
	return ty, nil
}

// inferListPattern mirrors §4.6.4's Array/Tuple construction rules for
// destructuring. Array sub-patterns must all agree on one element
// type; Tuple sub-patterns are positional, with an optional rest
// sub-pattern capturing the open middle.
func inferListPattern(c *Ctx, env *tyenv.Env, lp *hir.ListPattern, isArray bool) (typesystem.Type, error) {
	if isArray {
		elemTy := typesystem.Type(typesystem.TVar{V: c.VS.NewVar()})
		for i := range lp.Left {
			ty, err := inferPattern(c, env, &lp.Left[i])
			if err != nil {
				return nil, err
			}
			if err := c.unify(ty, elemTy); err != nil {
				return nil, err
			}
			elemTy, err = c.apply(elemTy)
			if err != nil {
				return nil, err
			}
		}
		for i := range lp.Right {
			ty, err := inferPattern(c, env, &lp.Right[i])
			if err != nil {
				return nil, err
			}
			if err := c.unify(ty, elemTy); err != nil {
				return nil, err
			}
			elemTy, err = c.apply(elemTy)
			if err != nil {
				return nil, err
			}
		}
		if lp.Rest != nil {
			restTy, err := inferPattern(c, env, lp.Rest)
			if err != nil {
				return nil, err
			}
			if err := c.unify(restTy, typesystem.TArray{Elem: elemTy}); err != nil {
				return nil, err
			}
			elemTy, err = c.apply(elemTy)
			if err != nil {
				return nil, err
			}
		}
		return typesystem.TArray{Elem: elemTy}, nil
	}
	left := make([]typesystem.Type, len(lp.Left))
	for i := range lp.Left {
		ty, err := inferPattern(c, env, &lp.Left[i])
		if err != nil {
			return nil, err
		}
		left[i] = ty
	}
	right := make([]typesystem.Type, len(lp.Right))
	for i := range lp.Right {
		ty, err := inferPattern(c, env, &lp.Right[i])
		if err != nil {
			return nil, err
		}
		right[i] = ty
	}
	if lp.Rest == nil {
		return typesystem.TTuple{Elems: typesystem.OrderedAndType{Row: false, Seq: append(left, right...)}}, nil
	}
	restTy, err := inferPattern(c, env, lp.Rest)
	if err != nil {
		return nil, err
	}
	rv := c.VS.NewVar()
	if err := c.unify(restTy, typesystem.TVar{V: rv}); err != nil {
		return nil, err
	}
	return typesystem.TTuple{Elems: typesystem.OrderedAndType{Row: true, Left: left, Rest: rv, Right: right}}, nil
}

// inferTagPattern mirrors §4.6.4's Tag construction rule for
// destructuring.
func inferTagPattern(c *Ctx, env *tyenv.Env, p *hir.Pattern) (typesystem.Type, error) {
	tp := p.Tag
	innerTy := typesystem.Type(typesystem.Unit())
	if tp.Pattern != nil {
		var err error
		innerTy, err = inferPattern(c, env, tp.Pattern)
		if err != nil {
			return nil, err
		}
	}
	rest := c.VS.NewVar()
	ty := typesystem.TUnion{Keyed: typesystem.Keyed{
		Fields: map[string]typesystem.Type{tp.Tag: innerTy},
		Rest:   &rest,
	}}
	p.Ty = ty
	return ty, nil
}
