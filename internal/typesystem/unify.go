package typesystem

// UnifyType implements §4.4's type unification. It returns the
// substitution needed to make t1 and t2 equal, or a TypeError. The
// caller is responsible for composing the result into its ambient
// substitution (§5).
func UnifyType(t1, t2 Type, vs *VarState) (*Subs, error) {
	if v1, ok := t1.(TVar); ok {
		return unifyTypeVar(v1.V, t2)
	}
	if v2, ok := t2.(TVar); ok {
		return unifyTypeVar(v2.V, t1)
	}
	return unifyCons(t1, t2, vs)
}

func unifyTypeVar(v Var, t Type) (*Subs, error) {
	if other, ok := t.(TVar); ok && other.V == v {
		return NewSubs(), nil
	}
	if freeVarsType(t).Contains(KindType, v) {
		return nil, NewTypeError(InfiniteOccurrence)
	}
	subs := NewSubs()
	subs.InsertType(v, t)
	return subs, nil
}

func unifyCons(t1, t2 Type, vs *VarState) (*Subs, error) {
	switch a := t1.(type) {
	case TNum:
		if _, ok := t2.(TNum); ok {
			return NewSubs(), nil
		}
	case TBool:
		if _, ok := t2.(TBool); ok {
			return NewSubs(), nil
		}
	case TRef:
		if b, ok := t2.(TRef); ok {
			subs, err := UnifyMut(a.Mut, b.Mut, vs)
			if err != nil {
				return nil, err
			}
			inner, err := UnifyType(a.Elem, b.Elem, vs)
			if err != nil {
				return nil, err
			}
			if err := subs.ComposeWith(inner); err != nil {
				return nil, err
			}
			return subs, nil
		}
	case TArray:
		if b, ok := t2.(TArray); ok {
			return UnifyType(a.Elem, b.Elem, vs)
		}
	case TFun:
		if b, ok := t2.(TFun); ok {
			subs, err := UnifyType(a.Param, b.Param, vs)
			if err != nil {
				return nil, err
			}
			r1, err := applyType(subs, a.Result)
			if err != nil {
				return nil, err
			}
			r2, err := applyType(subs, b.Result)
			if err != nil {
				return nil, err
			}
			result, err := UnifyType(r1, r2, vs)
			if err != nil {
				return nil, err
			}
			if err := subs.ComposeWith(result); err != nil {
				return nil, err
			}
			return subs, nil
		}
	case TRecord:
		switch b := t2.(type) {
		case TRecord:
			return a.Keyed.unifyWith(b.Keyed, vs, wrapRecord)
		case TRecordTuple:
			return a.Keyed.unifyWith(b.Elems.intoKeyed(), vs, wrapRecord)
		}
	case TRecordTuple:
		switch b := t2.(type) {
		case TRecord:
			return a.Elems.intoKeyed().unifyWith(b.Keyed, vs, wrapRecord)
		case TRecordTuple:
			return a.Elems.unifyWith(b.Elems, vs, wrapRecordTuple)
		case TTuple:
			return a.Elems.intoOrdered().unifyWith(b.Elems, vs, wrapTuple)
		}
	case TTuple:
		switch b := t2.(type) {
		case TTuple:
			return a.Elems.unifyWith(b.Elems, vs, wrapTuple)
		case TRecordTuple:
			return a.Elems.unifyWith(b.Elems.intoOrdered(), vs, wrapTuple)
		}
	case TUnion:
		if b, ok := t2.(TUnion); ok {
			return a.Keyed.unifyWith(b.Keyed, vs, wrapUnion)
		}
	}
	return nil, NewTypeError(MismatchCons)
}

func wrapRecord(k Keyed) Type                { return TRecord{Keyed: k} }
func wrapUnion(k Keyed) Type                 { return TUnion{Keyed: k} }
func wrapTuple(o OrderedAndType) Type        { return TTuple{Elems: o} }
func wrapRecordTuple(o OrderedAndNamed) Type { return TRecordTuple{Elems: o} }

// UnifyMut implements §4.4's mutability unification.
func UnifyMut(m1, m2 MutType, vs *VarState) (*Subs, error) {
	if v1, ok := m1.(MVar); ok {
		return unifyMutVar(v1.V, m2)
	}
	if v2, ok := m2.(MVar); ok {
		return unifyMutVar(v2.V, m1)
	}
	_, imm1 := m1.(MImm)
	_, imm2 := m2.(MImm)
	if imm1 && imm2 {
		return NewSubs(), nil
	}
	_, mut1 := m1.(MMut)
	_, mut2 := m2.(MMut)
	if mut1 && mut2 {
		return NewSubs(), nil
	}
	return nil, NewTypeError(MismatchCons)
}

func unifyMutVar(v Var, m MutType) (*Subs, error) {
	if other, ok := m.(MVar); ok && other.V == v {
		return NewSubs(), nil
	}
	if freeVarsMut(m).Contains(KindMutType, v) {
		return nil, NewTypeError(InfiniteOccurrence)
	}
	subs := NewSubs()
	subs.InsertMut(v, m)
	return subs, nil
}
