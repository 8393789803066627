package typesystem

// SubsValue is a substitution's kind-tagged codomain value: exactly one
// of a Type or a MutType, discriminated by Kind. Looking a variable up
// and finding the wrong Kind is how MismatchKind is detected instead of
// panicking (§4.3).
type SubsValue struct {
	Kind Kind
	Ty   Type
	Mut  MutType
}

func TypeValue(t Type) SubsValue { return SubsValue{Kind: KindType, Ty: t} }
func MutValue(m MutType) SubsValue { return SubsValue{Kind: KindMutType, Mut: m} }

// Subs is the finite kind-tagged map from Var to SubsValue (§3, §4.3).
type Subs struct {
	m map[Var]SubsValue
}

func NewSubs() *Subs {
	return &Subs{m: make(map[Var]SubsValue)}
}

func (s *Subs) Get(v Var) (SubsValue, bool) {
	val, ok := s.m[v]
	return val, ok
}

// InsertType assumes v is not already mapped, matching the unifier's own
// invariant (§4.3): every unify call allocates keys exactly once.
func (s *Subs) InsertType(v Var, t Type) {
	s.m[v] = TypeValue(t)
}

func (s *Subs) InsertMut(v Var, mt MutType) {
	s.m[v] = MutValue(mt)
}

// FilterOff removes every key in vars; used by Scheme substitution so a
// scheme's own quantified variables shadow the outer substitution.
func (s *Subs) FilterOff(vars VarSet) *Subs {
	out := &Subs{m: make(map[Var]SubsValue, len(s.m))}
	for v, val := range s.m {
		kind := KindType
		if val.Kind == KindMutType {
			kind = KindMutType
		}
		if vars.Contains(kind, v) {
			continue
		}
		out.m[v] = val
	}
	return out
}

// ComposeWith mutates s into self-then-other: other is applied to the
// codomain of s first, and only then is s extended with other's own
// entries (other wins on key clash). Composition is not commutative;
// callers MUST compose in production order (§4.3, §9).
func (s *Subs) ComposeWith(other *Subs) error {
	for v, val := range s.m {
		switch val.Kind {
		case KindType:
			nt, err := applyType(other, val.Ty)
			if err != nil {
				return err
			}
			s.m[v] = TypeValue(nt)
		case KindMutType:
			nm, err := applyMut(other, val.Mut)
			if err != nil {
				return err
			}
			s.m[v] = MutValue(nm)
		}
	}
	for v, val := range other.m {
		s.m[v] = val
	}
	return nil
}

// applyType recursively substitutes free type variables in t, failing
// with MismatchKind if a type variable resolves to a mutability value.
func applyType(subs *Subs, t Type) (Type, error) {
	switch n := t.(type) {
	case TVar:
		val, ok := subs.Get(n.V)
		if !ok {
			return n, nil
		}
		if val.Kind != KindType {
			return nil, NewTypeError(MismatchKind)
		}
		return val.Ty, nil
	case TNum, TBool:
		return n, nil
	case TRef:
		mt, err := applyMut(subs, n.Mut)
		if err != nil {
			return nil, err
		}
		et, err := applyType(subs, n.Elem)
		if err != nil {
			return nil, err
		}
		return TRef{Mut: mt, Elem: et}, nil
	case TArray:
		et, err := applyType(subs, n.Elem)
		if err != nil {
			return nil, err
		}
		return TArray{Elem: et}, nil
	case TFun:
		pt, err := applyType(subs, n.Param)
		if err != nil {
			return nil, err
		}
		rt, err := applyType(subs, n.Result)
		if err != nil {
			return nil, err
		}
		return TFun{Param: pt, Result: rt}, nil
	case TRecord:
		k, err := n.Keyed.substitute(subs, func(t Type) (Keyed, bool) {
			r, ok := t.(TRecord)
			if !ok {
				return Keyed{}, false
			}
			return r.Keyed, true
		})
		if err != nil {
			return nil, err
		}
		return TRecord{Keyed: k}, nil
	case TUnion:
		k, err := n.Keyed.substitute(subs, func(t Type) (Keyed, bool) {
			u, ok := t.(TUnion)
			if !ok {
				return Keyed{}, false
			}
			return u.Keyed, true
		})
		if err != nil {
			return nil, err
		}
		return TUnion{Keyed: k}, nil
	case TTuple:
		elems, err := n.Elems.substitute(subs)
		if err != nil {
			return nil, err
		}
		return TTuple{Elems: elems}, nil
	case TRecordTuple:
		elems, err := n.Elems.substitute(subs)
		if err != nil {
			return nil, err
		}
		return TRecordTuple{Elems: elems}, nil
	default:
		return nil, NewTypeError(MismatchCons)
	}
}

func applyMut(subs *Subs, m MutType) (MutType, error) {
	v, ok := m.(MVar)
	if !ok {
		return m, nil
	}
	val, ok := subs.Get(v.V)
	if !ok {
		return m, nil
	}
	if val.Kind != KindMutType {
		return nil, NewTypeError(MismatchKind)
	}
	return val.Mut, nil
}

func freeVarsType(t Type) VarSet {
	switch n := t.(type) {
	case TVar:
		out := NewVarSet()
		out.Add(KindType, n.V)
		return out
	case TNum, TBool:
		return NewVarSet()
	case TRef:
		return freeVarsMut(n.Mut).Union(freeVarsType(n.Elem))
	case TArray:
		return freeVarsType(n.Elem)
	case TFun:
		return freeVarsType(n.Param).Union(freeVarsType(n.Result))
	case TRecord:
		return n.Keyed.freeVars()
	case TUnion:
		return n.Keyed.freeVars()
	case TTuple:
		return n.Elems.freeVars()
	case TRecordTuple:
		return n.Elems.freeVars()
	default:
		return NewVarSet()
	}
}

func freeVarsMut(m MutType) VarSet {
	out := NewVarSet()
	if v, ok := m.(MVar); ok {
		out.Add(KindMutType, v.V)
	}
	return out
}

// ApplyType and ApplyMut are the exported recursive-substitution entry
// points used by the inference driver and environment.
func ApplyType(subs *Subs, t Type) (Type, error) { return applyType(subs, t) }
func ApplyMut(subs *Subs, m MutType) (MutType, error) { return applyMut(subs, m) }

// FreeVarsType and FreeVarsMut are the exported free-variable entry
// points.
func FreeVarsType(t Type) VarSet  { return freeVarsType(t) }
func FreeVarsMut(m MutType) VarSet { return freeVarsMut(m) }
