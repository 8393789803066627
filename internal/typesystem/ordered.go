package typesystem

// OrderedAndType is OrderedAnd<Type>: the shape behind Tuple. Either a
// closed sequence (NonRow, Row=false, use Seq) or an open sequence with a
// polymorphic middle (Row=true: a fixed Left prefix and Right suffix
// around a rest variable standing for the middle).
type OrderedAndType struct {
	Row   bool
	Seq   []Type
	Left  []Type
	Rest  Var
	Right []Type
}

func (o OrderedAndType) freeVars() VarSet {
	out := NewVarSet()
	if o.Row {
		for _, t := range o.Left {
			out = out.Union(freeVarsType(t))
		}
		out.Add(KindType, o.Rest)
		for _, t := range o.Right {
			out = out.Union(freeVarsType(t))
		}
	} else {
		for _, t := range o.Seq {
			out = out.Union(freeVarsType(t))
		}
	}
	return out
}

func (o OrderedAndType) substitute(subs *Subs) (OrderedAndType, error) {
	if !o.Row {
		newSeq := make([]Type, len(o.Seq))
		for i, t := range o.Seq {
			nt, err := applyType(subs, t)
			if err != nil {
				return OrderedAndType{}, err
			}
			newSeq[i] = nt
		}
		return OrderedAndType{Row: false, Seq: newSeq}, nil
	}
	left, err := applyTypeSlice(subs, o.Left)
	if err != nil {
		return OrderedAndType{}, err
	}
	right, err := applyTypeSlice(subs, o.Right)
	if err != nil {
		return OrderedAndType{}, err
	}
	val, ok := subs.Get(o.Rest)
	if !ok {
		return OrderedAndType{Row: true, Left: left, Rest: o.Rest, Right: right}, nil
	}
	if val.Kind == KindMutType {
		return OrderedAndType{}, NewTypeError(MismatchKind)
	}
	switch t := val.Ty.(type) {
	case TVar:
		return OrderedAndType{Row: true, Left: left, Rest: t.V, Right: right}, nil
	case TTuple:
		if t.Elems.Row {
			newLeft := append(append([]Type{}, left...), t.Elems.Left...)
			newRight := append(append([]Type{}, t.Elems.Right...), right...)
			return OrderedAndType{Row: true, Left: newLeft, Rest: t.Elems.Rest, Right: newRight}, nil
		}
		newSeq := append(append(append([]Type{}, left...), t.Elems.Seq...), right...)
		return OrderedAndType{Row: false, Seq: newSeq}, nil
	default:
		return OrderedAndType{}, NewTypeError(MismatchCons)
	}
}

func applyTypeSlice(subs *Subs, ts []Type) ([]Type, error) {
	out := make([]Type, len(ts))
	for i, t := range ts {
		nt, err := applyType(subs, t)
		if err != nil {
			return nil, err
		}
		out[i] = nt
	}
	return out, nil
}

// unifyWith implements ordered-row unification (§4.4). Both closed:
// lengths must match, zip-unify. Closed vs open: the open side's fixed
// prefix+suffix must fit inside the closed sequence; the remaining
// middle binds the rest variable. Both open: refused (MismatchCons) —
// unspecified upstream (§9 Open Questions).
func (o OrderedAndType) unifyWith(other OrderedAndType, vs *VarState, wrap func(OrderedAndType) Type) (*Subs, error) {
	subs := NewSubs()
	switch {
	case !o.Row && !other.Row:
		if len(o.Seq) != len(other.Seq) {
			return nil, NewTypeError(MismatchArity)
		}
		for i := range o.Seq {
			s, err := UnifyType(o.Seq[i], other.Seq[i], vs)
			if err != nil {
				return nil, err
			}
			if err := subs.ComposeWith(s); err != nil {
				return nil, err
			}
		}
		return subs, nil
	case o.Row && !other.Row:
		return unifyRowAgainstClosed(o, other.Seq, vs, wrap)
	case !o.Row && other.Row:
		return unifyRowAgainstClosed(other, o.Seq, vs, wrap)
	default:
		return nil, NewTypeError(MismatchCons)
	}
}

func unifyRowAgainstClosed(row OrderedAndType, closed []Type, vs *VarState, wrap func(OrderedAndType) Type) (*Subs, error) {
	if len(row.Left)+len(row.Right) > len(closed) {
		return nil, NewTypeError(MismatchArity)
	}
	left2 := closed[:len(row.Left)]
	middle2 := closed[len(row.Left) : len(closed)-len(row.Right)]
	right2 := closed[len(closed)-len(row.Right):]
	subs := NewSubs()
	for i := range row.Left {
		s, err := UnifyType(row.Left[i], left2[i], vs)
		if err != nil {
			return nil, err
		}
		if err := subs.ComposeWith(s); err != nil {
			return nil, err
		}
	}
	for i := range row.Right {
		s, err := UnifyType(row.Right[i], right2[i], vs)
		if err != nil {
			return nil, err
		}
		if err := subs.ComposeWith(s); err != nil {
			return nil, err
		}
	}
	subs.InsertType(row.Rest, wrap(OrderedAndType{Row: false, Seq: append([]Type{}, middle2...)}))
	return subs, nil
}

// OrderedAndNamed is OrderedAnd<(name, Type)>: the shape behind
// RecordTuple. It mirrors OrderedAndType but unifying an element pair
// also requires the names to match (MismatchName otherwise), and it
// provides the total into-Keyed / into-ordered conversions RecordTuple
// needs to unify against Record or Tuple.
type OrderedAndNamed struct {
	Row   bool
	Seq   []NamedType
	Left  []NamedType
	Rest  Var
	Right []NamedType
}

func (o OrderedAndNamed) freeVars() VarSet {
	out := NewVarSet()
	if o.Row {
		for _, t := range o.Left {
			out = out.Union(freeVarsType(t.Ty))
		}
		out.Add(KindType, o.Rest)
		for _, t := range o.Right {
			out = out.Union(freeVarsType(t.Ty))
		}
	} else {
		for _, t := range o.Seq {
			out = out.Union(freeVarsType(t.Ty))
		}
	}
	return out
}

func (o OrderedAndNamed) substitute(subs *Subs) (OrderedAndNamed, error) {
	if !o.Row {
		newSeq := make([]NamedType, len(o.Seq))
		for i, t := range o.Seq {
			nt, err := applyType(subs, t.Ty)
			if err != nil {
				return OrderedAndNamed{}, err
			}
			newSeq[i] = NamedType{Name: t.Name, Ty: nt}
		}
		return OrderedAndNamed{Row: false, Seq: newSeq}, nil
	}
	left, err := applyNamedSlice(subs, o.Left)
	if err != nil {
		return OrderedAndNamed{}, err
	}
	right, err := applyNamedSlice(subs, o.Right)
	if err != nil {
		return OrderedAndNamed{}, err
	}
	val, ok := subs.Get(o.Rest)
	if !ok {
		return OrderedAndNamed{Row: true, Left: left, Rest: o.Rest, Right: right}, nil
	}
	if val.Kind == KindMutType {
		return OrderedAndNamed{}, NewTypeError(MismatchKind)
	}
	switch t := val.Ty.(type) {
	case TVar:
		return OrderedAndNamed{Row: true, Left: left, Rest: t.V, Right: right}, nil
	case TRecordTuple:
		if t.Elems.Row {
			newLeft := append(append([]NamedType{}, left...), t.Elems.Left...)
			newRight := append(append([]NamedType{}, t.Elems.Right...), right...)
			return OrderedAndNamed{Row: true, Left: newLeft, Rest: t.Elems.Rest, Right: newRight}, nil
		}
		newSeq := append(append(append([]NamedType{}, left...), t.Elems.Seq...), right...)
		return OrderedAndNamed{Row: false, Seq: newSeq}, nil
	default:
		return OrderedAndNamed{}, NewTypeError(MismatchCons)
	}
}

func applyNamedSlice(subs *Subs, ts []NamedType) ([]NamedType, error) {
	out := make([]NamedType, len(ts))
	for i, t := range ts {
		nt, err := applyType(subs, t.Ty)
		if err != nil {
			return nil, err
		}
		out[i] = NamedType{Name: t.Name, Ty: nt}
	}
	return out, nil
}

func (o OrderedAndNamed) unifyWith(other OrderedAndNamed, vs *VarState, wrap func(OrderedAndNamed) Type) (*Subs, error) {
	subs := NewSubs()
	switch {
	case !o.Row && !other.Row:
		if len(o.Seq) != len(other.Seq) {
			return nil, NewTypeError(MismatchArity)
		}
		for i := range o.Seq {
			if o.Seq[i].Name != other.Seq[i].Name {
				return nil, NewTypeError(MismatchName)
			}
			s, err := UnifyType(o.Seq[i].Ty, other.Seq[i].Ty, vs)
			if err != nil {
				return nil, err
			}
			if err := subs.ComposeWith(s); err != nil {
				return nil, err
			}
		}
		return subs, nil
	case o.Row && !other.Row:
		return unifyNamedRowAgainstClosed(o, other.Seq, vs, wrap)
	case !o.Row && other.Row:
		return unifyNamedRowAgainstClosed(other, o.Seq, vs, wrap)
	default:
		return nil, NewTypeError(MismatchCons)
	}
}

func unifyNamedRowAgainstClosed(row OrderedAndNamed, closed []NamedType, vs *VarState, wrap func(OrderedAndNamed) Type) (*Subs, error) {
	if len(row.Left)+len(row.Right) > len(closed) {
		return nil, NewTypeError(MismatchArity)
	}
	left2 := closed[:len(row.Left)]
	middle2 := closed[len(row.Left) : len(closed)-len(row.Right)]
	right2 := closed[len(closed)-len(row.Right):]
	subs := NewSubs()
	unifyPair := func(a, b NamedType) error {
		if a.Name != b.Name {
			return NewTypeError(MismatchName)
		}
		s, err := UnifyType(a.Ty, b.Ty, vs)
		if err != nil {
			return err
		}
		return subs.ComposeWith(s)
	}
	for i := range row.Left {
		if err := unifyPair(row.Left[i], left2[i]); err != nil {
			return nil, err
		}
	}
	for i := range row.Right {
		if err := unifyPair(row.Right[i], right2[i]); err != nil {
			return nil, err
		}
	}
	subs.InsertType(row.Rest, wrap(OrderedAndNamed{Row: false, Seq: append([]NamedType{}, middle2...)}))
	return subs, nil
}

// intoKeyed converts a RecordTuple's ordered form to the keyed form,
// forgetting order — one of the two total conversions RecordTuple
// unification needs (§4.1, §9).
func (o OrderedAndNamed) intoKeyed() Keyed {
	fields := make(map[string]Type)
	var rest *Var
	if o.Row {
		for _, nt := range o.Left {
			fields[nt.Name] = nt.Ty
		}
		for _, nt := range o.Right {
			fields[nt.Name] = nt.Ty
		}
		r := o.Rest
		rest = &r
	} else {
		for _, nt := range o.Seq {
			fields[nt.Name] = nt.Ty
		}
	}
	return Keyed{Fields: fields, Rest: rest}
}

// intoOrdered converts a RecordTuple's ordered form to the plain
// ordered-Type form, forgetting names — the other total conversion.
func (o OrderedAndNamed) intoOrdered() OrderedAndType {
	if o.Row {
		left := make([]Type, len(o.Left))
		for i, nt := range o.Left {
			left[i] = nt.Ty
		}
		right := make([]Type, len(o.Right))
		for i, nt := range o.Right {
			right[i] = nt.Ty
		}
		return OrderedAndType{Row: true, Left: left, Rest: o.Rest, Right: right}
	}
	seq := make([]Type, len(o.Seq))
	for i, nt := range o.Seq {
		seq[i] = nt.Ty
	}
	return OrderedAndType{Row: false, Seq: seq}
}
