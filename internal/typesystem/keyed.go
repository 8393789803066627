package typesystem

// Keyed is the shared shape behind row-polymorphic records and unions:
// a set of named fields plus an optional rest-variable standing for
// "whatever fields are not named here" (§3, §9 "Row polymorphism via
// rest-variable").
type Keyed struct {
	Fields map[string]Type
	Rest   *Var
}

func NewKeyed() Keyed {
	return Keyed{Fields: make(map[string]Type)}
}

func (k Keyed) freeVars() VarSet {
	out := NewVarSet()
	for _, ty := range k.Fields {
		out = out.Union(freeVarsType(ty))
	}
	if k.Rest != nil {
		out.Add(KindType, *k.Rest)
	}
	return out
}

func cloneFields(fields map[string]Type) map[string]Type {
	out := make(map[string]Type, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// substitute applies subs to every field, then resolves the rest
// variable (if any): a rest bound to another variable renames it, a
// rest bound to a matching container Cons merges that container's
// fields in (failing with Overlap on a duplicate key), and a rest bound
// to anything else is MismatchCons. matcher extracts the Keyed out of
// the specific container (Record vs Union) this Keyed belongs to.
func (k Keyed) substitute(subs *Subs, matcher func(Type) (Keyed, bool)) (Keyed, error) {
	newFields := make(map[string]Type, len(k.Fields))
	for name, ty := range k.Fields {
		newTy, err := applyType(subs, ty)
		if err != nil {
			return Keyed{}, err
		}
		newFields[name] = newTy
	}
	rest := k.Rest
	if rest != nil {
		val, ok := subs.Get(*rest)
		if ok {
			switch val.Kind {
			case KindType:
				switch t := val.Ty.(type) {
				case TVar:
					v := t.V
					rest = &v
				default:
					matched, ok := matcher(val.Ty)
					if !ok {
						return Keyed{}, NewTypeError(MismatchCons)
					}
					for name, ty := range matched.Fields {
						if _, exists := newFields[name]; exists {
							return Keyed{}, NewTypeError(Overlap)
						}
						newFields[name] = ty
					}
					rest = matched.Rest
				}
			case KindMutType:
				return Keyed{}, NewTypeError(MismatchKind)
			}
		}
	}
	return Keyed{Fields: newFields, Rest: rest}, nil
}

// intersectionFields removes and returns the fields common to both maps,
// pairing them up for unification; what remains in a and b afterwards is
// each side's own exclusive leftover.
func intersectionFields(a, b map[string]Type) map[string][2]Type {
	out := make(map[string][2]Type)
	for key, ta := range a {
		if tb, ok := b[key]; ok {
			out[key] = [2]Type{ta, tb}
			delete(a, key)
			delete(b, key)
		}
	}
	return out
}

// unifyWith implements row unification (§4.4): common keys unify
// pairwise; if both sides have a rest variable a single fresh variable
// is shared between the two substitutions that result (the soundness
// requirement from §9); if exactly one side has a rest variable, the
// rest-bearing side's own leftover fields must be empty (it cannot
// declare fields the rest-less side has no room for) and the rest
// resolves to the rest-less side's leftover; if neither has a rest, both
// leftovers must be empty. wrap reconstructs the container Type (Record
// or Union) from a Keyed, for building the substitution values.
func (k Keyed) unifyWith(other Keyed, vs *VarState, wrap func(Keyed) Type) (*Subs, error) {
	subs := NewSubs()
	map1 := cloneFields(k.Fields)
	map2 := cloneFields(other.Fields)
	common := intersectionFields(map1, map2)
	for _, pair := range common {
		s, err := UnifyType(pair[0], pair[1], vs)
		if err != nil {
			return nil, err
		}
		if err := subs.ComposeWith(s); err != nil {
			return nil, err
		}
	}
	switch {
	case k.Rest != nil && other.Rest != nil:
		newVar := vs.NewVar()
		subs.InsertType(*k.Rest, wrap(Keyed{Fields: map2, Rest: &newVar}))
		subs.InsertType(*other.Rest, wrap(Keyed{Fields: map1, Rest: &newVar}))
	case k.Rest != nil && other.Rest == nil:
		if len(map1) != 0 {
			return nil, NewTypeError(MismatchArity)
		}
		subs.InsertType(*k.Rest, wrap(Keyed{Fields: map2, Rest: nil}))
	case k.Rest == nil && other.Rest != nil:
		if len(map2) != 0 {
			return nil, NewTypeError(MismatchArity)
		}
		subs.InsertType(*other.Rest, wrap(Keyed{Fields: map1, Rest: nil}))
	default:
		if len(map1) != 0 || len(map2) != 0 {
			return nil, NewTypeError(MismatchArity)
		}
	}
	return subs, nil
}
