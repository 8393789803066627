// Package typesystem implements the kind-discriminated type algebra: type
// variables, the Cons sum type (including row-polymorphic records, tuples
// and unions), mutability types, substitution, and unification.
package typesystem

import "fmt"

// Kind discriminates the two variable namespaces the substitution has to
// keep apart: a type variable and a mutability variable never unify with
// each other even when they share a name and id.
type Kind int

const (
	KindType Kind = iota
	KindMutType
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindMutType:
		return "mut"
	default:
		return "unknown-kind"
	}
}

// Var is a fresh variable identity: a source name (often empty) plus a
// per-name monotonic counter. Two Vars are equal only when both fields
// match; the same (name, id) pair may be used at either kind depending on
// context, which is exactly why substitution must carry the kind alongside
// the value instead of inferring it from the Var alone.
type Var struct {
	Name string
	ID   uint32
}

func (v Var) String() string {
	return fmt.Sprintf("%s#%d", v.Name, v.ID)
}

// KindedVar tags a Var with the namespace it was used in. Free-variable
// sets are sets of KindedVar, not Var, so that a type-kind use of "t#0"
// never shadows a mutability-kind use of "t#0".
type KindedVar struct {
	Kind Kind
	Var  Var
}

// VarState is the monotonic fresh-name generator. It never deallocates;
// the zero value is not usable, construct with NewVarState.
type VarState struct {
	counts map[string]uint32
}

func NewVarState() *VarState {
	return &VarState{counts: make(map[string]uint32)}
}

// NewNamed allocates the next id for name, keeping the name for display and
// for re-deriving the same-named fresh variable a later instantiation
// should produce (see tyenv.Scheme.Instantiate).
func (s *VarState) NewNamed(name string) Var {
	id := s.counts[name]
	s.counts[name] = id + 1
	return Var{Name: name, ID: id}
}

// NewVar is NewNamed("").
func (s *VarState) NewVar() Var {
	return s.NewNamed("")
}

// VarSet is a set of KindedVar, used for free-variable computations and
// the occurs check.
type VarSet map[KindedVar]struct{}

func NewVarSet() VarSet {
	return make(VarSet)
}

func (s VarSet) Add(kind Kind, v Var) {
	s[KindedVar{Kind: kind, Var: v}] = struct{}{}
}

func (s VarSet) Contains(kind Kind, v Var) bool {
	_, ok := s[KindedVar{Kind: kind, Var: v}]
	return ok
}

func (s VarSet) Union(other VarSet) VarSet {
	out := make(VarSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Sub returns the set of members of s that are not in other (s \ other).
func (s VarSet) Sub(other VarSet) VarSet {
	out := make(VarSet, len(s))
	for k := range s {
		if _, excluded := other[k]; !excluded {
			out[k] = struct{}{}
		}
	}
	return out
}
