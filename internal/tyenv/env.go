// Package tyenv implements §4.5: environments mapping identifiers to
// generalized schemes, with generalization and instantiation.
package tyenv

import "github.com/neverRare/butter-typeinfer/internal/typesystem"

// Scheme is a universally quantified type: {for_all, ty}.
type Scheme struct {
	ForAll typesystem.VarSet
	Ty     typesystem.Type
}

// Instantiate allocates one fresh variable of the appropriate kind per
// quantified variable (re-using the original variable's name, so that a
// later error message still reads naturally) and substitutes it into the
// scheme's type (§4.5 Instantiation).
func (s Scheme) Instantiate(vs *typesystem.VarState) (typesystem.Type, error) {
	subs := typesystem.NewSubs()
	for kv := range s.ForAll {
		switch kv.Kind {
		case typesystem.KindType:
			subs.InsertType(kv.Var, typesystem.TVar{V: vs.NewNamed(kv.Var.Name)})
		case typesystem.KindMutType:
			subs.InsertMut(kv.Var, typesystem.MVar{V: vs.NewNamed(kv.Var.Name)})
		}
	}
	return typesystem.ApplyType(subs, s.Ty)
}

func (s Scheme) freeVars() typesystem.VarSet {
	return typesystem.FreeVarsType(s.Ty).Sub(s.ForAll)
}

// substitute applies subs to ty, but first removes the scheme's own
// quantified variables from subs so a for_all binding is never shadowed
// by the outer substitution (§4.5 "Substituting E").
func (s Scheme) substitute(subs *typesystem.Subs) (Scheme, error) {
	filtered := subs.FilterOff(s.ForAll)
	ty, err := typesystem.ApplyType(filtered, s.Ty)
	if err != nil {
		return Scheme{}, err
	}
	return Scheme{ForAll: s.ForAll, Ty: ty}, nil
}

// SchemeMut is a binding entry: a scheme plus whether the identifier may
// be assigned to (§3, §9 "Mutability of references vs mutability of
// bindings").
type SchemeMut struct {
	IsMut  bool
	Scheme Scheme
}

// Env maps identifiers to SchemeMut. The zero value is not usable;
// construct with New. Environments are cloned (via Clone) for scoped
// extensions such as function bodies and blocks — the original is never
// mutated through a clone.
type Env struct {
	m map[string]SchemeMut
}

func New() *Env {
	return &Env{m: make(map[string]SchemeMut)}
}

func (e *Env) Get(name string) (SchemeMut, bool) {
	sm, ok := e.m[name]
	return sm, ok
}

func (e *Env) Insert(name string, sm SchemeMut) {
	e.m[name] = sm
}

func (e *Env) Remove(name string) {
	delete(e.m, name)
}

// Clone returns an independent copy sharing no mutable state with e.
func (e *Env) Clone() *Env {
	out := &Env{m: make(map[string]SchemeMut, len(e.m))}
	for k, v := range e.m {
		out.m[k] = v
	}
	return out
}

func (e *Env) freeVars() typesystem.VarSet {
	out := typesystem.NewVarSet()
	for _, sm := range e.m {
		out = out.Union(sm.Scheme.freeVars())
	}
	return out
}

// Substitute applies subs to every scheme's type in place.
func (e *Env) Substitute(subs *typesystem.Subs) error {
	for name, sm := range e.m {
		newScheme, err := sm.Scheme.substitute(subs)
		if err != nil {
			return err
		}
		sm.Scheme = newScheme
		e.m[name] = sm
	}
	return nil
}

// Generalize computes generalize(E, ty): free_vars(ty) \ free_vars(E)
// (§4.5 Generalization).
func (e *Env) Generalize(ty typesystem.Type) Scheme {
	forAll := typesystem.FreeVarsType(ty).Sub(e.freeVars())
	return Scheme{ForAll: forAll, Ty: ty}
}
