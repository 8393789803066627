package prelude

import (
	"testing"

	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

func TestLoadBuildsSchemes(t *testing.T) {
	vs := typesystem.NewVarState()
	env, err := Load("testdata/prelude.yaml", vs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zero, ok := env.Get("zero")
	if !ok {
		t.Fatal("zero not bound")
	}
	if _, ok := zero.Scheme.Ty.(typesystem.TNum); !ok {
		t.Fatalf("want zero: Num, got %v", zero.Scheme.Ty)
	}
	if len(zero.Scheme.ForAll) != 0 {
		t.Fatalf("want zero monomorphic, forall has %d entries", len(zero.Scheme.ForAll))
	}

	counter, ok := env.Get("counter")
	if !ok {
		t.Fatal("counter not bound")
	}
	if !counter.IsMut {
		t.Fatal("want counter mutable")
	}

	id, ok := env.Get("id")
	if !ok {
		t.Fatal("id not bound")
	}
	fn, ok := id.Scheme.Ty.(typesystem.TFun)
	if !ok {
		t.Fatalf("want id: Fun, got %v", id.Scheme.Ty)
	}
	rt, ok := fn.Param.(typesystem.TRecordTuple)
	if !ok || rt.Elems.Row || len(rt.Elems.Seq) != 1 || rt.Elems.Seq[0].Name != "x" {
		t.Fatalf("want id param (x: a), got %v", fn.Param)
	}
	paramVar, ok := rt.Elems.Seq[0].Ty.(typesystem.TVar)
	if !ok {
		t.Fatalf("want id's x param a bare var, got %v", rt.Elems.Seq[0].Ty)
	}
	resultVar, ok := fn.Result.(typesystem.TVar)
	if !ok || resultVar.V != paramVar.V {
		t.Fatalf("want id's param and result to share one quantified variable, got %v / %v", paramVar, resultVar)
	}
	if len(id.Scheme.ForAll) != 1 {
		t.Fatalf("want id quantified over exactly one variable, got %d", len(id.Scheme.ForAll))
	}
}

// Each call to Load allocates its own fresh variables from vs, so the
// same scheme loaded from the same file twice under one VarState gets
// distinct quantified variables.
func TestLoadTwiceDoesNotCollide(t *testing.T) {
	vs := typesystem.NewVarState()
	env1, err := Load("testdata/prelude.yaml", vs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env2, err := Load("testdata/prelude.yaml", vs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id1, _ := env1.Get("id")
	id2, _ := env2.Get("id")
	fn1 := id1.Scheme.Ty.(typesystem.TFun)
	fn2 := id2.Scheme.Ty.(typesystem.TFun)
	v1 := fn1.Result.(typesystem.TVar).V
	v2 := fn2.Result.(typesystem.TVar).V
	if v1 == v2 {
		t.Fatalf("want distinct variables across separate loads, both got %v", v1)
	}
}

func TestParseIntoRejectsUndeclaredVar(t *testing.T) {
	vs := typesystem.NewVarState()
	_, err := ParseInto([]byte(`
bindings:
  - name: bad
    type:
      var: a
`), vs)
	if err == nil {
		t.Fatal("expected an error for an undeclared type variable")
	}
}

func TestParseIntoRejectsDuplicateBinding(t *testing.T) {
	vs := typesystem.NewVarState()
	_, err := ParseInto([]byte(`
bindings:
  - name: dup
    type:
      num: {}
  - name: dup
    type:
      num: {}
`), vs)
	if err == nil {
		t.Fatal("expected an error for a duplicate binding name")
	}
}
