package typesystem

import "testing"

func mustUnify(t *testing.T, t1, t2 Type) *Subs {
	t.Helper()
	subs, err := UnifyType(t1, t2, NewVarState())
	if err != nil {
		t.Fatalf("UnifyType(%v, %v) = %v, want nil error", t1, t2, err)
	}
	return subs
}

func mustFail(t *testing.T, t1, t2 Type, kind ErrorKind) {
	t.Helper()
	_, err := UnifyType(t1, t2, NewVarState())
	te, ok := err.(*TypeError)
	if !ok {
		t.Fatalf("UnifyType(%v, %v) = %v, want *TypeError", t1, t2, err)
	}
	if te.Kind != kind {
		t.Fatalf("UnifyType(%v, %v) kind = %v, want %v", t1, t2, te.Kind, kind)
	}
}

func TestUnifyNullary(t *testing.T) {
	mustUnify(t, TNum{}, TNum{})
	mustUnify(t, TBool{}, TBool{})
	mustFail(t, TNum{}, TBool{}, MismatchCons)
}

func TestUnifyVarBindsFreeOccurrence(t *testing.T) {
	v := Var{Name: "a", ID: 0}
	subs := mustUnify(t, TVar{V: v}, TNum{})
	val, ok := subs.Get(v)
	if !ok || val.Kind != KindType {
		t.Fatalf("expected %v bound to a type", v)
	}
	if _, ok := val.Ty.(TNum); !ok {
		t.Fatalf("expected %v bound to Num, got %v", v, val.Ty)
	}
}

func TestUnifySelfIsEmpty(t *testing.T) {
	v := Var{Name: "a", ID: 0}
	subs := mustUnify(t, TVar{V: v}, TVar{V: v})
	if len(subs.m) != 0 {
		t.Fatalf("unifying a variable with itself should be empty, got %v", subs.m)
	}
}

func TestOccursCheck(t *testing.T) {
	v := Var{Name: "a", ID: 0}
	mustFail(t, TVar{V: v}, TArray{Elem: TVar{V: v}}, InfiniteOccurrence)
}

func TestUnifyRefComposesMutAndElem(t *testing.T) {
	vm := Var{Name: "m", ID: 0}
	vt := Var{Name: "t", ID: 0}
	subs := mustUnify(t,
		TRef{Mut: MVar{V: vm}, Elem: TVar{V: vt}},
		TRef{Mut: MMut{}, Elem: TNum{}},
	)
	val, ok := subs.Get(vm)
	if !ok || val.Kind != KindMutType {
		t.Fatalf("expected %v bound to a mutability", vm)
	}
	if _, ok := val.Mut.(MMut); !ok {
		t.Fatalf("expected %v bound to Mut, got %v", vm, val.Mut)
	}
}

func TestRecordRowExtension(t *testing.T) {
	rRest := Var{Name: "r", ID: 0}
	a := TRecord{Keyed: Keyed{Fields: map[string]Type{"x": TNum{}}, Rest: &rRest}}
	b := TRecord{Keyed: Keyed{Fields: map[string]Type{"x": TNum{}, "y": TBool{}}}}
	subs := mustUnify(t, a, b)
	val, ok := subs.Get(rRest)
	if !ok {
		t.Fatalf("expected rest var %v bound", rRest)
	}
	rec, ok := val.Ty.(TRecord)
	if !ok {
		t.Fatalf("expected rest bound to a record, got %v", val.Ty)
	}
	if rec.Keyed.Rest != nil {
		t.Fatalf("closed side's rest should resolve to no further rest, got %v", rec.Keyed.Rest)
	}
	if _, ok := rec.Keyed.Fields["y"]; !ok {
		t.Fatalf("expected rest to carry field y, got %v", rec.Keyed.Fields)
	}
}

func TestRecordRowBothOpenSharesFreshVar(t *testing.T) {
	r1 := Var{Name: "r1", ID: 0}
	r2 := Var{Name: "r2", ID: 0}
	a := TRecord{Keyed: Keyed{Fields: map[string]Type{"x": TNum{}}, Rest: &r1}}
	b := TRecord{Keyed: Keyed{Fields: map[string]Type{"y": TBool{}}, Rest: &r2}}
	subs := mustUnify(t, a, b)
	v1, ok := subs.Get(r1)
	if !ok {
		t.Fatalf("expected %v bound", r1)
	}
	v2, ok := subs.Get(r2)
	if !ok {
		t.Fatalf("expected %v bound", r2)
	}
	rec1 := v1.Ty.(TRecord)
	rec2 := v2.Ty.(TRecord)
	if rec1.Keyed.Rest == nil || rec2.Keyed.Rest == nil {
		t.Fatalf("both-open row unification must leave both sides open on a shared var")
	}
	if *rec1.Keyed.Rest != *rec2.Keyed.Rest {
		t.Fatalf("both-open row unification must share a single fresh var, got %v and %v", *rec1.Keyed.Rest, *rec2.Keyed.Rest)
	}
}

func TestRecordRowArityFailsWhenOpenSideHasExtraFieldClosedCannotHold(t *testing.T) {
	r1 := Var{Name: "r1", ID: 0}
	a := TRecord{Keyed: Keyed{Fields: map[string]Type{"x": TNum{}}, Rest: &r1}}
	b := TRecord{Keyed: Keyed{Fields: map[string]Type{}}}
	mustFail(t, a, b, MismatchArity)
}

func TestTupleNonRowLengthMismatch(t *testing.T) {
	a := TTuple{Elems: OrderedAndType{Seq: []Type{TNum{}}}}
	b := TTuple{Elems: OrderedAndType{Seq: []Type{TNum{}, TBool{}}}}
	mustFail(t, a, b, MismatchArity)
}

func TestTupleRowAgainstClosed(t *testing.T) {
	rest := Var{Name: "rest", ID: 0}
	a := TTuple{Elems: OrderedAndType{Row: true, Left: []Type{TNum{}}, Rest: rest, Right: nil}}
	b := TTuple{Elems: OrderedAndType{Seq: []Type{TNum{}, TBool{}, TBool{}}}}
	subs := mustUnify(t, a, b)
	val, ok := subs.Get(rest)
	if !ok {
		t.Fatalf("expected rest bound")
	}
	tup := val.Ty.(TTuple)
	if tup.Elems.Row || len(tup.Elems.Seq) != 2 {
		t.Fatalf("expected rest bound to the 2-element middle, got %v", tup)
	}
}

func TestTupleRowVsRowRefused(t *testing.T) {
	rest1 := Var{Name: "r1", ID: 0}
	rest2 := Var{Name: "r2", ID: 0}
	a := TTuple{Elems: OrderedAndType{Row: true, Rest: rest1}}
	b := TTuple{Elems: OrderedAndType{Row: true, Rest: rest2}}
	mustFail(t, a, b, MismatchCons)
}

func TestRecordTupleUnifiesWithRecord(t *testing.T) {
	rt := TRecordTuple{Elems: OrderedAndNamed{Seq: []NamedType{{Name: "x", Ty: TNum{}}}}}
	rec := TRecord{Keyed: Keyed{Fields: map[string]Type{"x": TNum{}}}}
	mustUnify(t, rt, rec)
}

func TestRecordTupleUnifiesWithTuple(t *testing.T) {
	rt := TRecordTuple{Elems: OrderedAndNamed{Seq: []NamedType{{Name: "x", Ty: TNum{}}}}}
	tup := TTuple{Elems: OrderedAndType{Seq: []Type{TNum{}}}}
	mustUnify(t, rt, tup)
}

func TestRecordTupleNameMismatch(t *testing.T) {
	a := TRecordTuple{Elems: OrderedAndNamed{Seq: []NamedType{{Name: "x", Ty: TNum{}}}}}
	b := TRecordTuple{Elems: OrderedAndNamed{Seq: []NamedType{{Name: "y", Ty: TNum{}}}}}
	mustFail(t, a, b, MismatchName)
}

func TestUnionRowUnification(t *testing.T) {
	rest := Var{Name: "r", ID: 0}
	a := TUnion{Keyed: Keyed{Fields: map[string]Type{"ok": Unit()}, Rest: &rest}}
	b := TUnion{Keyed: Keyed{Fields: map[string]Type{"ok": Unit(), "err": Unit()}}}
	mustUnify(t, a, b)
}

func TestComposeWithAppliesOtherThenWinsOnClash(t *testing.T) {
	a := Var{Name: "a", ID: 0}
	b := Var{Name: "b", ID: 0}
	s1 := NewSubs()
	s1.InsertType(a, TVar{V: b})
	s2 := NewSubs()
	s2.InsertType(b, TNum{})
	s2.InsertType(a, TBool{})
	if err := s1.ComposeWith(s2); err != nil {
		t.Fatalf("ComposeWith: %v", err)
	}
	val, _ := s1.Get(a)
	if _, ok := val.Ty.(TBool); !ok {
		t.Fatalf("other must win on key clash, got %v", val.Ty)
	}
}

func TestComposeWithIsNotCommutative(t *testing.T) {
	a := Var{Name: "a", ID: 0}
	b := Var{Name: "b", ID: 0}
	s1 := NewSubs()
	s1.InsertType(a, TVar{V: b})
	s2 := NewSubs()
	s2.InsertType(b, TNum{})

	left := NewSubs()
	left.InsertType(a, TVar{V: b})
	if err := left.ComposeWith(s2); err != nil {
		t.Fatal(err)
	}
	leftVal, _ := left.Get(a)

	right := NewSubs()
	right.InsertType(b, TNum{})
	if err := right.ComposeWith(s1); err != nil {
		t.Fatal(err)
	}
	rightVal, ok := right.Get(a)
	if !ok {
		t.Fatalf("s2.compose_with(s1) should produce a binding for a")
	}
	if leftVal.Ty.String() == rightVal.Ty.String() {
		t.Fatalf("both composition orders bind a to %v; want them to differ", leftVal.Ty)
	}
}

func TestApplyIdempotentOnUnifierOutput(t *testing.T) {
	v := Var{Name: "a", ID: 0}
	subs := mustUnify(t, TVar{V: v}, TNum{})
	once, err := ApplyType(subs, TVar{V: v})
	if err != nil {
		t.Fatal(err)
	}
	twice, err := ApplyType(subs, once)
	if err != nil {
		t.Fatal(err)
	}
	if once.String() != twice.String() {
		t.Fatalf("apply should be idempotent: %v != %v", once, twice)
	}
}

func TestApplyWrongKindIsMismatchKind(t *testing.T) {
	v := Var{Name: "a", ID: 0}
	subs := NewSubs()
	subs.InsertMut(v, MMut{})
	_, err := ApplyType(subs, TVar{V: v})
	te, ok := err.(*TypeError)
	if !ok || te.Kind != MismatchKind {
		t.Fatalf("expected MismatchKind, got %v", err)
	}
}
