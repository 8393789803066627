package infer

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

func litNum(v float64) hir.Expr {
	return hir.Expr{Kind: hir.EKindLiteral, Literal: hir.Literal{Kind: hir.LitFloat, FloatVal: v}}
}

func litBool(b bool) hir.Expr {
	kind := hir.LitFalse
	if b {
		kind = hir.LitTrue
	}
	return hir.Expr{Kind: hir.EKindLiteral, Literal: hir.Literal{Kind: kind}}
}

func varPlace(name string) hir.Expr {
	return hir.Expr{Kind: hir.EKindPlace, Place: &hir.PlaceExpr{Kind: hir.PlaceVar, Var: name}}
}

func TestInferNumberLiteral(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	e := litNum(2)
	ty, err := InferExpr(c, env, &e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ty.(typesystem.TNum); !ok {
		t.Fatalf("want Num, got %v", ty)
	}
}

func TestInferUnboundVar(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	e := varPlace("x")
	_, err := InferExpr(c, env, &e)
	if err == nil {
		t.Fatal("expected UnboundVar error")
	}
	var te *typesystem.TypeError
	if !errors.As(err, &te) || te.Kind != typesystem.UnboundVar {
		t.Fatalf("want UnboundVar, got %v", err)
	}
}

// identity-function call: a function bound in the prelude-like
// environment as ∀a. (x: a) -> a, applied to a number literal, should
// yield Num.
func TestInferIdentityFunctionCall(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	a := c.VS.NewNamed("a")
	forAll := typesystem.NewVarSet()
	forAll.Add(typesystem.KindType, a)
	idTy := typesystem.TFun{
		Param: typesystem.TRecordTuple{Elems: typesystem.OrderedAndNamed{
			Row: false,
			Seq: []typesystem.NamedType{{Name: "x", Ty: typesystem.TVar{V: a}}},
		}},
		Result: typesystem.TVar{V: a},
	}
	env.Insert("id", tyenv.SchemeMut{IsMut: false, Scheme: tyenv.Scheme{ForAll: forAll, Ty: idTy}})

	arg := litNum(1)
	call := hir.Expr{Kind: hir.EKindCall, Call: &hir.CallExpr{
		Callee: varPlace("id"),
		Arg: hir.Arg{Kind: hir.ArgTuple, Tuple: &hir.CollectionExpr{Elems: []hir.Expr{arg}}},
	}}
	ty, err := InferExpr(c, env, &call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolved, err := c.apply(ty)
	if err != nil {
		t.Fatalf("unexpected error resolving result: %v", err)
	}
	if _, ok := resolved.(typesystem.TNum); !ok {
		t.Fatalf("want Num, got %v", resolved)
	}
}

// 1 + true should fail with MismatchCons (Binary Add unifies both
// operands with Num).
func TestInferAddMismatch(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	e := hir.Expr{Kind: hir.EKindBinary, Binary: &hir.BinaryExpr{
		Kind:  hir.BinAdd,
		Left:  litNum(1),
		Right: litBool(true),
	}}
	_, err := InferExpr(c, env, &e)
	if err == nil {
		t.Fatal("expected MismatchCons error")
	}
	var te *typesystem.TypeError
	if !errors.As(err, &te) || te.Kind != typesystem.MismatchCons {
		t.Fatalf("want MismatchCons, got %v", err)
	}
}

func TestInferRecordFieldAccessThroughRowVar(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	// fun(r) { r.x }: the result stays the polymorphic field variable
	param := hir.Field2{Name: "r", Pattern: hir.Pattern{Kind: hir.PatVar, Var: &hir.VarPattern{Ident: "r"}}}
	body := hir.Expr{Kind: hir.EKindPlace, Place: &hir.PlaceExpr{
		Kind: hir.PlaceProperty,
		Property: &hir.PropertyPlace{Expr: varPlace("r"), Name: "x"},
	}}
	fun := hir.Expr{Kind: hir.EKindFun, Fun: &hir.FunExpr{Param: []hir.Field2{param}, Body: &body}}
	funTy, err := InferExpr(c, env, &fun)
	if err != nil {
		t.Fatalf("unexpected error inferring fun: %v", err)
	}
	tf, ok := funTy.(typesystem.TFun)
	if !ok {
		t.Fatalf("want Fun, got %v", funTy)
	}
	if _, ok := tf.Result.(typesystem.TVar); !ok {
		t.Fatalf("want polymorphic field result still a var, got %v", tf.Result)
	}
}

func TestInferArrayConcatenate(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	arr := func(vals ...float64) hir.Expr {
		elems := make([]hir.Element, len(vals))
		for i, v := range vals {
			elems[i] = hir.Element{Kind: hir.ElementPlain, Expr: litNum(v)}
		}
		return hir.Expr{Kind: hir.EKindArray, Array: elems}
	}
	e := hir.Expr{Kind: hir.EKindBinary, Binary: &hir.BinaryExpr{
		Kind:  hir.BinConcatenate,
		Left:  arr(1, 2),
		Right: arr(3),
	}}
	ty, err := InferExpr(c, env, &e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at, ok := ty.(typesystem.TArray)
	if !ok {
		t.Fatalf("want Array, got %v", ty)
	}
	if _, ok := at.Elem.(typesystem.TNum); !ok {
		t.Fatalf("want Array(Num), got Array(%v)", at.Elem)
	}
}

// [1] ++ [true] must fail with MismatchCons: the left operand pins the
// shared element variable to Num, so the right operand's Bool has to
// conflict rather than silently rebind it.
func TestInferArrayConcatenateElementMismatch(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	left := hir.Expr{Kind: hir.EKindArray, Array: []hir.Element{{Kind: hir.ElementPlain, Expr: litNum(1)}}}
	right := hir.Expr{Kind: hir.EKindArray, Array: []hir.Element{{Kind: hir.ElementPlain, Expr: litBool(true)}}}
	e := hir.Expr{Kind: hir.EKindBinary, Binary: &hir.BinaryExpr{
		Kind:  hir.BinConcatenate,
		Left:  left,
		Right: right,
	}}
	_, err := InferExpr(c, env, &e)
	if err == nil {
		t.Fatal("expected MismatchCons error")
	}
	var te *typesystem.TypeError
	if !errors.As(err, &te) || te.Kind != typesystem.MismatchCons {
		t.Fatalf("want MismatchCons, got %v", err)
	}
}

// [1, true] must fail with MismatchCons: the first element pins the
// array pattern's shared element variable to Num, so the second
// element's Bool pattern has to conflict rather than silently rebind
// it.
func TestInferArrayPatternElementMismatch(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	p := hir.Pattern{Kind: hir.PatArray, Array: &hir.ListPattern{
		Left: []hir.Pattern{
			{Kind: hir.PatUInt, UIntVal: 1},
			{Kind: hir.PatTrue},
		},
	}}
	_, err := inferPattern(c, env, &p)
	if err == nil {
		t.Fatal("expected MismatchCons error")
	}
	var te *typesystem.TypeError
	if !errors.As(err, &te) || te.Kind != typesystem.MismatchCons {
		t.Fatalf("want MismatchCons, got %v", err)
	}
}

func TestInferAssignedImm(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	env.Insert("x", tyenv.SchemeMut{IsMut: false, Scheme: tyenv.Scheme{ForAll: typesystem.NewVarSet(), Ty: typesystem.TNum{}}})
	e := hir.Expr{Kind: hir.EKindAssign, Assign: &hir.AssignExpr{
		Place: hir.PlaceExpr{Kind: hir.PlaceVar, Var: "x"},
		Expr:  litNum(2),
	}}
	_, err := InferExpr(c, env, &e)
	if err == nil {
		t.Fatal("expected AssignedImm error")
	}
	var te *typesystem.TypeError
	if !errors.As(err, &te) || te.Kind != typesystem.AssignedImm {
		t.Fatalf("want AssignedImm, got %v", err)
	}
}

func TestInferAssignYieldsUnit(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	env.Insert("x", tyenv.SchemeMut{IsMut: true, Scheme: tyenv.Scheme{ForAll: typesystem.NewVarSet(), Ty: typesystem.TNum{}}})
	e := hir.Expr{Kind: hir.EKindAssign, Assign: &hir.AssignExpr{
		Place: hir.PlaceExpr{Kind: hir.PlaceVar, Var: "x"},
		Expr:  litNum(2),
	}}
	ty, err := InferExpr(c, env, &e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !typesystem.IsUnit(ty) {
		t.Fatalf("want unit, got %v", ty)
	}
}

func TestInferOccursCheck(t *testing.T) {
	c := NewCtx()
	v := c.VS.NewVar()
	_, err := typesystem.UnifyType(typesystem.TVar{V: v}, typesystem.TArray{Elem: typesystem.TVar{V: v}}, c.VS)
	if err == nil {
		t.Fatal("expected InfiniteOccurrence error")
	}
	var te *typesystem.TypeError
	if !errors.As(err, &te) || te.Kind != typesystem.InfiniteOccurrence {
		t.Fatalf("want InfiniteOccurrence, got %v", err)
	}
}

func TestUnifyBreakAgainstLoopOutsideLoop(t *testing.T) {
	c := NewCtx()
	if err := c.unifyBreakAgainstLoop(typesystem.Unit()); !errors.Is(err, ErrUnsupportedControlFlow) {
		t.Fatalf("want ErrUnsupportedControlFlow, got %v", err)
	}
}

func TestUnifyBreakAgainstLoopInsideLoop(t *testing.T) {
	c := NewCtx()
	lc := c.pushLoop()
	defer c.popLoop()
	if err := c.unifyBreakAgainstLoop(typesystem.TNum{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolved, err := c.apply(typesystem.TVar{V: lc.Result})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := resolved.(typesystem.TNum); !ok {
		t.Fatalf("want loop result refined to Num, got %v", resolved)
	}
}

func TestInferControlFlowStubs(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	for _, kind := range []hir.ControlFlowKind{hir.CFFor, hir.CFWhile, hir.CFLoop, hir.CFMatch} {
		cf := hir.ControlFlow{Kind: kind}
		_, err := inferControlFlow(c, env, &cf)
		if !errors.Is(err, ErrUnsupportedControlFlow) {
			t.Fatalf("kind %v: want ErrUnsupportedControlFlow, got %v", kind, err)
		}
	}
}

func TestInferBlockScopingDoesNotLeak(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	declare := hir.Statement{Kind: hir.StmtDeclare, Declare: &hir.DeclareStatement{
		Pattern: hir.Pattern{Kind: hir.PatVar, Var: &hir.VarPattern{Ident: "y"}},
		Expr:    litNum(5),
	}}
	block := hir.ControlFlow{Kind: hir.CFBlock, Block: &hir.Block{
		Statements: []hir.Statement{declare},
		Tail:       func() *hir.Expr { e := varPlace("y"); return &e }(),
	}}
	ty, err := inferControlFlow(c, env, &block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ty.(typesystem.TNum); !ok {
		t.Fatalf("want Num, got %v", ty)
	}
	if _, ok := env.Get("y"); ok {
		t.Fatal("block-local binding leaked into outer env")
	}
}

func TestInferIfBranchesUnify(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	ifExpr := hir.IfExpr{
		Cond: litBool(true),
		Body: hir.Block{Tail: func() *hir.Expr { e := litNum(1); return &e }()},
		ElsePart: &hir.ControlFlow{Kind: hir.CFBlock, Block: &hir.Block{
			Tail: func() *hir.Expr { e := litNum(2); return &e }(),
		}},
	}
	ty, err := inferIf(c, env, &ifExpr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ty.(typesystem.TNum); !ok {
		t.Fatalf("want Num, got %v", ty)
	}
}

func TestInferFunDeclareSelfRecursion(t *testing.T) {
	c := NewCtx()
	env := tyenv.New()
	// fun f(n) { f(n) } — self-recursive call inside the body must see
	// the monomorphic placeholder already bound.
	param := hir.Field2{Name: "n", Pattern: hir.Pattern{Kind: hir.PatVar, Var: &hir.VarPattern{Ident: "n"}}}
	body := hir.Expr{Kind: hir.EKindCall, Call: &hir.CallExpr{
		Callee: varPlace("f"),
		Arg: hir.Arg{Kind: hir.ArgTuple, Tuple: &hir.CollectionExpr{Elems: []hir.Expr{varPlace("n")}}},
	}}
	fd := hir.FunDeclareStatement{Ident: "f", Fun: hir.FunExpr{Param: []hir.Field2{param}, Body: &body}}
	stmt := hir.Statement{Kind: hir.StmtFunDeclare, FunDeclare: &fd}
	if err := inferStatement(c, env, &stmt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := fd.Ty.(typesystem.TFun); !ok {
		t.Fatalf("want Fun, got %v", fd.Ty)
	}
}

func TestProgramTagsRunID(t *testing.T) {
	env := tyenv.New()
	stmt := hir.Statement{Kind: hir.StmtExpr, Expr: func() *hir.Expr { e := litNum(1); return &e }()}
	result, err := Program(env, []hir.Statement{stmt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(result.RunID); err != nil {
		t.Fatalf("RunID %q is not a valid UUID: %v", result.RunID, err)
	}
}
