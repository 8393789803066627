// Package infer implements §4.6, the recursive-descent inference driver
// over internal/hir nodes: it threads a mutable substitution, a
// variable-state generator and an environment through every node and
// decorates each one with its inferred typesystem.Type in place.
package infer

import (
	"errors"
	"fmt"

	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// ErrUnsupportedControlFlow is returned by For/While/Loop/Match, reserved
// for extension per spec.md §4.6.9 and decided-not-guessed in
// SPEC_FULL.md §9. It is a driver-level signal, distinct from the
// 8-variant typesystem.TypeError taxonomy.
var ErrUnsupportedControlFlow = errors.New("infer: control flow form not supported by this core")

// Ctx bundles the ambient substitution and variable-state generator
// every inference call threads through (§4.6). A Ctx is local to one
// call stack; it is never shared across goroutines (§5).
type Ctx struct {
	VS   *typesystem.VarState
	Subs *typesystem.Subs
	loops []*loopCtx
}

// NewCtx constructs a Ctx with a fresh variable-state and an empty
// substitution.
func NewCtx() *Ctx {
	return &Ctx{VS: typesystem.NewVarState(), Subs: typesystem.NewSubs()}
}

// unify unifies t1 and t2 under c's variable state and composes the
// resulting substitution into c's ambient Subs, in the textual
// production order required by §5.
func (c *Ctx) unify(t1, t2 typesystem.Type) error {
	s, err := typesystem.UnifyType(t1, t2, c.VS)
	if err != nil {
		return err
	}
	return c.Subs.ComposeWith(s)
}

func (c *Ctx) unifyMut(m1, m2 typesystem.MutType) error {
	s, err := typesystem.UnifyMut(m1, m2, c.VS)
	if err != nil {
		return err
	}
	return c.Subs.ComposeWith(s)
}

func (c *Ctx) apply(t typesystem.Type) (typesystem.Type, error) {
	return typesystem.ApplyType(c.Subs, t)
}

// loopCtx is the per-loop state Break/Continue unify against (§9
// "Break/Continue" decision). Result is the loop's result-type
// variable, allocated once when a loop construct pushes its context.
type loopCtx struct {
	Result typesystem.Var
}

func (c *Ctx) pushLoop() *loopCtx {
	lc := &loopCtx{Result: c.VS.NewVar()}
	c.loops = append(c.loops, lc)
	return lc
}

func (c *Ctx) popLoop() {
	c.loops = c.loops[:len(c.loops)-1]
}

func (c *Ctx) currentLoop() (*loopCtx, bool) {
	if len(c.loops) == 0 {
		return nil, false
	}
	return c.loops[len(c.loops)-1], true
}

// unifyBreakAgainstLoop implements the Break-half of the decision in
// SPEC_FULL.md §9: unify e's type (or unit if absent) against the
// innermost loop's result variable. Returns MismatchCons-shaped errors
// from the underlying unifier; a Break outside any loop context is a
// driver-level misuse, reported as ErrUnsupportedControlFlow since no
// loop constructor in this core ever pushes a context for it to break
// out of.
func (c *Ctx) unifyBreakAgainstLoop(ty typesystem.Type) error {
	lc, ok := c.currentLoop()
	if !ok {
		return fmt.Errorf("infer: break outside loop: %w", ErrUnsupportedControlFlow)
	}
	return c.unify(ty, typesystem.TVar{V: lc.Result})
}

func typeError(kind typesystem.ErrorKind) error {
	return typesystem.NewTypeError(kind)
}
