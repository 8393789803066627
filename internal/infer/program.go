package infer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
)

// Result is what Program returns on success: the run identifier used
// to correlate this pass in host-side logs, and the same statement
// slice passed in, now decorated in place with inferred types.
type Result struct {
	RunID      string
	Statements []hir.Statement
}

// Program runs the driver over a full sequence of top-level statements
// (§6 "Input: a sequence of untyped HIR statements"), threading one
// Ctx and the given base environment (typically internal/prelude's
// builtin bindings) through all of them in order. The first fatal
// error aborts the pass; no partial results are returned in that case
// (§6 "No structured multi-error collection").
func Program(env *tyenv.Env, statements []hir.Statement) (Result, error) {
	runID := uuid.New().String()
	c := NewCtx()
	for i := range statements {
		if err := inferStatement(c, env, &statements[i]); err != nil {
			return Result{RunID: runID}, fmt.Errorf("infer: run %s: %w", runID, err)
		}
	}
	return Result{RunID: runID, Statements: statements}, nil
}
