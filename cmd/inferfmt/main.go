// Command inferfmt runs a hand-written fixture file (a small YAML
// description of HIR statements, see fixture.go) through the inference
// driver and prints each declared binding's resolved type, one per line.
//
// It exists to give the core a runnable surface, not to be a real
// language frontend: lexing, parsing and pretty-printing source text are
// external collaborators (SPEC_FULL.md Non-goals).
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/neverRare/butter-typeinfer/internal/config"
	"github.com/neverRare/butter-typeinfer/internal/hir"
	"github.com/neverRare/butter-typeinfer/internal/infer"
	"github.com/neverRare/butter-typeinfer/internal/prelude"
	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <fixture%s>\n", os.Args[0], config.SourceFileExt)
		os.Exit(1)
	}
	path := os.Args[1]

	vs := typesystem.NewVarState()
	env := tyenv.New()
	preludePath := os.Getenv("INFERFMT_PRELUDE")
	if preludePath != "" {
		loaded, err := prelude.Load(preludePath, vs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading prelude: %s\n", err)
			os.Exit(1)
		}
		env = loaded
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %s\n", path, err)
		os.Exit(1)
	}
	statements, err := parseFixture(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
		os.Exit(1)
	}

	result, err := infer.Program(env, statements)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	printResult(env, result)
}

// useColor mirrors the teacher's NO_COLOR/TERM-aware terminal detection
// (internal/evaluator/builtins_term.go's detectColorLevel), simplified to
// a single on/off decision since this command has no tiered color output.
func useColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func printError(err error) {
	if useColor() {
		fmt.Fprintf(os.Stderr, "\x1b[31merror:\x1b[0m %s\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
	}
}

func printResult(env *tyenv.Env, result infer.Result) {
	bold, reset := "", ""
	if useColor() {
		bold, reset = "\x1b[1m", "\x1b[0m"
	}
	fmt.Printf("%srun %s%s\n", bold, result.RunID, reset)
	for _, stmt := range result.Statements {
		printStatement(env, stmt)
	}
}

// printStatement prefers env over the statement's own decorated Ty field
// for declared identifiers: env keeps getting refined by every later
// statement's substitution, so by the end of the run it holds the most
// resolved type available, while a pattern's own Ty is frozen at the
// moment that one declare was inferred.
func printStatement(env *tyenv.Env, stmt hir.Statement) {
	switch stmt.Kind {
	case hir.StmtDeclare:
		d := stmt.Declare
		name := "_"
		if d.Pattern.Kind == hir.PatVar && d.Pattern.Var != nil {
			name = d.Pattern.Var.Ident
		}
		if sm, ok := env.Get(name); ok {
			fmt.Printf("%s : %s\n", name, typeOf(sm.Scheme.Ty))
			return
		}
		fmt.Printf("%s : %s\n", name, typeOf(d.Pattern.Ty))
	case hir.StmtFunDeclare:
		if sm, ok := env.Get(stmt.FunDeclare.Ident); ok {
			fmt.Printf("%s : %s\n", stmt.FunDeclare.Ident, typeOf(sm.Scheme.Ty))
			return
		}
		fmt.Printf("%s : %s\n", stmt.FunDeclare.Ident, typeOf(stmt.FunDeclare.Ty))
	case hir.StmtExpr:
		fmt.Printf("_ : %s\n", typeOf(stmt.Expr.Ty))
	}
}

func typeOf(ty typesystem.Type) string {
	if ty == nil {
		return "<unresolved>"
	}
	return ty.String()
}
