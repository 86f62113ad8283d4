package types_test

import (
	"strings"
	"testing"

	"github.com/agrif/lithium/internal/ast"
	"github.com/agrif/lithium/internal/diagnostics"
	"github.com/agrif/lithium/internal/sexpr"
	"github.com/agrif/lithium/internal/types"
)

func parseDefun(t *testing.T, src string) *ast.Defun {
	t.Helper()
	exprs, err := sexpr.Read(src)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	stmt, err := ast.ParseStatement(exprs[0])
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	defun, ok := stmt.(*ast.Defun)
	if !ok {
		t.Fatalf("want *ast.Defun, got %T", stmt)
	}
	return defun
}

func builtinScope() types.Scope {
	return types.Scope{
		"+":    types.Fn(types.Int, types.Int, types.Int),
		"puts": types.Fn(types.Int, types.Str),
	}
}

func TestTypifyAdd1(t *testing.T) {
	defun := parseDefun(t, "(defun add1 (x) (+ x 1))")
	eng := types.NewEngine()
	result, err := types.Typify(defun, builtinScope(), eng)
	if err != nil {
		t.Fatalf("Typify: %v", err)
	}
	ty := result.Resolve(defun)
	if ty.String() != "fn(int) -> int" {
		t.Fatalf("want fn(int) -> int, got %s", ty)
	}
}

func TestTypifyIdentityIsGeneralized(t *testing.T) {
	defun := parseDefun(t, "(defun id (x) x)")
	eng := types.NewEngine()
	result, err := types.Typify(defun, builtinScope(), eng)
	if err != nil {
		t.Fatalf("Typify: %v", err)
	}
	ty := result.Resolve(defun)
	q, ok := ty.(*types.Quantified)
	if !ok {
		t.Fatalf("want *types.Quantified, got %T (%s)", ty, ty)
	}
	fn, ok := q.Result.(*types.Constructed)
	if !ok || fn.Constructor != "fn" || len(fn.Args) != 2 {
		t.Fatalf("want fn(a, a), got %s", q.Result)
	}
	if !fn.Args[0].Equal(fn.Args[1]) {
		t.Fatalf("want both positions equal to the bound variable, got %s", q.Result)
	}
}

func TestTypifyUnboundVariable(t *testing.T) {
	defun := parseDefun(t, "(defun oops () (foo))")
	eng := types.NewEngine()
	_, err := types.Typify(defun, builtinScope(), eng)
	if err == nil {
		t.Fatal("want TypingError for unbound variable")
	}
	if !strings.Contains(err.Error(), "variable not in scope: foo") {
		t.Fatalf("want 'variable not in scope: foo', got %q", err.Error())
	}
}

func TestTypifyMismatchedArgument(t *testing.T) {
	defun := parseDefun(t, `(defun bad () (+ 1 "x"))`)
	eng := types.NewEngine()
	_, err := types.Typify(defun, builtinScope(), eng)
	if err == nil {
		t.Fatal("want TypingError for int/str mismatch")
	}
	if !strings.Contains(err.Error(), "cannot unify") {
		t.Fatalf("want a cannot-unify message, got %q", err.Error())
	}
}

func TestTypifyMismatchedArgumentAnchorsToTheArgument(t *testing.T) {
	// The mismatch is in the second argument to "+", not the call as a
	// whole: the reported position must be the string literal's own
	// column, not the opening paren of "(+ 1 "x")".
	defun := parseDefun(t, `(defun bad () (+ 1 "x"))`)
	eng := types.NewEngine()
	_, err := types.Typify(defun, builtinScope(), eng)
	te, ok := err.(*diagnostics.TypingError)
	if !ok {
		t.Fatalf("want *diagnostics.TypingError, got %T: %v", err, err)
	}
	pos := te.Position()
	if pos.Line != 1 || pos.Col != 20 {
		t.Fatalf("want the string literal's own position (line 1, col 20), got %+v", pos)
	}
}

func TestTypifyArityMismatch(t *testing.T) {
	defun := parseDefun(t, "(defun f () (+ 1))")
	eng := types.NewEngine()
	_, err := types.Typify(defun, builtinScope(), eng)
	if err == nil {
		t.Fatal("want TypingError for arity mismatch")
	}
}

func TestTypifyPuts(t *testing.T) {
	defun := parseDefun(t, `(defun main () (puts "hi"))`)
	eng := types.NewEngine()
	result, err := types.Typify(defun, builtinScope(), eng)
	if err != nil {
		t.Fatalf("Typify: %v", err)
	}
	ty := result.Resolve(defun)
	if ty.String() != "fn() -> int" {
		t.Fatalf("want fn() -> int, got %s", ty)
	}
}

func TestUnifyIndependentInstantiationsDontCollide(t *testing.T) {
	// Two defuns, each typified independently, both calling "id" at
	// incompatible concrete types; each typify call must succeed on its
	// own (property 5: independent fresh instantiation per use site).
	outer := builtinScope()

	idDefun := parseDefun(t, "(defun id (x) x)")
	eng := types.NewEngine()
	idResult, err := types.Typify(idDefun, outer, eng)
	if err != nil {
		t.Fatalf("Typify(id): %v", err)
	}
	outer["id"] = idResult.Resolve(idDefun)

	useInt := parseDefun(t, "(defun usei () (id 1))")
	if _, err := types.Typify(useInt, outer, eng); err != nil {
		t.Fatalf("Typify(usei): %v", err)
	}

	useStr := parseDefun(t, `(defun uses () (id "x"))`)
	if _, err := types.Typify(useStr, outer, eng); err != nil {
		t.Fatalf("Typify(uses): %v", err)
	}
}
