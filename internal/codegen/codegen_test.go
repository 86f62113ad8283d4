package codegen_test

import (
	"strings"
	"testing"

	"github.com/agrif/lithium/internal/ast"
	"github.com/agrif/lithium/internal/backend/lltext"
	"github.com/agrif/lithium/internal/codegen"
	"github.com/agrif/lithium/internal/sexpr"
	"github.com/agrif/lithium/internal/types"
)

func parseProgram(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	exprs, err := sexpr.Read(src)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	stmts, err := ast.ParseProgram(exprs)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return stmts
}

func newScope(t *testing.T, mod *lltext.Module) (codegen.Scope, *codegen.Registry) {
	t.Helper()
	registry, err := codegen.NewRegistry(mod)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	scope := make(codegen.Scope)
	for _, name := range registry.Names() {
		scope[name] = &codegen.ScopeItem{Type: registry.Signature(name), BuiltinName: name}
	}
	return scope, registry
}

// TestPutsDeclaredOnlyWhenReferenced exercises the lazy builtin
// construction: a program that never mentions puts must not declare it.
func TestPutsDeclaredOnlyWhenReferenced(t *testing.T) {
	mod := lltext.New("test")
	scope, registry := newScope(t, mod)
	gen := codegen.NewGenerator(mod, types.NewEngine(), registry)

	stmts := parseProgram(t, `(defun add1 (x) (+ x 1))`)
	for _, s := range stmts {
		if err := gen.CompileStatement(s, scope); err != nil {
			t.Fatalf("CompileStatement: %v", err)
		}
	}
	out := mod.String()
	if strings.Contains(out, "puts") {
		t.Fatalf("puts must stay undeclared when unreferenced, got:\n%s", out)
	}
}

// TestIndependentInstantiationsAtCodegenLevel compiles id and one caller
// that uses it at int in the same run: this compiler defaults a
// generalized binding's own definition to int monomorphically (see
// DESIGN.md), and the caller type-checks against id's generalized scheme,
// instantiated fresh at its call site.
func TestIndependentInstantiationsAtCodegenLevel(t *testing.T) {
	mod := lltext.New("test")
	scope, registry := newScope(t, mod)
	gen := codegen.NewGenerator(mod, types.NewEngine(), registry)

	stmts := parseProgram(t, `
		(defun id (x) x)
		(defun useInt (y) (id (+ y 1)))
	`)
	for _, s := range stmts {
		if err := gen.CompileStatement(s, scope); err != nil {
			t.Fatalf("CompileStatement: %v", err)
		}
	}

	out := mod.String()
	if !strings.Contains(out, "define i64 @id(i64 %x) {") {
		t.Fatalf("want id's own definition defaulted to int, got:\n%s", out)
	}
	if !strings.Contains(out, "define i64 @useInt(i64 %y) {") {
		t.Fatalf("want useInt calling id at int, got:\n%s", out)
	}
}
