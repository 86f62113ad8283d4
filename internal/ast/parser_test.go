package ast_test

import (
	"testing"

	"github.com/agrif/lithium/internal/ast"
	"github.com/agrif/lithium/internal/sexpr"
)

func mustRead(t *testing.T, src string) *sexpr.Expr {
	t.Helper()
	out, err := sexpr.Read(src)
	if err != nil {
		t.Fatalf("Read(%q): %v", src, err)
	}
	if len(out) != 1 {
		t.Fatalf("Read(%q): want 1 expr, got %d", src, len(out))
	}
	return out[0]
}

func TestParseDefun(t *testing.T) {
	e := mustRead(t, "(defun add1 (x) (+ x 1))")
	stmt, err := ast.ParseStatement(e)
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	defun, ok := stmt.(*ast.Defun)
	if !ok {
		t.Fatalf("want *ast.Defun, got %T", stmt)
	}
	if defun.Name != "add1" {
		t.Fatalf("want name add1, got %q", defun.Name)
	}
	if len(defun.Arguments) != 1 || defun.Arguments[0] != "x" {
		t.Fatalf("want arguments [x], got %v", defun.Arguments)
	}
	if len(defun.Body) != 1 {
		t.Fatalf("want 1 body expression, got %d", len(defun.Body))
	}
	call, ok := defun.Body[0].(*ast.Call)
	if !ok {
		t.Fatalf("want *ast.Call body, got %T", defun.Body[0])
	}
	fn, ok := call.Function.(*ast.Variable)
	if !ok || fn.Name != "+" {
		t.Fatalf("want call of +, got %#v", call.Function)
	}
	if len(call.Args) != 2 {
		t.Fatalf("want 2 args, got %d", len(call.Args))
	}
}

func TestParseDefunMultiBodyKeepsAll(t *testing.T) {
	e := mustRead(t, "(defun f () 1 2 3)")
	stmt, err := ast.ParseStatement(e)
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	defun := stmt.(*ast.Defun)
	if len(defun.Body) != 3 {
		t.Fatalf("want 3 parsed body expressions, got %d", len(defun.Body))
	}
	last, ok := defun.Body[len(defun.Body)-1].(*ast.IntConstant)
	if !ok || last.Value != 3 {
		t.Fatalf("want last body expr IntConstant(3), got %#v", defun.Body[len(defun.Body)-1])
	}
}

func TestParseDefunRequiresBody(t *testing.T) {
	e := mustRead(t, "(defun f ())")
	if _, err := ast.ParseStatement(e); err == nil {
		t.Fatal("want error: defun with no body")
	}
}

func TestParseDefunMissingArguments(t *testing.T) {
	e := mustRead(t, "(defun f)")
	if _, err := ast.ParseStatement(e); err == nil {
		t.Fatal("want error: defun missing arguments list")
	}
}

func TestParseIntConstant(t *testing.T) {
	e := mustRead(t, "42")
	expr, err := ast.ParseExpression(e)
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	ic, ok := expr.(*ast.IntConstant)
	if !ok || ic.Value != 42 {
		t.Fatalf("want IntConstant(42), got %#v", expr)
	}
}

func TestParseStrConstant(t *testing.T) {
	e := mustRead(t, `"hi"`)
	expr, err := ast.ParseExpression(e)
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	sc, ok := expr.(*ast.StrConstant)
	if !ok || sc.Value != "hi" {
		t.Fatalf("want StrConstant(hi), got %#v", expr)
	}
}

func TestParseVariable(t *testing.T) {
	e := mustRead(t, "x")
	expr, err := ast.ParseExpression(e)
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	v, ok := expr.(*ast.Variable)
	if !ok || v.Name != "x" {
		t.Fatalf("want Variable(x), got %#v", expr)
	}
}

func TestParseCallNested(t *testing.T) {
	e := mustRead(t, `(puts "hi")`)
	expr, err := ast.ParseExpression(e)
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("want *ast.Call, got %T", expr)
	}
	if len(call.Args) != 1 {
		t.Fatalf("want 1 arg, got %d", len(call.Args))
	}
	if _, ok := call.Args[0].(*ast.StrConstant); !ok {
		t.Fatalf("want StrConstant arg, got %T", call.Args[0])
	}
}

func TestParseEmptyListIsUnknownForm(t *testing.T) {
	e := mustRead(t, "()")
	if _, err := ast.ParseExpression(e); err == nil {
		t.Fatal("want error: empty list is not a valid call")
	}
}

func TestParseProgram(t *testing.T) {
	exprs, err := sexpr.Read("(defun add1 (x) (+ x 1)) (defun main () (puts \"hi\"))")
	if err != nil {
		t.Fatal(err)
	}
	stmts, err := ast.ParseProgram(exprs)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("want 2 statements, got %d", len(stmts))
	}
}

func TestParseUnknownStatementForm(t *testing.T) {
	e := mustRead(t, "(if x 1 2)")
	if _, err := ast.ParseStatement(e); err == nil {
		t.Fatal("want error: conditionals are not a supported statement form")
	}
}
