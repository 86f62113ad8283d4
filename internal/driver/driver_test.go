package driver_test

import (
	"strings"
	"testing"

	"github.com/agrif/lithium/internal/diagnostics"
	"github.com/agrif/lithium/internal/driver"
)

func TestCompileAdd1(t *testing.T) {
	out, err := driver.Compile(`(defun add1 (x) (+ x 1))`, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "define i64 @add1(i64 %x) {") {
		t.Fatalf("want add1 signature, got:\n%s", out)
	}
	if !strings.Contains(out, "add i64 %x, 1") {
		t.Fatalf("want add instruction, got:\n%s", out)
	}
	if strings.Contains(out, "puts") {
		t.Fatalf("puts must not be declared unless referenced, got:\n%s", out)
	}
}

func TestCompileIdentity(t *testing.T) {
	out, err := driver.Compile(`(defun id (x) x)`, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "define i64 @id(i64 %x) {") {
		t.Fatalf("want id signature (defaulted to int), got:\n%s", out)
	}
	if !strings.Contains(out, "ret i64 %x") {
		t.Fatalf("want body returning its own parameter, got:\n%s", out)
	}
}

func TestCompilePutsMain(t *testing.T) {
	out, err := driver.Compile(`(defun main () (puts "hi"))`, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `@str0 = global [3 x i8] c"hi\00"`) {
		t.Fatalf("want string global, got:\n%s", out)
	}
	if !strings.Contains(out, "declare i64 @puts(i8* %arg0)") {
		t.Fatalf("want puts declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "call i64 @puts(i8*") {
		t.Fatalf("want puts call, got:\n%s", out)
	}
}

func TestCompileTypeMismatchReportsStringPosition(t *testing.T) {
	_, err := driver.Compile("(defun bad ()\n  (+ 1 \"x\"))", "test")
	if err == nil {
		t.Fatal("expected a typing error")
	}
	var pe diagnostics.Positioned
	if te, ok := err.(*diagnostics.TypingError); ok {
		pe = te
	} else {
		t.Fatalf("expected *diagnostics.TypingError, got %T: %v", err, err)
	}
	if !strings.Contains(pe.Error(), "cannot unify") {
		t.Fatalf("want a cannot-unify message, got %q", pe.Error())
	}
	if pe.Position().Line != 2 {
		t.Fatalf("want the error anchored to the string literal's line, got %+v", pe.Position())
	}
	if pe.Position().Col != 8 {
		t.Fatalf("want the error anchored to the string literal's column (8), got %+v", pe.Position())
	}
}

func TestCompileUnboundVariable(t *testing.T) {
	_, err := driver.Compile(`(defun oops () (foo))`, "test")
	if err == nil {
		t.Fatal("expected a typing error")
	}
	if !strings.Contains(err.Error(), "variable not in scope: foo") {
		t.Fatalf("want an unbound-variable message, got %q", err.Error())
	}
}

func TestCompileArityMismatch(t *testing.T) {
	_, err := driver.Compile(`(defun f () (+ 1))`, "test")
	if err == nil {
		t.Fatal("expected a typing error")
	}
	if !strings.Contains(err.Error(), "cannot unify") {
		t.Fatalf("want a cannot-unify message from the arity mismatch, got %q", err.Error())
	}
}

func TestCompileReadError(t *testing.T) {
	_, err := driver.Compile(`(defun bad (x`, "test")
	if err == nil {
		t.Fatal("expected a read error")
	}
	if _, ok := err.(diagnostics.Positioned); !ok {
		t.Fatalf("expected a Positioned error, got %T", err)
	}
}
