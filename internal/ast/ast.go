// Package ast defines the typed AST produced by the parser (spec §3, §4.C)
// and the parser itself. Each node keeps a link back to the S-expression
// it was built from, purely for diagnostics; its inferred type is never
// stored on the node — see internal/types for why.
package ast

import "github.com/agrif/lithium/internal/sexpr"

// Node is the interface every AST node satisfies.
type Node interface {
	// Source returns the S-expression this node was parsed from.
	Source() *sexpr.Expr
}

// Stmt is a Node that can appear at the statement level.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a Node that can appear as a value-producing expression.
type Expr interface {
	Node
	exprNode()
}

// IntConstant is an integer literal expression.
type IntConstant struct {
	Src   *sexpr.Expr
	Value int64
}

func (n *IntConstant) Source() *sexpr.Expr { return n.Src }
func (*IntConstant) exprNode()             {}

// StrConstant is a string literal expression.
type StrConstant struct {
	Src   *sexpr.Expr
	Value string
}

func (n *StrConstant) Source() *sexpr.Expr { return n.Src }
func (*StrConstant) exprNode()             {}

// Variable is a reference to a named binding.
type Variable struct {
	Src  *sexpr.Expr
	Name string
}

func (n *Variable) Source() *sexpr.Expr { return n.Src }
func (*Variable) exprNode()             {}

// Call applies Function to Args.
type Call struct {
	Src      *sexpr.Expr
	Function Expr
	Args     []Expr
}

func (n *Call) Source() *sexpr.Expr { return n.Src }
func (*Call) exprNode()             {}

// Defun is a top-level named function definition — the sole statement
// variant. Body is non-empty; per the original source's behavior
// (see SPEC_FULL §4), every element is parsed but only the last is
// type-checked and compiled.
type Defun struct {
	Src       *sexpr.Expr
	Name      string
	Arguments []string
	Body      []Expr
}

func (n *Defun) Source() *sexpr.Expr { return n.Src }
func (*Defun) stmtNode()             {}
