package ast

import (
	"errors"

	"github.com/agrif/lithium/internal/diagnostics"
	"github.com/agrif/lithium/internal/pattern"
	"github.com/agrif/lithium/internal/sexpr"
)

// rule pairs a loose pattern (cheap discrimination: "could this form be a
// T?") with a strict pattern (the committed shape) and a builder that
// turns the strict match's extracted value into a T. Mirrors parser.py's
// per-form registration: once the loose pattern picks a rule, a strict
// mismatch fails the whole parse rather than falling through to the next
// rule.
type rule[T any] struct {
	loose  pattern.Pattern // nil means reuse strict for discrimination too
	strict pattern.Pattern
	build  func(expr *sexpr.Expr, value any) (T, error)
}

func parseFrom[T any](expr *sexpr.Expr, rules []rule[T]) (T, error) {
	var zero T
	for _, r := range rules {
		loose := r.loose
		if loose == nil {
			loose = r.strict
		}
		if err := loose.Matchq(expr); err != nil {
			continue
		}
		value, err := pattern.Match(r.strict, expr)
		if err != nil {
			var me *pattern.MatchError
			if errors.As(err, &me) {
				return zero, diagnostics.NewParseError(posOf(me.Expr), "%s", me.Msg)
			}
			return zero, err
		}
		return r.build(expr, value)
	}
	return zero, diagnostics.NewParseError(posOf(expr), "unknown form")
}

func posOf(e *sexpr.Expr) diagnostics.Position {
	if e == nil {
		return diagnostics.Position{}
	}
	return diagnostics.Position{Line: e.Line, Col: e.Col}
}

// statementRules and expressionRules are the open registries of forms the
// parser recognizes, in the order they are tried — the Go equivalent of
// parser.py's @statement/@expression decorator registration order.
var statementRules = []rule[Stmt]{
	defunRule(),
}

var expressionRules []rule[Expr]

// expressionRules is filled in init rather than by its declaration because
// callRule's builder refers back to it through ParseExpression.
func init() {
	expressionRules = []rule[Expr]{
		callRule(),
		intConstantRule(),
		strConstantRule(),
		variableRule(),
	}
}

// ParseStatement lifts a single top-level S-expression into a Stmt.
func ParseStatement(expr *sexpr.Expr) (Stmt, error) {
	return parseFrom(expr, statementRules)
}

// ParseExpression lifts a single S-expression into an Expr.
func ParseExpression(expr *sexpr.Expr) (Expr, error) {
	return parseFrom(expr, expressionRules)
}

// ParseProgram parses every top-level form read from src as a statement,
// in order, stopping at the first error.
func ParseProgram(exprs []*sexpr.Expr) ([]Stmt, error) {
	stmts := make([]Stmt, 0, len(exprs))
	for _, e := range exprs {
		stmt, err := ParseStatement(e)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ---- defun ----

func defunRule() rule[Stmt] {
	strict := pattern.Form([]pattern.Pattern{
		pattern.Keyword("defun"),
		pattern.Sym("name"),
		pattern.ListOf(pattern.Sym(), "arguments"),
	}, pattern.Any("tail"))

	return rule[Stmt]{
		// Loose discrimination only needs to see the leading keyword; a
		// strict mismatch past that point is this form's own error, not
		// a cue to try another statement rule.
		loose:  pattern.Form([]pattern.Pattern{pattern.Keyword("defun")}, pattern.Any()),
		strict: strict,
		build: func(expr *sexpr.Expr, value any) (Stmt, error) {
			info := value.(pattern.Info)

			rawArgs := info["arguments"].([]any)
			args := make([]string, len(rawArgs))
			for i, a := range rawArgs {
				args[i] = a.(string)
			}

			rawBody := info["tail"].([]any)
			if len(rawBody) == 0 {
				return nil, diagnostics.NewParseError(posOf(expr), "defun requires at least one body expression")
			}
			body := make([]Expr, len(rawBody))
			for i, b := range rawBody {
				sub, err := ParseExpression(b.(*sexpr.Expr))
				if err != nil {
					return nil, err
				}
				body[i] = sub
			}

			return &Defun{
				Src:       expr,
				Name:      info["name"].(string),
				Arguments: args,
				Body:      body,
			}, nil
		},
	}
}

// ---- call ----

func callRule() rule[Expr] {
	strict := pattern.Form([]pattern.Pattern{
		pattern.Any("function"),
	}, pattern.Any("args"))

	return rule[Expr]{
		strict: strict,
		build: func(expr *sexpr.Expr, value any) (Expr, error) {
			info := value.(pattern.Info)

			fnExpr := info["function"].(*sexpr.Expr)
			fn, err := ParseExpression(fnExpr)
			if err != nil {
				return nil, err
			}

			rawArgs := info["tail"].([]any)
			args := make([]Expr, len(rawArgs))
			for i, a := range rawArgs {
				sub, err := ParseExpression(a.(*sexpr.Expr))
				if err != nil {
					return nil, err
				}
				args[i] = sub
			}

			return &Call{Src: expr, Function: fn, Args: args}, nil
		},
	}
}

// ---- IntConstant ----

func intConstantRule() rule[Expr] {
	strict := pattern.OfClass(sexpr.Integer)
	return rule[Expr]{
		strict: strict,
		build: func(expr *sexpr.Expr, value any) (Expr, error) {
			return &IntConstant{Src: expr, Value: value.(int64)}, nil
		},
	}
}

// ---- StrConstant ----

func strConstantRule() rule[Expr] {
	strict := pattern.OfClass(sexpr.String)
	return rule[Expr]{
		strict: strict,
		build: func(expr *sexpr.Expr, value any) (Expr, error) {
			return &StrConstant{Src: expr, Value: value.(string)}, nil
		},
	}
}

// ---- Variable ----

func variableRule() rule[Expr] {
	strict := pattern.Sym()
	return rule[Expr]{
		strict: strict,
		build: func(expr *sexpr.Expr, value any) (Expr, error) {
			return &Variable{Src: expr, Name: value.(string)}, nil
		},
	}
}
