// Package codegen lowers a typed statement to the backend's SSA form
// (spec §4.E): it runs the type engine over each Defun in turn, picks a
// monomorphic instantiation for any generalized (polymorphic) binding,
// lowers the chosen types to backend machine types, and emits the
// function body.
package codegen

import (
	"fmt"

	"github.com/agrif/lithium/internal/ast"
	"github.com/agrif/lithium/internal/backend"
	"github.com/agrif/lithium/internal/types"
)

// Generator holds the state scoped to one compilation: the type engine's
// variable counter, the string-global naming counter, and the built-in
// registry. NewGenerator starts the string counter at zero; the engine
// and registry are the caller's, and driver.Compile creates a fresh one
// of each per compilation.
type Generator struct {
	mod        backend.Module
	eng        *types.Engine
	registry   *Registry
	strCounter int
}

func NewGenerator(mod backend.Module, eng *types.Engine, registry *Registry) *Generator {
	return &Generator{mod: mod, eng: eng, registry: registry}
}

func (g *Generator) nextStrGlobal() string {
	name := fmt.Sprintf("str%d", g.strCounter)
	g.strCounter++
	return name
}

// CompileStatement type-checks and compiles stmt against scope, binding
// its result into scope under its own name — the Defun case of
// compile_statement, generalized to pick a concrete instantiation for a
// generalized (Quantified) binding before lowering, since the backend has
// no representation for a polymorphic function.
func (g *Generator) CompileStatement(stmt ast.Stmt, scope Scope) error {
	switch s := stmt.(type) {
	case *ast.Defun:
		return g.compileDefun(s, scope)
	default:
		return fmt.Errorf("codegen: no compilation rule for %T", stmt)
	}
}

func (g *Generator) compileDefun(defun *ast.Defun, scope Scope) error {
	result, err := types.Typify(defun, scope.Types(), g.eng)
	if err != nil {
		return err
	}

	resolved := result.Resolve(defun)
	monomorphic, repl := types.Strip(resolved, func() types.Type { return types.Int })
	typing := Typing{Result: result, Repl: repl}

	fnType, ok := monomorphic.(*types.Constructed)
	if !ok || fnType.Constructor != "fn" {
		return fmt.Errorf("codegen: defun %s did not infer a function type: %s", defun.Name, monomorphic)
	}
	argTypes := fnType.Args[1:]

	lty, err := lowerType(g.mod, fnType, defun)
	if err != nil {
		return err
	}
	fn := g.mod.AddFunction(lty, defun.Name)

	subscope := scope.Clone()
	for i, name := range defun.Arguments {
		fn.SetParamName(i, name)
		subscope[name] = &ScopeItem{Type: argTypes[i], Value: fn.Param(i)}
	}

	block := fn.AppendBlock("entry")
	builder := g.mod.NewBuilder()
	builder.Attach(block)

	body := defun.Body[len(defun.Body)-1]
	compiled, err := g.CompileExpression(body, fn, builder, subscope, typing)
	if err != nil {
		return err
	}
	v, err := compileValue(compiled, body)
	if err != nil {
		return err
	}
	builder.Ret(v)

	scope[defun.Name] = &ScopeItem{Type: resolved, Value: fn.AsValue()}
	return nil
}
