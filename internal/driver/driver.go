// Package driver wires the pipeline stages together (spec §4.G): read
// the whole source, parse every top-level form into a statement, type
// and compile each in turn against a running scope seeded with the
// built-in surface, and render the finished module. It is the only place
// in this tree that sequences the stages end to end; every stage it
// calls remains a pure function of its own inputs.
package driver

import (
	"fmt"

	"github.com/agrif/lithium/internal/ast"
	"github.com/agrif/lithium/internal/backend/lltext"
	"github.com/agrif/lithium/internal/codegen"
	"github.com/agrif/lithium/internal/sexpr"
	"github.com/agrif/lithium/internal/types"
)

// Compile runs the reader, parser, type engine, and code generator over
// src in order and returns the rendered textual module. moduleName names
// the emitted module (spec §4.E's module identity has no source-level
// counterpart, so the driver supplies one).
func Compile(src string, moduleName string) (string, error) {
	exprs, err := sexpr.Read(src)
	if err != nil {
		return "", err
	}

	stmts, err := ast.ParseProgram(exprs)
	if err != nil {
		return "", err
	}

	mod := lltext.New(moduleName)

	registry, err := codegen.NewRegistry(mod)
	if err != nil {
		return "", fmt.Errorf("driver: %w", err)
	}
	names := registry.Names()
	scope := make(codegen.Scope, len(names))
	for _, name := range names {
		scope[name] = &codegen.ScopeItem{Type: registry.Signature(name), BuiltinName: name}
	}

	gen := codegen.NewGenerator(mod, types.NewEngine(), registry)
	for _, stmt := range stmts {
		if err := gen.CompileStatement(stmt, scope); err != nil {
			return "", err
		}
	}

	return mod.String(), nil
}
