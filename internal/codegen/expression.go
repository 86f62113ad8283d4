package codegen

import (
	"github.com/agrif/lithium/internal/ast"
	"github.com/agrif/lithium/internal/backend"
	"github.com/agrif/lithium/internal/diagnostics"
)

// Compiled is what compiling an expression produces: either a plain
// backend value, or — when the expression names a built-in directly,
// e.g. the function position of a call — its Builtin descriptor, mirroring
// ce_Variable's choice to hand back the Builtin object itself rather than
// a code value when scope[name] isn't an ordinary ScopeItem.
type Compiled struct {
	Value   backend.Value
	Builtin Builtin
}

// compileValue rejects a Builtin surfacing somewhere only a value is
// usable (an ordinary argument, an addend) — the source has no such
// guard and would hand a Builtin object to code expecting an LLVM value;
// this compiler reports it instead of producing a malformed module.
func compileValue(c Compiled, node ast.Expr) (backend.Value, error) {
	if c.Builtin != nil {
		return nil, diagnostics.NewCodegenError(posOf(node), "built-in used as a plain value")
	}
	return c.Value, nil
}

// CompileExpression lowers expr to a backend value (or, for a bare
// reference to a built-in, its descriptor), following compile_expression's
// dispatch exactly: constants lower via their monomorphized type, a
// variable reference looks itself up in scope, and a call compiles its
// function and arguments before dispatching to a Builtin's own call
// sequence or an ordinary builder.Call.
func (g *Generator) CompileExpression(expr ast.Expr, fn backend.Function, b backend.Builder, scope Scope, typing Typing) (Compiled, error) {
	switch e := expr.(type) {
	case *ast.IntConstant:
		ty, err := lowerType(g.mod, typing.Of(e), e)
		if err != nil {
			return Compiled{}, err
		}
		return Compiled{Value: b.ConstInt(ty, e.Value)}, nil

	case *ast.StrConstant:
		data := []byte(e.Value)
		arr := g.mod.ArrayType(len(data)+1, g.mod.ByteType())
		name := g.nextStrGlobal()
		global := g.mod.AddGlobal(arr, name, b.ConstStr(data))
		zero := b.ConstInt(g.mod.IntType(), 0)
		return Compiled{Value: b.Gep(global, []backend.Value{zero, zero})}, nil

	case *ast.Variable:
		item, ok := scope[e.Name]
		if !ok {
			return Compiled{}, diagnostics.NewCodegenError(posOf(e), "variable not in scope: %s", e.Name)
		}
		if item.BuiltinName != "" {
			b, err := g.registry.Get(item.BuiltinName)
			if err != nil {
				return Compiled{}, err
			}
			return Compiled{Builtin: b}, nil
		}
		return Compiled{Value: item.Value}, nil

	case *ast.Call:
		funcCompiled, err := g.CompileExpression(e.Function, fn, b, scope, typing)
		if err != nil {
			return Compiled{}, err
		}
		args := make([]backend.Value, len(e.Args))
		for i, a := range e.Args {
			argCompiled, err := g.CompileExpression(a, fn, b, scope, typing)
			if err != nil {
				return Compiled{}, err
			}
			v, err := compileValue(argCompiled, a)
			if err != nil {
				return Compiled{}, err
			}
			args[i] = v
		}
		if funcCompiled.Builtin != nil {
			return Compiled{Value: funcCompiled.Builtin.Call(args, fn, b)}, nil
		}
		return Compiled{Value: b.Call(funcCompiled.Value, args)}, nil

	default:
		return Compiled{}, diagnostics.NewCodegenError(posOf(expr), "no compilation rule for %T", expr)
	}
}
