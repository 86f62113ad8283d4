package codegen

import (
	"github.com/agrif/lithium/internal/ast"
	"github.com/agrif/lithium/internal/backend"
	"github.com/agrif/lithium/internal/diagnostics"
	"github.com/agrif/lithium/internal/types"
)

// lowerType maps a fully monomorphic source type to its backend machine
// type (spec §4.E's lowering table): int becomes a plain integer, str a
// pointer to its byte data, and fn a function signature built from its
// lowered return and parameter types. at anchors a CodegenError's
// position if t names something this compiler doesn't know how to lower
// — a Quantified reaching here would mean a caller forgot to Strip it
// first; it has no case of its own and falls to the default, which
// reports it as a CodegenError.
func lowerType(tf backend.TypeFactory, t types.Type, at ast.Node) (backend.Type, error) {
	switch ty := t.(type) {
	case *types.Atomic:
		switch ty.Name {
		case "int":
			return tf.IntType(), nil
		case "str":
			return tf.PointerType(tf.ByteType()), nil
		default:
			return nil, diagnostics.NewCodegenError(posOf(at), "found unknown atomic type %s", ty.Name)
		}
	case *types.Constructed:
		if ty.Constructor != "fn" {
			return nil, diagnostics.NewCodegenError(posOf(at), "found unknown constructed type %s", ty.Constructor)
		}
		ret, err := lowerType(tf, ty.Args[0], at)
		if err != nil {
			return nil, err
		}
		params := make([]backend.Type, len(ty.Args)-1)
		for i, a := range ty.Args[1:] {
			pt, err := lowerType(tf, a, at)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		return tf.FunctionType(ret, params), nil
	default:
		return nil, diagnostics.NewCodegenError(posOf(at), "cannot lower non-monomorphic type %s", t)
	}
}

// posOf returns n's source position, or the zero Position for a nil node
// — used when lowering a built-in's config-declared signature, which has
// no originating S-expression to point at.
func posOf(n ast.Node) diagnostics.Position {
	if n == nil {
		return diagnostics.Position{}
	}
	src := n.Source()
	if src == nil {
		return diagnostics.Position{}
	}
	return diagnostics.Position{Line: src.Line, Col: src.Col}
}
