package types

import (
	"github.com/agrif/lithium/internal/ast"
	"github.com/agrif/lithium/internal/diagnostics"
)

// Scope is a typing environment, name to (possibly Indefinite, possibly
// Quantified) type.
type Scope map[string]Type

// Clone returns a shallow copy, safe to extend without mutating the
// parent binding.
func (s Scope) Clone() Scope {
	out := make(Scope, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func snapshot(scope Scope) map[string]Type {
	out := make(map[string]Type, len(scope))
	for k, v := range scope {
		out[k] = v
	}
	return out
}

// constraint is one entry on the unifier's worklist: a claim that A and B
// denote the same type. At records the AST node that produced it, used to
// anchor a TypingError's source position when unification fails.
type constraint struct {
	A, B Type
	At   ast.Node
}

// generate dispatches on the AST node's dynamic type (the open-dispatch
// point the source implements via its generic registry, see spec §9's
// note on the pre-hook pattern), runs the shared preamble (assign the
// node's type variable, snapshot assumptions), then builds this variant's
// own constraints.
//
// NodeTypes records, for every node visited, the fresh Indefinite minted
// to stand for its type, so codegen can resolve it later through the
// substitution returned by unify.
func generate(node ast.Node, nodeType Type, scope Scope, eng *Engine, nodeTypes map[ast.Node]*Indefinite) ([]constraint, error) {
	if iv, ok := nodeType.(*Indefinite); ok {
		for k, v := range snapshot(scope) {
			iv.Assumptions[k] = v
		}
		nodeTypes[node] = iv
	}

	switch n := node.(type) {
	case *ast.Variable:
		t, ok := scope[n.Name]
		if !ok {
			return nil, diagnostics.NewTypingError(posOf(n), "variable not in scope: %s", n.Name)
		}
		return []constraint{{A: nodeType, B: t, At: n}}, nil

	case *ast.IntConstant:
		return []constraint{{A: nodeType, B: Int, At: n}}, nil

	case *ast.StrConstant:
		return []constraint{{A: nodeType, B: Str, At: n}}, nil

	case *ast.Call:
		var rules []constraint

		nameType := eng.NewIndefinite()
		sub, err := generate(n.Function, nameType, scope, eng, nodeTypes)
		if err != nil {
			return nil, err
		}
		rules = append(rules, sub...)

		argTypes := make([]Type, 0, len(n.Args))
		argNodes := make([]ast.Node, 0, len(n.Args))
		for _, arg := range n.Args {
			argType := eng.NewIndefinite()
			sub, err := generate(arg, argType, scope, eng, nodeTypes)
			if err != nil {
				return nil, err
			}
			rules = append(rules, sub...)
			argTypes = append(argTypes, argType)
			argNodes = append(argNodes, arg)
		}

		// FnAt tags the return position with the call itself and each
		// parameter position with its own argument expression, so a
		// decomposed mismatch can be reported at the specific argument
		// that caused it rather than at the call as a whole.
		rules = append(rules, constraint{A: nameType, B: FnAt(nodeType, n, argTypes, argNodes), At: n})
		return rules, nil

	case *ast.Defun:
		subscope := scope.Clone()
		argTypes := make([]Type, 0, len(n.Arguments))
		for _, name := range n.Arguments {
			argType := eng.NewIndefinite()
			for k, v := range snapshot(scope) {
				argType.Assumptions[k] = v
			}
			argTypes = append(argTypes, argType)
			subscope[name] = argType
		}
		bodyType := eng.NewIndefinite()

		fnType := Fn(bodyType, argTypes...)
		rules := []constraint{{A: nodeType, B: fnType, At: n}}

		body := n.Body[len(n.Body)-1]
		sub, err := generate(body, bodyType, subscope, eng, nodeTypes)
		if err != nil {
			return nil, err
		}
		return append(rules, sub...), nil

	default:
		return nil, diagnostics.NewTypingError(posOf(node), "no typing rule for %T", node)
	}
}

func posOf(n ast.Node) diagnostics.Position {
	src := n.Source()
	if src == nil {
		return diagnostics.Position{}
	}
	return diagnostics.Position{Line: src.Line, Col: src.Col}
}
