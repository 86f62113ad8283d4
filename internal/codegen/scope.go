package codegen

import (
	"github.com/agrif/lithium/internal/ast"
	"github.com/agrif/lithium/internal/backend"
	"github.com/agrif/lithium/internal/types"
)

// ScopeItem is a name's binding in the codegen scope: either a built-in
// (named, but not yet necessarily constructed against the backend
// module — see Registry) or a concrete backend value (a compiled
// function, or a formal parameter), always paired with its inferred
// type.
type ScopeItem struct {
	Type        types.Type
	Value       backend.Value
	BuiltinName string
}

// Scope is the codegen-time counterpart of types.Scope: name to binding,
// carrying backend values alongside types.
type Scope map[string]*ScopeItem

// Clone returns a shallow copy, safe to extend (e.g. with a function's
// parameters) without mutating the parent binding.
func (s Scope) Clone() Scope {
	out := make(Scope, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Types projects this scope down to a types.Scope for the type engine.
func (s Scope) Types() types.Scope {
	out := make(types.Scope, len(s))
	for k, v := range s {
		out[k] = v.Type
	}
	return out
}

// Typing bundles a Defun's typing result with the monomorphizing
// substitution (if any) chosen for it, so every sub-expression resolves
// its type through the same pair.
type Typing struct {
	Result *types.Result
	Repl   map[*types.Indefinite]types.Type
}

// Of resolves node's inferred type within this typing context — the
// node's stored Indefinite, looked up through Result's substitution and
// then specialized by Repl, the same way a Quantified top-level binding's
// chosen monomorphic instantiation flows down to every node in its body.
func (t Typing) Of(node ast.Node) types.Type {
	return t.Result.ResolveWith(node, t.Repl)
}
