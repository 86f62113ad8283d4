package types

import "github.com/agrif/lithium/internal/ast"

// Result is the outcome of Typify: a substitution from every Indefinite
// minted during constraint generation to its resolved (possibly
// Quantified) type, plus the side-map recording which Indefinite stood
// for which AST node — the ownership-disciplined stand-in for the
// source's practice of writing a `type` field directly onto each node
// (spec §9).
type Result struct {
	subst     map[*Indefinite]Type
	nodeTypes map[ast.Node]*Indefinite
}

// Resolve looks up the type inferred for node, defaulting to its own
// stored type variable if the substitution never bound it (matches
// `types.get(expr.type, expr.type)` in the source).
func (r *Result) Resolve(node ast.Node) Type {
	v, ok := r.nodeTypes[node]
	if !ok {
		return nil
	}
	if t, ok := r.subst[v]; ok {
		return t
	}
	return v
}

// ResolveWith resolves node like Resolve, then applies repl (a var to
// replacement substitution, as produced by Strip) to the result. Codegen
// uses this to push a chosen monomorphic instantiation of a generalized
// defun's bound variables down into each of its body node's own types.
func (r *Result) ResolveWith(node ast.Node, repl map[*Indefinite]Type) Type {
	t := r.Resolve(node)
	if t == nil {
		return nil
	}
	for x, y := range repl {
		t = t.Substitute(x, y)
	}
	return t
}

// Strip repeatedly removes an outer Quantified from t, obtaining each
// bound variable's replacement from fresh, and returns the fully
// monomorphic result together with the substitution that produced it.
func Strip(t Type, fresh func() Type) (Type, map[*Indefinite]Type) {
	repl := map[*Indefinite]Type{}
	for {
		q, ok := t.(*Quantified)
		if !ok {
			break
		}
		r := fresh()
		repl[q.Variable] = r
		t = q.Result.Substitute(q.Variable, r)
	}
	return t, repl
}

// Typify runs constraint generation followed by unification over a
// single top-level node (a Defun, in this compiler) against scope, the
// enclosing names currently in scope.
func Typify(node ast.Node, scope Scope, eng *Engine) (*Result, error) {
	nodeTypes := map[ast.Node]*Indefinite{}
	t := eng.NewIndefinite()

	rules, err := generate(node, t, scope, eng, nodeTypes)
	if err != nil {
		return nil, err
	}
	subst, err := unify(rules, eng)
	if err != nil {
		return nil, err
	}
	return &Result{subst: subst, nodeTypes: nodeTypes}, nil
}
