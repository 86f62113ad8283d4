package types

import "github.com/agrif/lithium/internal/diagnostics"

// unify drains the constraint worklist, building a substitution from
// Indefinite variables to their resolved types, then generalizes each
// binding whose free variables don't also occur in its own assumptions.
//
// This is a direct translation of the source's worklist algorithm: pop
// the front constraint, bind an Indefinite directly if either side is
// one, otherwise instantiate both sides (stripping any Quantified) and
// either confirm equality, decompose matching constructors onto the
// worklist, or fail. Binding a variable rewrites every other pending
// constraint and every existing substitution entry, re-instantiating the
// bound value fresh at each occurrence — this is what gives a
// polymorphic binding an independent fresh instantiation at every
// subsequent use (spec §8 property 5). eng mints every such fresh
// variable, so it carries a real name even when minted deep inside a
// substitution rewrite.
func unify(rules []constraint, eng *Engine) (map[*Indefinite]Type, error) {
	subst := map[*Indefinite]Type{}
	stack := append([]constraint(nil), rules...)

	addSubst := func(x *Indefinite, y Type) {
		fresh := func() Type { return y.Instantiate(eng) }

		newStack := make([]constraint, len(stack))
		for i, r := range stack {
			newStack[i] = constraint{A: r.A.Substitute(x, fresh()), B: r.B.Substitute(x, fresh()), At: r.At}
		}
		stack = newStack

		newSubst := make(map[*Indefinite]Type, len(subst))
		for k, v := range subst {
			assumptions := make(map[string]Type, len(k.Assumptions))
			for name, assump := range k.Assumptions {
				assumptions[name] = assump.Substitute(x, fresh())
			}
			k.Assumptions = assumptions
			newSubst[k] = v.Substitute(x, fresh())
		}
		subst = newSubst
		subst[x] = y
	}

	for len(stack) > 0 {
		r := stack[0]
		stack = stack[1:]
		X, Y := r.A, r.B

		if X.Equal(Y) {
			continue
		}
		if xi, ok := X.(*Indefinite); ok {
			addSubst(xi, Y)
			continue
		}
		if yi, ok := Y.(*Indefinite); ok {
			addSubst(yi, X)
			continue
		}

		X = X.Instantiate(eng)
		Y = Y.Instantiate(eng)
		if X.Equal(Y) {
			continue
		}
		if xi, ok := X.(*Indefinite); ok {
			addSubst(xi, Y)
			continue
		}
		if yi, ok := Y.(*Indefinite); ok {
			addSubst(yi, X)
			continue
		}

		cx, okx := X.(*Constructed)
		cy, oky := Y.(*Constructed)
		if okx && oky && cx.Constructor == cy.Constructor && len(cx.Args) == len(cy.Args) {
			for i := range cx.Args {
				// Prefer whichever side actually knows which source node
				// produced this position (a call's argument expression,
				// say) over the parent constraint's own node, so a
				// mismatch buried inside an argument list is reported at
				// the argument itself.
				at := r.At
				if i < len(cy.ArgNodes) && cy.ArgNodes[i] != nil {
					at = cy.ArgNodes[i]
				} else if i < len(cx.ArgNodes) && cx.ArgNodes[i] != nil {
					at = cx.ArgNodes[i]
				}
				stack = append(stack, constraint{A: cx.Args[i], B: cy.Args[i], At: at})
			}
			continue
		}

		return nil, diagnostics.NewTypingError(posOf(r.At), "cannot unify %s and %s", X, Y)
	}

	isFree := func(t *Indefinite, assumptions map[string]Type) bool {
		for _, v := range assumptions {
			for _, fv := range v.FreeTypeVars() {
				if fv == t {
					return true
				}
			}
		}
		return false
	}

	quant := make(map[*Indefinite]Type, len(subst))
	for k, v := range subst {
		seen := map[*Indefinite]bool{}
		for _, t := range v.FreeTypeVars() {
			if seen[t] {
				continue
			}
			seen[t] = true
			if !isFree(t, k.Assumptions) {
				v = &Quantified{Variable: t, Result: v}
			}
		}
		quant[k] = v
	}
	return quant, nil
}
