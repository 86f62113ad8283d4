package types

import "strconv"

// Engine mints fresh Indefinite type variables with source-order,
// monotonically increasing nominal names (A, B, ..., Z, A1, B1, ...). One
// Engine is created per compilation (see spec's concurrency model: the
// only state this compiler shares across an otherwise pure pipeline is
// this counter and the codegen string-global counter, both scoped to a
// single run rather than held in a package-level global).
type Engine struct {
	next int
}

// NewEngine returns a fresh, zeroed counter for one compilation.
func NewEngine() *Engine {
	return &Engine{}
}

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewIndefinite allocates a fresh type variable with an empty assumptions
// table; callers populate it from the current scope immediately after.
func (e *Engine) NewIndefinite() *Indefinite {
	id := e.next
	e.next++
	return newNamedIndefinite(id)
}

func newNamedIndefinite(id int) *Indefinite {
	letter := letters[id%len(letters)]
	suffix := id / len(letters)
	name := string(letter)
	if suffix > 0 {
		name = string(letter) + strconv.Itoa(suffix)
	}
	return &Indefinite{id: id, name: name, Assumptions: map[string]Type{}}
}

// freshEqualityIndefinite names the throwaway stand-in variable
// Quantified.Equal mints to compare two binders for alpha-equivalence.
// That variable never escapes the comparison it's built for (unlike
// Instantiate's, it is never stored in a substitution or printed), so a
// fixed nominal name is enough — it never needs to be distinguished from
// any other variable, and minting it this way avoids adding package-level
// mutable state purely to name a value nobody will ever see.
func freshEqualityIndefinite() *Indefinite {
	return &Indefinite{name: "~", Assumptions: map[string]Type{}}
}
