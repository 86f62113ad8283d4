// Package types implements the Hindley-Milner-flavored type engine (spec
// §4.D): constraint generation over the AST, unification with explicit
// substitution, and generalization of defun bindings to rank-1 polymorphic
// schemes.
package types

import (
	"fmt"
	"strings"

	"github.com/agrif/lithium/internal/ast"
)

// Type is satisfied by every type representation: Indefinite (unification
// variable), Atomic (int, str), Constructed (fn), and Quantified (forall).
type Type interface {
	fmt.Stringer
	// Substitute returns a type with every occurrence of x replaced by y.
	// x is always an *Indefinite.
	Substitute(x *Indefinite, y Type) Type
	// Instantiate strips every outer Quantified, if any, replacing each
	// bound variable with a fresh Indefinite minted from eng. Non-quantified
	// types return themselves unchanged and ignore eng.
	Instantiate(eng *Engine) Type
	// FreeTypeVars returns the Indefinite variables occurring free in t.
	FreeTypeVars() []*Indefinite
	// Equal reports structural equality (alpha-equivalence for Quantified).
	Equal(other Type) bool
}

// Indefinite is a fresh unification variable. Two Indefinites are equal
// iff they are the same object; each also carries a nominal printable
// name and an assumptions side-table snapshotting the lexical scope in
// effect when it was introduced (used during generalization to tell
// free-in-environment variables from free-in-result ones).
type Indefinite struct {
	id          int
	name        string
	Assumptions map[string]Type
}

func (v *Indefinite) String() string { return v.name }

func (v *Indefinite) Substitute(x *Indefinite, y Type) Type {
	if v == x {
		return y
	}
	return v
}

func (v *Indefinite) Instantiate(*Engine) Type { return v }

func (v *Indefinite) FreeTypeVars() []*Indefinite { return []*Indefinite{v} }

func (v *Indefinite) Equal(other Type) bool {
	o, ok := other.(*Indefinite)
	return ok && o == v
}

// Atomic is a base type named by a string ("int", "str").
type Atomic struct {
	Name string
}

func (a *Atomic) String() string { return a.Name }

func (a *Atomic) Substitute(*Indefinite, Type) Type { return a }

func (a *Atomic) Instantiate(*Engine) Type { return a }

func (a *Atomic) FreeTypeVars() []*Indefinite { return nil }

func (a *Atomic) Equal(other Type) bool {
	o, ok := other.(*Atomic)
	return ok && o.Name == a.Name
}

// Int and Str are the two atomic types the built-in surface uses.
var (
	Int = &Atomic{Name: "int"}
	Str = &Atomic{Name: "str"}
)

// Constructed applies a type constructor to a sequence of argument types.
// The only constructor this compiler needs is "fn", whose Args are laid
// out as (return, param1, ..., paramN).
//
// ArgNodes, if non-nil, parallels Args with the AST node each position
// originated from (a call's own node for the return slot, its argument
// expressions for the parameter slots). unify uses it to re-anchor a
// decomposed constraint at the specific argument that produced it,
// rather than the whole call. It carries no meaning for type identity:
// Equal ignores it, and Substitute passes it through unchanged.
type Constructed struct {
	Constructor string
	Args        []Type
	ArgNodes    []ast.Node
}

// Fn builds a Constructed("fn", ret, params...) function type with no
// per-argument node information.
func Fn(ret Type, params ...Type) *Constructed {
	return FnAt(ret, nil, params, nil)
}

// FnAt builds a Constructed("fn", ret, params...) function type whose
// Args carry retNode/paramNodes as ArgNodes (retNode first, then one
// entry per param, positionally). Either nodes slice may be nil.
func FnAt(ret Type, retNode ast.Node, params []Type, paramNodes []ast.Node) *Constructed {
	args := make([]Type, 0, len(params)+1)
	args = append(args, ret)
	args = append(args, params...)

	var nodes []ast.Node
	if retNode != nil || paramNodes != nil {
		nodes = make([]ast.Node, len(args))
		nodes[0] = retNode
		copy(nodes[1:], paramNodes)
	}

	return &Constructed{Constructor: "fn", Args: args, ArgNodes: nodes}
}

func (c *Constructed) String() string {
	if c.Constructor == "fn" && len(c.Args) >= 1 {
		parts := make([]string, len(c.Args)-1)
		for i, a := range c.Args[1:] {
			parts[i] = a.String()
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), c.Args[0])
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Constructor, strings.Join(parts, ", "))
}

func (c *Constructed) Substitute(x *Indefinite, y Type) Type {
	args := make([]Type, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Substitute(x, y)
	}
	return &Constructed{Constructor: c.Constructor, Args: args, ArgNodes: c.ArgNodes}
}

func (c *Constructed) Instantiate(*Engine) Type { return c }

func (c *Constructed) FreeTypeVars() []*Indefinite {
	var out []*Indefinite
	for _, a := range c.Args {
		out = append(out, a.FreeTypeVars()...)
	}
	return out
}

func (c *Constructed) Equal(other Type) bool {
	o, ok := other.(*Constructed)
	if !ok || o.Constructor != c.Constructor || len(o.Args) != len(c.Args) {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Quantified is a universally quantified type, forall Variable. Result.
// The only binder this compiler produces is generalization of a defun's
// function type.
type Quantified struct {
	Variable *Indefinite
	Result   Type
}

func (q *Quantified) String() string {
	return fmt.Sprintf("forall %s. %s", q.Variable, q.Result)
}

func (q *Quantified) Substitute(x *Indefinite, y Type) Type {
	if x == q.Variable {
		panic("types: substituted variable shadows a Quantified binder")
	}
	return &Quantified{Variable: q.Variable, Result: q.Result.Substitute(x, y)}
}

// Instantiate strips this Quantified and every Quantified directly nested
// in its Result, replacing each bound Variable by a fresh Indefinite
// minted from eng — this fresh variable can
// end up in a persisted, printable type (a call site's resolved argument
// or return type), so it must carry a real name like any other Engine
// variable rather than an empty one.
func (q *Quantified) Instantiate(eng *Engine) Type {
	fresh := eng.NewIndefinite()
	return q.Result.Substitute(q.Variable, fresh).Instantiate(eng)
}

func (q *Quantified) FreeTypeVars() []*Indefinite {
	var out []*Indefinite
	for _, t := range q.Result.FreeTypeVars() {
		if t != q.Variable {
			out = append(out, t)
		}
	}
	return out
}

func (q *Quantified) Equal(other Type) bool {
	o, ok := other.(*Quantified)
	if !ok {
		return false
	}
	// fresh never escapes this comparison, so it takes the fixed nominal
	// name freshEqualityIndefinite gives it rather than requiring an
	// *Engine here too.
	fresh := freshEqualityIndefinite()
	return q.Result.Substitute(q.Variable, fresh).Equal(o.Result.Substitute(o.Variable, fresh))
}
