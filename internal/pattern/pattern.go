// Package pattern implements the declarative S-expression matching layer
// from spec §4.B: a small set of composable patterns, each able to
// cheaply test a match (matchq) or test-and-extract (match) into a named
// info dictionary.
package pattern

import (
	"fmt"

	"github.com/agrif/lithium/internal/sexpr"
)

// MatchError is raised by matchq/Match on a mismatch. It always carries
// the offending expression so the parser can re-anchor a ParseError at
// its location.
type MatchError struct {
	Expr *sexpr.Expr
	Msg  string
}

func (e *MatchError) Error() string { return e.Msg }

func newMatchError(e *sexpr.Expr, format string, args ...any) *MatchError {
	return &MatchError{Expr: e, Msg: fmt.Sprintf(format, args...)}
}

// Info is the result of a successful Match: named sub-pattern conversions,
// keyed by pattern name. A Form pattern with a tail additionally stores
// the tail conversions under the key "tail".
type Info map[string]any

// Pattern is the common interface for every match rule.
type Pattern interface {
	// Matchq raises a *MatchError if expr does not match; it never
	// extracts any data.
	Matchq(expr *sexpr.Expr) error
	// convert extracts this pattern's value from an expr already known
	// to satisfy Matchq.
	convert(expr *sexpr.Expr) any
	// name, if non-empty, is the key under which convert's result is
	// stored in an enclosing Form's Info.
	name() string
}

// Match runs Matchq then, on success, returns this pattern's own
// converted value (not an Info — only Form produces those).
func Match(p Pattern, expr *sexpr.Expr) (any, error) {
	if err := p.Matchq(expr); err != nil {
		return nil, err
	}
	return p.convert(expr), nil
}

// base holds the optional name shared by every pattern constructor.
type base struct{ n string }

func (b base) name() string { return b.n }

// ---- Any ----

type any_ struct {
	base
}

// Any matches any expression unconditionally; optionally named.
func Any(name ...string) Pattern {
	return any_{base{firstName(name)}}
}

func (any_) Matchq(*sexpr.Expr) error   { return nil }
func (any_) convert(e *sexpr.Expr) any { return e }

// ---- Keyword ----

type keyword struct {
	base
	word string
}

// Keyword matches a Symbol whose text equals word.
func Keyword(word string, name ...string) Pattern {
	return keyword{base{firstName(name)}, word}
}

func (k keyword) Matchq(e *sexpr.Expr) error {
	if e == nil || e.Kind != sexpr.Symbol || e.StrValue != k.word {
		return newMatchError(e, "expected keyword %s", k.word)
	}
	return nil
}

func (k keyword) convert(*sexpr.Expr) any { return k.word }

// ---- OfClass / Sym ----

type ofClass struct {
	base
	kind sexpr.Kind
}

// OfClass matches an expression of the given variant; convert returns the
// inner value (IntValue, StrValue, or the nested List).
func OfClass(kind sexpr.Kind, name ...string) Pattern {
	return ofClass{base{firstName(name)}, kind}
}

// Sym is shorthand for OfClass(sexpr.Symbol, ...).
func Sym(name ...string) Pattern {
	return OfClass(sexpr.Symbol, name...)
}

func (p ofClass) Matchq(e *sexpr.Expr) error {
	if e == nil || e.Kind != p.kind {
		return newMatchError(e, "expected %s", p.kind)
	}
	return nil
}

func (p ofClass) convert(e *sexpr.Expr) any {
	switch p.kind {
	case sexpr.Integer:
		return e.IntValue
	case sexpr.Symbol, sexpr.String:
		return e.StrValue
	case sexpr.List:
		return e.List
	default:
		return nil
	}
}

// ---- ListOf ----

type listOf struct {
	base
	sub Pattern
}

// ListOf matches a List all of whose elements match sub; convert returns
// the sequence of sub's converted elements.
func ListOf(sub Pattern, name ...string) Pattern {
	return listOf{base{firstName(name)}, sub}
}

func (p listOf) Matchq(e *sexpr.Expr) error {
	if e == nil || e.Kind != sexpr.List {
		return newMatchError(e, "expected list")
	}
	for _, sub := range e.List {
		if err := p.sub.Matchq(sub); err != nil {
			return err
		}
	}
	return nil
}

func (p listOf) convert(e *sexpr.Expr) any {
	out := make([]any, len(e.List))
	for i, sub := range e.List {
		out[i] = p.sub.convert(sub)
	}
	return out
}

// ---- Form ----

type form struct {
	base
	heads []Pattern
	tail  Pattern // nil if the list must have exactly len(heads) elements
}

// Form matches a List whose first len(heads) elements match heads
// positionally. If tail is non-nil, any remaining elements must each
// match tail; otherwise the list length must equal len(heads) exactly.
func Form(heads []Pattern, tail Pattern) Pattern {
	return form{base{}, heads, tail}
}

func (f form) Matchq(e *sexpr.Expr) error {
	if e == nil || e.Kind != sexpr.List {
		return newMatchError(e, "expected list")
	}
	items := e.List

	if f.tail == nil {
		if len(items) > len(f.heads) {
			return newMatchError(e, "unexpected items at end of list")
		}
		if len(items) < len(f.heads) {
			return f.missingAt(e, items)
		}
		for i, h := range f.heads {
			if err := h.Matchq(items[i]); err != nil {
				return err
			}
		}
		return nil
	}

	// With a tail, a too-short list is still an error at the missing
	// head position; a too-long list never is (tail absorbs the rest).
	if len(items) < len(f.heads) {
		return f.missingAt(e, items)
	}
	for i, h := range f.heads {
		if err := h.Matchq(items[i]); err != nil {
			return err
		}
	}
	for _, item := range items[len(f.heads):] {
		if err := f.tail.Matchq(item); err != nil {
			return err
		}
	}
	return nil
}

// missingAt matches as much of items as is present against the
// corresponding heads, then reports the first missing position,
// re-anchored to the full list's location — mirroring patterns.py's
// PForm.matchq ValueError recovery path.
func (f form) missingAt(list *sexpr.Expr, items []*sexpr.Expr) error {
	for i := range items {
		if err := f.heads[i].Matchq(items[i]); err != nil {
			return err
		}
	}
	missing := f.heads[len(items)]
	if err := missing.Matchq(nil); err != nil {
		return newMatchError(list, "%s at end of list", err.Error())
	}
	// The missing head's own pattern (e.g. Any) raises nothing on a nil
	// expr, but a list short of its required length is still a mismatch.
	return newMatchError(list, "missing item at end of list")
}

func (f form) convert(e *sexpr.Expr) any {
	items := e.List
	info := Info{}
	var tail []any

	for i, h := range f.heads {
		if h.name() != "" {
			info[h.name()] = h.convert(items[i])
		}
	}
	if f.tail != nil {
		for _, item := range items[len(f.heads):] {
			tail = append(tail, f.tail.convert(item))
		}
		info["tail"] = tail
	}
	return info
}

// MatchForm runs Matchq on a Form then, on success, returns its Info.
func MatchForm(p Pattern, expr *sexpr.Expr) (Info, error) {
	v, err := Match(p, expr)
	if err != nil {
		return nil, err
	}
	return v.(Info), nil
}

func firstName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
