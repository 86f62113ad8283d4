package sexpr

import "strconv"

// Render serializes e back to canonical S-expression syntax: single
// spaces between list elements, decimal integers, and backslash-escaped
// strings. Used to check the reader round-trip invariant (spec §8.1).
func Render(e *Expr) string {
	switch e.Kind {
	case Integer:
		return strconv.FormatInt(e.IntValue, 10)
	case Symbol:
		return e.StrValue
	case String:
		return strconv.Quote(e.StrValue)
	case List:
		s := "("
		for i, item := range e.List {
			if i > 0 {
				s += " "
			}
			s += Render(item)
		}
		return s + ")"
	default:
		return "?"
	}
}
