package sexpr

import (
	"strconv"
	"strings"

	"github.com/agrif/lithium/internal/diagnostics"
)

// symbolChar reports whether r is part of the symbol character class
// `[A-Za-z0-9./_:*+=-]` from spec §4.A.
func symbolChar(r byte) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '/' || r == '_' || r == ':' || r == '*' || r == '+' || r == '=' || r == '-':
		return true
	default:
		return false
	}
}

// integerLexeme reports whether s matches `'-'? ('0' | [1-9][0-9]*)`.
func integerLexeme(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	if s == "0" {
		return true
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// reader scans an input string into a flat sequence of top-level
// S-expressions, tracking line/column as it goes.
type reader struct {
	input string
	pos   int
	line  int
	col   int
}

// Read parses the entirety of src as a sequence of top-level
// S-expressions (spec grammar: `exprlist := sexpr*`).
func Read(src string) ([]*Expr, error) {
	r := &reader{input: src, pos: 0, line: 1, col: 1}
	var out []*Expr
	for {
		r.skipWhitespace()
		if r.atEnd() {
			return out, nil
		}
		e, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

func (r *reader) atEnd() bool { return r.pos >= len(r.input) }

func (r *reader) peek() byte {
	if r.atEnd() {
		return 0
	}
	return r.input[r.pos]
}

func (r *reader) advance() byte {
	c := r.input[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c
}

func (r *reader) skipWhitespace() {
	for !r.atEnd() {
		switch r.input[r.pos] {
		case ' ', '\t', '\r', '\n':
			r.advance()
		default:
			return
		}
	}
}

// rawLine returns the full source line containing the byte at pos, for
// diagnostics.
func (r *reader) rawLine() string {
	start := strings.LastIndexByte(r.input[:r.pos], '\n') + 1
	end := strings.IndexByte(r.input[r.pos:], '\n')
	if end < 0 {
		return r.input[start:]
	}
	return r.input[start : r.pos+end]
}

func (r *reader) readExpr() (*Expr, error) {
	r.skipWhitespace()
	if r.atEnd() {
		return nil, diagnostics.NewReadError(diagnostics.Position{Line: r.line, Col: r.col}, "unexpected end of input")
	}
	switch r.peek() {
	case '(':
		return r.readList()
	case '"':
		return r.readString()
	default:
		return r.readSymbolOrInteger()
	}
}

func (r *reader) readList() (*Expr, error) {
	line, col, raw := r.line, r.col, r.rawLine()
	r.advance() // '('
	var items []*Expr
	for {
		r.skipWhitespace()
		if r.atEnd() {
			return nil, diagnostics.NewReadError(diagnostics.Position{Line: line, Col: col}, "unterminated list")
		}
		if r.peek() == ')' {
			r.advance()
			e := newAtom(List, line, col, raw)
			e.List = items
			return e, nil
		}
		item, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (r *reader) readString() (*Expr, error) {
	line, col, raw := r.line, r.col, r.rawLine()
	r.advance() // opening '"'
	var sb strings.Builder
	for {
		if r.atEnd() {
			return nil, diagnostics.NewReadError(diagnostics.Position{Line: line, Col: col}, "unterminated string literal")
		}
		c := r.advance()
		if c == '"' {
			e := newAtom(String, line, col, raw)
			e.StrValue = sb.String()
			return e, nil
		}
		if c == '\\' {
			if r.atEnd() {
				return nil, diagnostics.NewReadError(diagnostics.Position{Line: line, Col: col}, "unterminated escape in string literal")
			}
			esc := r.advance()
			decoded, err := decodeEscape(esc)
			if err != nil {
				return nil, diagnostics.NewReadError(diagnostics.Position{Line: r.line, Col: r.col}, "%s", err.Error())
			}
			sb.WriteByte(decoded)
			continue
		}
		sb.WriteByte(c)
	}
}

func decodeEscape(c byte) (byte, error) {
	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '0':
		return 0, nil
	default:
		return 0, strconv.ErrSyntax
	}
}

func (r *reader) readSymbolOrInteger() (*Expr, error) {
	line, col, raw := r.line, r.col, r.rawLine()
	start := r.pos
	if !symbolChar(r.peek()) {
		return nil, diagnostics.NewReadError(diagnostics.Position{Line: line, Col: col}, "illegal character %q", r.peek())
	}
	for !r.atEnd() && symbolChar(r.peek()) {
		r.advance()
	}
	lexeme := r.input[start:r.pos]

	if integerLexeme(lexeme) {
		v, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return nil, diagnostics.NewReadError(diagnostics.Position{Line: line, Col: col}, "integer literal %q out of range", lexeme)
		}
		e := newAtom(Integer, line, col, raw)
		e.IntValue = v
		return e, nil
	}

	e := newAtom(Symbol, line, col, raw)
	e.StrValue = lexeme
	return e, nil
}
