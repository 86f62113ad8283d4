package lltext

import (
	"fmt"
	"strings"

	"github.com/agrif/lithium/internal/backend"
)

// irType is a plain textual machine type ("i64", "i8*", "[6 x i8]").
type irType string

func (t irType) String() string { return string(t) }

// fnType is a function signature, rendered "ret (p1, p2)" the way a
// call or declaration site needs it.
type fnType struct {
	ret    backend.Type
	params []string
}

func (t *fnType) String() string {
	return fmt.Sprintf("%s (%s)", t.ret, strings.Join(t.params, ", "))
}

// value is every concrete backend.Value this package produces: a typed
// operand with its rendered textual reference ("%t3", "@add1", "5").
type value struct {
	typ  backend.Type
	text string
}

func (v *value) String() string { return v.text }
