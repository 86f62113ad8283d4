// Package lltext is the one concrete backend.Module implementation in
// this tree: it renders the abstract SSA facade (internal/backend) as
// textual, readable-subset LLVM IR. No LLVM Go binding exists anywhere in
// the retrieved corpus this compiler was grounded on, so this package is
// the deliberately standard-library-only exception to that rule (see
// DESIGN.md).
package lltext

import (
	"fmt"
	"strings"

	"github.com/agrif/lithium/internal/backend"
)

// Module accumulates function and global definitions and renders them as
// one textual IR module on String().
type Module struct {
	name      string
	functions []*Function
	globals   []*global
}

type global struct {
	name        string
	ty          backend.Type
	initializer backend.Value
}

// New returns an empty module named name.
func New(name string) *Module {
	return &Module{name: name}
}

func (m *Module) IntType() backend.Type  { return irType("i64") }
func (m *Module) ByteType() backend.Type { return irType("i8") }
func (m *Module) ArrayType(n int, elem backend.Type) backend.Type {
	return irType(fmt.Sprintf("[%d x %s]", n, elem))
}
func (m *Module) PointerType(elem backend.Type) backend.Type {
	return irType(fmt.Sprintf("%s*", elem))
}
func (m *Module) FunctionType(ret backend.Type, params []backend.Type) backend.Type {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return &fnType{ret: ret, params: parts}
}

func (m *Module) AddFunction(ty backend.Type, name string) backend.Function {
	ft, ok := ty.(*fnType)
	if !ok {
		panic("lltext: AddFunction requires a type built by Module.FunctionType")
	}
	fn := &Function{mod: m, name: name, ret: ft.ret, paramTypesText: ft.params}
	fn.paramNames = make([]string, len(ft.params))
	m.functions = append(m.functions, fn)
	return fn
}

func (m *Module) AddGlobal(ty backend.Type, name string, initializer backend.Value) backend.Value {
	m.globals = append(m.globals, &global{name: name, ty: ty, initializer: initializer})
	return &value{typ: irType(fmt.Sprintf("%s*", ty)), text: "@" + name}
}

func (m *Module) NewBuilder() backend.Builder {
	return &Builder{}
}

// String renders every global then every function, in the order they
// were added — which is source order, satisfying the determinism
// property that only monotone counter names vary between runs.
func (m *Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "; ModuleID = '%s'\n", m.name)
	for _, g := range m.globals {
		fmt.Fprintf(&b, "@%s = global %s %s\n", g.name, g.ty, g.initializer)
	}
	for _, fn := range m.functions {
		b.WriteString(fn.render())
	}
	return b.String()
}
