package lltext

import (
	"fmt"
	"strings"

	"github.com/agrif/lithium/internal/backend"
)

// Function is a declared or defined function. A Function with no blocks
// renders as an extern declaration, matching how "puts" is lazily
// introduced into the module the first time codegen needs it.
type Function struct {
	mod            *Module
	name           string
	ret            backend.Type
	paramTypesText []string
	paramNames     []string
	blocks         []*Block
	nextTemp       int
}

func (f *Function) AppendBlock(name string) backend.Block {
	b := &Block{fn: f, name: name}
	f.blocks = append(f.blocks, b)
	return b
}

func (f *Function) Param(i int) backend.Value {
	name := f.paramNames[i]
	if name == "" {
		name = fmt.Sprintf("arg%d", i)
	}
	return &value{typ: irType(f.paramTypesText[i]), text: "%" + name}
}

func (f *Function) SetParamName(i int, name string) {
	f.paramNames[i] = name
}

func (f *Function) AsValue() backend.Value {
	sig := &fnType{ret: f.ret, params: f.paramTypesText}
	return &value{typ: sig, text: "@" + f.name}
}

func (f *Function) freshTemp() string {
	n := f.nextTemp
	f.nextTemp++
	return fmt.Sprintf("%%t%d", n)
}

func (f *Function) render() string {
	params := make([]string, len(f.paramTypesText))
	for i, t := range f.paramTypesText {
		name := f.paramNames[i]
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		params[i] = fmt.Sprintf("%s %%%s", t, name)
	}
	if len(f.blocks) == 0 {
		return fmt.Sprintf("declare %s @%s(%s)\n", f.ret, f.name, strings.Join(params, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "define %s @%s(%s) {\n", f.ret, f.name, strings.Join(params, ", "))
	for _, blk := range f.blocks {
		fmt.Fprintf(&b, "%s:\n", blk.name)
		for _, line := range blk.instructions {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// Block is one basic block of instructions.
type Block struct {
	fn           *Function
	name         string
	instructions []string
}

func (b *Block) Name() string { return b.name }
