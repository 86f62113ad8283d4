package lltext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agrif/lithium/internal/backend"
)

// Builder emits instructions into whichever Block it was last Attach()ed
// to.
type Builder struct {
	cur *Block
}

func (bd *Builder) Attach(b backend.Block) {
	bd.cur = b.(*Block)
}

func (bd *Builder) emit(line string) {
	bd.cur.instructions = append(bd.cur.instructions, line)
}

func (bd *Builder) ConstInt(ty backend.Type, v int64) backend.Value {
	return &value{typ: ty, text: strconv.FormatInt(v, 10)}
}

// ConstStr returns a constant array initializer for data plus a trailing
// NUL, rendered the way an LLVM global's initializer literal is written.
func (bd *Builder) ConstStr(data []byte) backend.Value {
	ty := irType(fmt.Sprintf("[%d x i8]", len(data)+1))
	var sb strings.Builder
	sb.WriteString(`c"`)
	for _, c := range append(append([]byte(nil), data...), 0) {
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, "\\%02X", c)
		}
	}
	sb.WriteByte('"')
	return &value{typ: ty, text: sb.String()}
}

func (bd *Builder) Gep(ptr backend.Value, indices []backend.Value) backend.Value {
	pv := ptr.(*value)
	elem := strings.TrimSuffix(pv.typ.String(), "*")
	idxParts := make([]string, len(indices))
	for i, idx := range indices {
		iv := idx.(*value)
		idxParts[i] = fmt.Sprintf("%s %s", iv.typ, iv.text)
	}
	temp := bd.cur.fn.freshTemp()
	bd.emit(fmt.Sprintf("%s = getelementptr %s, %s %s, %s", temp, elem, pv.typ, pv.text, strings.Join(idxParts, ", ")))
	return &value{typ: irType("i8*"), text: temp}
}

func (bd *Builder) Add(a, b backend.Value) backend.Value {
	av, bv := a.(*value), b.(*value)
	temp := bd.cur.fn.freshTemp()
	bd.emit(fmt.Sprintf("%s = add %s %s, %s", temp, av.typ, av.text, bv.text))
	return &value{typ: av.typ, text: temp}
}

func (bd *Builder) Call(fn backend.Value, args []backend.Value) backend.Value {
	fv := fn.(*value)
	sig, ok := fv.typ.(*fnType)
	if !ok {
		panic("lltext: Call requires a function value")
	}
	argParts := make([]string, len(args))
	for i, a := range args {
		av := a.(*value)
		argParts[i] = fmt.Sprintf("%s %s", av.typ, av.text)
	}
	if sig.ret.String() == "void" {
		bd.emit(fmt.Sprintf("call %s %s(%s)", sig.ret, fv.text, strings.Join(argParts, ", ")))
		return &value{typ: sig.ret, text: ""}
	}
	temp := bd.cur.fn.freshTemp()
	bd.emit(fmt.Sprintf("%s = call %s %s(%s)", temp, sig.ret, fv.text, strings.Join(argParts, ", ")))
	return &value{typ: sig.ret, text: temp}
}

func (bd *Builder) Ret(v backend.Value) {
	rv := v.(*value)
	bd.emit(fmt.Sprintf("ret %s %s", rv.typ, rv.text))
}
