// Package backend declares the abstract SSA module-builder interface the
// code generator targets (spec §4.E). The only concrete implementation in
// this tree is internal/backend/lltext, a textual-LLVM-IR emitter;
// nothing else in this package or its callers assumes that choice.
package backend

// Type is an opaque backend machine type: a lowered Atomic or Constructed
// source type (spec §4.E's "type lowering" table).
type Type interface {
	String() string
}

// Value is anything a builder operation can produce or consume: a
// function parameter, an instruction result, a constant, or a global
// address.
type Value interface {
	String() string
}

// TypeFactory lowers the handful of machine shapes this compiler's type
// system needs: plain integers, pointers (for string data), array types
// (for string globals' storage), and function signatures.
type TypeFactory interface {
	IntType() Type
	ByteType() Type
	PointerType(elem Type) Type
	ArrayType(n int, elem Type) Type
	FunctionType(ret Type, params []Type) Type
}

// Module is a single compilation unit: a sequence of functions and
// globals that, once built, renders to the backend's native textual or
// binary form.
type Module interface {
	TypeFactory

	// AddFunction declares a function with the given signature and name,
	// returning a handle to build its body. A caller that never appends
	// a block to the result leaves it a bare extern declaration.
	AddFunction(fnType Type, name string) Function

	// AddGlobal declares a module-level global of the given type,
	// initialized to initializer, returning its address as a Value.
	AddGlobal(ty Type, name string, initializer Value) Value

	// NewBuilder returns a fresh Builder, unattached to any block.
	NewBuilder() Builder

	// String renders the finished module in the backend's native form.
	String() string
}

// Function is a handle to a declared or defined function.
type Function interface {
	// AppendBlock adds a basic block to this function's body and returns
	// a handle a Builder can attach to.
	AppendBlock(name string) Block

	// Param returns the i'th parameter as a Value; SetParamName gives it
	// a readable name in the rendered output.
	Param(i int) Value
	SetParamName(i int, name string)

	// AsValue returns this function itself as a callable Value (for
	// builder.Call and for binding it into the compiler's scope).
	AsValue() Value
}

// Block is an attachment point for instructions.
type Block interface {
	Name() string
}

// Builder emits instructions into whichever Block it is last Attach()ed
// to.
type Builder interface {
	Attach(b Block)

	ConstInt(ty Type, value int64) Value
	ConstStr(data []byte) Value

	// Gep computes an element pointer from ptr offset by indices — used
	// here only for the canonical 0,0 decay of a string global to an i8
	// pointer.
	Gep(ptr Value, indices []Value) Value

	Add(a, b Value) Value
	Call(fn Value, args []Value) Value
	Ret(value Value)
}
