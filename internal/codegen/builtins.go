package codegen

import (
	"fmt"

	"github.com/agrif/lithium/internal/backend"
	"github.com/agrif/lithium/internal/config"
	"github.com/agrif/lithium/internal/types"
)

// Builtin is a name bound in the initial scope whose call sequence isn't
// ordinary source: it either lowers straight to a single backend
// instruction ("+") or wraps a function declared once against the
// backend module ("puts").
type Builtin interface {
	Type() types.Type
	Call(args []backend.Value, fn backend.Function, b backend.Builder) backend.Value
}

// ctor builds one named built-in's descriptor against a module and its
// declared signature, declaring whatever backend machinery it needs
// (puts's extern declaration, say) as a side effect.
type ctor func(mod backend.Module, sig types.Type) (Builtin, error)

var ctors = map[string]ctor{
	"+":    newAddBuiltin,
	"puts": newPutsBuiltin,
}

// Registry is a (module) -> descriptor factory for every name in the
// embedded built-in config, memoized per compilation: a builtin carries
// no backend handle at definition time, matching get_builtins's own
// lazy construction — puts's extern declaration is emitted into the
// module only the first time a compiled program actually names it, not
// unconditionally for every program.
type Registry struct {
	mod   backend.Module
	sigs  map[string]types.Type
	built map[string]Builtin
}

// NewRegistry loads the embedded built-in config and validates that
// every declared name has a matching implementation, without yet
// constructing any of them against mod.
func NewRegistry(mod backend.Module) (*Registry, error) {
	docs, err := config.Builtins()
	if err != nil {
		return nil, err
	}
	sigs := make(map[string]types.Type, len(docs))
	for _, d := range docs {
		if _, ok := ctors[d.Name]; !ok {
			return nil, fmt.Errorf("codegen: built-in %q declared in config has no implementation", d.Name)
		}
		ty, err := d.Signature()
		if err != nil {
			return nil, err
		}
		sigs[d.Name] = ty
	}
	return &Registry{mod: mod, sigs: sigs, built: map[string]Builtin{}}, nil
}

// Names lists every registered built-in, for seeding the initial scope.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.sigs))
	for name := range r.sigs {
		out = append(out, name)
	}
	return out
}

// Signature returns name's declared type, for type-checking references
// to it before it is ever constructed.
func (r *Registry) Signature(name string) types.Type {
	return r.sigs[name]
}

// Get constructs (or returns the memoized) descriptor for name, the
// first time it is actually referenced by a compiled program.
func (r *Registry) Get(name string) (Builtin, error) {
	if b, ok := r.built[name]; ok {
		return b, nil
	}
	b, err := ctors[name](r.mod, r.sigs[name])
	if err != nil {
		return nil, err
	}
	r.built[name] = b
	return b, nil
}

// addBuiltin lowers directly to a single add instruction; it declares
// nothing in the module.
type addBuiltin struct {
	typ types.Type
}

func newAddBuiltin(mod backend.Module, sig types.Type) (Builtin, error) {
	return &addBuiltin{typ: sig}, nil
}

func (a *addBuiltin) Type() types.Type { return a.typ }

func (a *addBuiltin) Call(args []backend.Value, fn backend.Function, b backend.Builder) backend.Value {
	return b.Add(args[0], args[1])
}

// putsBuiltin wraps an extern function declared the first time this
// descriptor is constructed.
type putsBuiltin struct {
	typ  types.Type
	code backend.Value
}

func newPutsBuiltin(mod backend.Module, sig types.Type) (Builtin, error) {
	lty, err := lowerType(mod, sig, nil)
	if err != nil {
		return nil, err
	}
	fn := mod.AddFunction(lty, "puts")
	return &putsBuiltin{typ: sig, code: fn.AsValue()}, nil
}

func (p *putsBuiltin) Type() types.Type { return p.typ }

func (p *putsBuiltin) Call(args []backend.Value, fn backend.Function, b backend.Builder) backend.Value {
	return b.Call(p.code, args)
}
