// Package config loads the compiler's built-in surface from an embedded
// YAML document. The data never touches the filesystem at run time — it
// is compiled into the binary with go:embed — which is how this
// otherwise filesystem-free compiler can still honor spec §4.F's
// requirement that the built-in set be "open to extension by
// registration": extending it is an edit-and-rebuild, not a runtime file
// read.
package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/agrif/lithium/internal/types"
)

//go:embed builtins.yaml
var builtinsYAML []byte

// BuiltinSignature is one built-in's type signature, as declared in
// builtins.yaml. Its compiled behavior is supplied separately by
// internal/codegen, keyed by Name.
type BuiltinSignature struct {
	Name    string   `yaml:"name"`
	Params  []string `yaml:"params"`
	Returns string   `yaml:"returns"`
}

type builtinsDoc struct {
	Builtins []BuiltinSignature `yaml:"builtins"`
}

// atomicType resolves one of this compiler's two base type names.
func atomicType(name string) (*types.Atomic, error) {
	switch name {
	case "int":
		return types.Int, nil
	case "str":
		return types.Str, nil
	default:
		return nil, fmt.Errorf("config: unknown atomic type %q", name)
	}
}

// Signature returns s's declared type as a types.Type, suitable for
// seeding the initial typing scope.
func (s BuiltinSignature) Signature() (types.Type, error) {
	ret, err := atomicType(s.Returns)
	if err != nil {
		return nil, fmt.Errorf("builtin %q: %w", s.Name, err)
	}
	params := make([]types.Type, len(s.Params))
	for i, p := range s.Params {
		pt, err := atomicType(p)
		if err != nil {
			return nil, fmt.Errorf("builtin %q: %w", s.Name, err)
		}
		params[i] = pt
	}
	return types.Fn(ret, params...), nil
}

// Builtins parses the embedded registry.
func Builtins() ([]BuiltinSignature, error) {
	var doc builtinsDoc
	if err := yaml.Unmarshal(builtinsYAML, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing embedded builtins.yaml: %w", err)
	}
	return doc.Builtins, nil
}
