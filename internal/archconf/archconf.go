// Package archconf loads named ArchInfo records from YAML documents and
// registers them into a Registry keyed by architecture name (spec.md
// §6 "Config / ArchInfo"). Architectures are data, not code: this
// package is the systems-compiler analogue of the teacher's
// TypeSystem-as-registry idiom, generalized to load its table from an
// external document via github.com/goccy/go-yaml instead of Go
// literals.
package archconf

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// RegisterMask is a bitmask over an architecture's register file.
type RegisterMask uint64

// ArchInfo is the collaborator-supplied record spec.md §6 describes: at
// least {arch, addrSize, regSize, intSize, registers[], hasGReg,
// gpRegMask, fpRegMask, specialRegMask, optimize, loopstats}. lowerBlock
// and lowerValue are out of scope at the core layer (spec.md §1) and are
// therefore modeled only as opaque names here, left for an embedder to
// dispatch on.
type ArchInfo struct {
	Arch           string       `yaml:"arch"`
	AddrSize       int          `yaml:"addrSize"`
	RegSize        int          `yaml:"regSize"`
	IntSize        int          `yaml:"intSize"`
	Registers      []string     `yaml:"registers"`
	HasGReg        bool         `yaml:"hasGReg"`
	GPRegMask      RegisterMask `yaml:"gpRegMask"`
	FPRegMask      RegisterMask `yaml:"fpRegMask"`
	SpecialRegMask RegisterMask `yaml:"specialRegMask"`
	Optimize       bool         `yaml:"optimize"`
	LoopStats      bool         `yaml:"loopstats"`

	// LowerBlock/LowerValue name the architecture-specific rewriters an
	// embedder's code generator supplies; the core only carries their
	// names through configuration, never invokes them (spec.md §1: "the
	// architecture-specific lowering tables ... consumed via a Config
	// with lowerBlock/lowerValue rewriters" are out of scope here).
	LowerBlock string `yaml:"lowerBlock"`
	LowerValue string `yaml:"lowerValue"`
}

// Config holds the one ArchInfo an embedder has selected.
type Config struct {
	Arch ArchInfo
}

// Registry holds every architecture known to one compilation, keyed by
// name. It is an explicit, embedder-owned value rather than a package
// global (spec.md §9: "provide explicit construction and teardown;
// prefer pass-by-context over hidden globals so tests can reset state").
type Registry struct {
	archs map[string]ArchInfo
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{archs: make(map[string]ArchInfo)}
}

// Register adds info under its own Arch name, overwriting any existing
// entry of the same name.
func (r *Registry) Register(info ArchInfo) {
	r.archs[info.Arch] = info
}

// Lookup returns the ArchInfo registered under name.
func (r *Registry) Lookup(name string) (ArchInfo, bool) {
	info, ok := r.archs[name]
	return info, ok
}

// ErrUnknownArch reports a Config lookup against a name the Registry
// does not know (spec.md §6: "Unknown names fail with ErrorKind.Config").
type ErrUnknownArch struct{ Name string }

func (e *ErrUnknownArch) Error() string {
	return fmt.Sprintf("unknown architecture %q", e.Name)
}

// Resolve builds a Config for name, failing with *ErrUnknownArch if the
// Registry has no entry for it.
func (r *Registry) Resolve(name string) (Config, error) {
	info, ok := r.Lookup(name)
	if !ok {
		return Config{}, &ErrUnknownArch{Name: name}
	}
	return Config{Arch: info}, nil
}

// LoadYAML parses a YAML document of one or more ArchInfo records
// (either a single mapping or a sequence of mappings) and registers
// each into r.
func (r *Registry) LoadYAML(doc []byte) error {
	var single ArchInfo
	if err := yaml.Unmarshal(doc, &single); err == nil && single.Arch != "" {
		r.Register(single)
		return nil
	}

	var many []ArchInfo
	if err := yaml.Unmarshal(doc, &many); err != nil {
		return fmt.Errorf("archconf: parsing YAML: %w", err)
	}
	for _, info := range many {
		if info.Arch == "" {
			return fmt.Errorf("archconf: entry missing required %q field", "arch")
		}
		r.Register(info)
	}
	return nil
}

// Names returns every registered architecture name.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.archs))
	for n := range r.archs {
		names = append(names, n)
	}
	return names
}
