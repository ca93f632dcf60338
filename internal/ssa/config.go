package ssa

// ArchInfo describes the handful of facts a register allocator or
// lowering pass would need from a target architecture. Architecture-
// specific code generation is out of scope here (spec.md §1); this
// interface exists only so Config has somewhere to attach that
// information without this package hard-coding any one architecture.
type ArchInfo interface {
	Name() string
	NumRegisters() int
	PtrSize() int
}

// LocalSlot names one stack-resident local: the value it holds (or its
// named source variable) and the offset a lowering pass would assign
// it. Like ArchInfo, this is a data-attachment surface — nothing in
// this package computes offsets.
type LocalSlot struct {
	Name   string
	Off    int64
	Parent *LocalSlot
}

// RegAllocator assigns registers (or stack slots) to a function's
// values. No implementation lives in this package (spec.md §1 scopes
// register allocation out); Fun.RegAlloc is the slice such a pass would
// populate, indexed by Value.ID.
type RegAllocator interface {
	Allocate(f *Fun) error
}

// Config bundles the architecture and allocator a lowering pipeline
// would use to turn this IR into machine code. Passes in this package
// never read Config themselves; it exists purely so callers downstream
// of the IR core have one place to thread that configuration through a
// Fun without every function signature growing an ArchInfo parameter.
type Config struct {
	Arch  ArchInfo
	Alloc RegAllocator
}
