// Package ssa is the mid-end intermediate representation (spec.md §4.5):
// functions in static single-assignment form over a control-flow graph,
// with edit primitives that keep use counts, argument edges, and CFG
// links consistent, plus the handful of cached whole-function analyses
// an optimizer needs (postorder, dominators, loop nest).
//
// Value and Block are owned by their Fun and allocated from a small
// free-list-backed arena (spec.md §3's "arena-style ownership"),
// grounded in shape on the teacher's internal/bytecode package's own
// slice-backed owning containers (Chunk, Compiler.locals) rather than
// scattered heap pointers per value.
package ssa

import (
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// Op identifies a Value's operation. The set here is deliberately small:
// spec.md scopes code generation and architecture-specific lowering out
// (§1 Non-goals), so only the ops the IR core itself needs to reason
// about — constants, the two address-producing pseudo-ops SP/SB, phi,
// and a representative slice of arithmetic/control ops — are modeled.
type Op int

const (
	OpInvalid Op = iota

	OpConstBool
	OpConstI8
	OpConstI16
	OpConstI32
	OpConstI64
	OpConstF32
	OpConstF64

	// OpSP and OpSB are the stack-pointer and static-base pseudo-values
	// every function's entry block carries; rematerializability is
	// defined in terms of them (spec.md §4.5 "Rematerializability").
	OpSP
	OpSB

	OpArg
	OpPhi
	OpCopy

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg

	OpLoad
	OpStore
	OpCall
)

// rematerializable flags the ops spec.md §4.5 allows to be recomputed
// at each use site instead of kept live across a spill, rather than
// enumerating it inline at every call site.
var rematerializable = map[Op]bool{
	OpConstBool: true,
	OpConstI8:   true,
	OpConstI16:  true,
	OpConstI32:  true,
	OpConstI64:  true,
	OpConstF32:  true,
	OpConstF64:  true,
	OpSP:        true,
	OpSB:        true,
}

func (op Op) String() string {
	switch op {
	case OpConstBool:
		return "ConstBool"
	case OpConstI8:
		return "ConstI8"
	case OpConstI16:
		return "ConstI16"
	case OpConstI32:
		return "ConstI32"
	case OpConstI64:
		return "ConstI64"
	case OpConstF32:
		return "ConstF32"
	case OpConstF64:
		return "ConstF64"
	case OpSP:
		return "SP"
	case OpSB:
		return "SB"
	case OpArg:
		return "Arg"
	case OpPhi:
		return "Phi"
	case OpCopy:
		return "Copy"
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	case OpNeg:
		return "Neg"
	case OpLoad:
		return "Load"
	case OpStore:
		return "Store"
	case OpCall:
		return "Call"
	default:
		return "Invalid"
	}
}

// Register is an opaque data-attachment surface for a value's assigned
// location: spec.md §1 scopes register allocation proper out, modeling
// only the slot a future regAlloc pass would write into.
type Register int

// NoRegister marks a value not yet (or never) assigned a register.
const NoRegister Register = -1

// Value is one SSA value: an operation, its type, the block that
// defines it, and the argument edges it holds (spec.md §3).
type Value struct {
	ID     int
	Pos    token.Pos
	Op     Op
	Type   types.Type
	Block  *Block
	Aux    any
	AuxInt int64
	Args   []*Value
	Uses   int
	Reg    Register

	// Prev/Next link freed Values on Fun's free list (spec.md §3's
	// "arena-style ownership"); they carry no meaning for a live value.
	Prev *Value
	Next *Value
}

// BlockKind distinguishes how a block ends (spec.md §3).
type BlockKind int

const (
	BlockInvalid BlockKind = iota
	BlockPlain
	BlockIf
	BlockRet
	// BlockFirst marks a block an optimizer has proven always takes its
	// first successor (spec.md §4.5.1 "Branch-kind rewriting"); a later
	// dead-code sweep removes the now-unreachable successor.
	BlockFirst
)

func (k BlockKind) String() string {
	switch k {
	case BlockPlain:
		return "Plain"
	case BlockIf:
		return "If"
	case BlockRet:
		return "Ret"
	case BlockFirst:
		return "First"
	default:
		return "Invalid"
	}
}

// Likeliness is a three-valued branch hint attached to an If block's
// two successors (spec.md §3 "likely is a three-valued branch hint").
type Likeliness int

const (
	BranchUnknown Likeliness = iota
	BranchLikely
	BranchUnlikely
)

// Block is one basic block: a kind, an optional control value, its CFG
// edges, and the values it owns (spec.md §3).
type Block struct {
	ID      int
	Kind    BlockKind
	Control *Value
	Succs   []*Block
	Preds   []*Block
	Values  []*Value
	Sealed  bool
	Likely  Likeliness

	fun *Fun
}

// Fun is one function's SSA form (spec.md §3): its blocks, id
// counters, constant cache, and the cached CFG analyses an optimizer
// consults and that any CFG edit invalidates together.
type Fun struct {
	Config      *Config
	Type        types.Type
	Name        string
	NArgs       int
	Entry       *Block
	Blocks      []*Block
	RegAlloc    []Register
	NamedValues map[string][]*Value

	bid int
	vid int

	consts map[constKey]*Value

	// freeValues is Value's free list (spec.md §3's Value.Prev/Next);
	// blocks are comparatively rare and are never recycled.
	freeValues *Value

	cache cfgCache
}

// Pkg is a parsed package's SSA form: every function the binder/type
// resolver produced a body for, plus the package's optional init
// function (spec.md §3).
type Pkg struct {
	Funs map[string]*Fun
	Init *Fun
}

// NewFun creates an empty function with one entry block. Config may be
// nil — architecture-specific lowering is out of scope (spec.md §1) and
// nothing in this package dereferences Config itself.
func NewFun(name string, typ types.Type, cfg *Config) *Fun {
	f := &Fun{
		Config:      cfg,
		Type:        typ,
		Name:        name,
		NamedValues: make(map[string][]*Value),
		consts:      make(map[constKey]*Value),
	}
	f.Entry = f.NewBlock(BlockPlain)
	f.Blocks = append(f.Blocks, f.Entry)
	return f
}

// NewBlock allocates a fresh block and gives it the next block id.
// Blocks are not pooled the way Values are — a function typically has
// orders of magnitude fewer blocks than values, so there is little to
// gain from recycling them.
func (f *Fun) NewBlock(kind BlockKind) *Block {
	b := &Block{ID: f.bid, Kind: kind, fun: f}
	f.bid++
	f.invalidateCFG()
	return b
}

// NewValue allocates a value owned by b, appending it to b's value
// list and assigning the next function-wide value id.
func (f *Fun) NewValue(pos token.Pos, op Op, typ types.Type, b *Block) *Value {
	var v *Value
	if f.freeValues != nil {
		v = f.freeValues
		f.freeValues = v.Next
		*v = Value{}
	} else {
		v = &Value{}
	}
	v.ID = f.vid
	f.vid++
	v.Pos = pos
	v.Op = op
	v.Type = typ
	v.Block = b
	v.Reg = NoRegister
	b.Values = append(b.Values, v)
	return v
}

// setArg sets args[i] to new, adjusting uses on the old and new targets
// (spec.md §4.5 "setArg(i,v) decrements the previous target's uses and
// increments the new one").
func (v *Value) setArg(i int, new *Value) {
	old := v.Args[i]
	if old != nil {
		old.Uses--
	}
	v.Args[i] = new
	if new != nil {
		new.Uses++
	}
}

// SetArg is setArg's exported form, for callers outside this package
// (optimizer passes) that rewrite an existing argument edge in place.
func (v *Value) SetArg(i int, new *Value) { v.setArg(i, new) }

// AddArg appends w to v's argument list, forbidding self-reference
// (spec.md §4.5 "addArg(v) forbids self-reference").
func (v *Value) AddArg(w *Value) {
	if w == v {
		panic("ssa: value cannot reference itself as an argument")
	}
	v.Args = append(v.Args, w)
	w.Uses++
}

// ResetArgs decrements every current argument's uses and empties Args
// (spec.md §4.5 "resetArgs() decrements all targets and empties args").
func (v *Value) ResetArgs() {
	for _, a := range v.Args {
		if a != nil {
			a.Uses--
		}
	}
	v.Args = v.Args[:0]
}

// Reset installs a new op on v: it resets args and clears Aux/AuxInt
// (spec.md §4.5 "reset(op) sets a new op, resets args, and clears aux
// and auxInt").
func (v *Value) Reset(op Op) {
	v.ResetArgs()
	v.Op = op
	v.Aux = nil
	v.AuxInt = 0
}

// removeValue drops v from its owning block's Values and frees it,
// decrementing the uses of everything v referenced (spec.md §4.5
// "removeValue(v) drops all occurrences in the owning block's values
// and frees v; each removal decrements v.uses" — "v.uses" there means
// the uses v itself was contributing to its arguments, not v.Uses,
// which must already be zero for a value to be safely freed).
func (f *Fun) removeValue(v *Value) {
	b := v.Block
	for i, w := range b.Values {
		if w == v {
			b.Values = append(b.Values[:i], b.Values[i+1:]...)
			break
		}
	}
	v.ResetArgs()
	f.freeValue(v)
}

// RemoveValue is removeValue's exported form.
func (f *Fun) RemoveValue(v *Value) { f.removeValue(v) }

func (f *Fun) freeValue(v *Value) {
	v.Block = nil
	v.Next = f.freeValues
	f.freeValues = v
}

// setControl installs new as b's control value, adjusting uses on the
// old and new control (spec.md §4.5 "setControl(new) decrements the old
// control's uses (if any) and increments the new one").
func (b *Block) setControl(new *Value) {
	if b.Control != nil {
		b.Control.Uses--
	}
	b.Control = new
	if new != nil {
		new.Uses++
	}
}

// SetControl is setControl's exported form.
func (b *Block) SetControl(new *Value) { b.setControl(new) }
