package ssa

import (
	"math"

	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// constKey identifies one interned constant within a function: its op
// and a canonical bit pattern (float bits reinterpreted via
// math.Float64bits so a single uint64 key covers every numeric kind).
type constKey struct {
	op   Op
	bits uint64
}

// opForConst picks the Const* op for t (spec.md §4.5 "constVal(t, c)
// selects the op by type"). Every sized-unsigned kind shares its
// same-width signed op, and the unsized platform Int/Uint default to
// 64-bit — this IR models constants by bit pattern and width, not by
// signedness, matching how a real backend stores an immediate.
func opForConst(t types.Type) Op {
	p, ok := t.(types.PrimType)
	if !ok {
		return OpInvalid
	}
	switch p.Kind {
	case types.Bool:
		return OpConstBool
	case types.Int8, types.Uint8:
		return OpConstI8
	case types.Int16, types.Uint16:
		return OpConstI16
	case types.Int32, types.Uint32:
		return OpConstI32
	case types.Int, types.Uint, types.Int64, types.Uint64:
		return OpConstI64
	case types.F32:
		return OpConstF32
	case types.F64:
		return OpConstF64
	default:
		return OpInvalid
	}
}

// ConstVal returns the function-local interned constant value of type t
// holding c (spec.md §4.5 "constVal(t, c) ... returns the cached value
// for (op, c) within the function, creating it in the entry block on
// first use"). c must be a bool, an integer kind convertible to int64,
// or a float32/float64 matching t's width.
func (f *Fun) ConstVal(t types.Type, c any) *Value {
	op := opForConst(t)
	bits := constBits(op, c)
	key := constKey{op: op, bits: bits}
	if v, ok := f.consts[key]; ok {
		return v
	}

	v := f.NewValue(token.NoPos, op, t, f.Entry)
	switch op {
	case OpConstBool:
		if c.(bool) {
			v.AuxInt = 1
		}
	case OpConstF32, OpConstF64:
		v.AuxInt = int64(bits)
	default:
		v.AuxInt = int64(bits)
	}
	f.consts[key] = v
	return v
}

func constBits(op Op, c any) uint64 {
	switch op {
	case OpConstBool:
		if c.(bool) {
			return 1
		}
		return 0
	case OpConstF32:
		return uint64(math.Float32bits(toFloat32(c)))
	case OpConstF64:
		return math.Float64bits(toFloat64(c))
	default:
		return uint64(toInt64(c))
	}
}

func toInt64(c any) int64 {
	switch v := c.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case uint:
		return int64(v)
	default:
		return 0
	}
}

func toFloat32(c any) float32 {
	switch v := c.(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	default:
		return 0
	}
}

func toFloat64(c any) float64 {
	switch v := c.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

// Rematerializable reports whether v can be recomputed at each use site
// instead of kept live across a spill (spec.md §4.5): its op must be
// flagged as such, and every argument must itself be a stack/base
// pointer value (SP or SB).
func Rematerializable(v *Value) bool {
	if !rematerializable[v.Op] {
		return false
	}
	for _, a := range v.Args {
		if a.Op != OpSP && a.Op != OpSB {
			return false
		}
	}
	return true
}
