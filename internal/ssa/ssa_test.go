package ssa

import (
	"testing"

	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

func TestNewFunEntryIsFirstBlock(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	if len(f.Blocks) != 1 || f.Blocks[0] != f.Entry {
		t.Fatalf("blocks[0] must be entry, got %+v", f.Blocks)
	}
}

func TestAddArgTracksUses(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	c1 := f.ConstVal(types.Int32Type, int32(1))
	add := f.NewValue(token.NoPos, OpAdd, types.Int32Type, f.Entry)
	add.AddArg(c1)
	add.AddArg(c1)
	if c1.Uses != 2 {
		t.Fatalf("want 2 uses, got %d", c1.Uses)
	}

	add.ResetArgs()
	if c1.Uses != 0 {
		t.Fatalf("want 0 uses after ResetArgs, got %d", c1.Uses)
	}
	if len(add.Args) != 0 {
		t.Fatalf("want empty args, got %v", add.Args)
	}
}

func TestSetArgAdjustsUses(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	c1 := f.ConstVal(types.Int32Type, int32(1))
	c2 := f.ConstVal(types.Int32Type, int32(2))
	add := f.NewValue(token.NoPos, OpAdd, types.Int32Type, f.Entry)
	add.AddArg(c1)

	add.SetArg(0, c2)
	if c1.Uses != 0 {
		t.Fatalf("old target should have 0 uses, got %d", c1.Uses)
	}
	if c2.Uses != 1 {
		t.Fatalf("new target should have 1 use, got %d", c2.Uses)
	}
}

func TestAddArgRejectsSelfReference(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	v := f.NewValue(token.NoPos, OpAdd, types.Int32Type, f.Entry)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on self-referential AddArg")
		}
	}()
	v.AddArg(v)
}

func TestRemoveValueFreesAndRecycles(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	c1 := f.ConstVal(types.Int32Type, int32(1))
	v := f.NewValue(token.NoPos, OpNeg, types.Int32Type, f.Entry)
	v.AddArg(c1)
	vid := v.ID

	f.RemoveValue(v)
	if c1.Uses != 0 {
		t.Fatalf("removing v should drop its arg's uses, got %d", c1.Uses)
	}
	for _, w := range f.Entry.Values {
		if w == v {
			t.Fatal("removed value still present in block.Values")
		}
	}

	v2 := f.NewValue(token.NoPos, OpNeg, types.Int32Type, f.Entry)
	if v2 != v {
		t.Fatal("expected the freed value to be recycled from the free list")
	}
	if v2.ID == vid {
		t.Fatal("recycled value must still get a fresh id")
	}
}

func TestSetControlAdjustsUses(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	c := f.ConstVal(types.BoolType, true)
	b := f.NewBlock(BlockIf)
	b.SetControl(c)
	if c.Uses != 1 {
		t.Fatalf("want 1 use, got %d", c.Uses)
	}
	b.SetControl(nil)
	if c.Uses != 0 {
		t.Fatalf("want 0 uses after clearing control, got %d", c.Uses)
	}
}

func TestConstValInterning(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	a := f.ConstVal(types.Int32Type, int32(7))
	b := f.ConstVal(types.Int32Type, int32(7))
	if a != b {
		t.Fatal("equal constants in the same function must share one Value")
	}
	c := f.ConstVal(types.Int32Type, int32(8))
	if a == c {
		t.Fatal("distinct constants must not be interned together")
	}
}

func TestConstValDistinguishesFloatFromIntBits(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	i := f.ConstVal(types.Int64Type, int64(0))
	fl := f.ConstVal(types.F64Type, float64(0))
	if i == fl {
		t.Fatal("an int64 zero and a float64 zero must not collide despite equal raw bits")
	}
}

func TestRematerializableConst(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	c := f.ConstVal(types.Int32Type, int32(1))
	if !Rematerializable(c) {
		t.Fatal("a zero-arg constant must be rematerializable")
	}

	add := f.NewValue(token.NoPos, OpAdd, types.Int32Type, f.Entry)
	add.AddArg(c)
	add.AddArg(c)
	if Rematerializable(add) {
		t.Fatal("Add is not in the rematerializable set")
	}
}

func TestAddEdgeToPanicsOnSealedTarget(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	b := f.NewBlock(BlockPlain)
	b.Seal()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic adding an edge into a sealed block")
		}
	}()
	f.Entry.AddEdgeTo(b)
}

// diamond builds entry -if-> (then, els) -> join -ret, returning the
// three non-entry blocks in that order.
func diamond(f *Fun) (then, els, join *Block) {
	then = f.NewBlock(BlockPlain)
	els = f.NewBlock(BlockPlain)
	join = f.NewBlock(BlockRet)

	f.Entry.Kind = BlockIf
	f.Entry.AddEdgeTo(then)
	f.Entry.AddEdgeTo(els)
	then.AddEdgeTo(join)
	els.AddEdgeTo(join)
	f.Blocks = append(f.Blocks, then, els, join)
	return then, els, join
}

func TestIdomOnDiamond(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	then, els, join := diamond(f)

	if got := f.Idom(then); got != f.Entry {
		t.Fatalf("then's idom = %v, want entry", got)
	}
	if got := f.Idom(els); got != f.Entry {
		t.Fatalf("els's idom = %v, want entry", got)
	}
	if got := f.Idom(join); got != f.Entry {
		t.Fatalf("join's idom = %v, want entry (neither arm alone dominates it)", got)
	}
	if got := f.Idom(f.Entry); got != nil {
		t.Fatalf("entry's idom must be nil, got %v", got)
	}
}

func TestDominatesOnDiamond(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	then, els, join := diamond(f)

	if !f.Dominates(f.Entry, join) {
		t.Fatal("entry must dominate join")
	}
	if f.Dominates(then, els) {
		t.Fatal("then must not dominate els")
	}
	if !f.Dominates(then, then) {
		t.Fatal("a block trivially dominates itself")
	}
}

// loopCFG builds entry -> header -if-> (body, exit); body -> header
// (back edge), returning header/body/exit.
func loopCFG(f *Fun) (header, body, exit *Block) {
	header = f.NewBlock(BlockIf)
	body = f.NewBlock(BlockPlain)
	exit = f.NewBlock(BlockRet)

	f.Entry.AddEdgeTo(header)
	header.AddEdgeTo(body)
	header.AddEdgeTo(exit)
	body.AddEdgeTo(header)
	f.Blocks = append(f.Blocks, header, body, exit)
	return header, body, exit
}

func TestLoopNestFindsSingleLoop(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	header, body, exit := loopCFG(f)

	ln := f.LoopNest()
	if len(ln.Loops) != 1 {
		t.Fatalf("want 1 loop, got %d", len(ln.Loops))
	}
	l := ln.Loops[0]
	if l.Header != header {
		t.Fatalf("loop header = %v, want %v", l.Header, header)
	}
	if ln.LoopOf(body) != l {
		t.Fatal("body must be in the loop")
	}
	if ln.LoopOf(exit) != nil {
		t.Fatal("exit must not be in the loop")
	}
	if len(l.Exits) != 1 || l.Exits[0] != exit {
		t.Fatalf("loop exits = %v, want [exit]", l.Exits)
	}
}

func TestRewriteToFirstAndSweep(t *testing.T) {
	f := NewFun("f", types.VoidType, nil)
	then, els, _ := diamond(f)

	f.Entry.RewriteToFirst(then)
	if f.Entry.Kind != BlockFirst {
		t.Fatalf("kind = %v, want First", f.Entry.Kind)
	}
	if f.Entry.Succs[0] != then {
		t.Fatalf("Succs[0] = %v, want then", f.Entry.Succs[0])
	}
	if f.Entry.Control != nil {
		t.Fatal("control must be cleared after rewriting to First")
	}

	f.SweepUnreachable()
	for _, b := range f.Blocks {
		if b == els {
			t.Fatal("the unreached else-arm must be swept")
		}
	}
}
