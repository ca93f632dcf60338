package ssa

// RewriteToFirst rewrites an If block to First once an optimizer has
// proven it always takes one specific successor, putting that
// successor at index 0 (spec.md §4.5.1 "Branch-kind rewriting": "when
// an optimizer proves an If block takes a specific successor, it
// rewrites the block's kind to First with the taken successor at index
// 0"). The control value, now unused, is cleared.
func (b *Block) RewriteToFirst(taken *Block) {
	if b.Kind != BlockIf {
		panic("ssa: RewriteToFirst requires an If block")
	}
	if b.Succs[0] != taken {
		b.Succs[0], b.Succs[1] = b.Succs[1], b.Succs[0]
	}
	b.Kind = BlockFirst
	b.setControl(nil)
	b.fun.invalidateCFG()
}

// sweepUnreachable removes the dead second successor of every First
// block (and transitively, any block left with no remaining
// predecessor), freeing their values and clearing the uses those
// values held on anything they referenced. This is the dead-code sweep
// a branch-kind rewrite calls for but the distilled loop-nest
// description does not itself perform (see DESIGN.md's supplemented
// features).
func (f *Fun) sweepUnreachable() {
	for _, b := range f.Blocks {
		if b.Kind != BlockFirst || len(b.Succs) < 2 {
			continue
		}
		dead := b.Succs[1]
		b.Succs = b.Succs[:1]
		for i, p := range dead.Preds {
			if p == b {
				dead.removePred(i)
				break
			}
		}
	}

	reachable := make(map[*Block]bool, len(f.Blocks))
	var walk func(b *Block)
	walk = func(b *Block) {
		if reachable[b] {
			return
		}
		reachable[b] = true
		for _, s := range b.Succs {
			walk(s)
		}
	}
	walk(f.Entry)

	kept := f.Blocks[:0]
	for _, b := range f.Blocks {
		if reachable[b] {
			kept = append(kept, b)
			continue
		}
		for _, s := range b.Succs {
			if !reachable[s] {
				continue
			}
			for i, p := range s.Preds {
				if p == b {
					s.removePred(i)
					break
				}
			}
		}
		for _, v := range append([]*Value(nil), b.Values...) {
			f.removeValue(v)
		}
		if b.Control != nil {
			b.setControl(nil)
		}
	}
	f.Blocks = kept
	f.invalidateCFG()
}

// SweepUnreachable is sweepUnreachable's exported form.
func (f *Fun) SweepUnreachable() { f.sweepUnreachable() }
