package ssa

// cfgCache holds the four memoized whole-function analyses spec.md
// §4.5.1 names, invalidated together by any CFG edit.
type cfgCache struct {
	valid     bool
	postorder []*Block
	idom      []*Block // indexed by Block.ID
	domTree   *domTree
	loopnest  *LoopNest
}

// invalidateCFG discards every cached analysis. Every CFG-editing
// primitive in this package calls it (spec.md §4.5 "Any CFG edit calls
// invalidateCFG() on the owning function").
func (f *Fun) invalidateCFG() {
	f.cache = cfgCache{}
}

// addEdgeTo appends b as a successor of from and from as a predecessor
// of b, provided b is not yet sealed (spec.md §4.5 "addEdgeTo(target) on
// an unsealed target appends mutually; sealing prevents further
// predecessor additions").
func (from *Block) addEdgeTo(b *Block) {
	if b.Sealed {
		panic("ssa: cannot add a predecessor to a sealed block")
	}
	from.Succs = append(from.Succs, b)
	b.Preds = append(b.Preds, from)
	from.fun.invalidateCFG()
}

// AddEdgeTo is addEdgeTo's exported form.
func (from *Block) AddEdgeTo(b *Block) { from.addEdgeTo(b) }

// removePred removes the i'th predecessor edge. The caller is
// responsible for also removing the matching successor edge on the
// other side (spec.md §4.5 "removePred(i)/removeSucc(i) require the
// caller to maintain the opposite side").
func (b *Block) removePred(i int) {
	b.Preds = append(b.Preds[:i], b.Preds[i+1:]...)
	b.fun.invalidateCFG()
}

// RemovePred is removePred's exported form.
func (b *Block) RemovePred(i int) { b.removePred(i) }

// removeSucc removes the i'th successor edge. See removePred.
func (b *Block) removeSucc(i int) {
	b.Succs = append(b.Succs[:i], b.Succs[i+1:]...)
	b.fun.invalidateCFG()
}

// RemoveSucc is removeSucc's exported form.
func (b *Block) RemoveSucc(i int) { b.removeSucc(i) }

// Seal marks b as sealed: no further predecessor may be added to it.
func (b *Block) Seal() { b.Sealed = true }
