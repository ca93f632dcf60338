package ssa

// Loop is one natural loop in a function's dominator tree: its header,
// its immediately enclosing loop (nil at the outermost level), its
// nesting depth, the blocks it contains, and the blocks outside it that
// it can fall through to (spec.md §4.5.1 "Natural loop nesting").
type Loop struct {
	Header *Block
	Parent *Loop
	Depth  int
	Blocks []*Block

	// Exits holds the successors, of blocks inside the loop, that lie
	// outside it — the precise exit-edge computation this compiler adds
	// beyond the distilled loop-nest description (see DESIGN.md).
	Exits []*Block
}

// LoopNest is every natural loop in a function, plus the per-block
// lookup of its innermost containing loop.
type LoopNest struct {
	Loops []*Loop

	b2l map[*Block]*Loop
}

// LoopNest computes (and memoizes) f's loop nest.
func (f *Fun) LoopNest() *LoopNest {
	f.ensureCFGCache()
	return f.cache.loopnest
}

// LoopOf returns the innermost loop containing b, or nil if b is not in
// any loop.
func (ln *LoopNest) LoopOf(b *Block) *Loop {
	return ln.b2l[b]
}

// buildLoopNest finds natural loops from the dominator-tree back edges
// reachable in po/idom, grounded in shape on the postorder/idom pair
// computed in dom.go — the same inputs a textbook natural-loop pass
// consumes (spec.md §4.5.1 "computed from dominator-tree back edges:
// header, parent loop, depth, contained blocks, exit blocks").
func buildLoopNest(f *Fun, po []*Block, idom []*Block) *LoopNest {
	inBlocks := make(map[*Block]bool, len(po))
	for _, b := range po {
		inBlocks[b] = true
	}
	dominates := func(a, bBlk *Block) bool {
		for c := bBlk; c != nil; {
			if c == a {
				return true
			}
			if c.ID >= len(idom) {
				return false
			}
			next := idom[c.ID]
			if next == c {
				return false
			}
			c = next
		}
		return false
	}

	headerLoop := make(map[*Block]*Loop)
	var order []*Block // headers, in first-seen order, for deterministic output

	for _, latch := range po {
		if !inBlocks[latch] {
			continue
		}
		for _, header := range latch.Succs {
			if !inBlocks[header] || !dominates(header, latch) {
				continue
			}
			l, ok := headerLoop[header]
			if !ok {
				l = &Loop{Header: header}
				headerLoop[header] = l
				order = append(order, header)
			}
			addToLoop(l, latch)
		}
	}

	// Nesting: a loop L is the parent of loop M if M's header is inside
	// L's body and L != M; the immediate parent is the smallest such L.
	loops := make([]*Loop, len(order))
	for i, h := range order {
		loops[i] = headerLoop[h]
	}
	for _, m := range loops {
		var parent *Loop
		for _, l := range loops {
			if l == m {
				continue
			}
			if !blockInLoop(l, m.Header) {
				continue
			}
			if parent == nil || len(l.Blocks) < len(parent.Blocks) {
				parent = l
			}
		}
		m.Parent = parent
	}
	for _, m := range loops {
		d := 0
		for p := m.Parent; p != nil; p = p.Parent {
			d++
		}
		m.Depth = d
	}

	b2l := make(map[*Block]*Loop)
	for _, m := range loops {
		for _, b := range m.Blocks {
			cur, ok := b2l[b]
			if !ok || len(m.Blocks) < len(cur.Blocks) {
				b2l[b] = m
			}
		}
	}

	for _, m := range loops {
		inLoop := make(map[*Block]bool, len(m.Blocks))
		for _, b := range m.Blocks {
			inLoop[b] = true
		}
		seen := make(map[*Block]bool)
		for _, b := range m.Blocks {
			for _, s := range b.Succs {
				if inLoop[s] || seen[s] {
					continue
				}
				seen[s] = true
				m.Exits = append(m.Exits, s)
			}
		}
	}

	return &LoopNest{Loops: loops, b2l: b2l}
}

// addToLoop walks backward from latch along predecessor edges,
// collecting every block up to and including l.Header into l.Blocks
// (spec.md §4.5.1's "contained blocks", merged across every back edge
// sharing the same header).
func addToLoop(l *Loop, latch *Block) {
	if blockInLoop(l, latch) {
		return
	}
	if latch == l.Header {
		if !blockInLoop(l, l.Header) {
			l.Blocks = append(l.Blocks, l.Header)
		}
		return
	}
	l.Blocks = append(l.Blocks, latch)
	for _, p := range latch.Preds {
		addToLoop(l, p)
	}
}

func blockInLoop(l *Loop, b *Block) bool {
	for _, x := range l.Blocks {
		if x == b {
			return true
		}
	}
	return false
}
