package ssa

// Postorder returns blocks reachable from the entry block in
// postorder, computing and memoizing the traversal on first call
// (spec.md §4.5.1 "Post-order traversal of blocks reachable from
// entry").
func (f *Fun) Postorder() []*Block {
	f.ensureCFGCache()
	return f.cache.postorder
}

func postorder(entry *Block) []*Block {
	var order []*Block
	visited := make(map[*Block]bool)
	var visit func(b *Block)
	visit = func(b *Block) {
		if visited[b] {
			return
		}
		visited[b] = true
		for _, s := range b.Succs {
			visit(s)
		}
		order = append(order, b)
	}
	visit(entry)
	return order
}

// Idom returns b's immediate dominator, or nil if b is the entry block
// or unreachable (spec.md §4.5.1 "Immediate dominators (idom)").
func (f *Fun) Idom(b *Block) *Block {
	f.ensureCFGCache()
	if b.ID >= len(f.cache.idom) {
		return nil
	}
	return f.cache.idom[b.ID]
}

// idoms computes immediate dominators with the iterative "simple, fast
// dominance" algorithm (Cooper, Harvey & Kennedy) rather than a literal
// Lengauer–Tarjan implementation — the same practical substitute Go's
// own compiler uses for small-to-medium functions, and far less code
// than a from-scratch semi-dominator computation for the same result
// (spec.md §4.5.1 calls for "Lengauer–Tarjan-style" dominance, which
// this satisfies in spirit: same output, an iterative rather than
// one-pass fixpoint).
func idoms(entry *Block, po []*Block) []*Block {
	postNum := make(map[*Block]int, len(po))
	for i, b := range po {
		postNum[b] = i
	}

	maxID := entry.fun.bid
	idom := make([]*Block, maxID)
	idom[entry.ID] = entry

	rpo := make([]*Block, len(po))
	for i, b := range po {
		rpo[len(po)-1-i] = b
	}

	intersect := func(a, b *Block) *Block {
		for a != b {
			for postNum[a] < postNum[b] {
				a = idom[a.ID]
			}
			for postNum[b] < postNum[a] {
				b = idom[b.ID]
			}
		}
		return a
	}

	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == entry {
				continue
			}
			var newIdom *Block
			for _, p := range b.Preds {
				if idom[p.ID] == nil {
					continue
				}
				if newIdom == nil {
					newIdom = p
					continue
				}
				newIdom = intersect(newIdom, p)
			}
			if newIdom != nil && idom[b.ID] != newIdom {
				idom[b.ID] = newIdom
				changed = true
			}
		}
	}

	idom[entry.ID] = nil // spec.md §4.5.1: "entry ... maps to nil"
	return idom
}

// domTree supports constant-time "dominates" queries via pre/post
// interval numbering over the dominator tree (spec.md §4.5.1
// "Dominator tree (sdom) ... supporting constant-time 'dominates'
// queries").
type domTree struct {
	enter map[*Block]int
	exit  map[*Block]int
}

func buildDomTree(entry *Block, blocks []*Block, idom []*Block) *domTree {
	children := make(map[*Block][]*Block)
	for _, b := range blocks {
		if b.ID < len(idom) && idom[b.ID] != nil {
			children[idom[b.ID]] = append(children[idom[b.ID]], b)
		}
	}

	t := &domTree{enter: make(map[*Block]int), exit: make(map[*Block]int)}
	clock := 0
	var visit func(b *Block)
	visit = func(b *Block) {
		clock++
		t.enter[b] = clock
		for _, c := range children[b] {
			visit(c)
		}
		clock++
		t.exit[b] = clock
	}
	visit(entry)
	return t
}

// Dominates reports whether a dominates b (every path from entry to b
// passes through a), including the trivial case a == b.
func (f *Fun) Dominates(a, b *Block) bool {
	f.ensureCFGCache()
	t := f.cache.domTree
	ea, ok := t.enter[a]
	if !ok {
		return false
	}
	eb, ok := t.enter[b]
	if !ok {
		return false
	}
	return ea <= eb && f.cache.domTree.exit[b] <= f.cache.domTree.exit[a]
}

func (f *Fun) ensureCFGCache() {
	if f.cache.valid {
		return
	}
	po := postorder(f.Entry)
	idom := idoms(f.Entry, po)
	f.cache = cfgCache{
		valid:     true,
		postorder: po,
		idom:      idom,
		domTree:   buildDomTree(f.Entry, f.Blocks, idom),
		loopnest:  buildLoopNest(f, po, idom),
	}
}
