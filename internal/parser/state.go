package parser

import "github.com/cwbudde/langcore/internal/diag"

// ParserState is a full snapshot of everything speculative parsing can
// perturb: the buffered-token cursor position, the parse context (block
// stack, loop depth), and how many errors had been recorded so errors
// raised during a discarded attempt never leak out. Grounded on the
// teacher's ParserState/ParseContext.Snapshot pair (spec.md §9:
// "backtracking belongs in the harness, not scattered try/catch").
type ParserState struct {
	cursorMark mark
	ctx        contextSnapshot
	errCount   int
}

func (p *Parser) saveState() ParserState {
	return ParserState{
		cursorMark: p.cursor.Mark(),
		ctx:        p.ctx.snapshot(),
		errCount:   len(p.errors),
	}
}

func (p *Parser) restoreState(s ParserState) {
	p.cursor.ResetTo(s.cursorMark)
	p.ctx.restore(s.ctx)
	p.errors = p.errors[:s.errCount]
}

// tryParse runs fn speculatively: if fn reports ok, the attempt's side
// effects (cursor advance, any errors raised) are kept; otherwise the
// parser is rewound to the state before fn ran and the zero value is
// returned. Diagnostics raised while fn runs are held back from the
// ErrorHandler and passed on only once the attempt succeeds. This is the
// single chokepoint every ambiguous construct (generic call-site
// instantiation, declaration list vs expression statement) backtracks
// through, rather than each call site hand rolling its own save/restore
// (spec.md §4.2 "generic call ambiguity", §9 "backtracking as an
// explicit Result, not exceptions").
func tryParse[T any](p *Parser, fn func() (T, bool)) (T, bool) {
	state := p.saveState()
	outer := p.handler
	held := diag.NewCollector()
	if outer != nil {
		p.handler = held
	}
	v, ok := fn()
	p.handler = outer
	if !ok {
		p.restoreState(state)
		var zero T
		return zero, false
	}
	for _, d := range held.Diagnostics {
		outer.HandleError(d.Pos, d.Severity, d.Message, d.Code)
	}
	return v, true
}
