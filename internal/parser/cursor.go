package parser

import "github.com/cwbudde/langcore/internal/token"

// tok is the materialized view of one scanner token the parser
// consumes. Numeric literal values are captured at buffering time
// (rather than re-read from the scanner's "current token" state later)
// because the scanner only ever exposes the value belonging to whatever
// token it is currently sitting on — once lookahead advances the
// scanner past a literal, its value would otherwise be lost.
type tok struct {
	Type     token.Type
	Lit      *token.ByteStr
	Pos      token.Pos
	IntVal   uint64
	FloatVal float64
}

// tokenCursor buffers the underlying scanner's token stream so the
// parser can peek arbitrarily far ahead and snapshot/restore its
// position, grounded on the teacher's TokenCursor — adapted here to a
// mutable cursor (not an immutable one returned by value). Tokens once
// read stay in the buffer, so the parser's ParserState (state.go) only
// records the token index (a mark); the scanner itself is never
// snapshotted or rewound.
type tokenCursor struct {
	sc     Scanner
	toks   []tok
	index  int
}

// Scanner is the subset of scanner.Scanner the token cursor drives.
type Scanner interface {
	Tok() token.Type
	Pos() token.Pos
	Lit() *token.ByteStr
	Uint64Val() uint64
	FloatVal() float64
	Next()
}

func capture(sc Scanner) tok {
	return tok{Type: sc.Tok(), Lit: sc.Lit(), Pos: sc.Pos(), IntVal: sc.Uint64Val(), FloatVal: sc.FloatVal()}
}

func newTokenCursor(sc Scanner) *tokenCursor {
	c := &tokenCursor{sc: sc}
	c.toks = append(c.toks, capture(sc))
	return c
}

// Current returns the token at the cursor's position.
func (c *tokenCursor) Current() tok { return c.toks[c.index] }

// Peek returns the token n positions ahead; Peek(0) == Current().
func (c *tokenCursor) Peek(n int) tok {
	target := c.index + n
	for target >= len(c.toks) && c.toks[len(c.toks)-1].Type != token.EOF {
		c.sc.Next()
		c.toks = append(c.toks, capture(c.sc))
	}
	if target < len(c.toks) {
		return c.toks[target]
	}
	return c.toks[len(c.toks)-1]
}

// Advance moves the cursor to the next token, buffering it if needed.
func (c *tokenCursor) Advance() {
	c.index++
	c.Peek(0) // ensure the slot is populated
}

// mark is an opaque cursor position for backtracking.
type mark int

func (c *tokenCursor) Mark() mark { return mark(c.index) }
func (c *tokenCursor) ResetTo(m mark) { c.index = int(m) }
