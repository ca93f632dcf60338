// Package scanner specifies the Scanner contract the parser is written
// against (spec.md §4.1) and ships Cursor, a concrete implementation the
// parser drives by default. The contract is the real interface: any
// conforming scanner — including one generated by a different tool chain
// entirely — can stand in for Cursor without the parser noticing.
package scanner

import "github.com/cwbudde/langcore/internal/token"

// Scanner is the contract the parser consumes. It deliberately exposes
// only what a Pratt/recursive-descent parser needs to drive lexing one
// token at a time with backtracking support; everything about how tokens
// are produced (DFA, hand-written switch, table-driven) is the scanner's
// business.
type Scanner interface {
	// Tok returns the type of the current token.
	Tok() token.Type

	// Pos returns the position of the current token.
	Pos() token.Pos

	// Lit returns the literal text of the current token, interned.
	Lit() *token.ByteStr

	// Int32Val returns the current INT token's value narrowed to int32.
	Int32Val() int32

	// Int64Val returns the current INT token's signed 64-bit value.
	Int64Val() int64

	// Uint64Val returns the current INT token's unsigned 64-bit value,
	// used when the literal does not fit a signed 64-bit integer.
	Uint64Val() uint64

	// FloatVal returns the current FLOAT token's value.
	FloatVal() float64

	// Hash returns a fast, non-cryptographic hash of the current NAME
	// token's text, usable as a pre-filter before a full string compare.
	Hash() uint32

	// TakeByteValue returns the raw bytes backing a STRING/CHAR literal
	// and clears the scanner's internal buffer so the caller owns the
	// returned slice.
	TakeByteValue() []byte

	// Next advances to the next token. The active implementation may be
	// swapped (see Cursor.SetNextFunc) for a comment-preserving variant
	// without changing the Scanner's exported surface.
	Next()

	// Snapshot captures enough state to restore the scanner to exactly
	// this point via Restore. Used by the parser's backtracking harness.
	Snapshot() State

	// Restore rewinds the scanner to a previously captured State.
	Restore(State)
}

// State is an opaque, value-typed snapshot of a Cursor. It is cheap to
// copy (no heap allocation beyond what the buffer already held) and must
// be released by a matching Restore or allowed to be garbage collected;
// it holds no external resources.
type State struct {
	position     int
	readPosition int
	line         int
	col          int
	ch           rune
	curTok       token.Token
	curInt64     int64
	curUint64    uint64
	curFloat     float64
	curHash      uint32
	literalBuf   []byte
}
