package scanner

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cwbudde/langcore/internal/token"
)

// Cursor is the reference Scanner implementation. Its save/restore shape
// (Snapshot/Restore) and rune-counted column tracking are grounded on the
// teacher's internal/lexer.Lexer and its LexerState save/restore pair;
// the token vocabulary is this language's, not DWScript's.
type Cursor struct {
	in       *token.Interner
	file     *token.SourceFile
	fset     *token.FileSet
	input    string
	position int
	readPos  int
	ch       rune
	chWidth  int
	line     int
	col      int

	curTok    token.Token
	curInt64  int64
	curUint64 uint64
	curFloat  float64
	curHash   uint32
	litBuf    []byte

	preserveComments bool
	nextFn           func(*Cursor)
}

// Option configures a Cursor at construction, matching the teacher's
// functional-option constructor shape (WithPreserveComments).
type Option func(*Cursor)

// WithPreserveComments makes Next() yield COMMENT tokens instead of
// silently skipping them — the "comment-preserving variant" spec.md
// §4.1 says the parser may swap in.
func WithPreserveComments(preserve bool) Option {
	return func(c *Cursor) { c.preserveComments = preserve }
}

// New creates a Cursor over src, registering it as file in fset using in
// as the string interner. The cursor reads its first token immediately
// so Tok()/Pos() are valid before any call to Next().
func New(fset *token.FileSet, in *token.Interner, file string, src string, opts ...Option) *Cursor {
	c := &Cursor{
		in:    in,
		fset:  fset,
		file:  fset.AddFile(file, len(src)),
		input: src,
		line:  1,
		col:   0,
	}
	c.nextFn = (*Cursor).scan
	for _, opt := range opts {
		opt(c)
	}
	c.readRune()
	c.Next()
	return c
}

// SetNextFunc swaps the token-production strategy. This is the "may swap
// next for a comment-preserving variant" hook from spec.md §4.1, exposed
// as a callback rather than dynamic dispatch per spec.md §9.
func (c *Cursor) SetNextFunc(fn func(*Cursor)) { c.nextFn = fn }

func (c *Cursor) Tok() token.Type       { return c.curTok.Type }
func (c *Cursor) Pos() token.Pos        { return c.curTok.Pos }
func (c *Cursor) Lit() *token.ByteStr   { return c.curTok.Literal }
func (c *Cursor) Int32Val() int32       { return int32(c.curInt64) }
func (c *Cursor) Int64Val() int64       { return c.curInt64 }
func (c *Cursor) Uint64Val() uint64     { return c.curUint64 }
func (c *Cursor) FloatVal() float64     { return c.curFloat }
func (c *Cursor) Hash() uint32          { return c.curHash }

// TakeByteValue hands over the literal buffer accumulated while scanning
// a STRING/CHAR token and clears it, matching the teacher's
// Lexer.tokenBuffer reuse discipline.
func (c *Cursor) TakeByteValue() []byte {
	b := c.litBuf
	c.litBuf = nil
	return b
}

// Next advances to the next token via the currently installed strategy.
func (c *Cursor) Next() { c.nextFn(c) }

func (c *Cursor) Snapshot() State {
	return State{
		position: c.position, readPosition: c.readPos,
		line: c.line, col: c.col, ch: c.ch,
		curTok: c.curTok, curInt64: c.curInt64, curUint64: c.curUint64,
		curFloat: c.curFloat, curHash: c.curHash,
		literalBuf: append([]byte(nil), c.litBuf...),
	}
}

func (c *Cursor) Restore(s State) {
	c.position, c.readPos = s.position, s.readPosition
	c.line, c.col, c.ch = s.line, s.col, s.ch
	c.curTok, c.curInt64, c.curUint64 = s.curTok, s.curInt64, s.curUint64
	c.curFloat, c.curHash = s.curFloat, s.curHash
	c.litBuf = append([]byte(nil), s.literalBuf...)
}

func (c *Cursor) readRune() {
	if c.readPos >= len(c.input) {
		c.ch = 0
		c.chWidth = 0
		c.position = c.readPos
		return
	}
	r, w := utf8.DecodeRuneInString(c.input[c.readPos:])
	c.position = c.readPos
	c.ch = r
	c.chWidth = w
	c.readPos += w
	c.col++
	if c.ch == '\n' {
		c.line++
		c.col = 0
		c.fset.AddLine(c.file, c.readPos)
	}
}

func (c *Cursor) peekRune() rune {
	if c.readPos >= len(c.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.readPos:])
	return r
}

func (c *Cursor) skipWhitespace() {
	for c.ch == ' ' || c.ch == '\t' || c.ch == '\n' || c.ch == '\r' {
		c.readRune()
	}
}

func isLetter(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isDigit(r rune) bool  { return unicode.IsDigit(r) }

// scan is the default next-token strategy: it silently skips comments,
// unless WithPreserveComments is set, in which case each `//` comment is
// yielded as one COMMENT token.
func (c *Cursor) scan() {
	c.skipWhitespace()
	for c.ch == '/' && c.peekRune() == '/' {
		if c.preserveComments {
			startPos := c.file.Pos(c.position)
			start := c.position
			for c.ch != '\n' && c.ch != 0 {
				c.readRune()
			}
			c.emit(token.COMMENT, c.input[start:c.position], startPos)
			return
		}
		for c.ch != '\n' && c.ch != 0 {
			c.readRune()
		}
		c.skipWhitespace()
	}

	startPos := c.file.Pos(c.position)

	switch {
	case c.ch == 0:
		c.emit(token.EOF, "", startPos)
	case isLetter(c.ch):
		c.scanIdentifier(startPos)
	case isDigit(c.ch):
		c.scanNumber(startPos)
	case c.ch == '"':
		c.scanString(startPos)
	case c.ch == '\'':
		c.scanChar(startPos)
	case c.ch == '@':
		c.readRune()
		if isLetter(c.ch) {
			c.scanIdentifier(startPos)
			c.curTok.Type = token.NAMEAT
		} else {
			c.emit(token.AT, "@", startPos)
		}
	default:
		c.scanOperator(startPos)
	}
}

func (c *Cursor) emit(t token.Type, lit string, pos token.Pos) {
	c.curTok = token.Token{Type: t, Literal: c.in.InternString(lit), Pos: pos}
}

func (c *Cursor) scanIdentifier(startPos token.Pos) {
	start := c.position
	for isLetter(c.ch) || isDigit(c.ch) {
		c.readRune()
	}
	text := c.input[start:c.position]
	c.curHash = fnv32(text)
	t := token.Lookup(text)
	c.emit(t, text, startPos)
}

// fnv32 is a fast, non-cryptographic hash used as a pre-filter before a
// full identifier compare (spec.md §4.1's "hash for identifier fast-hash").
func fnv32(s string) uint32 {
	const prime = 16777619
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

func (c *Cursor) scanNumber(startPos token.Pos) {
	start := c.position
	kind := token.INT

	if c.ch == '0' && (c.peekRune() == 'x' || c.peekRune() == 'X') {
		c.readRune()
		c.readRune()
		for isHexDigit(c.ch) || c.ch == '_' {
			c.readRune()
		}
		text := strings.ReplaceAll(c.input[start:c.position], "_", "")
		u, _ := strconv.ParseUint(text[2:], 16, 64)
		c.setIntValue(u)
		c.emit(token.INT_HEX, text, startPos)
		return
	}
	if c.ch == '0' && (c.peekRune() == 'b' || c.peekRune() == 'B') {
		c.readRune()
		c.readRune()
		for c.ch == '0' || c.ch == '1' || c.ch == '_' {
			c.readRune()
		}
		text := strings.ReplaceAll(c.input[start:c.position], "_", "")
		u, _ := strconv.ParseUint(text[2:], 2, 64)
		c.setIntValue(u)
		c.emit(token.INT_BIN, text, startPos)
		return
	}
	if c.ch == '0' && (c.peekRune() == 'o' || c.peekRune() == 'O') {
		c.readRune()
		c.readRune()
		for (c.ch >= '0' && c.ch <= '7') || c.ch == '_' {
			c.readRune()
		}
		text := strings.ReplaceAll(c.input[start:c.position], "_", "")
		u, _ := strconv.ParseUint(text[2:], 8, 64)
		c.setIntValue(u)
		c.emit(token.INT_OCT, text, startPos)
		return
	}

	for isDigit(c.ch) || c.ch == '_' {
		c.readRune()
	}
	if c.ch == '.' && isDigit(c.peekRune()) {
		kind = token.FLOAT
		c.readRune()
		for isDigit(c.ch) || c.ch == '_' {
			c.readRune()
		}
	}
	if c.ch == 'e' || c.ch == 'E' {
		kind = token.FLOAT
		c.readRune()
		if c.ch == '+' || c.ch == '-' {
			c.readRune()
		}
		for isDigit(c.ch) {
			c.readRune()
		}
	}

	text := strings.ReplaceAll(c.input[start:c.position], "_", "")
	if kind == token.FLOAT {
		f, _ := strconv.ParseFloat(text, 64)
		c.curFloat = f
	} else {
		u, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			// Overflows uint64 too; clamp — the type resolver reports
			// the overflow diagnostic, the lexer must not panic.
			u = ^uint64(0)
		}
		c.setIntValue(u)
	}
	c.emit(kind, text, startPos)
}

func (c *Cursor) setIntValue(u uint64) {
	c.curUint64 = u
	c.curInt64 = int64(u)
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (c *Cursor) scanString(startPos token.Pos) {
	c.readRune() // consume opening quote
	var buf []byte
	for c.ch != '"' && c.ch != 0 {
		if c.ch == '\\' {
			c.readRune()
			buf = append(buf, decodeEscape(c.ch)...)
			c.readRune()
			continue
		}
		buf = append(buf, string(c.ch)...)
		c.readRune()
	}
	c.readRune() // consume closing quote
	c.litBuf = buf
	c.emit(token.STRING, string(buf), startPos)
}

func (c *Cursor) scanChar(startPos token.Pos) {
	c.readRune() // consume opening quote
	var r rune
	if c.ch == '\\' {
		c.readRune()
		r = []rune(string(decodeEscape(c.ch)))[0]
		c.readRune()
	} else {
		r = c.ch
		c.readRune()
	}
	if c.ch == '\'' {
		c.readRune()
	}
	c.litBuf = []byte(string(r))
	c.setIntValue(uint64(r))
	c.emit(token.CHAR, string(r), startPos)
}

func decodeEscape(r rune) string {
	switch r {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '\\':
		return "\\"
	case '"':
		return "\""
	case '\'':
		return "'"
	case '0':
		return "\x00"
	default:
		return string(r)
	}
}

// scanOperator scans one operator or punctuation token, trying the
// two/three-character spellings of a lookahead-sensitive first rune
// longest match first.
func (c *Cursor) scanOperator(startPos token.Pos) {
	ch, next := c.ch, c.peekRune()

	switch {
	case ch == '.' && next == '.':
		c.readRune()
		c.readRune()
		if c.ch == '.' {
			c.readRune()
			c.emit(token.ELLIPSIS, "...", startPos)
			return
		}
		c.emit(token.DOTDOT, "..", startPos)
		return
	case ch == '-' && next == '>':
		c.readRune()
		c.readRune()
		c.emit(token.ARROW, "->", startPos)
		return
	case ch == '=' && next == '>':
		c.readRune()
		c.readRune()
		c.emit(token.FAT_ARROW, "=>", startPos)
		return
	case ch == '<' && next == '<':
		c.readRune()
		c.readRune()
		if c.ch == '=' {
			c.readRune()
			c.emit(token.SHL_ASSIGN, "<<=", startPos)
			return
		}
		c.emit(token.SHL, "<<", startPos)
		return
	case ch == '>' && next == '>':
		c.readRune()
		c.readRune()
		if c.ch == '=' {
			c.readRune()
			c.emit(token.SHR_ASSIGN, ">>=", startPos)
			return
		}
		c.emit(token.SHR, ">>", startPos)
		return
	case ch == '&' && next == '^':
		c.readRune()
		c.readRune()
		if c.ch == '=' {
			c.readRune()
			c.emit(token.ANDNOT_ASSIGN, "&^=", startPos)
			return
		}
		c.emit(token.ANDNOT, "&^", startPos)
		return
	}

	two := map[[2]rune]token.Type{
		{'=', '='}: token.EQL, {'!', '='}: token.NEQ,
		{'<', '='}: token.LEQ, {'>', '='}: token.GEQ,
		{'+', '='}: token.ADD_ASSIGN, {'-', '='}: token.SUB_ASSIGN,
		{'*', '='}: token.MUL_ASSIGN, {'/', '='}: token.QUO_ASSIGN,
		{'%', '='}: token.REM_ASSIGN, {'&', '='}: token.AND_ASSIGN,
		{'|', '='}: token.OR_ASSIGN, {'^', '='}: token.XOR_ASSIGN,
		{'+', '+'}: token.INC, {'-', '-'}: token.DEC,
	}
	if t, ok := two[[2]rune{ch, next}]; ok {
		lit := string(ch) + string(next)
		c.readRune()
		c.readRune()
		c.emit(t, lit, startPos)
		return
	}

	single := map[rune]token.Type{
		'(': token.LPAREN, ')': token.RPAREN, '[': token.LBRACK, ']': token.RBRACK,
		'{': token.LBRACE, '}': token.RBRACE, ',': token.COMMA, ';': token.SEMICOLON,
		':': token.COLON, '.': token.DOT, '+': token.ADD, '-': token.SUB,
		'*': token.MUL, '/': token.QUO, '%': token.REM, '&': token.AND,
		'|': token.OR, '^': token.XOR, '<': token.LSS, '>': token.GTR,
		'=': token.ASSIGN, '?': token.QUESTION,
	}
	if t, ok := single[ch]; ok {
		lit := string(ch)
		c.readRune()
		c.emit(t, lit, startPos)
		return
	}

	lit := string(ch)
	c.readRune()
	c.emit(token.ILLEGAL, lit, startPos)
}

var _ Scanner = (*Cursor)(nil)
