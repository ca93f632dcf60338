package scanner

import (
	"testing"

	"github.com/cwbudde/langcore/internal/token"
)

func newCursor(src string) *Cursor {
	return New(token.NewFileSet(), token.NewInterner(), "test.lc", src)
}

func TestNextToken(t *testing.T) {
	input := `x = 5; x += 10;`

	tests := []struct {
		literal string
		typ     token.Type
	}{
		{"x", token.NAME},
		{"=", token.ASSIGN},
		{"5", token.INT},
		{";", token.SEMICOLON},
		{"x", token.NAME},
		{"+=", token.ADD_ASSIGN},
		{"10", token.INT},
		{";", token.SEMICOLON},
		{"", token.EOF},
	}

	c := newCursor(input)
	for i, tt := range tests {
		if c.Tok() != tt.typ {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s", i, tt.typ, c.Tok())
		}
		if c.Lit().String() != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, c.Lit().String())
		}
		c.Next()
	}
}

func TestKeywords(t *testing.T) {
	input := `fun type if else while for return break continue import interface`
	want := []token.Type{
		token.FUN, token.TYPE, token.IF, token.ELSE, token.WHILE, token.FOR,
		token.RETURN, token.BREAK, token.CONTINUE, token.IMPORT, token.INTERFACE, token.EOF,
	}
	c := newCursor(input)
	for i, w := range want {
		if c.Tok() != w {
			t.Fatalf("token %d: expected %s, got %s", i, w, c.Tok())
		}
		c.Next()
	}
}

func TestNumericLiteralKinds(t *testing.T) {
	tests := []struct {
		src  string
		typ  token.Type
		uval uint64
	}{
		{"123", token.INT, 123},
		{"0xFF", token.INT_HEX, 255},
		{"0b1010", token.INT_BIN, 10},
		{"0o17", token.INT_OCT, 15},
	}
	for _, tt := range tests {
		c := newCursor(tt.src)
		if c.Tok() != tt.typ {
			t.Errorf("%s: expected type %s, got %s", tt.src, tt.typ, c.Tok())
		}
		if c.Uint64Val() != tt.uval {
			t.Errorf("%s: expected value %d, got %d", tt.src, tt.uval, c.Uint64Val())
		}
	}
}

func TestFloatLiteral(t *testing.T) {
	c := newCursor("2.3")
	if c.Tok() != token.FLOAT {
		t.Fatalf("expected FLOAT, got %s", c.Tok())
	}
	if c.FloatVal() != 2.3 {
		t.Fatalf("expected 2.3, got %v", c.FloatVal())
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	c := newCursor(`"3" 'c'`)
	if c.Tok() != token.STRING {
		t.Fatalf("expected STRING, got %s", c.Tok())
	}
	if string(c.TakeByteValue()) != "3" {
		t.Fatalf("expected byte value 3")
	}
	c.Next()
	if c.Tok() != token.CHAR {
		t.Fatalf("expected CHAR, got %s", c.Tok())
	}
}

func TestNameAt(t *testing.T) {
	c := newCursor("@inline")
	if c.Tok() != token.NAMEAT {
		t.Fatalf("expected NAMEAT, got %s", c.Tok())
	}
	if c.Lit().String() != "inline" {
		t.Fatalf("expected literal 'inline', got %q", c.Lit().String())
	}
}

func TestSnapshotRestore(t *testing.T) {
	c := newCursor("a b c")
	snap := c.Snapshot()
	c.Next()
	c.Next()
	if c.Lit().String() != "c" {
		t.Fatalf("expected to have advanced to c, got %q", c.Lit().String())
	}
	c.Restore(snap)
	if c.Lit().String() != "a" {
		t.Fatalf("expected restore to rewind to a, got %q", c.Lit().String())
	}
}

func TestPositionTracksOffsets(t *testing.T) {
	c := newCursor("a\nbb")
	c.Next() // bb
	if got := c.Pos().Offset(); got != 2 {
		t.Fatalf("expected offset 2, got %d", got)
	}
}
