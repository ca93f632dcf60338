package token

import "testing"

func TestInternerSharesIdenticalContent(t *testing.T) {
	in := NewInterner()
	a := in.InternString("foo")
	b := in.InternString("foo")
	if a != b {
		t.Fatal("interning the same content twice must return the same pointer")
	}

	c := in.InternString("bar")
	if a == c {
		t.Fatal("distinct content must not be interned together")
	}
}

func TestInternerNormalizesNFC(t *testing.T) {
	in := NewInterner()
	// "e" + combining acute accent (NFD) vs precomposed "é" (NFC) must
	// intern to the same ByteStr once normalized.
	nfd := in.InternString("é")
	nfc := in.InternString("é")
	if nfd != nfc {
		t.Fatal("NFD and NFC forms of the same identifier must intern identically")
	}
}

func TestInternerLen(t *testing.T) {
	in := NewInterner()
	in.InternString("a")
	in.InternString("b")
	in.InternString("a")
	if got := in.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestPosIsValid(t *testing.T) {
	if NoPos.IsValid() {
		t.Fatal("NoPos must not be valid")
	}
	if NoPos.Offset() != -1 {
		t.Fatalf("NoPos.Offset() = %d, want -1", NoPos.Offset())
	}

	fs := NewFileSet()
	f := fs.AddFile("test.lc", 10)
	p := f.Pos(3)
	if !p.IsValid() {
		t.Fatal("a Pos built from a registered file must be valid")
	}
	if p.Offset() != 3 {
		t.Fatalf("Offset() = %d, want 3", p.Offset())
	}
}

func TestFileSetPositionLineCol(t *testing.T) {
	src := "var x\ny\n"
	fs := NewFileSet()
	f := fs.AddFile("test.lc", len(src))
	for i, b := range []byte(src) {
		if b == '\n' {
			fs.AddLine(f, i+1)
		}
	}

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1}, // 'v' of var
		{4, 1, 5}, // 'x'
		{6, 2, 1}, // 'y'
	}

	for _, tt := range tests {
		pos := fs.Position(f.Pos(tt.offset))
		if pos.Line != tt.wantLine || pos.Col != tt.wantCol {
			t.Errorf("offset %d: Position = {Line:%d Col:%d}, want {Line:%d Col:%d}",
				tt.offset, pos.Line, pos.Col, tt.wantLine, tt.wantCol)
		}
	}
}

func TestFileSetPositionNoPos(t *testing.T) {
	fs := NewFileSet()
	pos := fs.Position(NoPos)
	if pos.IsValid() {
		t.Fatal("Position(NoPos) must be the zero, invalid Position")
	}
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{ADD, "+"},
		{MUL, "*"},
		{ASSIGN, "="},
		{COLON, ":"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
