package diag

import (
	"strings"
	"testing"

	"github.com/cwbudde/langcore/internal/token"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	c.HandleError(token.Position{File: "a.lc", Line: 1, Col: 1}, Error, "boom", CodeSyntax)
	c.HandleError(token.Position{File: "a.lc", Line: 2, Col: 1}, Warn, "x declared and not used", CodeUnusedVar)

	if got := c.Count(Error); got != 1 {
		t.Fatalf("Count(Error) = %d, want 1", got)
	}
	if got := c.Count(Warn); got != 1 {
		t.Fatalf("Count(Warn) = %d, want 1", got)
	}
	if !c.HasErrors() {
		t.Fatal("HasErrors() = false, want true")
	}
	if len(c.Diagnostics) != 2 {
		t.Fatalf("len(Diagnostics) = %d, want 2", len(c.Diagnostics))
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector()
	c.HandleError(token.Position{File: "a.lc", Line: 1, Col: 1}, Error, "boom", CodeSyntax)
	c.Reset()
	if c.HasErrors() || len(c.Diagnostics) != 0 {
		t.Fatal("Reset() did not clear collector state")
	}
}

func TestSourceErrorFormatCaret(t *testing.T) {
	source := "fun h {\n  x = 1\n}\n"
	e := SourceError{
		Diagnostic: Diagnostic{
			Pos:      token.Position{File: "h.lc", Line: 2, Col: 3},
			Severity: Warn,
			Message:  "x declared and not used",
			Code:     CodeUnusedVar,
		},
		Source: source,
	}
	out := e.Format(false)
	if !strings.Contains(out, "h.lc:2:3") {
		t.Errorf("expected header to contain position, got %q", out)
	}
	if !strings.Contains(out, "x = 1") {
		t.Errorf("expected source line to be rendered, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret pointer, got %q", out)
	}
	if !strings.Contains(out, string(CodeUnusedVar)) {
		t.Errorf("expected diagnostic code in output, got %q", out)
	}
}

func TestKindCode(t *testing.T) {
	cases := []struct {
		k    Kind
		want Code
	}{
		{KindSyntax, CodeSyntax},
		{KindDeclaration, CodeDeclaration},
		{KindType, CodeType},
		{KindReference, CodeReference},
		{KindConfig, CodeConfig},
		{KindImport, CodeImport},
	}
	for _, c := range cases {
		if got := c.k.Code(); got != c.want {
			t.Errorf("Kind(%d).Code() = %q, want %q", c.k, got, c.want)
		}
	}
}
