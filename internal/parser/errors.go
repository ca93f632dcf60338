package parser

import (
	"fmt"

	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/token"
)

// ErrorKind classifies a parser-reported error, following spec.md §7's
// kind taxonomy for the subset the parser itself can raise.
type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	DeclarationError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax"
	case DeclarationError:
		return "declaration"
	default:
		return "error"
	}
}

// diagKind maps a parser ErrorKind onto the ambient diag.Kind taxonomy,
// so every hard parser error carries the same opaque diagnostic code
// the resolver and binder attach to their own Kind-classified errors.
func (k ErrorKind) diagKind() diag.Kind {
	switch k {
	case SyntaxError:
		return diag.KindSyntax
	case DeclarationError:
		return diag.KindDeclaration
	default:
		return diag.KindSyntax
	}
}

// ParserError is one diagnostic produced while parsing.
type ParserError struct {
	Kind    ErrorKind
	Pos     token.Pos
	Message string
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s error at %d: %s", e.Kind, e.Pos.Offset(), e.Message)
}

// BlockContext records the kind and starting position of a block
// construct in progress (the parser pushes one for each `while` and
// `for` loop onto the ParseContext block stack). Error messages do not
// include it.
type BlockContext struct {
	Kind  string
	Start token.Pos
}
