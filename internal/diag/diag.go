// Package diag is the ambient error-handling stack shared by the parser,
// type resolver, and binder: the ErrorHandler contract spec.md §6
// describes, a Collector that accumulates diagnostics, and a
// source-excerpt formatter with a caret pointer, grounded on the
// teacher's internal/errors.CompilerError.Format.
package diag

import "github.com/cwbudde/langcore/internal/token"

// Severity classifies a diagnostic's urgency.
type Severity int

const (
	Error Severity = iota
	Warn
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warn:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Code is an opaque short diagnostic code, e.g. "E_UNUSED_VAR".
type Code string

// Well-known codes used throughout the core (spec.md §4.6/§6).
const (
	CodeUnusedVar   Code = "E_UNUSED_VAR"
	CodeUnusedParam Code = "E_UNUSED_PARAM"
	CodeUnusedField Code = "E_UNUSED_FIELD"
	CodeSuggestion  Code = "E_SUGGESTION"
	CodeBind        Code = "E_BIND"

	CodeSyntax      Code = "E_SYNTAX"
	CodeDeclaration Code = "E_DECL"
	CodeType        Code = "E_TYPE"
	CodeReference   Code = "E_REF"
	CodeConfig      Code = "E_CONFIG"
	CodeImport      Code = "E_IMPORT"
)

// Kind is the broad error-handling category from spec.md §7.
type Kind int

const (
	KindSyntax Kind = iota
	KindDeclaration
	KindType
	KindReference
	KindConfig
	KindImport
)

// Code maps a Kind to its opaque diagnostic code.
func (k Kind) Code() Code {
	switch k {
	case KindSyntax:
		return CodeSyntax
	case KindDeclaration:
		return CodeDeclaration
	case KindType:
		return CodeType
	case KindReference:
		return CodeReference
	case KindConfig:
		return CodeConfig
	case KindImport:
		return CodeImport
	default:
		return ""
	}
}

// ErrorHandler is the contract spec.md §6 specifies: (position, message,
// code?) -> void. Any sink — a Collector, a channel-backed logger, a
// test spy — can implement it.
type ErrorHandler interface {
	HandleError(pos token.Position, severity Severity, message string, code Code)
}

// Diagnostic is one recorded report.
type Diagnostic struct {
	Pos      token.Position
	Severity Severity
	Message  string
	Code     Code
}

// Collector is the default ErrorHandler: it accumulates every report and
// tracks a running per-severity count so an embedder can check before
// proceeding to a back end (spec.md §7: "consumers should check the
// error handler's running count before proceeding").
type Collector struct {
	Diagnostics []Diagnostic
	counts      [3]int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector { return &Collector{} }

func (c *Collector) HandleError(pos token.Position, severity Severity, message string, code Code) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Pos: pos, Severity: severity, Message: message, Code: code})
	c.counts[severity]++
}

// Count returns how many diagnostics of severity sev have been recorded.
func (c *Collector) Count(sev Severity) int { return c.counts[sev] }

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool { return c.counts[Error] > 0 }

// Reset discards every recorded diagnostic, returning the Collector to
// its initial empty state (spec.md §9: "provide explicit construction
// and teardown").
func (c *Collector) Reset() {
	c.Diagnostics = nil
	c.counts = [3]int{}
}
