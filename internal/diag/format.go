package diag

import (
	"fmt"
	"strings"
)

// SourceError renders one Diagnostic against the source text it came
// from: a "file:line:col: severity: message" header, the offending
// source line, and a caret pointing under the reported column —
// grounded directly on the teacher's CompilerError.Format.
type SourceError struct {
	Diagnostic
	Source string // the full text of Diagnostic.Pos.File
}

// Format renders the diagnostic. When color is true, ANSI codes
// highlight the severity label and caret the way the teacher's
// formatter does for terminal output.
func (e SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.Pos.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", e.Pos.File, e.Pos.Line, e.Pos.Col)
	}
	sb.WriteString(severityLabel(e.Severity, color))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Code != "" {
		fmt.Fprintf(&sb, " [%s]", e.Code)
	}
	sb.WriteString("\n")

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(0, e.Pos.Col-1)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func severityLabel(sev Severity, color bool) string {
	if !color {
		return sev.String()
	}
	switch sev {
	case Error:
		return "\033[1;31m" + sev.String() + "\033[0m"
	case Warn:
		return "\033[1;33m" + sev.String() + "\033[0m"
	default:
		return sev.String()
	}
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatAll renders every diagnostic in diags against source, in order,
// separated by a blank line, matching the teacher's FormatErrors for the
// multi-error case.
func FormatAll(diags []Diagnostic, source string, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, d := range diags {
		sb.WriteString(SourceError{Diagnostic: d, Source: source}.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
