package types

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

// Severity values. Lower is more severe.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is a message from the lexer, parser or resolver (internal use).
// The compiler converts it to a confc.Diagnostic with the file name and
// line/column information attached.
type Diagnostic struct {
	Severity Severity
	Code     string // Diagnostic code (e.g., "unknown-property")
	Span     Span
	Message  string
}

// String returns "[severity] start-end: message".
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteString("] ")
	fmt.Fprintf(&b, "%d-%d: ", d.Span.Start, d.Span.End)
	b.WriteString(d.Message)
	return b.String()
}

// Diagnostics is an append-only diagnostic accumulator.
type Diagnostics struct {
	list []Diagnostic
}

// Error records an error diagnostic.
func (d *Diagnostics) Error(code string, span Span, message string) {
	d.list = append(d.list, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

// Errorf records an error diagnostic with a formatted message.
func (d *Diagnostics) Errorf(code string, span Span, format string, args ...any) {
	d.Error(code, span, fmt.Sprintf(format, args...))
}

// Warning records a warning diagnostic.
func (d *Diagnostics) Warning(code string, span Span, message string) {
	d.list = append(d.list, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

// List returns the recorded diagnostics. The slice must not be modified.
func (d *Diagnostics) List() []Diagnostic {
	return d.list
}

// Len returns the number of recorded diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.list)
}

// HasErrors returns true if any error-severity diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	for _, diag := range d.list {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Take returns the recorded diagnostics and resets the accumulator.
func (d *Diagnostics) Take() []Diagnostic {
	list := d.list
	d.list = nil
	return list
}
