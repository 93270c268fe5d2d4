package confc

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/types"
)

// Severity indicates how serious a diagnostic is.
type Severity int

const (
	// SeverityError prevents output for the file it occurs in.
	SeverityError Severity = iota
	// SeverityWarning is reported but does not block output.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a problem found in a source file.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g., "unknown-property", "unresolved-reference"
	Message  string
	File     string // source path
	Line     int    // 1-based line number, 0 if not applicable
	Column   int    // 1-based column, 0 if not applicable
}

// String formats the diagnostic as "file:line:col: severity: message [code]".
func (d Diagnostic) String() string {
	pos := d.File
	if d.Line > 0 {
		pos = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	}
	return fmt.Sprintf("%s: %s: %s [%s]", pos, d.Severity, d.Message, d.Code)
}

// SemanticInfo annotates a range of a source file for editor tooling.
type SemanticInfo struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Length int    `json:"length"`
	// Category is the symbol category of the name, empty when it is only
	// known after resolution.
	Category string `json:"category,omitempty"`
	// Kind is "declaration", "reference" or "constant".
	Kind string `json:"kind"`
}

// position is the file and offset used to order diagnostics.
type position struct {
	file   int
	offset types.ByteOffset
}

type located struct {
	pos  position
	diag Diagnostic
}

// convertDiagnostics turns span diagnostics of one file into public ones.
func convertDiagnostics(fileIndex int, file string, source []byte, diags []types.Diagnostic) []located {
	out := make([]located, 0, len(diags))
	for _, d := range diags {
		line, col := types.LineCol(source, d.Span.Start)
		out = append(out, located{
			pos: position{file: fileIndex, offset: d.Span.Start},
			diag: Diagnostic{
				Severity: Severity(d.Severity),
				Code:     d.Code,
				Message:  d.Message,
				File:     file,
				Line:     line,
				Column:   col,
			},
		})
	}
	return out
}

// sortDiagnostics orders diagnostics by file, then by offset.
func sortDiagnostics(diags []located) []Diagnostic {
	slices.SortStableFunc(diags, func(a, b located) int {
		if c := cmp.Compare(a.pos.file, b.pos.file); c != 0 {
			return c
		}
		return cmp.Compare(a.pos.offset, b.pos.offset)
	})
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = d.diag
	}
	return out
}

func convertSemanticInfo(file string, source []byte, info []parser.SemanticInfo) []SemanticInfo {
	out := make([]SemanticInfo, 0, len(info))
	for _, si := range info {
		line, col := types.LineCol(source, si.Span.Start)
		entry := SemanticInfo{
			File:   file,
			Line:   line,
			Column: col,
			Length: int(si.Span.Len()),
			Kind:   si.Kind.String(),
		}
		if si.Type != nil {
			entry.Category = si.Type.Literal
		}
		out = append(out, entry)
	}
	return out
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool {
		return d.Severity == SeverityError
	})
}
