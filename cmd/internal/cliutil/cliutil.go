// Package cliutil provides shared helpers for the confc command-line tool.
package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gameconf/confc"
)

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string) (*os.File, func(), error) {
	if outputFile == "" || outputFile == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// NewLogger returns a text logger on stderr for a -v count: nil for 0,
// debug for 1, trace for 2 and above.
func NewLogger(verbose int) *slog.Logger {
	if verbose <= 0 {
		return nil
	}
	level := slog.LevelDebug
	if verbose >= 2 {
		level = confc.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// PrintDiagnostics writes one diagnostic per line followed by a summary
// line, and returns the number of errors.
func PrintDiagnostics(w io.Writer, diags []confc.Diagnostic) int {
	errs, warnings := 0, 0
	for _, d := range diags {
		fmt.Fprintln(w, d)
		if d.Severity == confc.SeverityError {
			errs++
		} else {
			warnings++
		}
	}
	if len(diags) > 0 {
		fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errs, warnings)
	}
	return errs
}

// WriteJSON writes v as indented JSON to path, or to stdout for "-".
func WriteJSON(path string, v any) error {
	out, cleanup, err := GetOutput(path)
	if err != nil {
		return err
	}
	defer cleanup()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
