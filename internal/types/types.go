// Package types provides internal types shared across confc packages.
package types

import (
	"context"
	"log/slog"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, properties, symbols).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// ctx is a package-level context for logging.
var ctx = context.Background()

// Logger wraps slog.Logger with nil-safe helpers.
type Logger struct {
	L *slog.Logger
}

// Enabled returns true if logging is enabled at the given level.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(ctx, level)
}

// Log emits a log message if logging is enabled.
func (l *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.L != nil && l.L.Enabled(ctx, level) {
		l.L.LogAttrs(ctx, level, msg, attrs...)
	}
}

// TraceEnabled returns true if trace-level logging is enabled.
func (l *Logger) TraceEnabled() bool {
	return l.Enabled(LevelTrace)
}

// Trace emits a trace-level log.
func (l *Logger) Trace(msg string, attrs ...slog.Attr) {
	l.Log(LevelTrace, msg, attrs...)
}

// ComponentLogger derives a logger tagged with a component name.
// Returns nil for a nil logger so that logging stays disabled.
func ComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

// ByteOffset is a byte position in source text.
type ByteOffset uint32

// Span represents a range in source text.
type Span struct {
	Start ByteOffset // inclusive
	End   ByteOffset // exclusive
}

// NewSpan creates a new span.
func NewSpan(start, end ByteOffset) Span {
	return Span{Start: start, End: end}
}

// At returns a zero-width span at the given offset.
func At(offset int) Span {
	return Span{Start: ByteOffset(offset), End: ByteOffset(offset)}
}

// Len returns the length of the span in bytes.
func (s Span) Len() ByteOffset {
	return s.End - s.Start
}

// IsEmpty returns true if the span is empty.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// Text returns the slice of source covered by the span, or "" when the
// span lies outside the source.
func (s Span) Text(source []byte) string {
	if int(s.End) > len(source) || s.Start > s.End {
		return ""
	}
	return string(source[s.Start:s.End])
}

// LineCol converts a byte offset into 1-based line and column numbers.
// Returns (0, 0) for nil source or an offset past the end of the source.
func LineCol(source []byte, offset ByteOffset) (line, col int) {
	if source == nil || int(offset) > len(source) {
		return 0, 0
	}
	line = 1
	lineStart := 0
	for i := 0; i < int(offset); i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, int(offset) - lineStart + 1
}
