// Package confc compiles game configuration sources into the binary
// records read by the game runtime.
//
// A compilation reads the persisted symbol table, parses every source file
// (constants first), assigns each declared entry a stable id, resolves
// references between entries, and encodes each entry into its own file:
//
//	c := confc.New(confc.WithLogger(slog.Default()))
//	if err := c.ReadSymbols("symbols"); err != nil {
//	    return err
//	}
//	result, err := c.CompileDirectory("input")
//	if err != nil {
//	    return err
//	}
//	for _, d := range result.Diagnostics {
//	    fmt.Println(d)
//	}
//	if err := c.GenerateCode(result, "output"); err != nil {
//	    return err
//	}
//	return c.WriteSymbols("symbols")
package confc

import (
	"errors"
	"log/slog"

	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

var (
	// ErrSymbolDirNotFound is returned when the symbol directory does not exist.
	ErrSymbolDirNotFound = errors.New("symbol directory not found")

	// ErrNoInput is returned when a compilation finds no source files.
	ErrNoInput = errors.New("no configuration sources found")

	// ErrUnknownCategory is returned for a category literal that does not exist.
	ErrUnknownCategory = symbol.ErrUnknownCategory

	// ErrMalformedSymbol is returned for a symbol file line that cannot be read.
	ErrMalformedSymbol = symbol.ErrMalformedSymbol
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, properties, symbols).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures a Compiler.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	semanticInfo bool
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSemanticInfo makes compilations record semantic info annotations
// for editor tooling.
func WithSemanticInfo() Option {
	return func(o *options) { o.semanticInfo = true }
}
