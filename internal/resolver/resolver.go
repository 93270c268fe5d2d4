// Package resolver turns symbolic references into numeric symbol ids.
//
// Resolution runs after every file of a compilation has been parsed and the
// symbol table has ids for every declared entry, so forward references
// across files resolve. Problems are collected as diagnostics; a reference
// that cannot be resolved becomes -1.
package resolver

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// Resolver resolves references against a symbol table.
type Resolver struct {
	table       *symbol.Table
	diagnostics types.Diagnostics
	types.Logger
}

// New returns a Resolver over table.
// If logger is nil, logging is disabled (zero overhead).
func New(table *symbol.Table, logger *slog.Logger) *Resolver {
	return &Resolver{
		table:  table,
		Logger: types.Logger{L: logger},
	}
}

// Table returns the symbol table references are resolved against.
func (r *Resolver) Table() *symbol.Table {
	return r.table
}

// Diagnostics returns a copy of all collected diagnostics.
func (r *Resolver) Diagnostics() []types.Diagnostic {
	return slices.Clone(r.diagnostics.List())
}

// TakeDiagnostics returns the collected diagnostics and clears them.
func (r *Resolver) TakeDiagnostics() []types.Diagnostic {
	return r.diagnostics.Take()
}

// Error records a resolution diagnostic on behalf of a schema.
func (r *Resolver) Error(code string, span types.Span, message string) {
	r.diagnostics.Error(code, span, message)
}

// ResolveReference returns the id of the symbol ref names, or -1.
//
// A nil ref resolves to -1 silently. The name "null" resolves to -1 and is
// reported unless permitNulls is set. An unknown name is reported as an
// unresolved reference.
func (r *Resolver) ResolveReference(ref *symbol.Reference, permitNulls bool) int32 {
	if ref == nil {
		return -1
	}
	if ref.IsNull() {
		if !permitNulls {
			r.diagnostics.Error(types.DiagNullNotPermitted, ref.Span,
				"Null values are not permitted in here")
		}
		return -1
	}
	if !ref.Type.IsReference() {
		r.diagnostics.Errorf(types.DiagNotReferenceable, ref.Span,
			"Values of type '%s' cannot be referenced by name", ref.Type.Literal)
		return -1
	}
	sym, ok := r.table.LookupSymbol(ref.Type, ref.Name)
	if !ok {
		r.diagnostics.Error(types.DiagUnresolvedReference, ref.Span,
			fmt.Sprintf("Unresolved reference to '%s' of type '%s'", ref.Name, ref.Type.Literal))
		r.Log(slog.LevelDebug, "unresolved reference",
			slog.String("type", ref.Type.Literal),
			slog.String("name", ref.Name))
		return -1
	}
	if r.TraceEnabled() {
		r.Trace("reference resolved",
			slog.String("type", ref.Type.Literal),
			slog.String("name", ref.Name),
			slog.Int("id", int(sym.SymbolID())))
	}
	return sym.SymbolID()
}

// ResolveLink resolves a pending link. Already resolved links are
// returned unchanged, so a reference is never resolved twice.
func (r *Resolver) ResolveLink(link symbol.Link, permitNulls bool) symbol.Link {
	if link.IsResolved() {
		return link
	}
	return symbol.Resolved(r.ResolveReference(link.Reference(), permitNulls))
}

// LookupTyped returns the value type recorded for a typed symbol (params
// and enums), or nil when the symbol does not exist or carries no type.
func (r *Resolver) LookupTyped(typ *symbol.Type, id int32) *symbol.Type {
	sym, ok := r.table.List(typ).LookupByID(id)
	if !ok {
		return nil
	}
	switch s := sym.(type) {
	case *symbol.TypedSymbol:
		return s.Type
	case *symbol.ConfigSymbol:
		return s.Type
	default:
		return nil
	}
}
