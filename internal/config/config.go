// Package config holds the configuration schemas: one type per category
// that parses its own properties, resolves its own references, and
// encodes itself to the runtime format.
package config

import (
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// SymbolContributor is a declaration that owns a symbol table entry.
type SymbolContributor interface {
	Name() string
	Span() types.Span
	Type() *symbol.Type
	// CreateSymbol returns the symbol for this declaration with id, or nil
	// when the declaration is too broken to contribute one.
	CreateSymbol(id int32) symbol.Symbol
}

// Config is a parsed configuration entry.
//
// The pipeline is two-phase: every entry of a run is parsed first, then
// ResolveReferences turns its symbolic fields into ids. Encode may only
// be called after resolution.
type Config interface {
	SymbolContributor
	parser.Entry
	ResolveReferences(r *resolver.Resolver)
	Encode() []byte
}

// Constructor creates an empty entry of a category.
type Constructor func(name string, span types.Span) Config

var registry = map[*symbol.Type]Constructor{
	symbol.VarPlayer: func(name string, span types.Span) Config { return NewVarp(name, span) },
	symbol.VarClient: func(name string, span types.Span) Config { return NewVarc(name, span) },
	symbol.VarBit:    func(name string, span types.Span) Config { return NewVarbit(name, span) },
	symbol.Inv:       func(name string, span types.Span) Config { return NewInv(name, span) },
	symbol.Struct:    func(name string, span types.Span) Config { return NewStruct(name, span) },
	symbol.Param:     func(name string, span types.Span) Config { return NewParam(name, span) },
	symbol.Enum:      func(name string, span types.Span) Config { return NewEnum(name, span) },
}

// Lookup returns the constructor for a category.
func Lookup(typ *symbol.Type) (Constructor, bool) {
	ctor, ok := registry[typ]
	return ctor, ok
}

// Types returns the categories that have a schema, in symbol.Types order.
func Types() []*symbol.Type {
	var out []*symbol.Type
	for _, t := range symbol.Types() {
		if _, ok := registry[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Parse parses every entry of a file of category typ. It panics if typ
// has no schema; callers check with Lookup first.
func Parse(p *parser.Parser, typ *symbol.Type) []Config {
	ctor, ok := Lookup(typ)
	if !ok {
		panic("config: no schema for category " + typ.Literal)
	}
	return parser.ParseEntries[Config](p, typ, ctor)
}

// base holds what every entry has.
type base struct {
	name string
	span types.Span
	typ  *symbol.Type
}

func (b *base) Name() string       { return b.name }
func (b *base) Span() types.Span   { return b.span }
func (b *base) Type() *symbol.Type { return b.typ }

// CreateSymbol returns a basic symbol; schemas with richer symbols
// override it.
func (b *base) CreateSymbol(id int32) symbol.Symbol {
	return &symbol.BasicSymbol{Name: b.name, ID: id}
}

// propertySpan returns span when it is set, the entry span otherwise.
func (b *base) propertySpan(span types.Span) types.Span {
	if span.IsEmpty() {
		return b.span
	}
	return span
}
