package config

import (
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// Constant is a constant declaration. It contributes a symbol but has no
// encoded form.
type Constant struct {
	decl parser.Constant
}

// NewConstant wraps a parsed constant declaration.
func NewConstant(decl parser.Constant) *Constant {
	return &Constant{decl: decl}
}

// ParseConstants parses a constants file.
func ParseConstants(p *parser.Parser) []*Constant {
	decls := p.ParseConstants()
	out := make([]*Constant, len(decls))
	for i, d := range decls {
		out[i] = NewConstant(d)
	}
	return out
}

func (c *Constant) Name() string       { return c.decl.Name }
func (c *Constant) Span() types.Span   { return c.decl.Span }
func (c *Constant) Type() *symbol.Type { return symbol.Constant }

// Value returns the literal text of the constant.
func (c *Constant) Value() string { return c.decl.Value }

// CreateSymbol returns the constant symbol; constants carry no id.
func (c *Constant) CreateSymbol(int32) symbol.Symbol {
	return &symbol.ConstantSymbol{Name: c.decl.Name, Value: c.decl.Value}
}
