package config

import (
	"github.com/gameconf/confc/internal/binary"
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// VarcScope is the lifetime of a client variable.
type VarcScope int32

// Client variable scopes.
const (
	VarcScopeTemp VarcScope = iota
	VarcScopePerm
)

var varcScopes = map[string]VarcScope{
	"temp": VarcScopeTemp,
	"perm": VarcScopePerm,
}

// VarcConfig is a client variable. Its value type and transmit flag are
// recorded in the symbol table for script compilation; only the scope is
// encoded.
type VarcConfig struct {
	base
	ValueType *symbol.Type
	Scope     VarcScope
	Transmit  bool
}

// NewVarc returns an empty client variable.
func NewVarc(name string, span types.Span) *VarcConfig {
	return &VarcConfig{base: base{name: name, span: span, typ: symbol.VarClient}}
}

func (c *VarcConfig) ParseProperty(name string, p *parser.Parser) {
	switch name {
	case "type":
		c.ValueType = p.ParseType()
	case "scope":
		if scope, ok := parser.ParseLiteral(p, varcScopes); ok {
			c.Scope = scope
		}
	case "transmit":
		c.Transmit = p.ParseBoolean()
	default:
		p.UnknownProperty()
	}
}

func (c *VarcConfig) VerifyProperties(p *parser.Parser) {
	if c.ValueType == nil {
		p.MissingProperty("type")
	}
}

func (c *VarcConfig) ResolveReferences(*resolver.Resolver) {}

func (c *VarcConfig) CreateSymbol(id int32) symbol.Symbol {
	if c.ValueType == nil {
		return nil
	}
	return &symbol.ConfigSymbol{Name: c.name, ID: id, Type: c.ValueType, Transmit: c.Transmit}
}

func (c *VarcConfig) Encode() []byte {
	size := 1
	if c.Scope == VarcScopePerm {
		size++
	}
	e := binary.NewEncoder(size)
	if c.Scope == VarcScopePerm {
		e.Code(2, nil)
	}
	e.Terminate()
	return e.Bytes()
}
