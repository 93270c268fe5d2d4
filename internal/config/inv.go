package config

import (
	"github.com/gameconf/confc/internal/binary"
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// InvScope is the lifetime of an inventory.
type InvScope int32

// Inventory scopes.
const (
	InvScopeTemp InvScope = iota
	InvScopePerm
)

var invScopes = map[string]InvScope{
	"temp": InvScopeTemp,
	"perm": InvScopePerm,
}

// InvConfig is an inventory.
type InvConfig struct {
	base
	Size  int32
	Scope InvScope
}

// NewInv returns an empty inventory.
func NewInv(name string, span types.Span) *InvConfig {
	return &InvConfig{base: base{name: name, span: span, typ: symbol.Inv}}
}

func (c *InvConfig) ParseProperty(name string, p *parser.Parser) {
	switch name {
	case "size":
		span := p.PropertySpan()
		c.Size = p.ParseInteger()
		checkUnsigned16(p, span, name, c.Size)
	case "scope":
		if scope, ok := parser.ParseLiteral(p, invScopes); ok {
			c.Scope = scope
		}
	default:
		p.UnknownProperty()
	}
}

func (c *InvConfig) VerifyProperties(*parser.Parser) {}

func (c *InvConfig) ResolveReferences(*resolver.Resolver) {}

func (c *InvConfig) Encode() []byte {
	size := 1
	if c.Size != 0 {
		size += 3
	}
	if c.Scope != InvScopeTemp {
		size += 2
	}
	e := binary.NewEncoder(size)
	if c.Size != 0 {
		e.Code(2, func(e *binary.Encoder) {
			e.Write2(c.Size)
		})
	}
	if c.Scope != InvScopeTemp {
		e.Code(4, func(e *binary.Encoder) {
			e.Write1(int32(c.Scope))
		})
	}
	e.Terminate()
	return e.Bytes()
}
