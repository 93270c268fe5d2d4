package config

import (
	"fmt"

	"github.com/gameconf/confc/internal/binary"
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// VarpScope is the lifetime of a player variable.
type VarpScope int32

// Player variable scopes; the value is the encoded id.
const (
	VarpScopeTemp VarpScope = iota
	VarpScopePerm
	VarpScopeServerPerm
)

var varpScopes = map[string]VarpScope{
	"temp":       VarpScopeTemp,
	"perm":       VarpScopePerm,
	"serverperm": VarpScopeServerPerm,
}

// VarpConfig is a player variable.
type VarpConfig struct {
	base
	Scope      VarpScope
	ClientCode int32
}

// NewVarp returns an empty player variable.
func NewVarp(name string, span types.Span) *VarpConfig {
	return &VarpConfig{base: base{name: name, span: span, typ: symbol.VarPlayer}}
}

func (c *VarpConfig) ParseProperty(name string, p *parser.Parser) {
	switch name {
	case "scope":
		if scope, ok := parser.ParseLiteral(p, varpScopes); ok {
			c.Scope = scope
		}
	case "clientcode":
		span := p.PropertySpan()
		c.ClientCode = p.ParseInteger()
		checkUnsigned16(p, span, name, c.ClientCode)
	default:
		p.UnknownProperty()
	}
}

func (c *VarpConfig) VerifyProperties(*parser.Parser) {}

func (c *VarpConfig) ResolveReferences(*resolver.Resolver) {}

func (c *VarpConfig) Encode() []byte {
	size := 1
	if c.Scope != VarpScopeTemp {
		size += 2
	}
	if c.ClientCode != 0 {
		size += 3
	}
	e := binary.NewEncoder(size)
	if c.Scope != VarpScopeTemp {
		e.Code(4, func(e *binary.Encoder) {
			e.Write1(int32(c.Scope))
		})
	}
	if c.ClientCode != 0 {
		e.Code(5, func(e *binary.Encoder) {
			e.Write2(c.ClientCode)
		})
	}
	e.Terminate()
	return e.Bytes()
}

// checkUnsigned16 reports values that do not fit a 2-byte field.
func checkUnsigned16(p *parser.Parser, span types.Span, name string, v int32) {
	if v < 0 || v > 0xffff {
		p.Error(types.DiagInvalidValue, span,
			fmt.Sprintf("Value %d of '%s' is out of range (0..65535)", v, name))
	}
}
