package config

import (
	"fmt"

	"github.com/gameconf/confc/internal/binary"
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// maxBit is the highest bit of the 32-bit base variable.
const maxBit = 31

// VarbitConfig is a bit range within a player variable.
type VarbitConfig struct {
	base
	BaseVar  symbol.Link
	StartBit int32
	EndBit   int32

	hasBaseVar   bool
	startBitSpan types.Span
	endBitSpan   types.Span
}

// NewVarbit returns an empty varbit.
func NewVarbit(name string, span types.Span) *VarbitConfig {
	return &VarbitConfig{
		base:    base{name: name, span: span, typ: symbol.VarBit},
		BaseVar: symbol.Unset,
	}
}

func (c *VarbitConfig) ParseProperty(name string, p *parser.Parser) {
	switch name {
	case "basevar":
		c.hasBaseVar = true
		if ref := p.ParseReference(symbol.VarPlayer); ref != nil {
			c.BaseVar = symbol.Unresolved(ref)
		}
	case "startbit":
		c.startBitSpan = p.PropertySpan()
		c.StartBit = p.ParseInteger()
	case "endbit":
		c.endBitSpan = p.PropertySpan()
		c.EndBit = p.ParseInteger()
	default:
		p.UnknownProperty()
	}
}

func (c *VarbitConfig) VerifyProperties(p *parser.Parser) {
	if !c.hasBaseVar {
		p.MissingProperty("basevar")
	}
	startOK := c.checkBit(p, "startbit", c.StartBit, c.startBitSpan)
	endOK := c.checkBit(p, "endbit", c.EndBit, c.endBitSpan)
	if startOK && endOK && c.StartBit > c.EndBit {
		p.Error(types.DiagInvalidValue, c.propertySpan(c.startBitSpan),
			fmt.Sprintf("Start bit %d is greater than end bit %d", c.StartBit, c.EndBit))
	}
}

func (c *VarbitConfig) checkBit(p *parser.Parser, name string, bit int32, span types.Span) bool {
	if bit < 0 || bit > maxBit {
		p.Error(types.DiagInvalidValue, c.propertySpan(span),
			fmt.Sprintf("Value %d of '%s' is out of range (0..%d)", bit, name, maxBit))
		return false
	}
	return true
}

func (c *VarbitConfig) ResolveReferences(r *resolver.Resolver) {
	c.BaseVar = r.ResolveLink(c.BaseVar, false)
}

func (c *VarbitConfig) Encode() []byte {
	e := binary.NewEncoder(6)
	e.Code(1, func(e *binary.Encoder) {
		e.Write2(c.BaseVar.ID())
		e.Write1(c.StartBit)
		e.Write1(c.EndBit)
	})
	e.Terminate()
	return e.Bytes()
}
