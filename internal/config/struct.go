package config

import (
	"fmt"

	"github.com/gameconf/confc/internal/binary"
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// StructConfig is a bag of params.
type StructConfig struct {
	base
	Params Params
}

// NewStruct returns an empty struct.
func NewStruct(name string, span types.Span) *StructConfig {
	return &StructConfig{base: base{name: name, span: span, typ: symbol.Struct}}
}

func (c *StructConfig) ParseProperty(name string, p *parser.Parser) {
	switch name {
	case "param":
		c.Params.Parse(p)
	default:
		p.UnknownProperty()
	}
}

func (c *StructConfig) IsRepeatable(name string) bool {
	return name == "param"
}

func (c *StructConfig) VerifyProperties(*parser.Parser) {}

func (c *StructConfig) ResolveReferences(r *resolver.Resolver) {
	c.Params.Resolve(r)
	if n := len(c.Params.Encoded()); n > binary.MaxParams {
		r.Error(types.DiagInvalidValue, c.span,
			fmt.Sprintf("Too many params in '%s': %d (at most %d)", c.name, n, binary.MaxParams))
	}
}

func (c *StructConfig) Encode() []byte {
	params := c.Params.Encoded()
	e := binary.NewEncoder(binary.ParamsSize(params) + 1)
	e.Params(params)
	e.Terminate()
	return e.Bytes()
}
