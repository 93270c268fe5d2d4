package config

import (
	"github.com/gameconf/confc/internal/binary"
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// ParamConfig is a typed parameter that structs (and other entries)
// attach values to.
type ParamConfig struct {
	base
	ValueType   *symbol.Type
	Default     parser.Value
	AutoDisable bool

	typeSpan     types.Span
	hasDefault   bool
	defaultValue binary.Param
	defaultOK    bool
}

// NewParam returns an empty param.
func NewParam(name string, span types.Span) *ParamConfig {
	return &ParamConfig{
		base:        base{name: name, span: span, typ: symbol.Param},
		AutoDisable: true,
	}
}

func (c *ParamConfig) ParseProperty(name string, p *parser.Parser) {
	switch name {
	case "type":
		c.typeSpan = p.PropertySpan()
		c.ValueType = p.ParseType()
	case "default":
		c.hasDefault = true
		c.Default = p.ParseDynamic()
	case "autodisable":
		c.AutoDisable = p.ParseBoolean()
	default:
		p.UnknownProperty()
	}
}

func (c *ParamConfig) VerifyProperties(p *parser.Parser) {
	if c.ValueType == nil {
		p.MissingProperty("type")
		return
	}
	if !checkEncodableType(p, c.ValueType, c.propertySpan(c.typeSpan)) {
		c.ValueType = nil
	}
}

func (c *ParamConfig) ResolveReferences(r *resolver.Resolver) {
	if c.hasDefault {
		c.defaultValue, c.defaultOK = resolveValue(r, c.Default, c.ValueType)
	}
}

func (c *ParamConfig) CreateSymbol(id int32) symbol.Symbol {
	if c.ValueType == nil {
		return nil
	}
	return &symbol.TypedSymbol{Name: c.name, ID: id, Type: c.ValueType}
}

func (c *ParamConfig) Encode() []byte {
	size := 1
	if c.ValueType != nil {
		size += 2
	}
	if c.defaultOK {
		size += 1 + valueSize(c.ValueType, c.defaultValue)
	}
	if !c.AutoDisable {
		size++
	}
	e := binary.NewEncoder(size)
	if c.ValueType != nil {
		e.Code(1, func(e *binary.Encoder) {
			e.Write1(int32(c.ValueType.LegacyChar))
		})
	}
	if c.defaultOK {
		if c.ValueType.IsString() {
			e.Code(5, func(e *binary.Encoder) {
				e.WriteString(c.defaultValue.Str)
			})
		} else {
			e.Code(2, func(e *binary.Encoder) {
				e.Write4(c.defaultValue.Int)
			})
		}
	}
	if !c.AutoDisable {
		e.Code(4, nil)
	}
	e.Terminate()
	return e.Bytes()
}

// checkEncodableType reports value types that have no binary type code.
func checkEncodableType(p *parser.Parser, typ *symbol.Type, span types.Span) bool {
	if typ.LegacyChar == 0 {
		p.Error(types.DiagInvalidValue, span,
			"Type '"+typ.Literal+"' cannot be used as a value type")
		return false
	}
	return true
}
