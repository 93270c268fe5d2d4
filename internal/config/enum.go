package config

import (
	"fmt"

	"github.com/gameconf/confc/internal/binary"
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

type enumVal struct {
	key   parser.Value
	value parser.Value
}

type enumEntry struct {
	key   int32
	value binary.Param
}

// EnumConfig is a lookup table from keys of the input type to values of
// the output type.
type EnumConfig struct {
	base
	InputType  *symbol.Type
	OutputType *symbol.Type
	Default    parser.Value

	inputSpan    types.Span
	outputSpan   types.Span
	hasDefault   bool
	vals         []enumVal
	defaultValue binary.Param
	defaultOK    bool
	entries      []enumEntry
}

// NewEnum returns an empty enum.
func NewEnum(name string, span types.Span) *EnumConfig {
	return &EnumConfig{base: base{name: name, span: span, typ: symbol.Enum}}
}

func (c *EnumConfig) ParseProperty(name string, p *parser.Parser) {
	switch name {
	case "inputtype":
		c.inputSpan = p.PropertySpan()
		c.InputType = p.ParseType()
	case "outputtype":
		c.outputSpan = p.PropertySpan()
		c.OutputType = p.ParseType()
	case "default":
		c.hasDefault = true
		c.Default = p.ParseDynamic()
	case "val":
		key := p.ParseDynamic()
		if !p.ParseComma() {
			return
		}
		c.vals = append(c.vals, enumVal{key: key, value: p.ParseDynamic()})
	default:
		p.UnknownProperty()
	}
}

func (c *EnumConfig) IsRepeatable(name string) bool {
	return name == "val"
}

func (c *EnumConfig) VerifyProperties(p *parser.Parser) {
	if c.InputType == nil {
		p.MissingProperty("inputtype")
	} else if c.InputType.IsString() {
		p.Error(types.DiagInvalidValue, c.propertySpan(c.inputSpan),
			"Type 'string' cannot be used as an enum key")
		c.InputType = nil
	} else if !checkEncodableType(p, c.InputType, c.propertySpan(c.inputSpan)) {
		c.InputType = nil
	}
	if c.OutputType == nil {
		p.MissingProperty("outputtype")
	} else if !checkEncodableType(p, c.OutputType, c.propertySpan(c.outputSpan)) {
		c.OutputType = nil
	}
}

func (c *EnumConfig) ResolveReferences(r *resolver.Resolver) {
	if c.hasDefault {
		c.defaultValue, c.defaultOK = resolveValue(r, c.Default, c.OutputType)
	}
	index := make(map[int32]int)
	for _, v := range c.vals {
		key, keyOK := resolveValue(r, v.key, c.InputType)
		value, valueOK := resolveValue(r, v.value, c.OutputType)
		if !keyOK || !valueOK {
			continue
		}
		if i, seen := index[key.Int]; seen {
			c.entries[i].value = value
			continue
		}
		index[key.Int] = len(c.entries)
		c.entries = append(c.entries, enumEntry{key: key.Int, value: value})
	}
	c.vals = nil
	if n := len(c.entries); n > binary.MaxCount {
		r.Error(types.DiagInvalidValue, c.span,
			fmt.Sprintf("Too many values in '%s': %d (at most %d)", c.name, n, binary.MaxCount))
	}
}

func (c *EnumConfig) CreateSymbol(id int32) symbol.Symbol {
	if c.OutputType == nil {
		return nil
	}
	return &symbol.TypedSymbol{Name: c.name, ID: id, Type: c.OutputType}
}

func (c *EnumConfig) Encode() []byte {
	size := 1
	if c.InputType != nil {
		size += 2
	}
	if c.OutputType != nil {
		size += 2
	}
	if c.defaultOK {
		size += 1 + valueSize(c.OutputType, c.defaultValue)
	}
	if len(c.entries) > 0 {
		size += 3
		for _, entry := range c.entries {
			size += 4 + valueSize(c.OutputType, entry.value)
		}
	}
	e := binary.NewEncoder(size)
	if c.InputType != nil {
		e.Code(1, func(e *binary.Encoder) {
			e.Write1(int32(c.InputType.LegacyChar))
		})
	}
	if c.OutputType != nil {
		e.Code(2, func(e *binary.Encoder) {
			e.Write1(int32(c.OutputType.LegacyChar))
		})
	}
	if c.defaultOK {
		if c.OutputType.IsString() {
			e.Code(3, func(e *binary.Encoder) {
				e.WriteString(c.defaultValue.Str)
			})
		} else {
			e.Code(4, func(e *binary.Encoder) {
				e.Write4(c.defaultValue.Int)
			})
		}
	}
	if len(c.entries) > 0 {
		opcode := byte(6)
		if c.OutputType.IsString() {
			opcode = 5
		}
		if len(c.entries) > binary.MaxCount {
			panic("config: enum holds at most 65535 values")
		}
		e.Code(opcode, func(e *binary.Encoder) {
			e.Write2(int32(len(c.entries)))
			for _, entry := range c.entries {
				e.Write4(entry.key)
				if c.OutputType.IsString() {
					e.WriteString(entry.value.Str)
				} else {
					e.Write4(entry.value.Int)
				}
			}
		})
	}
	e.Terminate()
	return e.Bytes()
}
