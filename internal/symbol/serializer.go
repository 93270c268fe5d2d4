package symbol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldSeparator separates the fields of a symbol file line.
const FieldSeparator = "!"

// ErrMalformedSymbol is returned for a symbol line that does not match its
// category's layout.
var ErrMalformedSymbol = errors.New("malformed symbol")

// ErrUnknownCategory is returned when a category literal is not known.
var ErrUnknownCategory = errors.New("unknown symbol category")

// Serializer converts symbols of one variant to and from a single line.
type Serializer interface {
	Serialize(sym Symbol) string
	Deserialize(line string) (Symbol, error)
}

// SerializerFor returns the serializer for the category's variant.
func SerializerFor(t *Type) Serializer {
	switch t.Variant {
	case VariantTyped:
		return typedSerializer{}
	case VariantConfig:
		return configSerializer{}
	case VariantConstant:
		return constantSerializer{}
	case VariantClientScript:
		return clientScriptSerializer{}
	case VariantDbColumn:
		return dbColumnSerializer{}
	default:
		return basicSerializer{}
	}
}

func join(fields ...string) string {
	return strings.Join(fields, FieldSeparator)
}

func split(line string, n int) ([]string, error) {
	parts := strings.SplitN(line, FieldSeparator, n)
	if len(parts) != n {
		return nil, fmt.Errorf("%w: expected %d fields in %q", ErrMalformedSymbol, n, line)
	}
	return parts, nil
}

func parseID(field string) (int32, error) {
	id, err := strconv.ParseInt(field, 10, 32)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrMalformedSymbol, field)
	}
	return int32(id), nil
}

func formatID(id int32) string {
	return strconv.FormatInt(int64(id), 10)
}

func parseType(field string) (*Type, error) {
	t, ok := Lookup(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, field)
	}
	return t, nil
}

func parseTypeList(field string) ([]*Type, error) {
	if strings.TrimSpace(field) == "" {
		return nil, nil
	}
	var types []*Type
	for _, literal := range strings.Split(field, ",") {
		t, err := parseType(literal)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

type basicSerializer struct{}

func (basicSerializer) Serialize(sym Symbol) string {
	s := sym.(*BasicSymbol)
	return join(s.Name, formatID(s.ID))
}

func (basicSerializer) Deserialize(line string) (Symbol, error) {
	parts, err := split(line, 2)
	if err != nil {
		return nil, err
	}
	id, err := parseID(parts[1])
	if err != nil {
		return nil, err
	}
	return &BasicSymbol{Name: parts[0], ID: id}, nil
}

type typedSerializer struct{}

func (typedSerializer) Serialize(sym Symbol) string {
	s := sym.(*TypedSymbol)
	return join(s.Name, formatID(s.ID), s.Type.Literal)
}

func (typedSerializer) Deserialize(line string) (Symbol, error) {
	parts, err := split(line, 3)
	if err != nil {
		return nil, err
	}
	id, err := parseID(parts[1])
	if err != nil {
		return nil, err
	}
	t, err := parseType(parts[2])
	if err != nil {
		return nil, err
	}
	return &TypedSymbol{Name: parts[0], ID: id, Type: t}, nil
}

type configSerializer struct{}

func (configSerializer) Serialize(sym Symbol) string {
	s := sym.(*ConfigSymbol)
	return join(s.Name, formatID(s.ID), s.Type.Literal, strconv.FormatBool(s.Transmit))
}

func (configSerializer) Deserialize(line string) (Symbol, error) {
	parts, err := split(line, 4)
	if err != nil {
		return nil, err
	}
	id, err := parseID(parts[1])
	if err != nil {
		return nil, err
	}
	t, err := parseType(parts[2])
	if err != nil {
		return nil, err
	}
	var transmit bool
	switch parts[3] {
	case "true":
		transmit = true
	case "false":
	default:
		return nil, fmt.Errorf("%w: invalid transmit flag %q", ErrMalformedSymbol, parts[3])
	}
	return &ConfigSymbol{Name: parts[0], ID: id, Type: t, Transmit: transmit}, nil
}

type constantSerializer struct{}

func (constantSerializer) Serialize(sym Symbol) string {
	s := sym.(*ConstantSymbol)
	return join(s.Name, s.Value)
}

// Deserialize takes everything after the first separator as the value.
func (constantSerializer) Deserialize(line string) (Symbol, error) {
	parts, err := split(line, 2)
	if err != nil {
		return nil, err
	}
	return &ConstantSymbol{Name: parts[0], Value: parts[1]}, nil
}

type clientScriptSerializer struct{}

func (clientScriptSerializer) Serialize(sym Symbol) string {
	s := sym.(*ClientScriptSymbol)
	return join(s.Name, formatID(s.ID), strings.Join(literals(s.Arguments), ","))
}

func (clientScriptSerializer) Deserialize(line string) (Symbol, error) {
	parts, err := split(line, 3)
	if err != nil {
		return nil, err
	}
	id, err := parseID(parts[1])
	if err != nil {
		return nil, err
	}
	args, err := parseTypeList(parts[2])
	if err != nil {
		return nil, err
	}
	return &ClientScriptSymbol{Name: parts[0], ID: id, Arguments: args}, nil
}

type dbColumnSerializer struct{}

func (dbColumnSerializer) Serialize(sym Symbol) string {
	s := sym.(*DbColumnSymbol)
	return join(s.Name, formatID(s.ID), strings.Join(literals(s.Types), ","), s.Props.String())
}

func (dbColumnSerializer) Deserialize(line string) (Symbol, error) {
	parts, err := split(line, 4)
	if err != nil {
		return nil, err
	}
	id, err := parseID(parts[1])
	if err != nil {
		return nil, err
	}
	types, err := parseTypeList(parts[2])
	if err != nil {
		return nil, err
	}
	var props DbColumnProps
	if strings.TrimSpace(parts[3]) != "" {
		for _, literal := range strings.Split(parts[3], ",") {
			p, ok := LookupDbColumnProp(literal)
			if !ok {
				return nil, fmt.Errorf("%w: unknown column property %q", ErrMalformedSymbol, literal)
			}
			props |= p
		}
	}
	return &DbColumnSymbol{Name: parts[0], ID: id, Types: types, Props: props}, nil
}
