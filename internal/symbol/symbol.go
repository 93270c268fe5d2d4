package symbol

import "strings"

// Symbol is the persisted record for one named entry of a category.
type Symbol interface {
	SymbolName() string
	// SymbolID returns the numeric id, or -1 for symbols without one.
	SymbolID() int32
}

// BasicSymbol carries a name and id only.
type BasicSymbol struct {
	Name string
	ID   int32
}

func (s *BasicSymbol) SymbolName() string { return s.Name }
func (s *BasicSymbol) SymbolID() int32    { return s.ID }

// TypedSymbol adds the value domain of the entry (e.g. a param's type).
type TypedSymbol struct {
	Name string
	ID   int32
	Type *Type
}

func (s *TypedSymbol) SymbolName() string { return s.Name }
func (s *TypedSymbol) SymbolID() int32    { return s.ID }

// ConfigSymbol adds a value domain and a transmit flag.
type ConfigSymbol struct {
	Name     string
	ID       int32
	Type     *Type
	Transmit bool
}

func (s *ConfigSymbol) SymbolName() string { return s.Name }
func (s *ConfigSymbol) SymbolID() int32    { return s.ID }

// ConstantSymbol maps a name to literal source text. It has no id.
type ConstantSymbol struct {
	Name  string
	Value string
}

func (s *ConstantSymbol) SymbolName() string { return s.Name }
func (s *ConstantSymbol) SymbolID() int32    { return -1 }

// ClientScriptSymbol adds the ordered parameter types of a script.
type ClientScriptSymbol struct {
	Name      string
	ID        int32
	Arguments []*Type
}

func (s *ClientScriptSymbol) SymbolName() string { return s.Name }
func (s *ClientScriptSymbol) SymbolID() int32    { return s.ID }

// DbColumnSymbol adds the ordered value types and the property set of a
// database table column.
type DbColumnSymbol struct {
	Name  string
	ID    int32
	Types []*Type
	Props DbColumnProps
}

func (s *DbColumnSymbol) SymbolName() string { return s.Name }
func (s *DbColumnSymbol) SymbolID() int32    { return s.ID }

// DbColumnProps is a set of database column properties.
type DbColumnProps uint8

// Database column properties, in canonical serialization order.
const (
	PropRequired DbColumnProps = 1 << iota
	PropList
	PropIndexed
	PropClientSide
)

var dbColumnPropLiterals = []struct {
	prop    DbColumnProps
	literal string
}{
	{PropRequired, "required"},
	{PropList, "list"},
	{PropIndexed, "indexed"},
	{PropClientSide, "clientside"},
}

// LookupDbColumnProp finds a property by literal.
func LookupDbColumnProp(literal string) (DbColumnProps, bool) {
	for _, p := range dbColumnPropLiterals {
		if p.literal == literal {
			return p.prop, true
		}
	}
	return 0, false
}

// Has reports whether all props in p are set.
func (s DbColumnProps) Has(p DbColumnProps) bool {
	return s&p == p
}

// Literals returns the literals of the set properties in canonical order.
func (s DbColumnProps) Literals() []string {
	var out []string
	for _, p := range dbColumnPropLiterals {
		if s.Has(p.prop) {
			out = append(out, p.literal)
		}
	}
	return out
}

func (s DbColumnProps) String() string {
	return strings.Join(s.Literals(), ",")
}

// Equal reports whether two symbols of category t have the same persisted
// form.
func Equal(t *Type, a, b Symbol) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	s := SerializerFor(t)
	return s.Serialize(a) == s.Serialize(b)
}

func literals(types []*Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Literal
	}
	return out
}
