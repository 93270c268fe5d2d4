// Package symbol provides the symbol table: per-category lists of named
// symbols with stable numeric ids, and their line-oriented file format.
package symbol

// Variant selects the symbol record layout used by a category.
type Variant int

// Symbol variants.
const (
	VariantBasic Variant = iota
	VariantTyped
	VariantConfig
	VariantConstant
	VariantClientScript
	VariantDbColumn
)

// Type is a symbol category such as "varp" or "struct". Types are
// singletons; compare them by pointer.
type Type struct {
	// Literal is the stable short name used in file extensions, symbol
	// file names and type properties.
	Literal string
	// LegacyChar is the single-byte type code used in binary output,
	// or 0 when the category has none.
	LegacyChar byte
	// Variant selects the symbol record layout.
	Variant Variant

	referenceable bool
}

// Categories. The order of this block is the order of Types().
var (
	Int          = &Type{Literal: "int", LegacyChar: 'i', Variant: VariantBasic}
	Boolean      = &Type{Literal: "boolean", LegacyChar: '1', Variant: VariantBasic}
	String       = &Type{Literal: "string", LegacyChar: 's', Variant: VariantBasic}
	Coord        = &Type{Literal: "coord", LegacyChar: 'c', Variant: VariantBasic}
	Obj          = &Type{Literal: "obj", LegacyChar: 'o', Variant: VariantBasic, referenceable: true}
	Constant     = &Type{Literal: "constant", Variant: VariantConstant}
	Enum         = &Type{Literal: "enum", LegacyChar: 'g', Variant: VariantTyped, referenceable: true}
	VarPlayer    = &Type{Literal: "varp", Variant: VariantBasic, referenceable: true}
	VarClient    = &Type{Literal: "varc", Variant: VariantConfig, referenceable: true}
	VarBit       = &Type{Literal: "varbit", Variant: VariantBasic, referenceable: true}
	Param        = &Type{Literal: "param", Variant: VariantTyped, referenceable: true}
	Inv          = &Type{Literal: "inv", LegacyChar: 'v', Variant: VariantBasic, referenceable: true}
	Struct       = &Type{Literal: "struct", LegacyChar: 'J', Variant: VariantBasic, referenceable: true}
	ClientScript = &Type{Literal: "clientscript", Variant: VariantClientScript, referenceable: true}
	DbColumn     = &Type{Literal: "dbcolumn", Variant: VariantDbColumn, referenceable: true}
)

var allTypes = []*Type{
	Int, Boolean, String, Coord, Obj, Constant, Enum,
	VarPlayer, VarClient, VarBit, Param, Inv, Struct,
	ClientScript, DbColumn,
}

var typesByLiteral = func() map[string]*Type {
	m := make(map[string]*Type, len(allTypes))
	for _, t := range allTypes {
		m[t.Literal] = t
	}
	return m
}()

// Types returns all categories in a stable order.
func Types() []*Type {
	return allTypes
}

// Lookup finds a category by its literal.
func Lookup(literal string) (*Type, bool) {
	t, ok := typesByLiteral[literal]
	return t, ok
}

// IsReference reports whether values of this category are written as
// references to symbols rather than as literals.
func (t *Type) IsReference() bool {
	return t.referenceable
}

// IsString reports whether values of this category are encoded as strings.
func (t *Type) IsString() bool {
	return t == String
}

// FileName returns the symbol file name for the category.
func (t *Type) FileName() string {
	return t.Literal + ".sym"
}

func (t *Type) String() string {
	return t.Literal
}
