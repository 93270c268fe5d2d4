package symbol

import (
	"errors"
	"testing"

	"github.com/gameconf/confc/internal/testutil"
)

func TestSerializerRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		sym  Symbol
		line string
	}{
		{"basic", VarPlayer, &BasicSymbol{Name: "goldAmount", ID: 0}, "goldAmount!0"},
		{"typed", Param, &TypedSymbol{Name: "strength_bonus", ID: 12, Type: Int}, "strength_bonus!12!int"},
		{"config", VarClient, &ConfigSymbol{Name: "tab", ID: 3, Type: Boolean, Transmit: true}, "tab!3!boolean!true"},
		{"config no transmit", VarClient, &ConfigSymbol{Name: "tab", ID: 3, Type: String}, "tab!3!string!false"},
		{"constant", Constant, &ConstantSymbol{Name: "max_level", Value: "99"}, "max_level!99"},
		{"constant with separator", Constant, &ConstantSymbol{Name: "greeting", Value: "hi!there"}, "greeting!hi!there"},
		{"constant empty", Constant, &ConstantSymbol{Name: "empty", Value: ""}, "empty!"},
		{"client script", ClientScript, &ClientScriptSymbol{Name: "toplevel_init", ID: 7, Arguments: []*Type{Int, String}}, "toplevel_init!7!int,string"},
		{"client script no args", ClientScript, &ClientScriptSymbol{Name: "noop", ID: 8}, "noop!8!"},
		{"db column", DbColumn, &DbColumnSymbol{Name: "items:name", ID: 2, Types: []*Type{String}, Props: PropRequired | PropIndexed}, "items:name!2!string!required,indexed"},
		{"db column empty", DbColumn, &DbColumnSymbol{Name: "items:misc", ID: 4}, "items:misc!4!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SerializerFor(tt.typ)
			line := s.Serialize(tt.sym)
			testutil.Equal(t, tt.line, line, "serialized form")
			back, err := s.Deserialize(line)
			testutil.NoError(t, err, "deserialize")
			testutil.DeepEqual(t, tt.sym, back, "round trip")
		})
	}
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		line string
		want error
	}{
		{"missing id", VarPlayer, "goldAmount", ErrMalformedSymbol},
		{"bad id", VarPlayer, "goldAmount!x", ErrMalformedSymbol},
		{"negative id", VarPlayer, "goldAmount!-1", ErrMalformedSymbol},
		{"id overflow", VarPlayer, "goldAmount!4294967296", ErrMalformedSymbol},
		{"typed missing type", Param, "p!1", ErrMalformedSymbol},
		{"typed unknown type", Param, "p!1!float", ErrUnknownCategory},
		{"config bad flag", VarClient, "v!1!int!yes", ErrMalformedSymbol},
		{"client script unknown arg", ClientScript, "s!1!int,blob", ErrUnknownCategory},
		{"db column bad prop", DbColumn, "c!1!int!sorted", ErrMalformedSymbol},
		{"constant no separator", Constant, "lonely", ErrMalformedSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SerializerFor(tt.typ).Deserialize(tt.line)
			testutil.Error(t, err)
			testutil.True(t, errors.Is(err, tt.want), "errors.Is(%v, %v)", err, tt.want)
		})
	}
}

func TestEqual(t *testing.T) {
	a := &TypedSymbol{Name: "p", ID: 1, Type: Int}
	b := &TypedSymbol{Name: "p", ID: 1, Type: Int}
	c := &TypedSymbol{Name: "p", ID: 1, Type: String}
	testutil.True(t, Equal(Param, a, b), "same fields")
	testutil.False(t, Equal(Param, a, c), "different type")
	testutil.False(t, Equal(Param, a, nil), "nil")
	testutil.True(t, Equal(Param, nil, nil), "both nil")
}

func TestDbColumnProps(t *testing.T) {
	props := PropClientSide | PropRequired
	testutil.SliceEqual(t, []string{"required", "clientside"}, props.Literals())
	testutil.True(t, props.Has(PropRequired), "has required")
	testutil.False(t, props.Has(PropList), "has list")
	p, ok := LookupDbColumnProp("list")
	testutil.True(t, ok, "lookup list")
	testutil.Equal(t, PropList, p)
}

func TestTypeLookup(t *testing.T) {
	for _, typ := range Types() {
		got, ok := Lookup(typ.Literal)
		testutil.True(t, ok, "lookup %s", typ.Literal)
		testutil.True(t, got == typ, "singleton %s", typ.Literal)
	}
	_, ok := Lookup("float")
	testutil.False(t, ok, "unknown literal")
	testutil.Equal(t, "varp.sym", VarPlayer.FileName())
	testutil.True(t, Struct.IsReference(), "struct is referenceable")
	testutil.False(t, Int.IsReference(), "int is a literal type")
}
