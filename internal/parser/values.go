package parser

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// ValueKind identifies the shape of a dynamically typed value.
type ValueKind int

const (
	// ValueNone is the value of a property that failed to parse.
	ValueNone ValueKind = iota
	// ValueInt is a 32-bit integer.
	ValueInt
	// ValueString is quoted or unquoted text.
	ValueString
	// ValueBool is true or false.
	ValueBool
	// ValueName is a bare identifier whose category is only known once
	// the expected type is, at resolution.
	ValueName
)

func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "none"
	case ValueInt:
		return "int"
	case ValueString:
		return "string"
	case ValueBool:
		return "boolean"
	case ValueName:
		return "name"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a property value whose type is decided by its shape in the
// source rather than by the property.
type Value struct {
	Kind ValueKind
	Span types.Span
	Int  int32
	// Str holds string content, or the name of a ValueName.
	Str  string
	Bool bool
}

var booleanLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"false": false,
	"no":    false,
}

// ParseInteger parses a 32-bit integer or a "^name" integer constant.
func (p *Parser) ParseInteger() int32 {
	if p.lex.IsCaret() {
		name, value, span, ok := p.parseConstant()
		if !ok {
			return 0
		}
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			p.diagnostics.Errorf(types.DiagInvalidConstant, span,
				"Constant '%s' is not a valid 32-bit number: '%s'", name, value)
			return 0
		}
		return int32(n)
	}
	tok := p.lex.LexInteger()
	if tok.IsDummy() {
		p.abandonLine()
		return 0
	}
	return tok.Number
}

// ParseString parses a quoted string, a "^name" constant, or the
// unquoted rest of the line.
func (p *Parser) ParseString() string {
	switch {
	case p.lex.IsCaret():
		_, value, _, _ := p.parseConstant()
		return value
	case p.lex.IsQuotedString():
		tok := p.lex.LexQuotedString()
		if tok.IsDummy() {
			p.abandonLine()
		}
		return tok.Text
	default:
		tok := p.lex.LexLine()
		p.lineDone = true
		return tok.Text
	}
}

// ParseBoolean parses true/false (or yes/no) or a "^name" constant.
func (p *Parser) ParseBoolean() bool {
	if p.lex.IsCaret() {
		name, value, span, ok := p.parseConstant()
		if !ok {
			return false
		}
		b, ok := booleanLiterals[value]
		if !ok {
			p.diagnostics.Errorf(types.DiagInvalidConstant, span,
				"Constant '%s' is not a valid boolean: '%s'", name, value)
		}
		return b
	}
	tok := p.lex.LexIdentifier()
	if tok.IsDummy() {
		p.abandonLine()
		return false
	}
	b, ok := booleanLiterals[tok.Text]
	if !ok {
		p.diagnostics.Errorf(types.DiagInvalidBoolean, tok.Span,
			"Expected a boolean value ('true' or 'false') but received '%s'", tok.Text)
	}
	return b
}

// ParseLiteral parses an identifier and maps it through literals. An
// unknown literal is reported along with the accepted ones.
func ParseLiteral[T any](p *Parser, literals map[string]T) (T, bool) {
	var zero T
	tok := p.lex.LexIdentifier()
	if tok.IsDummy() {
		p.abandonLine()
		return zero, false
	}
	v, ok := literals[tok.Text]
	if !ok {
		choices := slices.Sorted(maps.Keys(literals))
		p.diagnostics.Errorf(types.DiagUnknownLiteral, tok.Span,
			"Unknown literal '%s', expected one of: %s", tok.Text, strings.Join(choices, ", "))
		return zero, false
	}
	return v, true
}

// ParseType parses a category literal such as "int" or "obj".
func (p *Parser) ParseType() *symbol.Type {
	tok := p.lex.LexIdentifier()
	if tok.IsDummy() {
		p.abandonLine()
		return nil
	}
	typ, ok := symbol.Lookup(tok.Text)
	if !ok {
		p.diagnostics.Errorf(types.DiagUnknownCategory, tok.Span,
			"Unknown type '%s'", tok.Text)
		return nil
	}
	return typ
}

// ParseReference parses the name of a symbol of category typ. The
// reference stays symbolic until resolution.
func (p *Parser) ParseReference(typ *symbol.Type) *symbol.Reference {
	tok := p.lex.LexIdentifier()
	if tok.IsDummy() {
		p.abandonLine()
		return nil
	}
	if tok.Text != symbol.NullName {
		p.record(tok.Span, typ, SemReference)
	}
	return &symbol.Reference{Type: typ, Span: tok.Span, Name: tok.Text}
}

// ParseComma parses a ',' separator with optional blanks around it.
func (p *Parser) ParseComma() bool {
	p.lex.SkipSpaces()
	if p.lex.LexComma().IsDummy() {
		p.abandonLine()
		return false
	}
	p.lex.SkipSpaces()
	return true
}

// ParseDynamic parses a value whose type follows its shape: a quoted
// string, an integer, a boolean, a bare name, or a "^name" constant whose
// literal is reinterpreted the same way. Text that is neither a single
// name nor any of the above is taken as an unquoted string.
func (p *Parser) ParseDynamic() Value {
	start := p.lex.Pos()
	switch {
	case p.lex.IsCaret():
		_, value, span, ok := p.parseConstant()
		if !ok {
			return Value{Span: span}
		}
		return literalValue(value, span)
	case p.lex.IsQuotedString():
		tok := p.lex.LexQuotedString()
		if tok.IsDummy() {
			p.abandonLine()
			return Value{Span: tok.Span}
		}
		return Value{Kind: ValueString, Span: tok.Span, Str: tok.Text}
	case p.lex.IsInteger():
		tok := p.lex.LexInteger()
		if tok.IsDummy() {
			p.abandonLine()
			return Value{Span: tok.Span}
		}
		return Value{Kind: ValueInt, Span: tok.Span, Int: tok.Number}
	case p.lex.IsIdentifier() && p.isSingleName():
		tok := p.lex.LexIdentifier()
		if tok.Text == "true" || tok.Text == "false" {
			return Value{Kind: ValueBool, Span: tok.Span, Bool: tok.Text == "true"}
		}
		p.record(tok.Span, nil, SemReference)
		return Value{Kind: ValueName, Span: tok.Span, Str: tok.Text}
	case p.lex.IsEOL():
		p.diagnostics.Errorf(types.DiagInvalidValue, types.At(start),
			"Expected a value but received %s", p.describe())
		p.abandonLine()
		return Value{Span: types.At(start)}
	default:
		tok := p.lex.LexLine()
		p.lineDone = true
		return Value{Kind: ValueString, Span: tok.Span, Str: tok.Text}
	}
}

// isSingleName reports whether the cursor is at an identifier that ends
// the value: only blanks, a comma or a comment may follow it.
func (p *Parser) isSingleName() bool {
	i := p.lex.Pos()
	for i < len(p.source) && isNameByte(p.source[i]) {
		i++
	}
	for i < len(p.source) && (p.source[i] == ' ' || p.source[i] == '\t') {
		i++
	}
	if i >= len(p.source) {
		return true
	}
	switch p.source[i] {
	case '\n', '\r', ',':
		return true
	case '/':
		return i+1 < len(p.source) && p.source[i+1] == '/'
	default:
		return false
	}
}

// parseConstant parses "^name" and returns the constant's literal.
func (p *Parser) parseConstant() (name, value string, span types.Span, ok bool) {
	caret := p.lex.LexCaret()
	tok := p.lex.LexIdentifier()
	if tok.IsDummy() {
		p.abandonLine()
		return "", "", tok.Span, false
	}
	span = caret.Span.Merge(tok.Span)
	p.record(span, symbol.Constant, SemConstant)
	sym, found := p.table.LookupSymbol(symbol.Constant, tok.Text)
	if !found {
		p.diagnostics.Errorf(types.DiagUnknownConstant, span,
			"Unknown constant '%s'", tok.Text)
		return tok.Text, "", span, false
	}
	return tok.Text, sym.(*symbol.ConstantSymbol).Value, span, true
}

// literalValue interprets a constant literal by its shape.
func literalValue(literal string, span types.Span) Value {
	if n, err := strconv.ParseInt(literal, 10, 32); err == nil {
		return Value{Kind: ValueInt, Span: span, Int: int32(n)}
	}
	if literal == "true" || literal == "false" {
		return Value{Kind: ValueBool, Span: span, Bool: literal == "true"}
	}
	if len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"' {
		return Value{Kind: ValueString, Span: span, Str: literal[1 : len(literal)-1]}
	}
	return Value{Kind: ValueString, Span: span, Str: literal}
}

func isNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_' || b == '+'
}
