// Package parser parses configuration source files into schema entries.
//
// A source file is a sequence of entries. Each entry starts with a header
// line holding its name in brackets, followed by "key = value" property
// lines up to the next header:
//
//	[goldAmount]
//	scope = perm
//	clientcode = 5
//
// The parser owns the block grammar and the value grammars. Each schema
// consumes its own properties through the Entry interface, calling back
// into the parser for the values it expects. Parse errors are collected
// as diagnostics; parsing always continues with the next line.
package parser

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gameconf/confc/internal/lexer"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// Entry is a configuration entry being populated by the parser.
type Entry interface {
	// ParseProperty consumes the value of property name. Unrecognized
	// names should be reported through Parser.UnknownProperty.
	ParseProperty(name string, p *Parser)
	// VerifyProperties runs once all properties of the entry are parsed.
	VerifyProperties(p *Parser)
}

// RepeatableEntry is implemented by entries with properties that may
// appear more than once, such as parameter lists.
type RepeatableEntry interface {
	Entry
	IsRepeatable(name string) bool
}

// Constant is a named literal declared in a constants file.
type Constant struct {
	Name  string
	Span  types.Span
	Value string
}

// Parser drives the lexer over one source file.
type Parser struct {
	source      []byte
	lex         *lexer.Lexer
	table       *symbol.Table
	diagnostics types.Diagnostics
	semantic    *semanticRecorder

	// entry and property are the tokens of the entry header name and the
	// property key currently being parsed.
	entry    lexer.Token
	property lexer.Token
	// lineDone is set when a value grammar consumed the line terminator.
	lineDone bool
	types.Logger
}

// New returns a Parser over source. Constants referenced with "^name" are
// looked up in table, which must already hold every constant.
// Pass nil for logger to disable logging.
func New(source []byte, table *symbol.Table, logger *slog.Logger) *Parser {
	p := &Parser{
		source: source,
		lex:    lexer.New(source, types.ComponentLogger(logger, "lexer")),
		table:  table,
		Logger: types.Logger{L: logger},
	}
	p.Log(slog.LevelDebug, "parser initialized")
	return p
}

// RecordSemanticInfo enables collection of semantic info annotations.
func (p *Parser) RecordSemanticInfo() {
	if p.semantic == nil {
		p.semantic = &semanticRecorder{}
	}
}

// SemanticInfo returns the annotations recorded so far, or nil when
// recording is disabled.
func (p *Parser) SemanticInfo() []SemanticInfo {
	if p.semantic == nil {
		return nil
	}
	return slices.Clone(p.semantic.entries)
}

// Source returns the text being parsed.
func (p *Parser) Source() []byte {
	return p.source
}

// Table returns the symbol table constants are looked up in.
func (p *Parser) Table() *symbol.Table {
	return p.table
}

// Diagnostics returns the lexer and parser diagnostics ordered by position.
func (p *Parser) Diagnostics() []types.Diagnostic {
	diags := append(p.lex.Diagnostics(), p.diagnostics.List()...)
	slices.SortStableFunc(diags, func(a, b types.Diagnostic) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})
	return diags
}

// Error records a diagnostic on behalf of a schema.
func (p *Parser) Error(code string, span types.Span, message string) {
	p.diagnostics.Error(code, span, message)
}

// PropertySpan returns the span of the property key being parsed.
func (p *Parser) PropertySpan() types.Span {
	return p.property.Span
}

// UnknownProperty reports the current property as unknown and skips the
// rest of its line.
func (p *Parser) UnknownProperty() {
	p.diagnostics.Errorf(types.DiagUnknownProperty, p.property.Span,
		"Unknown property '%s'", p.property.Text)
	p.lex.SkipLine()
	p.lineDone = true
}

// MissingProperty reports that the current entry lacks a mandatory property.
func (p *Parser) MissingProperty(name string) {
	p.diagnostics.Errorf(types.DiagMissingProperty, p.entry.Span,
		"Missing mandatory property '%s' in '%s'", name, p.entry.Text)
}

// ParseEntries parses every entry of the file. newEntry is called for
// each header with the entry name and its span.
func ParseEntries[E Entry](p *Parser, typ *symbol.Type, newEntry func(name string, span types.Span) E) []E {
	var entries []E
	for {
		p.skipTrivia()
		if p.lex.IsEOF() {
			break
		}
		name, ok := p.parseHeader()
		if !ok {
			p.recoverToHeader()
			continue
		}
		p.record(name.Span, typ, SemDeclaration)
		p.entry = name
		entry := newEntry(name.Text, name.Span)
		p.parseProperties(entry)
		entry.VerifyProperties(p)
		entries = append(entries, entry)
		if p.TraceEnabled() {
			p.Trace("entry parsed",
				slog.String("type", typ.Literal),
				slog.String("name", name.Text))
		}
	}
	p.Log(slog.LevelDebug, "entries parsed",
		slog.String("type", typ.Literal),
		slog.Int("count", len(entries)))
	return entries
}

// ParseConstants parses a constants file: one "name = literal" per line.
// The literal is the rest of the line with surrounding blanks removed.
func (p *Parser) ParseConstants() []Constant {
	var constants []Constant
	for {
		p.skipTrivia()
		if p.lex.IsEOF() {
			break
		}
		name := p.lex.LexIdentifier()
		if name.IsDummy() {
			p.lex.SkipLine()
			continue
		}
		p.lex.SkipSpaces()
		if p.lex.LexEquals().IsDummy() {
			p.lex.SkipLine()
			continue
		}
		p.lex.SkipSpaces()
		if p.lex.IsEOL() {
			p.diagnostics.Errorf(types.DiagInvalidConstant, name.Span,
				"Constant '%s' has no value", name.Text)
			p.lex.SkipLine()
			continue
		}
		value := p.lex.LexLine()
		p.record(name.Span, symbol.Constant, SemDeclaration)
		constants = append(constants, Constant{
			Name:  name.Text,
			Span:  name.Span,
			Value: value.Text,
		})
	}
	p.Log(slog.LevelDebug, "constants parsed", slog.Int("count", len(constants)))
	return constants
}

// parseHeader parses "[name]" and the end of its line.
func (p *Parser) parseHeader() (lexer.Token, bool) {
	if !p.lex.IsLBracket() {
		p.diagnostics.Errorf(types.DiagExpectedEntry, types.At(p.lex.Pos()),
			"Expected an entry declaration but received %s", p.describe())
		return lexer.Token{}, false
	}
	p.lex.LexLBracket()
	p.lex.SkipSpaces()
	name := p.lex.LexIdentifier()
	if name.IsDummy() {
		return name, false
	}
	p.lex.SkipSpaces()
	if p.lex.LexRBracket().IsDummy() {
		return name, false
	}
	p.finishLine()
	return name, true
}

func (p *Parser) parseProperties(entry Entry) {
	seen := make(map[string]bool)
	repeatable, _ := entry.(RepeatableEntry)
	for {
		p.skipTrivia()
		if p.lex.IsEOF() || p.lex.IsLBracket() {
			return
		}
		key := p.lex.LexIdentifier()
		if key.IsDummy() {
			p.lex.SkipLine()
			continue
		}
		p.lex.SkipSpaces()
		if p.lex.LexEquals().IsDummy() {
			p.lex.SkipLine()
			continue
		}
		p.lex.SkipSpaces()
		if seen[key.Text] && (repeatable == nil || !repeatable.IsRepeatable(key.Text)) {
			p.diagnostics.Warning(types.DiagDuplicateProperty, key.Span,
				fmt.Sprintf("Property '%s' is already set, the last value is used", key.Text))
		}
		seen[key.Text] = true
		if p.TraceEnabled() {
			p.Trace("property", slog.String("key", key.Text))
		}
		p.property = key
		p.lineDone = false
		entry.ParseProperty(key.Text, p)
		p.finishLine()
	}
}

// finishLine expects the end of the current line, reporting anything
// left on it, and moves to the next line.
func (p *Parser) finishLine() {
	if p.lineDone {
		p.lineDone = false
		return
	}
	p.lex.SkipSpaces()
	if !p.lex.IsEOL() && !p.lex.IsComment() {
		p.diagnostics.Errorf(types.DiagUnexpectedChar, types.At(p.lex.Pos()),
			"Expected end of line but received %s", p.describe())
	}
	p.lex.SkipLine()
}

// skipTrivia skips blank lines and comment lines.
func (p *Parser) skipTrivia() {
	for {
		p.lex.SkipWhitespace()
		if !p.lex.IsComment() {
			return
		}
		p.lex.SkipLine()
	}
}

// recoverToHeader skips lines until the next entry header.
func (p *Parser) recoverToHeader() {
	p.lex.SkipLine()
	for {
		p.skipTrivia()
		if p.lex.IsEOF() || p.lex.IsLBracket() {
			return
		}
		p.lex.SkipLine()
	}
}

func (p *Parser) describe() string {
	pos := p.lex.Pos()
	switch {
	case pos >= len(p.source):
		return "end of file"
	case p.lex.IsEOL():
		return "end of line"
	default:
		return fmt.Sprintf("'%c'", p.source[pos])
	}
}

// abandonLine skips the rest of the line after a value failed to lex, so
// the failure is reported only once.
func (p *Parser) abandonLine() {
	p.lex.SkipLine()
	p.lineDone = true
}
