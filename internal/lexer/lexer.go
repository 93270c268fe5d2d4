package lexer

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/gameconf/confc/internal/types"
)

// Lexer tokenizes configuration source text on demand.
type Lexer struct {
	source      []byte
	pos         int
	diagnostics types.Diagnostics
	types.Logger
}

// New returns a Lexer positioned at the start of source.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Diagnostics returns a copy of all collected diagnostics.
func (l *Lexer) Diagnostics() []types.Diagnostic {
	return slices.Clone(l.diagnostics.List())
}

// Source returns the text being lexed.
func (l *Lexer) Source() []byte {
	return l.source
}

// Pos returns the current byte offset.
func (l *Lexer) Pos() int {
	return l.pos
}

// IsEOF returns true if all input has been consumed.
func (l *Lexer) IsEOF() bool {
	return l.pos >= len(l.source)
}

// IsEOL returns true at a line terminator or at end of input.
func (l *Lexer) IsEOL() bool {
	b, ok := l.peek()
	return !ok || isLineDelimiter(b)
}

// IsLBracket returns true if a '[' can be lexed next.
func (l *Lexer) IsLBracket() bool {
	return l.peekIs('[')
}

// LexLBracket consumes a '['.
func (l *Lexer) LexLBracket() Token {
	return l.lexPunct(TokLBracket, '[')
}

// IsRBracket returns true if a ']' can be lexed next.
func (l *Lexer) IsRBracket() bool {
	return l.peekIs(']')
}

// LexRBracket consumes a ']'.
func (l *Lexer) LexRBracket() Token {
	return l.lexPunct(TokRBracket, ']')
}

// IsEquals returns true if a '=' can be lexed next.
func (l *Lexer) IsEquals() bool {
	return l.peekIs('=')
}

// LexEquals consumes a '='.
func (l *Lexer) LexEquals() Token {
	return l.lexPunct(TokEquals, '=')
}

// IsComma returns true if a ',' can be lexed next.
func (l *Lexer) IsComma() bool {
	return l.peekIs(',')
}

// LexComma consumes a ','.
func (l *Lexer) LexComma() Token {
	return l.lexPunct(TokComma, ',')
}

// IsCaret returns true if a '^' constant marker can be lexed next.
func (l *Lexer) IsCaret() bool {
	return l.peekIs('^')
}

// LexCaret consumes a '^'.
func (l *Lexer) LexCaret() Token {
	return l.lexPunct(TokCaret, '^')
}

// IsComment returns true at the start of a "//" line comment.
func (l *Lexer) IsComment() bool {
	return l.peekIs('/') && l.peekAtIs(1, '/')
}

// IsIdentifier returns true if an identifier can be lexed next.
func (l *Lexer) IsIdentifier() bool {
	b, ok := l.peek()
	return ok && isIdentifierPart(b)
}

// LexIdentifier consumes a run of identifier characters.
func (l *Lexer) LexIdentifier() Token {
	if l.IsEOF() {
		return l.fail("Expected an identifier but reached end of file")
	}
	if !l.IsIdentifier() {
		return l.fail(fmt.Sprintf("Expected an identifier but received %s", l.describe()))
	}
	start := l.pos
	for {
		b, ok := l.peek()
		if !ok || !isIdentifierPart(b) {
			break
		}
		l.pos++
	}
	tok := l.token(TokIdentifier, start)
	tok.Text = string(l.source[start:l.pos])
	return tok
}

// LexLine consumes unquoted text through the end of the line, including the
// line terminator. Trailing blanks are not part of the token.
func (l *Lexer) LexLine() Token {
	if l.IsEOF() {
		return l.fail("Expected a string but reached end of file")
	}
	start := l.pos
	end := start
	for !l.IsEOL() {
		l.pos++
		if b := l.source[l.pos-1]; b != ' ' && b != '\t' {
			end = l.pos
		}
	}
	tok := Token{
		Kind: TokText,
		Span: types.NewSpan(types.ByteOffset(start), types.ByteOffset(end)),
		Text: string(l.source[start:end]),
	}
	l.traceToken(tok)
	l.skipLineEnding()
	return tok
}

// IsQuotedString returns true if a quoted string can be lexed next.
func (l *Lexer) IsQuotedString() bool {
	return l.peekIs('"')
}

// LexQuotedString consumes a '"'-delimited string. There is no escape
// processing; the string must be closed on the same line.
func (l *Lexer) LexQuotedString() Token {
	if l.IsEOF() {
		return l.fail("Expected a quote but reached end of file")
	}
	if !l.IsQuotedString() {
		return l.fail(fmt.Sprintf("Expected a quote but received %s", l.describe()))
	}
	start := l.pos
	l.pos++
	for {
		b, ok := l.peek()
		if !ok || isLineDelimiter(b) {
			return l.failCode(types.DiagUnterminatedQuote, "String is not closed properly")
		}
		if b == '"' {
			break
		}
		l.pos++
	}
	l.pos++
	tok := l.token(TokText, start)
	tok.Text = string(l.source[start+1 : l.pos-1])
	return tok
}

// IsInteger returns true if an integer (with optional sign) can be lexed next.
func (l *Lexer) IsInteger() bool {
	b, ok := l.peek()
	if !ok {
		return false
	}
	if b == '+' || b == '-' {
		next, ok := l.peekAt(1)
		return ok && isDigit(next)
	}
	return isDigit(b)
}

// LexInteger consumes a signed 32-bit decimal integer. Values outside the
// int32 range are reported rather than wrapped.
func (l *Lexer) LexInteger() Token {
	if l.IsEOF() {
		return l.fail("Expected a digit but reached end of file")
	}
	start := l.pos
	if b, _ := l.peek(); b == '+' || b == '-' {
		l.pos++
	}
	if b, ok := l.peek(); !ok || !isDigit(b) {
		return l.fail(fmt.Sprintf("Expected a digit but received %s", l.describe()))
	}
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.pos++
	}
	text := string(l.source[start:l.pos])
	value, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return l.failCode(types.DiagInvalidInteger,
			fmt.Sprintf("Could not convert '%s' to a valid 32-bit number", text))
	}
	tok := l.token(TokNumber, start)
	tok.Number = int32(value)
	return tok
}

// SkipSpaces skips spaces and tabs, staying on the current line.
func (l *Lexer) SkipSpaces() {
	for {
		b, ok := l.peek()
		if !ok || (b != ' ' && b != '\t') {
			return
		}
		l.pos++
	}
}

// SkipWhitespace skips spaces, tabs and line terminators.
func (l *Lexer) SkipWhitespace() {
	for {
		b, ok := l.peek()
		if !ok || (b != ' ' && b != '\t' && !isLineDelimiter(b)) {
			return
		}
		l.pos++
	}
}

// SkipLine skips the rest of the current line and the line terminators
// that follow it.
func (l *Lexer) SkipLine() {
	for !l.IsEOL() {
		l.pos++
	}
	for {
		b, ok := l.peek()
		if !ok || !isLineDelimiter(b) {
			return
		}
		l.pos++
	}
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) peekIs(expected byte) bool {
	b, ok := l.peek()
	return ok && b == expected
}

func (l *Lexer) peekAtIs(offset int, expected byte) bool {
	b, ok := l.peekAt(offset)
	return ok && b == expected
}

func (l *Lexer) skipLineEnding() {
	b, ok := l.peek()
	if !ok || !isLineDelimiter(b) {
		return
	}
	l.pos++
	if b == '\r' && l.peekIs('\n') {
		l.pos++
	}
}

// describe renders the character at the cursor for error messages.
func (l *Lexer) describe() string {
	b, ok := l.peek()
	switch {
	case !ok:
		return "end of file"
	case b == '\n' || b == '\r':
		return "end of line"
	default:
		return fmt.Sprintf("'%c'", b)
	}
}

func (l *Lexer) lexPunct(kind TokenKind, expected byte) Token {
	if !l.peekIs(expected) {
		return l.fail(fmt.Sprintf("Expected a '%c' but received %s", expected, l.describe()))
	}
	start := l.pos
	l.pos++
	return l.token(kind, start)
}

func (l *Lexer) fail(message string) Token {
	code := types.DiagUnexpectedChar
	if l.IsEOF() {
		code = types.DiagUnexpectedEOF
	}
	return l.failCode(code, message)
}

func (l *Lexer) failCode(code string, message string) Token {
	span := types.At(l.pos)
	l.diagnostics.Error(code, span, message)
	l.Log(slog.LevelDebug, "lexical error",
		slog.String("code", code),
		slog.Int("offset", l.pos))
	return NewToken(TokDummy, span)
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	tok := Token{
		Kind: kind,
		Span: types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.pos)),
	}
	l.traceToken(tok)
	return tok
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentifierPart(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '_' || b == '+'
}

func isLineDelimiter(b byte) bool {
	return b == '\n' || b == '\r'
}
