// Package lexer provides on-demand tokenization of configuration source text.
//
// Unlike a streaming tokenizer, the lexer is driven by the parser: each token
// kind has an IsX predicate telling whether it can start at the cursor and a
// LexX operation that consumes it. A failed LexX records a diagnostic and
// returns a TokDummy token so that parsing can continue.
package lexer

import (
	"fmt"

	"github.com/gameconf/confc/internal/types"
)

// TokenKind identifies a token type.
type TokenKind int

const (
	// TokDummy is the placeholder returned after a lexical error.
	TokDummy TokenKind = iota
	// TokLBracket is '['.
	TokLBracket
	// TokRBracket is ']'.
	TokRBracket
	// TokEquals is '='.
	TokEquals
	// TokComma is ','.
	TokComma
	// TokIdentifier is a run of letters, digits, '_' and '+'.
	TokIdentifier
	// TokNumber is a signed 32-bit integer.
	TokNumber
	// TokText is quoted or unquoted string content.
	TokText
	// TokCaret is '^', the constant reference marker.
	TokCaret
)

var tokenKindNames = [...]string{
	TokDummy:      "dummy",
	TokLBracket:   "'['",
	TokRBracket:   "']'",
	TokEquals:     "'='",
	TokComma:      "','",
	TokIdentifier: "identifier",
	TokNumber:     "number",
	TokText:       "text",
	TokCaret:      "'^'",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a token with kind, source span and decoded value.
type Token struct {
	Kind TokenKind
	Span types.Span
	// Text holds the identifier name or the string content (without quotes).
	Text string
	// Number holds the value of a TokNumber.
	Number int32
}

// NewToken creates a new valueless token.
func NewToken(kind TokenKind, span types.Span) Token {
	return Token{Kind: kind, Span: span}
}

// IsDummy returns true if the token is the error placeholder.
func (t Token) IsDummy() bool {
	return t.Kind == TokDummy
}
