package types

// Diagnostic codes emitted by the lexer, parser, and resolver phases.
// Centralizing these prevents silent breakage from typos in string literals.

// Lexer diagnostic codes.
const (
	DiagUnexpectedChar    = "unexpected-char"
	DiagUnexpectedEOF     = "unexpected-eof"
	DiagUnterminatedQuote = "unterminated-string"
	DiagInvalidInteger    = "invalid-integer"
)

// Parser diagnostic codes.
const (
	DiagUnknownProperty   = "unknown-property"
	DiagMissingProperty   = "missing-property"
	DiagUnknownLiteral    = "unknown-literal"
	DiagUnknownCategory   = "unknown-category"
	DiagInvalidBoolean    = "invalid-boolean"
	DiagUnknownConstant   = "unknown-constant"
	DiagInvalidConstant   = "invalid-constant"
	DiagInvalidValue      = "invalid-value"
	DiagDuplicateProperty = "duplicate-property"
	DiagExpectedEntry     = "expected-entry"
)

// Resolver diagnostic codes.
const (
	DiagUnresolvedReference = "unresolved-reference"
	DiagNullNotPermitted    = "null-not-permitted"
	DiagNotReferenceable    = "not-referenceable"
	DiagTypeMismatch        = "type-mismatch"
	DiagDuplicateEntry      = "duplicate-entry"
)

// AllDiagnosticCodes returns all known diagnostic codes grouped by phase.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Lexer
		{Code: DiagUnexpectedChar, Phase: "lexer"},
		{Code: DiagUnexpectedEOF, Phase: "lexer"},
		{Code: DiagUnterminatedQuote, Phase: "lexer"},
		{Code: DiagInvalidInteger, Phase: "lexer"},

		// Parser
		{Code: DiagUnknownProperty, Phase: "parser"},
		{Code: DiagMissingProperty, Phase: "parser"},
		{Code: DiagUnknownLiteral, Phase: "parser"},
		{Code: DiagUnknownCategory, Phase: "parser"},
		{Code: DiagInvalidBoolean, Phase: "parser"},
		{Code: DiagUnknownConstant, Phase: "parser"},
		{Code: DiagInvalidConstant, Phase: "parser"},
		{Code: DiagInvalidValue, Phase: "parser"},
		{Code: DiagDuplicateProperty, Phase: "parser"},
		{Code: DiagExpectedEntry, Phase: "parser"},

		// Resolver
		{Code: DiagUnresolvedReference, Phase: "resolver"},
		{Code: DiagNullNotPermitted, Phase: "resolver"},
		{Code: DiagNotReferenceable, Phase: "resolver"},
		{Code: DiagTypeMismatch, Phase: "resolver"},
		{Code: DiagDuplicateEntry, Phase: "resolver"},
	}
}

// DiagCodeInfo describes a diagnostic code.
type DiagCodeInfo struct {
	Code  string
	Phase string
}
