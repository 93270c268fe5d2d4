package parser

import (
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// SemanticKind is the role of an annotated source range.
type SemanticKind int

const (
	// SemDeclaration marks the name of a declared entry or constant.
	SemDeclaration SemanticKind = iota
	// SemReference marks a name referring to another symbol.
	SemReference
	// SemConstant marks a "^name" constant substitution.
	SemConstant
)

func (k SemanticKind) String() string {
	switch k {
	case SemDeclaration:
		return "declaration"
	case SemReference:
		return "reference"
	case SemConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// SemanticInfo annotates one source range for editor tooling. Type is nil
// for names whose category is only known after resolution.
type SemanticInfo struct {
	Span types.Span
	Type *symbol.Type
	Kind SemanticKind
}

type semanticRecorder struct {
	entries []SemanticInfo
}

func (p *Parser) record(span types.Span, typ *symbol.Type, kind SemanticKind) {
	if p.semantic == nil {
		return
	}
	p.semantic.entries = append(p.semantic.entries, SemanticInfo{Span: span, Type: typ, Kind: kind})
}
