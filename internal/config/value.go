package config

import (
	"fmt"
	"log/slog"

	"github.com/gameconf/confc/internal/binary"
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// resolveValue checks a dynamic value against the type it must have and
// turns names into symbol ids. The returned param has no id set.
//
// A bare name is accepted as string content when a string is expected,
// since single-word strings need no quotes.
func resolveValue(r *resolver.Resolver, v parser.Value, expected *symbol.Type) (binary.Param, bool) {
	if v.Kind == parser.ValueNone || expected == nil {
		return binary.Param{}, false
	}
	switch {
	case expected.IsString():
		switch v.Kind {
		case parser.ValueString, parser.ValueName:
			return binary.Param{IsString: true, Str: v.Str}, true
		}
	case expected == symbol.Boolean:
		if v.Kind == parser.ValueBool {
			var n int32
			if v.Bool {
				n = 1
			}
			return binary.Param{Int: n}, true
		}
	case expected.IsReference():
		if v.Kind == parser.ValueName {
			ref := &symbol.Reference{Type: expected, Span: v.Span, Name: v.Str}
			return binary.Param{Int: r.ResolveReference(ref, true)}, true
		}
	default:
		if v.Kind == parser.ValueInt {
			return binary.Param{Int: v.Int}, true
		}
	}
	r.Error(types.DiagTypeMismatch, v.Span,
		fmt.Sprintf("Expected a value of type '%s' but received %s", expected.Literal, describeValue(v)))
	return binary.Param{}, false
}

func describeValue(v parser.Value) string {
	switch v.Kind {
	case parser.ValueInt:
		return fmt.Sprintf("the number %d", v.Int)
	case parser.ValueString:
		return fmt.Sprintf("the string \"%s\"", v.Str)
	case parser.ValueBool:
		return fmt.Sprintf("the boolean %t", v.Bool)
	default:
		return fmt.Sprintf("the name '%s'", v.Str)
	}
}

// valueSize returns the encoded size of a value of type typ.
func valueSize(typ *symbol.Type, p binary.Param) int {
	if typ.IsString() {
		return binary.StringSize(p.Str)
	}
	return 4
}

type pendingParam struct {
	ref   *symbol.Reference
	value parser.Value
}

// Params is a parameter list: "param = name, value" properties that
// resolve into a parameter block. A param set twice keeps its first
// position and takes the last value.
type Params struct {
	pending  []pendingParam
	resolved []binary.Param
}

// Parse parses one "name, value" pair.
func (ps *Params) Parse(p *parser.Parser) {
	ref := p.ParseReference(symbol.Param)
	if ref == nil || !p.ParseComma() {
		return
	}
	ps.pending = append(ps.pending, pendingParam{ref: ref, value: p.ParseDynamic()})
}

// Resolve resolves each param name and checks its value against the
// param's declared type.
func (ps *Params) Resolve(r *resolver.Resolver) {
	index := make(map[int32]int)
	for _, pp := range ps.pending {
		id := r.ResolveReference(pp.ref, false)
		if id == -1 {
			continue
		}
		typ := r.LookupTyped(symbol.Param, id)
		value, ok := resolveValue(r, pp.value, typ)
		if !ok {
			continue
		}
		value.ID = id
		if i, seen := index[id]; seen {
			ps.resolved[i] = value
			continue
		}
		index[id] = len(ps.resolved)
		ps.resolved = append(ps.resolved, value)
		if r.TraceEnabled() {
			r.Trace("param resolved", slog.String("param", pp.ref.Name), slog.Int("id", int(id)))
		}
	}
	ps.pending = nil
}

// Encoded returns the resolved params in declaration order.
func (ps *Params) Encoded() []binary.Param {
	return ps.resolved
}
