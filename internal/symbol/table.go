package symbol

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gameconf/confc/internal/types"
)

// Table maps each category to its symbol list. It is the single shared
// resolution context of a compilation run.
type Table struct {
	lists map[*Type]*List
	types.Logger
}

// NewTable returns a table with no symbols.
// If logger is nil, logging is disabled (zero overhead).
func NewTable(logger *slog.Logger) *Table {
	return &Table{
		lists:  make(map[*Type]*List),
		Logger: types.Logger{L: logger},
	}
}

// List returns the list of a category, creating an empty one on first use.
func (t *Table) List(typ *Type) *List {
	list, ok := t.lists[typ]
	if !ok {
		list = NewList(typ)
		t.lists[typ] = list
	}
	return list
}

// LookupSymbol finds a symbol by category and name.
func (t *Table) LookupSymbol(typ *Type, name string) (Symbol, bool) {
	list, ok := t.lists[typ]
	if !ok {
		return nil, false
	}
	return list.LookupByName(name)
}

// GenerateID returns a fresh id for the category: one past the current
// maximum, or 0 for an empty list.
func (t *Table) GenerateID(typ *Type) int32 {
	return t.List(typ).NextID()
}

// Read parses a category's symbol file content into a fresh list that
// replaces any list already held for the category. Blank lines are skipped.
// The new list is unmodified.
func (t *Table) Read(typ *Type, r io.Reader) error {
	serializer := SerializerFor(typ)
	list := NewList(typ)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		sym, err := serializer.Deserialize(line)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", typ.FileName(), lineNo, err)
		}
		list.Add(sym)
		if t.TraceEnabled() {
			t.Trace("symbol read",
				slog.String("type", typ.Literal),
				slog.String("name", sym.SymbolName()),
				slog.Int("id", int(sym.SymbolID())))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", typ.FileName(), err)
	}
	list.ClearModified()
	t.lists[typ] = list
	return nil
}

// ReadFile reads a category's symbols from path.
func (t *Table) ReadFile(typ *Type, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // read-only file
	return t.Read(typ, f)
}

// Write serializes a category's list, one symbol per line.
func (t *Table) Write(typ *Type, w io.Writer) error {
	serializer := SerializerFor(typ)
	bw := bufio.NewWriter(w)
	for _, sym := range t.List(typ).Symbols() {
		if _, err := bw.WriteString(serializer.Serialize(sym)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes a category's symbols to path and clears the list's
// modified flag.
func (t *Table) WriteFile(typ *Type, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.Write(typ, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	t.List(typ).ClearModified()
	return nil
}

// Modified returns the categories whose lists differ from their persisted
// form, in Types() order.
func (t *Table) Modified() []*Type {
	var out []*Type
	for _, typ := range Types() {
		if list, ok := t.lists[typ]; ok && list.Modified() {
			out = append(out, typ)
		}
	}
	return out
}
