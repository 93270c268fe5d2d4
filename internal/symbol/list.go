package symbol

import "slices"

// List holds the symbols of one category in insertion order, indexed by
// name and by id. Any Add or Remove marks the list modified.
type List struct {
	typ      *Type
	symbols  []Symbol
	byName   map[string]Symbol
	byID     map[int32]Symbol
	modified bool
}

// NewList returns an empty, unmodified list for the category.
func NewList(t *Type) *List {
	return &List{
		typ:    t,
		byName: make(map[string]Symbol),
		byID:   make(map[int32]Symbol),
	}
}

// Type returns the category of the list.
func (l *List) Type() *Type {
	return l.typ
}

// Symbols returns the symbols in insertion order.
// The returned slice must not be modified.
func (l *List) Symbols() []Symbol {
	return l.symbols
}

// Len returns the number of symbols.
func (l *List) Len() int {
	return len(l.symbols)
}

// Modified reports whether the list differs from its persisted form.
func (l *List) Modified() bool {
	return l.modified
}

// ClearModified resets the dirty flag, typically after the list was
// written back to storage.
func (l *List) ClearModified() {
	l.modified = false
}

// Add appends a symbol and marks the list modified. An existing symbol
// with the same name is replaced in place.
func (l *List) Add(sym Symbol) {
	name := sym.SymbolName()
	if old, ok := l.byName[name]; ok {
		l.symbols[slices.Index(l.symbols, old)] = sym
		if id := old.SymbolID(); id >= 0 && l.byID[id] == old {
			delete(l.byID, id)
		}
	} else {
		l.symbols = append(l.symbols, sym)
	}
	l.byName[name] = sym
	if id := sym.SymbolID(); id >= 0 {
		l.byID[id] = sym
	}
	l.modified = true
}

// Remove deletes a symbol and marks the list modified. Returns false if
// the symbol is not in the list.
func (l *List) Remove(sym Symbol) bool {
	idx := slices.Index(l.symbols, sym)
	if idx < 0 {
		return false
	}
	l.symbols = slices.Delete(l.symbols, idx, idx+1)
	delete(l.byName, sym.SymbolName())
	if id := sym.SymbolID(); id >= 0 && l.byID[id] == sym {
		delete(l.byID, id)
	}
	l.modified = true
	return true
}

// LookupByName finds a symbol by name.
func (l *List) LookupByName(name string) (Symbol, bool) {
	sym, ok := l.byName[name]
	return sym, ok
}

// LookupByID finds a symbol by id.
func (l *List) LookupByID(id int32) (Symbol, bool) {
	sym, ok := l.byID[id]
	return sym, ok
}

// NextID returns one past the largest id in the list, or 0 when the list
// has no numbered symbols. Ids freed by Remove are not reused while a
// larger id remains.
func (l *List) NextID() int32 {
	next := int32(0)
	for id := range l.byID {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
