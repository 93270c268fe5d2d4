package confc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"github.com/gameconf/confc/internal/config"
	"github.com/gameconf/confc/internal/parser"
	"github.com/gameconf/confc/internal/resolver"
	"github.com/gameconf/confc/internal/symbol"
	"github.com/gameconf/confc/internal/types"
)

// symbolFilePattern matches "<category>.sym" file names.
var symbolFilePattern = regexp.MustCompile(`^(\w+)\.sym$`)

// Compiler holds the symbol table of one compiler invocation. A Compiler
// is not safe for concurrent use.
type Compiler struct {
	table *symbol.Table
	opts  options
	types.Logger
}

// New returns a Compiler with an empty symbol table.
func New(opts ...Option) *Compiler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Compiler{
		table:  symbol.NewTable(types.ComponentLogger(o.logger, "symbol")),
		opts:   o,
		Logger: types.Logger{L: o.logger},
	}
}

// ReadSymbols loads every "<category>.sym" file in dir. Files of unknown
// categories are skipped. A missing dir is ErrSymbolDirNotFound.
func (c *Compiler) ReadSymbols(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSymbolDirNotFound, dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrSymbolDirNotFound, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := symbolFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		typ, ok := symbol.Lookup(m[1])
		if !ok {
			c.Log(slog.LevelWarn, "skipping symbol file of unknown category",
				slog.String("file", entry.Name()))
			continue
		}
		if err := c.table.ReadFile(typ, filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("reading symbols: %w", err)
		}
		c.Log(slog.LevelDebug, "symbols read",
			slog.String("category", typ.Literal),
			slog.Int("count", c.table.List(typ).Len()))
	}
	return nil
}

// WriteSymbols writes the symbol file of every category whose list
// changed since it was read. Unchanged files are left untouched.
func (c *Compiler) WriteSymbols(dir string) error {
	modified := c.table.Modified()
	if len(modified) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, typ := range modified {
		path := filepath.Join(dir, typ.FileName())
		if err := c.table.WriteFile(typ, path); err != nil {
			return fmt.Errorf("writing symbols: %w", err)
		}
		c.Log(slog.LevelInfo, "symbols written",
			slog.String("category", typ.Literal),
			slog.Int("count", c.table.List(typ).Len()))
	}
	return nil
}

// ListSymbols writes the symbol table of a category in symbol file format.
func (c *Compiler) ListSymbols(category string, w io.Writer) error {
	typ, ok := symbol.Lookup(category)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return c.table.Write(typ, w)
}

// ModifiedCategories returns the categories whose symbols changed.
func (c *Compiler) ModifiedCategories() []string {
	var out []string
	for _, typ := range c.table.Modified() {
		out = append(out, typ.Literal)
	}
	return out
}

// Result is the outcome of a compilation.
type Result struct {
	// Diagnostics are ordered by file, then by position.
	Diagnostics []Diagnostic
	// SemanticInfo is empty unless WithSemanticInfo was given.
	SemanticInfo []SemanticInfo

	units []*unit
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	return HasErrors(r.Diagnostics)
}

// Entries returns the number of parsed entries, constants excluded.
func (r *Result) Entries() int {
	n := 0
	for _, u := range r.units {
		n += len(u.configs)
	}
	return n
}

// unit is one source file moving through the pipeline.
type unit struct {
	index       int
	path        string
	typ         *symbol.Type
	source      []byte
	configs     []config.Config
	constants   []*config.Constant
	diagnostics []types.Diagnostic
	semantic    []parser.SemanticInfo
}

func (u *unit) hasErrors() bool {
	return slices.ContainsFunc(u.diagnostics, func(d types.Diagnostic) bool {
		return d.Severity == types.SeverityError
	})
}

// CompileDirectory compiles every source file under dir.
func (c *Compiler) CompileDirectory(dir string) (*Result, error) {
	src, err := Dir(dir)
	if err != nil {
		return nil, err
	}
	return c.Compile(src)
}

// Compile compiles every file of src. Problems in the sources are
// reported as diagnostics in the result; an error is returned only when
// the sources cannot be read.
func (c *Compiler) Compile(src Source) (*Result, error) {
	files, err := src.ListFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoInput
	}
	units := make([]*unit, 0, len(files))
	for i, f := range files {
		data, err := src.ReadFile(f)
		if err != nil {
			return nil, err
		}
		typ, _ := sourceType(f)
		units = append(units, &unit{index: i, path: f, typ: typ, source: data})
	}
	return c.compile(units), nil
}

// CompileFile compiles a single source file. Its category is taken from
// the extension of name; references resolve against the symbols already
// in the table.
func (c *Compiler) CompileFile(name string, source []byte) (*Result, error) {
	typ, ok := sourceType(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a configuration source", ErrUnknownCategory, name)
	}
	return c.compile([]*unit{{path: name, typ: typ, source: source}}), nil
}

func (c *Compiler) compile(units []*unit) *Result {
	seen := make(declarations)

	// Constants are substituted while other files parse, so every
	// constants file is parsed and registered first.
	for _, u := range units {
		if u.typ == symbol.Constant {
			c.parse(u)
			c.generateSymbols(u, contributors(u.constants), seen)
		}
	}
	for _, u := range units {
		if u.typ != symbol.Constant {
			c.parse(u)
		}
	}
	for _, u := range units {
		if u.typ != symbol.Constant {
			c.generateSymbols(u, contributors(u.configs), seen)
		}
	}

	r := resolver.New(c.table, types.ComponentLogger(c.opts.logger, "resolver"))
	for _, u := range units {
		for _, cfg := range u.configs {
			cfg.ResolveReferences(r)
		}
		u.diagnostics = append(u.diagnostics, r.TakeDiagnostics()...)
	}

	result := &Result{units: units}
	var diags []located
	for _, u := range units {
		diags = append(diags, convertDiagnostics(u.index, u.path, u.source, u.diagnostics)...)
		result.SemanticInfo = append(result.SemanticInfo, convertSemanticInfo(u.path, u.source, u.semantic)...)
	}
	result.Diagnostics = sortDiagnostics(diags)

	c.Log(slog.LevelInfo, "compiled",
		slog.Int("files", len(units)),
		slog.Int("entries", result.Entries()),
		slog.Int("diagnostics", len(result.Diagnostics)))
	return result
}

func (c *Compiler) parse(u *unit) {
	p := parser.New(u.source, c.table, types.ComponentLogger(c.opts.logger, "parser"))
	if c.opts.semanticInfo {
		p.RecordSemanticInfo()
	}
	if u.typ == symbol.Constant {
		u.constants = config.ParseConstants(p)
	} else {
		u.configs = config.Parse(p, u.typ)
	}
	u.diagnostics = append(u.diagnostics, p.Diagnostics()...)
	u.semantic = p.SemanticInfo()
	c.Log(slog.LevelDebug, "file parsed",
		slog.String("file", u.path),
		slog.String("category", u.typ.Literal),
		slog.Int("diagnostics", len(u.diagnostics)))
}

// declarations tracks the names declared per category during one run.
type declarations map[*symbol.Type]map[string]bool

func (d declarations) add(typ *symbol.Type, name string) bool {
	names, ok := d[typ]
	if !ok {
		names = make(map[string]bool)
		d[typ] = names
	}
	if names[name] {
		return false
	}
	names[name] = true
	return true
}

func contributors[S config.SymbolContributor](items []S) []config.SymbolContributor {
	out := make([]config.SymbolContributor, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// generateSymbols gives every declaration a symbol. A name already in the
// table keeps its id; only new names get a fresh one. The table entry is
// replaced only when the symbol actually changed, so unchanged categories
// stay clean and their files are not rewritten.
func (c *Compiler) generateSymbols(u *unit, decls []config.SymbolContributor, seen declarations) {
	for _, decl := range decls {
		typ := decl.Type()
		name := decl.Name()
		if !seen.add(typ, name) {
			u.diagnostics = append(u.diagnostics, types.Diagnostic{
				Severity: types.SeverityError,
				Code:     types.DiagDuplicateEntry,
				Span:     decl.Span(),
				Message:  fmt.Sprintf("Duplicate declaration of '%s' of type '%s'", name, typ.Literal),
			})
			continue
		}
		list := c.table.List(typ)
		old, exists := list.LookupByName(name)
		id := int32(-1)
		switch {
		case exists:
			id = old.SymbolID()
		case typ.Variant != symbol.VariantConstant:
			id = c.table.GenerateID(typ)
		}
		sym := decl.CreateSymbol(id)
		if sym == nil {
			continue
		}
		if exists && symbol.Equal(typ, old, sym) {
			continue
		}
		list.Add(sym)
		if c.TraceEnabled() {
			c.Trace("symbol generated",
				slog.String("category", typ.Literal),
				slog.String("name", name),
				slog.Int("id", int(id)),
				slog.Bool("new", !exists))
		}
	}
}

// GenerateCode writes one file per entry, named by its id, under
// "<outDir>/<category>/". Files with error diagnostics produce no output.
func (c *Compiler) GenerateCode(result *Result, outDir string) error {
	written := 0
	for _, u := range result.units {
		if len(u.configs) == 0 {
			continue
		}
		if u.hasErrors() {
			c.Log(slog.LevelWarn, "skipping output for file with errors", slog.String("file", u.path))
			continue
		}
		dir := filepath.Join(outDir, u.typ.Literal)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		for _, cfg := range u.configs {
			sym, ok := c.table.LookupSymbol(u.typ, cfg.Name())
			if !ok {
				continue
			}
			path := filepath.Join(dir, strconv.Itoa(int(sym.SymbolID())))
			if err := os.WriteFile(path, cfg.Encode(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			written++
		}
	}
	c.Log(slog.LevelInfo, "code generated", slog.Int("files", written))
	return nil
}

// Run performs a full compilation of a project: read symbols, compile the
// input directory, write the encoded entries and the changed symbols.
func (c *Compiler) Run(p Project) (*Result, error) {
	if err := c.ReadSymbols(p.Symbols); err != nil {
		return nil, err
	}
	result, err := c.CompileDirectory(p.Input)
	if err != nil {
		return nil, err
	}
	if err := c.GenerateCode(result, p.Output); err != nil {
		return result, err
	}
	if err := c.WriteSymbols(p.Symbols); err != nil {
		return result, err
	}
	return result, nil
}
