package confc

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gameconf/confc/internal/config"
	"github.com/gameconf/confc/internal/symbol"
)

// Source supplies configuration source files.
type Source interface {
	// ListFiles returns the paths of all source files in a deterministic
	// order.
	ListFiles() ([]string, error)

	// ReadFile returns the content of a path returned by ListFiles.
	ReadFile(path string) ([]byte, error)
}

// SourceCategory returns the category a source file declares, chosen by
// its extension: "items.struct" declares structs, "game.constant"
// declares constants. Files of other extensions are not sources.
func SourceCategory(name string) (string, bool) {
	typ, ok := sourceType(name)
	if !ok {
		return "", false
	}
	return typ.Literal, true
}

func sourceType(name string) (*symbol.Type, bool) {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	typ, ok := symbol.Lookup(ext)
	if !ok {
		return nil, false
	}
	if typ == symbol.Constant {
		return typ, true
	}
	_, ok = config.Lookup(typ)
	return typ, ok
}

// --- Dir Source (recursive directory) ---

type dirSource struct {
	root string
	fsys fs.FS
}

// Dir creates a Source over a directory tree. Paths are reported joined
// to root so that diagnostics point at real files.
func Dir(root string) (Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: root, Err: os.ErrInvalid}
	}
	return &dirSource{root: root, fsys: os.DirFS(root)}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(root string) Source {
	src, err := Dir(root)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *dirSource) ListFiles() ([]string, error) {
	files, err := listSourceFiles(s.fsys)
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		files[i] = filepath.Join(s.root, filepath.FromSlash(f))
	}
	return files, nil
}

func (s *dirSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// --- FS Source (for embed.FS, testing) ---

type fsSource struct {
	name string
	fsys fs.FS
}

// FS creates a Source backed by an fs.FS. A non-empty name prefixes the
// reported paths as "name:path".
func FS(name string, fsys fs.FS) Source {
	return &fsSource{name: name, fsys: fsys}
}

func (s *fsSource) ListFiles() ([]string, error) {
	files, err := listSourceFiles(s.fsys)
	if err != nil {
		return nil, err
	}
	if s.name != "" {
		for i, f := range files {
			files[i] = s.name + ":" + f
		}
	}
	return files, nil
}

func (s *fsSource) ReadFile(name string) ([]byte, error) {
	if s.name != "" {
		name = strings.TrimPrefix(name, s.name+":")
	}
	return fs.ReadFile(s.fsys, name)
}

// --- Multi Source (combines multiple sources) ---

type multiSource struct {
	sources []Source
	owner   map[string]Source
}

// Multi combines multiple sources into one. Files are listed source by
// source, in argument order.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) ListFiles() ([]string, error) {
	var files []string
	s.owner = make(map[string]Source)
	for _, src := range s.sources {
		f, err := src.ListFiles()
		if err != nil {
			return nil, err
		}
		for _, name := range f {
			if _, dup := s.owner[name]; !dup {
				s.owner[name] = src
				files = append(files, name)
			}
		}
	}
	return files, nil
}

func (s *multiSource) ReadFile(name string) ([]byte, error) {
	if src, ok := s.owner[name]; ok {
		return src.ReadFile(name)
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// --- Helpers ---

// listSourceFiles returns the source files of fsys in walk order, which
// is lexical within each directory.
func listSourceFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := sourceType(p); ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
