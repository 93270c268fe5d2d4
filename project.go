package confc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultProjectFile is the project file looked up by the command line.
const DefaultProjectFile = "confc.yaml"

// Project locates the directories of a compilation.
type Project struct {
	// Symbols is the directory of the persisted symbol files.
	Symbols string `yaml:"symbols"`
	// Input is the root of the configuration sources.
	Input string `yaml:"input"`
	// Output receives the encoded entries.
	Output string `yaml:"output"`
	// SemanticInfo, when set, is the file semantic info is exported to.
	SemanticInfo string `yaml:"seminfo,omitempty"`
	// Verbose is the log verbosity: 0 info, 1 debug, 2 trace.
	Verbose int `yaml:"verbose,omitempty"`
}

// DefaultProject returns the directories used when nothing is configured.
func DefaultProject() Project {
	return Project{
		Symbols: "symbols",
		Input:   "input",
		Output:  "output",
	}
}

// ParseProject decodes a project file over the defaults. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func ParseProject(r io.Reader) (Project, error) {
	p := DefaultProject()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Project{}, fmt.Errorf("parsing project: %w", err)
	}
	return p, nil
}

// LoadProject reads a project file. Relative directories in the file are
// taken relative to the file's own directory.
func LoadProject(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}
	p, err := ParseProject(bytes.NewReader(data))
	if err != nil {
		return Project{}, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	p.Symbols = relativeTo(base, p.Symbols)
	p.Input = relativeTo(base, p.Input)
	p.Output = relativeTo(base, p.Output)
	if p.SemanticInfo != "-" {
		p.SemanticInfo = relativeTo(base, p.SemanticInfo)
	}
	return p, nil
}

// Marshal encodes the project in project file format.
func (p Project) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

func relativeTo(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
