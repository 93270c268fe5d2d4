package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gameconf/confc"
	"github.com/gameconf/confc/cmd/internal/cliutil"
)

// dirFlags are the project directory overrides shared by compile and check.
type dirFlags struct {
	symbols string
	input   string
	output  string
	seminfo string
}

func (d *dirFlags) register(flags *pflag.FlagSet, withOutput bool) {
	flags.StringVarP(&d.symbols, "symbols", "s", "", "symbol directory (overrides the project file)")
	flags.StringVarP(&d.input, "input", "i", "", "source directory (overrides the project file)")
	if withOutput {
		flags.StringVarP(&d.output, "output", "o", "", "output directory (overrides the project file)")
	}
	flags.StringVar(&d.seminfo, "seminfo", "", "write semantic info as JSON to `FILE` (- for stdout)")
}

// apply overrides the project directories with the flags that were given.
func (d *dirFlags) apply(p *confc.Project) {
	if d.symbols != "" {
		p.Symbols = d.symbols
	}
	if d.input != "" {
		p.Input = d.input
	}
	if d.output != "" {
		p.Output = d.output
	}
	if d.seminfo != "" {
		p.SemanticInfo = d.seminfo
	}
}

func (c *cli) compilerFor(p confc.Project) *confc.Compiler {
	if c.verbose == 0 {
		c.verbose = p.Verbose
	}
	var opts []confc.Option
	if p.SemanticInfo != "" {
		opts = append(opts, confc.WithSemanticInfo())
	}
	return c.newCompiler(opts...)
}

// report prints diagnostics and exports semantic info, returning the exit
// code for the result.
func report(p confc.Project, result *confc.Result) int {
	errs := cliutil.PrintDiagnostics(os.Stderr, result.Diagnostics)
	if p.SemanticInfo != "" {
		info := result.SemanticInfo
		if info == nil {
			info = []confc.SemanticInfo{}
		}
		if err := cliutil.WriteJSON(p.SemanticInfo, info); err != nil {
			cliutil.PrintError("writing semantic info: %v", err)
			return exitError
		}
	}
	if errs > 0 {
		return exitDiagnostics
	}
	return exitOK
}

type cmdCompile struct {
	*cli
	dirs dirFlags
}

func (*cmdCompile) help() *commandHelp {
	return &commandHelp{
		usage:   "compile",
		summary: "Compile the project sources and update the symbol files",
		args:    cobra.NoArgs,
	}
}

func (cmd *cmdCompile) flags(flags *pflag.FlagSet) {
	cmd.dirs.register(flags, true)
}

func (cmd *cmdCompile) run(_ context.Context, _ []string) int {
	p, err := cmd.loadProject()
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	cmd.dirs.apply(&p)

	result, err := cmd.compilerFor(p).Run(p)
	if err != nil {
		cliutil.PrintError("%v", err)
		if result != nil {
			report(p, result)
		}
		return exitError
	}
	return report(p, result)
}

type cmdCheck struct {
	*cli
	dirs dirFlags
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check",
		summary: "Report diagnostics without writing output or symbols",
		args:    cobra.NoArgs,
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	cmd.dirs.register(flags, false)
}

func (cmd *cmdCheck) run(_ context.Context, _ []string) int {
	p, err := cmd.loadProject()
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	cmd.dirs.apply(&p)

	c := cmd.compilerFor(p)
	if err := c.ReadSymbols(p.Symbols); err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	result, err := c.CompileDirectory(p.Input)
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	return report(p, result)
}
