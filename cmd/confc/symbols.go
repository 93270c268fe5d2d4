package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gameconf/confc/cmd/internal/cliutil"
)

type cmdSymbols struct {
	*cli
	symbols string
	outFile string
}

func (*cmdSymbols) help() *commandHelp {
	return &commandHelp{
		usage:   "symbols CATEGORY",
		summary: "Print the persisted symbols of a category",
		args:    cobra.ExactArgs(1),
	}
}

func (cmd *cmdSymbols) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.symbols, "symbols", "s", "", "symbol directory (overrides the project file)")
	flags.StringVarP(&cmd.outFile, "output", "o", "", "write to `FILE` instead of stdout")
}

func (cmd *cmdSymbols) run(_ context.Context, argv []string) int {
	p, err := cmd.loadProject()
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	if cmd.symbols != "" {
		p.Symbols = cmd.symbols
	}

	c := cmd.newCompiler()
	if err := c.ReadSymbols(p.Symbols); err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	out, cleanup, err := cliutil.GetOutput(cmd.outFile)
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	defer cleanup()
	if err := c.ListSymbols(argv[0], out); err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	return exitOK
}
