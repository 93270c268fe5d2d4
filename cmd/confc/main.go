// Command confc compiles game configuration sources into binary entries.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gameconf/confc"
	"github.com/gameconf/confc/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK          = 0 // success
	exitError       = 1 // usage error or I/O failure
	exitDiagnostics = 2 // sources have error diagnostics
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
	args    cobra.PositionalArgs
}

// cli holds the flags shared by every command.
type cli struct {
	verbose     int
	projectPath string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, argv []string) int {
	c := &cli{}
	code := exitOK

	rootCmd := &cobra.Command{
		Use:   "confc [options] COMMAND",
		Short: "Game configuration compiler",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().CountVarP(&c.verbose, "verbose", "v",
		"log debug output (-vv for trace output)")
	rootCmd.PersistentFlags().StringVarP(&c.projectPath, "project", "P", "",
		"project file (default "+confc.DefaultProjectFile+" when present)")

	commands := []command{
		&cmdCompile{cli: c},
		&cmdCheck{cli: c},
		&cmdSymbols{cli: c},
		&cmdVersion{},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			Args:  help.args,
			RunE: func(cc *cobra.Command, args []string) error {
				code = cmd.run(cc.Context(), args)
				return nil
			},
		}
		cmd.flags(cobraCmd.Flags())
		rootCmd.AddCommand(cobraCmd)
	}

	rootCmd.SetArgs(argv)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	return code
}

// loadProject reads the project file named by --project, or the default
// project file when it exists, or falls back to the default directories.
func (c *cli) loadProject() (confc.Project, error) {
	path := c.projectPath
	if path == "" {
		if _, err := os.Stat(confc.DefaultProjectFile); errors.Is(err, fs.ErrNotExist) {
			return confc.DefaultProject(), nil
		}
		path = confc.DefaultProjectFile
	}
	return confc.LoadProject(path)
}

func (c *cli) newCompiler(opts ...confc.Option) *confc.Compiler {
	if logger := cliutil.NewLogger(c.verbose); logger != nil {
		opts = append(opts, confc.WithLogger(logger))
	}
	return confc.New(opts...)
}

type cmdVersion struct{}

func (*cmdVersion) help() *commandHelp {
	return &commandHelp{
		usage:   "version",
		summary: "Show version",
		args:    cobra.NoArgs,
	}
}

func (*cmdVersion) flags(*pflag.FlagSet) {}

func (*cmdVersion) run(context.Context, []string) int {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("confc %s\n", version)
	return exitOK
}
