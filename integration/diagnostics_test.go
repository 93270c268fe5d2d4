package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gameconf/confc"
	"github.com/stretchr/testify/require"
)

// relativeDiagnostics formats diagnostics with paths relative to the input
// directory.
func relativeDiagnostics(input string, diags []confc.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		if rel, err := filepath.Rel(input, d.File); err == nil {
			d.File = filepath.ToSlash(rel)
		}
		out[i] = d.String()
	}
	return out
}

func TestBrokenProjectDiagnostics(t *testing.T) {
	p := copyProject(t, "broken")
	result, err := confc.New().Run(p)
	require.NoError(t, err)

	want := []string{
		"errors.struct:2:9: error: Unresolved reference to 'missing_param' of type 'param' [unresolved-reference]",
		"errors.struct:3:1: error: Unknown property 'colour' [unknown-property]",
		"errors.varbit:2:11: error: Unresolved reference to 'nowhere' of type 'varp' [unresolved-reference]",
		"errors.varbit:3:1: error: Start bit 9 is greater than end bit 2 [invalid-value]",
		"errors.varbit:6:2: error: Missing mandatory property 'basevar' in 'other' [missing-property]",
		"errors.varbit:7:1: error: Value 40 of 'startbit' is out of range (0..31) [invalid-value]",
	}
	require.Equal(t, want, relativeDiagnostics(p.Input, result.Diagnostics))
	require.True(t, result.HasErrors())
}

func TestBrokenProjectOutput(t *testing.T) {
	p := copyProject(t, "broken")
	_, err := confc.New().Run(p)
	require.NoError(t, err)

	// Files with errors produce nothing; the clean file is still encoded.
	for _, category := range []string{"struct", "varbit"} {
		_, err := os.Stat(filepath.Join(p.Output, category))
		require.ErrorIs(t, err, os.ErrNotExist, category)
	}
	got, err := os.ReadFile(filepath.Join(p.Output, "varp", "0"))
	require.NoError(t, err)
	require.Equal(t, []byte{5, 0, 3, 0}, got)

	// Declarations in broken files still claim their ids.
	data, err := os.ReadFile(filepath.Join(p.Symbols, "varbit.sym"))
	require.NoError(t, err)
	require.Equal(t, "flag!0\nother!1\n", string(data))
}

func TestDiagnosticCodesAreStable(t *testing.T) {
	p := copyProject(t, "broken")
	c := confc.New()
	require.NoError(t, c.ReadSymbols(p.Symbols))
	result, err := c.CompileDirectory(p.Input)
	require.NoError(t, err)

	var codes []string
	for _, d := range result.Diagnostics {
		require.NotEmpty(t, d.Message)
		require.False(t, strings.HasSuffix(d.Message, "."), "messages have no trailing period: %q", d.Message)
		codes = append(codes, d.Code)
	}
	require.ElementsMatch(t, []string{
		"unresolved-reference", "unresolved-reference",
		"unknown-property", "missing-property",
		"invalid-value", "invalid-value",
	}, codes)
}
