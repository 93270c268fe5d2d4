package integration

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gameconf/confc"
	"github.com/stretchr/testify/require"
)

// EncodingTestCase names one encoded entry of the fixture project and the
// bytes the runtime expects for it.
type EncodingTestCase struct {
	Category string
	Name     string
	ID       int
	Want     []byte
}

// encodingTests covers every entry in testdata/project. Ids of entries
// listed in testdata/project/symbols are kept; new entries get max+1.
var encodingTests = []EncodingTestCase{
	// === Player variables ===
	{Category: "varp", Name: "quest_points", ID: 0,
		Want: []byte{4, 1, 5, 0, 101, 0}},
	{Category: "varp", Name: "gold_amount", ID: 3,
		Want: []byte{0}},
	{Category: "varp", Name: "tutorial_progress", ID: 4,
		Want: []byte{4, 2, 0}},

	// === Varbits (forward reference to a varp declared in another file) ===
	{Category: "varbit", Name: "tutorial_done", ID: 0,
		Want: []byte{1, 0, 4, 0, 0, 0}},
	{Category: "varbit", Name: "quest_flag", ID: 1,
		Want: []byte{1, 0, 0, 4, 7, 0}},

	// === Client variables ===
	{Category: "varc", Name: "chat_filter", ID: 0,
		Want: []byte{2, 0}},

	// === Inventories (size from a constant) ===
	{Category: "inv", Name: "bank", ID: 0,
		Want: []byte{2, 0x03, 0x20, 4, 1, 0}},

	// === Params ===
	{Category: "param", Name: "attack_bonus", ID: 0,
		Want: []byte{1, 'i', 2, 0, 0, 0, 0, 0}},
	{Category: "param", Name: "label", ID: 1,
		Want: append([]byte{1, 's', 5}, "Unnamed\x00\x00"...)},
	{Category: "param", Name: "reward", ID: 2,
		Want: []byte{1, 'o', 2, 0, 0, 0x03, 0xe3, 4, 0}},

	// === Structs ===
	{Category: "struct", Name: "starter_kit", ID: 0,
		Want: concat(
			[]byte{249, 3},
			[]byte{1, 0, 0, 1}, []byte("Starter kit\x00"),
			[]byte{0, 0, 0, 2, 0, 0, 0x04, 0xfd},
			[]byte{0, 0, 0, 0, 0, 0, 0x01, 0x2c},
			[]byte{0},
		)},

	// === Enums ===
	{Category: "enum", Name: "quest_names", ID: 0,
		Want: concat(
			[]byte{1, 'i', 2, 's', 3}, []byte("Unknown\x00"),
			[]byte{5, 0, 3},
			[]byte{0, 0, 0, 1}, []byte("Cook's Assistant\x00"),
			[]byte{0, 0, 0, 2}, []byte("Demon Slayer\x00"),
			[]byte{0, 0, 0, 3}, []byte("dragon\x00"),
			[]byte{0},
		)},
	{Category: "enum", Name: "coin_values", ID: 1,
		Want: concat(
			[]byte{1, 'o', 2, 'i', 6, 0, 2},
			[]byte{0, 0, 0x03, 0xe3, 0, 0, 0, 1},
			[]byte{0, 0, 0x04, 0xfd, 0, 0, 0x03, 0x20},
			[]byte{0},
		)},
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// copyProject copies a fixture project into a temporary directory and
// loads its project file.
func copyProject(t *testing.T, name string) confc.Project {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join("testdata", name))))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "symbols"), 0o755))

	path := filepath.Join(dir, confc.DefaultProjectFile)
	if _, err := os.Stat(path); err != nil {
		p := confc.DefaultProject()
		p.Symbols = filepath.Join(dir, p.Symbols)
		p.Input = filepath.Join(dir, p.Input)
		p.Output = filepath.Join(dir, p.Output)
		return p
	}
	p, err := confc.LoadProject(path)
	require.NoError(t, err)
	return p
}

func TestProjectEncodings(t *testing.T) {
	p := copyProject(t, "project")
	result, err := confc.New().Run(p)
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)
	require.Equal(t, len(encodingTests), result.Entries())

	for _, tc := range encodingTests {
		t.Run(tc.Category+"/"+tc.Name, func(t *testing.T) {
			got, err := os.ReadFile(filepath.Join(p.Output, tc.Category, strconv.Itoa(tc.ID)))
			require.NoError(t, err)
			require.Equal(t, tc.Want, got)
		})
	}
}

func TestProjectSymbolFiles(t *testing.T) {
	p := copyProject(t, "project")
	before, err := os.Stat(filepath.Join(p.Symbols, "obj.sym"))
	require.NoError(t, err)

	_, err = confc.New().Run(p)
	require.NoError(t, err)

	tests := []struct {
		file string
		want string
	}{
		{"varp.sym", "quest_points!0\ngold_amount!3\ntutorial_progress!4\n"},
		{"varbit.sym", "tutorial_done!0\nquest_flag!1\n"},
		{"varc.sym", "chat_filter!0!int!true\n"},
		{"inv.sym", "bank!0\n"},
		{"param.sym", "attack_bonus!0!int\nlabel!1!string\nreward!2!obj\n"},
		{"struct.sym", "starter_kit!0\n"},
		{"enum.sym", "quest_names!0!string\ncoin_values!1!int\n"},
		{"constant.sym", "bank_size!800\nquest_cap!300\n"},
		{"obj.sym", "coins!995\nbronze_sword!1277\n"},
	}
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(p.Symbols, tc.file))
			require.NoError(t, err)
			require.Equal(t, tc.want, string(data))
		})
	}

	after, err := os.Stat(filepath.Join(p.Symbols, "obj.sym"))
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime(), "unmodified symbol files are not rewritten")
}

func TestProjectRecompileIsStable(t *testing.T) {
	p := copyProject(t, "project")
	_, err := confc.New().Run(p)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(p.Output, "struct", "0"))
	require.NoError(t, err)

	c := confc.New()
	_, err = c.Run(p)
	require.NoError(t, err)
	require.Empty(t, c.ModifiedCategories(), "second run assigns no new ids")

	second, err := os.ReadFile(filepath.Join(p.Output, "struct", "0"))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestProjectSemanticInfo(t *testing.T) {
	p := copyProject(t, "project")
	c := confc.New(confc.WithSemanticInfo())
	require.NoError(t, c.ReadSymbols(p.Symbols))
	result, err := c.CompileDirectory(p.Input)
	require.NoError(t, err)

	kinds := make(map[string]int)
	for _, si := range result.SemanticInfo {
		kinds[si.Kind]++
		require.Positive(t, si.Line)
		require.Positive(t, si.Length)
	}
	// 15 declarations including constants, 5 typed references plus 5
	// dynamic names, and 3 constant substitutions.
	require.Equal(t, map[string]int{
		"declaration": 15,
		"reference":   10,
		"constant":    3,
	}, kinds)
}
