package symbol

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gameconf/confc/internal/testutil"
)

func TestGenerateID(t *testing.T) {
	table := NewTable(nil)
	testutil.Equal(t, int32(0), table.GenerateID(VarPlayer), "empty list")

	list := table.List(VarPlayer)
	list.Add(&BasicSymbol{Name: "a", ID: 0})
	list.Add(&BasicSymbol{Name: "b", ID: 5})
	list.Add(&BasicSymbol{Name: "c", ID: 2})
	testutil.Equal(t, int32(6), table.GenerateID(VarPlayer), "one past max")

	sym, _ := list.LookupByName("c")
	list.Remove(sym)
	testutil.Equal(t, int32(6), table.GenerateID(VarPlayer), "interior ids are not reused")

	// Never returns an id already present.
	for range 10 {
		id := table.GenerateID(VarPlayer)
		_, exists := list.LookupByID(id)
		testutil.False(t, exists, "generated id %d already present", id)
		list.Add(&BasicSymbol{Name: "n" + string(rune('a'+id)), ID: id})
	}
}

func TestListAddRemove(t *testing.T) {
	list := NewList(Inv)
	testutil.False(t, list.Modified(), "new list is clean")

	sym := &BasicSymbol{Name: "bank", ID: 95}
	list.Add(sym)
	testutil.True(t, list.Modified(), "add marks modified")
	got, ok := list.LookupByID(95)
	testutil.True(t, ok, "lookup by id")
	testutil.True(t, got == sym, "same symbol")

	list.ClearModified()
	replacement := &BasicSymbol{Name: "bank", ID: 96}
	list.Add(replacement)
	testutil.Equal(t, 1, list.Len(), "same name replaces")
	_, ok = list.LookupByID(95)
	testutil.False(t, ok, "old id index removed")
	testutil.True(t, list.Modified(), "replace marks modified")

	list.Add(&BasicSymbol{Name: "vault", ID: 97})
	list.Add(&BasicSymbol{Name: "bank", ID: 96})
	testutil.Equal(t, "bank", list.Symbols()[0].SymbolName(), "replacement keeps its position")
	testutil.True(t, list.Remove(list.Symbols()[1]), "remove vault")
	replacement = list.Symbols()[0].(*BasicSymbol)

	list.ClearModified()
	testutil.False(t, list.Remove(sym), "removing absent symbol")
	testutil.False(t, list.Modified(), "failed remove leaves list clean")
	testutil.True(t, list.Remove(replacement), "remove present symbol")
	testutil.Equal(t, 0, list.Len())
	testutil.True(t, list.Modified(), "remove marks modified")
}

func TestConstantListHasNoIDs(t *testing.T) {
	list := NewList(Constant)
	list.Add(&ConstantSymbol{Name: "a", Value: "1"})
	_, ok := list.LookupByID(-1)
	testutil.False(t, ok, "constants are not indexed by id")
	testutil.Equal(t, int32(0), list.NextID())
}

func TestTableReadWrite(t *testing.T) {
	input := "goldAmount!0\n\nquest_points!3\r\n"
	table := NewTable(nil)
	table.List(VarPlayer).Add(&BasicSymbol{Name: "stale", ID: 9})

	testutil.NoError(t, table.Read(VarPlayer, strings.NewReader(input)))
	list := table.List(VarPlayer)
	testutil.Equal(t, 2, list.Len(), "read replaces prior list")
	testutil.False(t, list.Modified(), "read clears dirty flag")
	_, ok := table.LookupSymbol(VarPlayer, "stale")
	testutil.False(t, ok, "prior symbols are gone")
	sym, ok := table.LookupSymbol(VarPlayer, "quest_points")
	testutil.True(t, ok, "lookup")
	testutil.Equal(t, int32(3), sym.SymbolID())

	var buf bytes.Buffer
	testutil.NoError(t, table.Write(VarPlayer, &buf))
	testutil.TextEqual(t, "goldAmount!0\nquest_points!3\n", buf.String())
}

func TestTableReadError(t *testing.T) {
	table := NewTable(nil)
	err := table.Read(Param, strings.NewReader("a!0!int\nb!1\n"))
	testutil.Error(t, err)
	testutil.True(t, errors.Is(err, ErrMalformedSymbol), "wrapped sentinel")
	testutil.Contains(t, err.Error(), "param.sym line 2")
}

func TestTableFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Param.FileName())
	testutil.NoError(t, os.WriteFile(path, []byte("attack_bonus!0!int\n"), 0o644))

	table := NewTable(nil)
	testutil.NoError(t, table.ReadFile(Param, path))
	testutil.Len(t, table.Modified(), 0, "nothing modified after read")

	table.List(Param).Add(&TypedSymbol{Name: "label", ID: table.GenerateID(Param), Type: String})
	testutil.SliceEqual(t, []*Type{Param}, table.Modified())

	testutil.NoError(t, table.WriteFile(Param, path))
	testutil.Len(t, table.Modified(), 0, "write clears modified")
	data, err := os.ReadFile(path)
	testutil.NoError(t, err)
	testutil.TextEqual(t, "attack_bonus!0!int\nlabel!1!string\n", string(data))
}

func TestLinkStates(t *testing.T) {
	var zero Link
	testutil.Equal(t, int32(-1), zero.ID(), "zero link is absent")
	testutil.False(t, zero.IsResolved(), "zero link unresolved")

	ref := &Reference{Type: VarPlayer, Name: "goldAmount"}
	pending := Unresolved(ref)
	testutil.True(t, pending.Reference() == ref, "pending keeps reference")

	done := Resolved(4)
	testutil.True(t, done.IsResolved(), "resolved")
	testutil.Equal(t, int32(4), done.ID())
	testutil.True(t, done.Reference() == nil, "resolved drops reference")
	testutil.Equal(t, int32(-1), Unset.ID())

	defer func() {
		testutil.True(t, recover() != nil, "ID of a pending link panics")
	}()
	_ = pending.ID()
}
