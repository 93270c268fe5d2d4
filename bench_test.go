package confc

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"
)

// benchSources builds n varps, n varbits over them and one struct file
// with n params.
func benchSources(n int) fstest.MapFS {
	var varps, varbits, params, structs strings.Builder
	structs.WriteString("[kit]\n")
	for i := range n {
		fmt.Fprintf(&varps, "[var_%d]\nscope = perm\nclientcode = %d\n\n", i, i%1000)
		fmt.Fprintf(&varbits, "[bit_%d]\nbasevar = var_%d\nstartbit = %d\nendbit = 31\n\n", i, i, i%32)
		fmt.Fprintf(&params, "[param_%d]\ntype = int\ndefault = ^base\n\n", i)
		fmt.Fprintf(&structs, "param = param_%d,%d\n", i, i)
	}
	return fstest.MapFS{
		"game.constant": {Data: []byte("base = 10\n")},
		"vars.varp":     {Data: []byte(varps.String())},
		"bits.varbit":   {Data: []byte(varbits.String())},
		"items.param":   {Data: []byte(params.String())},
		"kits.struct":   {Data: []byte(structs.String())},
	}
}

func BenchmarkCompile(b *testing.B) {
	src := FS("", benchSources(200))
	b.ResetTimer()
	for b.Loop() {
		result, err := New().Compile(src)
		if err != nil {
			b.Fatalf("Compile failed: %v", err)
		}
		if len(result.Diagnostics) > 0 {
			b.Fatalf("unexpected diagnostics: %v", result.Diagnostics[0])
		}
	}
}

func BenchmarkRecompile(b *testing.B) {
	src := FS("", benchSources(200))
	c := New()
	if _, err := c.Compile(src); err != nil {
		b.Fatalf("Compile failed: %v", err)
	}
	b.ResetTimer()
	for b.Loop() {
		if _, err := c.Compile(src); err != nil {
			b.Fatalf("Compile failed: %v", err)
		}
	}
}
