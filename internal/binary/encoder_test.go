package binary

import (
	"testing"

	"github.com/gameconf/confc/internal/testutil"
)

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestWriteWidths(t *testing.T) {
	e := NewEncoder(15)
	e.Write1(0x1ff)
	e.Write2(-1)
	e.Write3(0x123456)
	e.Write4(-2)
	e.WriteString("ab")
	e.Terminate()
	testutil.BytesEqual(t, []byte{
		0xff,
		0xff, 0xff,
		0x12, 0x34, 0x56,
		0xff, 0xff, 0xff, 0xfe,
		'a', 'b', 0,
		0,
	}, e.Bytes())
	testutil.Equal(t, 14, e.Len())
}

func TestCode(t *testing.T) {
	e := NewEncoder(6)
	e.Code(5, func(e *Encoder) {
		e.Write2(5)
	})
	e.Code(2, nil)
	e.Terminate()
	testutil.BytesEqual(t, []byte{5, 0, 5, 2, 0}, e.Bytes())
}

func TestEmptyEntry(t *testing.T) {
	e := NewEncoder(1)
	e.Terminate()
	testutil.BytesEqual(t, []byte{0}, e.Bytes())
}

func TestEncoderPanics(t *testing.T) {
	expectPanic(t, "estimate exceeded", func() {
		e := NewEncoder(2)
		e.Write4(1)
	})
	expectPanic(t, "write after terminator", func() {
		e := NewEncoder(4)
		e.Terminate()
		e.Write1(1)
	})
	expectPanic(t, "double terminator", func() {
		e := NewEncoder(4)
		e.Terminate()
		e.Terminate()
	})
	expectPanic(t, "not terminated", func() {
		NewEncoder(4).Bytes()
	})
	expectPanic(t, "reserved opcode", func() {
		NewEncoder(4).Code(OpTerminator, nil)
	})
	expectPanic(t, "params overflow", func() {
		params := make([]Param, MaxParams+1)
		NewEncoder(ParamsSize(params) + 1).Params(params)
	})
}

func TestParams(t *testing.T) {
	params := []Param{
		{ID: 3, Int: 100},
		{ID: 0x010203, IsString: true, Str: "hi"},
	}
	size := ParamsSize(params)
	testutil.Equal(t, 2+8+7, size)

	e := NewEncoder(size + 1)
	e.Params(params)
	e.Terminate()
	testutil.BytesEqual(t, []byte{
		OpParams, 2,
		0, 0, 0, 3, 0, 0, 0, 100,
		1, 1, 2, 3, 'h', 'i', 0,
		0,
	}, e.Bytes())
}

func TestEmptyParams(t *testing.T) {
	testutil.Equal(t, 0, ParamsSize(nil))
	e := NewEncoder(1)
	e.Params(nil)
	e.Terminate()
	testutil.BytesEqual(t, []byte{0}, e.Bytes())
}
