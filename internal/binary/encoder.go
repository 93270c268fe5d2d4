// Package binary encodes configuration entries into the opcode-tagged
// runtime format.
//
// An encoded entry is a sequence of codes. A code is a one-byte opcode
// followed by the fixed-width, big-endian value of one property. Properties
// at their default value are left out. The stream ends with the terminator
// opcode 0, written exactly once.
//
// Opcodes are part of the runtime protocol: once shipped, an opcode keeps
// its meaning for its category.
package binary

import (
	"encoding/binary"
	"fmt"
)

const (
	// OpTerminator ends every encoded entry.
	OpTerminator = 0
	// OpParams introduces a parameter block.
	OpParams = 249

	// MaxParams is the most params a parameter block can count.
	MaxParams = 0xff
	// MaxCount is the most elements a two-byte count can hold.
	MaxCount = 0xffff
)

// Encoder writes into a buffer sized from a precomputed estimate. Writing
// past the estimate panics: an estimate that is too small is a bug in the
// schema's size computation, never a user error.
type Encoder struct {
	buf        []byte
	size       int
	terminated bool
}

// NewEncoder returns an encoder for at most size bytes.
func NewEncoder(size int) *Encoder {
	return &Encoder{buf: make([]byte, 0, size), size: size}
}

// Len returns the number of bytes written.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Write1 writes the low byte of v.
func (e *Encoder) Write1(v int32) {
	e.reserve(1)
	e.buf = append(e.buf, byte(v))
}

// Write2 writes the low 16 bits of v.
func (e *Encoder) Write2(v int32) {
	e.reserve(2)
	e.buf = binary.BigEndian.AppendUint16(e.buf, uint16(v))
}

// Write3 writes the low 24 bits of v.
func (e *Encoder) Write3(v int32) {
	e.reserve(3)
	e.buf = append(e.buf, byte(v>>16), byte(v>>8), byte(v))
}

// Write4 writes v.
func (e *Encoder) Write4(v int32) {
	e.reserve(4)
	e.buf = binary.BigEndian.AppendUint32(e.buf, uint32(v))
}

// WriteString writes s followed by a 0 byte.
func (e *Encoder) WriteString(s string) {
	e.reserve(StringSize(s))
	e.buf = append(e.buf, s...)
	e.buf = append(e.buf, 0)
}

// Code writes opcode followed by whatever body writes. body may be nil
// for flag codes that carry no value.
func (e *Encoder) Code(opcode byte, body func(e *Encoder)) {
	if opcode == OpTerminator {
		panic("binary: opcode 0 is reserved for the terminator")
	}
	e.reserve(1)
	e.buf = append(e.buf, opcode)
	if body != nil {
		body(e)
	}
}

// Terminate writes the terminator opcode.
func (e *Encoder) Terminate() {
	e.reserve(1)
	e.buf = append(e.buf, OpTerminator)
	e.terminated = true
}

// Bytes returns the encoded entry. It panics if Terminate was not called.
func (e *Encoder) Bytes() []byte {
	if !e.terminated {
		panic("binary: entry is not terminated")
	}
	return e.buf
}

func (e *Encoder) reserve(n int) {
	if e.terminated {
		panic("binary: write after terminator")
	}
	if len(e.buf)+n > e.size {
		panic(fmt.Sprintf("binary: size estimate of %d bytes exceeded (have %d, writing %d)",
			e.size, len(e.buf), n))
	}
}

// StringSize returns the encoded size of s.
func StringSize(s string) int {
	return len(s) + 1
}
