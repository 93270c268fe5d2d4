package binary

// Param is one entry of a parameter block: a param id and its value,
// either a string or a 32-bit integer.
type Param struct {
	ID       int32
	IsString bool
	Int      int32
	Str      string
}

// ParamsSize returns the encoded size of a parameter block, 0 when there
// are no params.
func ParamsSize(params []Param) int {
	if len(params) == 0 {
		return 0
	}
	size := 2
	for _, p := range params {
		size += 4
		if p.IsString {
			size += StringSize(p.Str)
		} else {
			size += 4
		}
	}
	return size
}

// Params writes the parameter block code: a one-byte count, then per
// param a string flag, a 3-byte id and the value. Nothing is written for
// an empty block.
func (e *Encoder) Params(params []Param) {
	if len(params) == 0 {
		return
	}
	if len(params) > MaxParams {
		panic("binary: parameter block holds at most 255 params")
	}
	e.Code(OpParams, func(e *Encoder) {
		e.Write1(int32(len(params)))
		for _, p := range params {
			if p.IsString {
				e.Write1(1)
			} else {
				e.Write1(0)
			}
			e.Write3(p.ID)
			if p.IsString {
				e.WriteString(p.Str)
			} else {
				e.Write4(p.Int)
			}
		}
	})
}
