package cache

// Modifier flags for the flagged Put*F/Get*FP family. They compose, except
// that Little, MiddleA and MiddleB are mutually exclusive: on writes Little
// wins if more than one is set, on reads the first one matched (in the order
// Little, MiddleA, MiddleB) wins.
const (
	CodecNegative uint8 = 1 << iota
	CodecInv128
	CodecOfs128
	CodecLittle
	CodecMiddleA
	CodecMiddleB
	CodecJString
)

// Codec is a stateful cursor over a mutable byte buffer. It supports
// byte-aligned and bit-aligned reads and writes, with optional endianness
// and arithmetic modifier flags and terminator-aware strings.
//
// A Codec is not safe for concurrent use.
type Codec struct {
	data     []byte
	length   int
	caret    int
	bitMode  bool
	bitCaret int
}

// DefaultCodecCapacity is used by NewCodec when no explicit capacity is
// wanted via Resize.
const DefaultCodecCapacity = 1024

// NewCodec returns a new Codec with the given initial capacity. A capacity
// of 0 or less uses DefaultCodecCapacity.
func NewCodec(capacity int) *Codec {
	if capacity <= 0 {
		capacity = DefaultCodecCapacity
	}
	c := &Codec{}
	c.Resize(capacity)
	return c
}

// newExactCodec returns a Codec sized to exactly n bytes, including n == 0,
// for internal use where a caller has already computed the precise buffer
// size a wire structure needs (NewCodec's "0 means default" rule is meant
// for callers who haven't sized anything yet).
func newExactCodec(n int) *Codec {
	c := &Codec{}
	c.Resize(n)
	return c
}

// Resize discards the Codec's contents, allocating n zero-filled bytes and
// resetting the cursor to 0.
func (c *Codec) Resize(n int) {
	if n < 0 {
		n = 0
	}
	c.data = make([]byte, n)
	c.length = n
	c.caret = 0
	c.bitMode = false
	c.bitCaret = 0
}

// Seek sets the cursor to pos. It is a no-op if pos exceeds the buffer
// length.
func (c *Codec) Seek(pos int) {
	if pos > c.length {
		return
	}
	c.caret = pos
}

// Caret returns the current byte cursor position.
func (c *Codec) Caret() int { return c.caret }

// Len returns the current cursor position, treated as the amount of valid
// data written so far.
func (c *Codec) Len() int { return c.caret }

// Bytes returns the full backing buffer (length c.length, not c.caret).
func (c *Codec) Bytes() []byte { return c.data }

// SetBitMode toggles bit access mode. Entering bit mode resets bitCaret to
// 7 (the MSB of the current byte). Leaving bit mode flushes a partially
// written byte by advancing the byte cursor when bitCaret isn't back at 7.
func (c *Codec) SetBitMode(on bool) {
	if c.bitMode == on {
		return
	}
	if on {
		c.bitCaret = 7
	} else if c.bitCaret != 7 {
		c.caret++
	}
	c.bitMode = on
}

// PutBits requires bit mode. It writes the lowest nbits of v, MSB of the
// group first, into descending bitCaret positions, wrapping to the next
// byte after bit 0. Writes past the buffer's length are silently dropped.
func (c *Codec) PutBits(nbits int, v uint32) {
	for n := nbits - 1; n >= 0; n-- {
		if c.caret >= c.length {
			return
		}
		bit := (v >> uint(n)) & 1
		if bit != 0 {
			c.data[c.caret] |= 1 << uint(c.bitCaret)
		} else {
			c.data[c.caret] &^= 1 << uint(c.bitCaret)
		}
		if c.bitCaret == 0 {
			c.bitCaret = 7
			c.caret++
		} else {
			c.bitCaret--
		}
	}
}

// GetBits requires bit mode. It mirrors PutBits: it reads nbits starting at
// the current (caret, bitCaret) position, MSB first, and returns them
// packed into the low bits of the result. Reads that run past the buffer
// return as much as was available, zero-extended (see GetBitsChecked for a
// variant that reports a short read).
func (c *Codec) GetBits(nbits int) uint32 {
	v, _ := c.GetBitsChecked(nbits)
	return v
}

// GetBitsChecked is the non-silent form of GetBits: ok is false if the read
// ran past the buffer before nbits bits were consumed.
func (c *Codec) GetBitsChecked(nbits int) (v uint32, ok bool) {
	ok = true
	for n := nbits - 1; n >= 0; n-- {
		if c.caret >= c.length {
			ok = false
			break
		}
		bit := (c.data[c.caret] >> uint(c.bitCaret)) & 1
		v = (v << 1) | uint32(bit)
		if c.bitCaret == 0 {
			c.bitCaret = 7
			c.caret++
		} else {
			c.bitCaret--
		}
	}
	return v, ok
}

// ---- unflagged byte-mode put/get, delegating to the flagged family ----

func (c *Codec) Put8(v uint8)   { c.Put8F(v, 0) }
func (c *Codec) Put16(v uint16) { c.Put16F(v, 0) }
func (c *Codec) Put24(v uint32) { c.Put24F(v, 0) }
func (c *Codec) Put32(v uint32) { c.Put32F(v, 0) }
func (c *Codec) Put64(v uint64) { c.Put64F(v, 0) }

func (c *Codec) Get8() uint8   { v, _ := c.Get8FP(0); return v }
func (c *Codec) Get16() uint16 { v, _ := c.Get16FP(0); return v }
func (c *Codec) Get24() uint32 { v, _ := c.Get24FP(0); return v }
func (c *Codec) Get32() uint32 { v, _ := c.Get32FP(0); return v }
func (c *Codec) Get64() uint64 { v, _ := c.Get64FP(0); return v }

// ---- checked (non-silent) unflagged variants ----

func (c *Codec) Put8Checked(v uint8) bool   { return c.Put8FChecked(v, 0) }
func (c *Codec) Put16Checked(v uint16) bool { return c.Put16FChecked(v, 0) }
func (c *Codec) Put24Checked(v uint32) bool { return c.Put24FChecked(v, 0) }
func (c *Codec) Put32Checked(v uint32) bool { return c.Put32FChecked(v, 0) }
func (c *Codec) Put64Checked(v uint64) bool { return c.Put64FChecked(v, 0) }

func (c *Codec) Get8Checked() (uint8, bool)   { return c.Get8FPChecked(0) }
func (c *Codec) Get16Checked() (uint16, bool) { return c.Get16FPChecked(0) }
func (c *Codec) Get24Checked() (uint32, bool) { return c.Get24FPChecked(0) }
func (c *Codec) Get32Checked() (uint32, bool) { return c.Get32FPChecked(0) }
func (c *Codec) Get64Checked() (uint64, bool) { return c.Get64FPChecked(0) }

// applyWriteArith applies the NEGATIVE/INV128/OFS128 arithmetic modifiers to
// the most-significant byte of an outgoing value, in the order the original
// codec applied them: NEGATIVE, then INV128, then OFS128.
func applyWriteArith(b byte, flags uint8) byte {
	if flags&CodecNegative != 0 {
		b = -b
	}
	if flags&CodecInv128 != 0 {
		b = 128 - b
	}
	if flags&CodecOfs128 != 0 {
		b = b + 128
	}
	return b
}

// applyReadArith is the read-side mirror. OFS128 subtracts instead of adds:
// the two are intentionally an inverse pair, not a symmetric operation.
func applyReadArith(b byte, flags uint8) byte {
	if flags&CodecNegative != 0 {
		b = -b
	}
	if flags&CodecInv128 != 0 {
		b = 128 - b
	}
	if flags&CodecOfs128 != 0 {
		b = b - 128
	}
	return b
}

// Put8F writes a single byte with arithmetic modifiers applied (byte order
// is irrelevant at width 1).
func (c *Codec) Put8F(v uint8, flags uint8) { c.Put8FChecked(v, flags) }

// Put8FChecked is the non-silent form of Put8F.
func (c *Codec) Put8FChecked(v uint8, flags uint8) bool {
	if c.caret+1 > c.length {
		return false
	}
	c.data[c.caret] = applyWriteArith(v, flags)
	c.caret++
	return true
}

// Get8FP reads a single byte, applying arithmetic modifiers after the
// (trivial, width-1) byte-order handling.
func (c *Codec) Get8FP(flags uint8) uint8 {
	v, _ := c.Get8FPChecked(flags)
	return v
}

// Get8FPChecked is the non-silent form of Get8FP.
func (c *Codec) Get8FPChecked(flags uint8) (uint8, bool) {
	if c.caret+1 > c.length {
		return 0, false
	}
	v := c.data[c.caret]
	c.caret++
	return applyReadArith(v, flags), true
}

// Put16F writes a big-endian uint16 with arithmetic modifier flags applied
// to the value's most significant byte before any byte-order change.
// CodecLittle reverses byte order for the whole value.
func (c *Codec) Put16F(v uint16, flags uint8) { c.Put16FChecked(v, flags) }

// Put16FChecked is the non-silent form of Put16F.
func (c *Codec) Put16FChecked(v uint16, flags uint8) bool {
	if c.caret+2 > c.length {
		return false
	}
	hi := byte(v >> 8)
	lo := byte(v)
	hi = applyWriteArith(hi, flags)
	if flags&CodecLittle != 0 {
		hi, lo = lo, hi
	}
	c.data[c.caret] = hi
	c.data[c.caret+1] = lo
	c.caret += 2
	return true
}

// Get16FP is the read-side mirror of Put16F.
func (c *Codec) Get16FP(flags uint8) uint16 {
	v, _ := c.Get16FPChecked(flags)
	return v
}

// Get16FPChecked is the non-silent form of Get16FP.
func (c *Codec) Get16FPChecked(flags uint8) (uint16, bool) {
	if c.caret+2 > c.length {
		return 0, false
	}
	hi := c.data[c.caret]
	lo := c.data[c.caret+1]
	c.caret += 2
	if flags&CodecLittle != 0 {
		hi, lo = lo, hi
	}
	hi = applyReadArith(hi, flags)
	return uint16(hi)<<8 | uint16(lo), true
}

// Put24F writes a big-endian 24-bit value (stored in the low 24 bits of v)
// with byte-order and arithmetic modifiers applied as in Put16F.
func (c *Codec) Put24F(v uint32, flags uint8) { c.Put24FChecked(v, flags) }

// Put24FChecked is the non-silent form of Put24F.
func (c *Codec) Put24FChecked(v uint32, flags uint8) bool {
	if c.caret+3 > c.length {
		return false
	}
	b0 := byte(v >> 16)
	b1 := byte(v >> 8)
	b2 := byte(v)
	b0 = applyWriteArith(b0, flags)
	if flags&CodecLittle != 0 {
		b0, b2 = b2, b0
	}
	c.data[c.caret] = b0
	c.data[c.caret+1] = b1
	c.data[c.caret+2] = b2
	c.caret += 3
	return true
}

// Get24FP is the read-side mirror of Put24F. The result occupies the low 24
// bits of the returned uint32.
func (c *Codec) Get24FP(flags uint8) uint32 {
	v, _ := c.Get24FPChecked(flags)
	return v
}

// Get24FPChecked is the non-silent form of Get24FP.
func (c *Codec) Get24FPChecked(flags uint8) (uint32, bool) {
	if c.caret+3 > c.length {
		return 0, false
	}
	b0 := c.data[c.caret]
	b1 := c.data[c.caret+1]
	b2 := c.data[c.caret+2]
	c.caret += 3
	if flags&CodecLittle != 0 {
		b0, b2 = b2, b0
	}
	b0 = applyReadArith(b0, flags)
	return uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2), true
}

// Put32F writes a big-endian uint32 with byte-order and arithmetic
// modifiers applied. CodecMiddleA/CodecMiddleB implement the two
// PDP-endian-style "mixed" byte orders described in the wire format; they
// are only meaningful at width 32 and are ignored at other widths.
func (c *Codec) Put32F(v uint32, flags uint8) { c.Put32FChecked(v, flags) }

// Put32FChecked is the non-silent form of Put32F.
func (c *Codec) Put32FChecked(v uint32, flags uint8) bool {
	if c.caret+4 > c.length {
		return false
	}
	b0 := byte(v >> 24)
	b1 := byte(v >> 16)
	b2 := byte(v >> 8)
	b3 := byte(v)
	b0 = applyWriteArith(b0, flags)
	switch {
	case flags&CodecLittle != 0:
		b0, b1, b2, b3 = b3, b2, b1, b0
	case flags&CodecMiddleA != 0:
		// {[1],[0],[3],[2]} relative to native little-endian layout.
		b0, b1, b2, b3 = b2, b3, b0, b1
	case flags&CodecMiddleB != 0:
		// {[2],[3],[0],[1]} relative to native little-endian layout.
		b0, b1, b2, b3 = b1, b0, b3, b2
	}
	c.data[c.caret] = b0
	c.data[c.caret+1] = b1
	c.data[c.caret+2] = b2
	c.data[c.caret+3] = b3
	c.caret += 4
	return true
}

// Get32FP is the read-side mirror of Put32F.
func (c *Codec) Get32FP(flags uint8) uint32 {
	v, _ := c.Get32FPChecked(flags)
	return v
}

// Get32FPChecked is the non-silent form of Get32FP.
func (c *Codec) Get32FPChecked(flags uint8) (uint32, bool) {
	if c.caret+4 > c.length {
		return 0, false
	}
	b0 := c.data[c.caret]
	b1 := c.data[c.caret+1]
	b2 := c.data[c.caret+2]
	b3 := c.data[c.caret+3]
	c.caret += 4
	switch {
	case flags&CodecLittle != 0:
		b0, b1, b2, b3 = b3, b2, b1, b0
	case flags&CodecMiddleA != 0:
		b0, b1, b2, b3 = b2, b3, b0, b1
	case flags&CodecMiddleB != 0:
		b0, b1, b2, b3 = b1, b0, b3, b2
	}
	b0 = applyReadArith(b0, flags)
	return uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3), true
}

// Put64F writes a big-endian uint64 with byte-order and arithmetic
// modifiers applied (MiddleA/MiddleB are 32-bit-only and have no effect
// here).
func (c *Codec) Put64F(v uint64, flags uint8) { c.Put64FChecked(v, flags) }

// Put64FChecked is the non-silent form of Put64F.
func (c *Codec) Put64FChecked(v uint64, flags uint8) bool {
	if c.caret+8 > c.length {
		return false
	}
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> uint(56-8*i))
	}
	b[0] = applyWriteArith(b[0], flags)
	if flags&CodecLittle != 0 {
		for i, j := 0, 7; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}
	copy(c.data[c.caret:c.caret+8], b[:])
	c.caret += 8
	return true
}

// Get64FP is the read-side mirror of Put64F.
func (c *Codec) Get64FP(flags uint8) uint64 {
	v, _ := c.Get64FPChecked(flags)
	return v
}

// Get64FPChecked is the non-silent form of Get64FP.
func (c *Codec) Get64FPChecked(flags uint8) (uint64, bool) {
	if c.caret+8 > c.length {
		return 0, false
	}
	var b [8]byte
	copy(b[:], c.data[c.caret:c.caret+8])
	c.caret += 8
	if flags&CodecLittle != 0 {
		for i, j := 0, 7; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}
	b[0] = applyReadArith(b[0], flags)
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v, true
}

// PutN copies src into the buffer at the current cursor, advancing it by
// len(src). It is a silent no-op if src would overrun the buffer, or if src
// is empty.
func (c *Codec) PutN(src []byte) { c.PutNChecked(src) }

// PutNChecked is the non-silent form of PutN.
func (c *Codec) PutNChecked(src []byte) bool {
	if len(src) == 0 || c.caret+len(src) > c.length {
		return false
	}
	copy(c.data[c.caret:], src)
	c.caret += len(src)
	return true
}

// GetN copies n bytes from the buffer at the current cursor into dst. If
// dst is nil, a new slice is allocated. A zero-length read always succeeds
// (mirroring a no-op memcpy of 0 bytes). Returns nil if a non-zero read
// would overrun the buffer.
func (c *Codec) GetN(dst []byte, n int) []byte {
	out, _ := c.GetNChecked(dst, n)
	return out
}

// GetNChecked is the non-silent form of GetN.
func (c *Codec) GetNChecked(dst []byte, n int) ([]byte, bool) {
	if n == 0 {
		if dst == nil {
			dst = []byte{}
		}
		return dst, true
	}
	if c.caret+n > c.length {
		return nil, false
	}
	if dst == nil {
		dst = make([]byte, n)
	}
	copy(dst, c.data[c.caret:c.caret+n])
	c.caret += n
	return dst, true
}

// Concat appends src's valid data (src.data[:src.caret]) to c at c's
// current cursor.
func (c *Codec) Concat(src *Codec) {
	c.PutN(src.data[:src.caret])
}

// PutString writes s terminated by 0x0A if CodecJString is set, else 0x00.
func (c *Codec) PutString(s string, flags uint8) {
	c.PutN([]byte(s))
	if flags&CodecJString != 0 {
		c.Put8(0x0A)
	} else {
		c.Put8(0x00)
	}
}

// GetString scans forward from the cursor, within a window of maxLen
// bytes, for the string terminator (0x0A if CodecJString, else 0x00).
// Returns the string up to (not including) the terminator, and advances
// the cursor past it. ok is false if no terminator is found within the
// window or the window itself overruns the buffer.
func (c *Codec) GetString(maxLen int, flags uint8) (string, bool) {
	if c.caret+maxLen > c.length {
		return "", false
	}
	terminator := byte(0x00)
	if flags&CodecJString != 0 {
		terminator = 0x0A
	}
	strLen := -1
	for i := 0; i < maxLen; i++ {
		if c.data[c.caret+i] == terminator {
			strLen = i
			break
		}
	}
	if strLen < 0 {
		return "", false
	}
	s := string(c.data[c.caret : c.caret+strLen])
	c.caret += strLen + 1
	return s, true
}
