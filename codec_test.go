package cache

import "testing"

func TestCodecByteRoundTrip(t *testing.T) {
	c := NewCodec(32)
	c.Put8(0x12)
	c.Put16(0xABCD)
	c.Put24(0x010203)
	c.Put32(0xDEADBEEF)
	c.Put64(0x0123456789ABCDEF)

	c.Seek(0)
	if v := c.Get8(); v != 0x12 {
		t.Errorf("Get8() = %#x, want 0x12", v)
	}
	if v := c.Get16(); v != 0xABCD {
		t.Errorf("Get16() = %#x, want 0xabcd", v)
	}
	if v := c.Get24(); v != 0x010203 {
		t.Errorf("Get24() = %#x, want 0x010203", v)
	}
	if v := c.Get32(); v != 0xDEADBEEF {
		t.Errorf("Get32() = %#x, want 0xdeadbeef", v)
	}
	if v := c.Get64(); v != 0x0123456789ABCDEF {
		t.Errorf("Get64() = %#x, want 0x0123456789abcdef", v)
	}
}

func TestCodecLittleEndian(t *testing.T) {
	c := NewCodec(8)
	c.Put32F(0x01020304, CodecLittle)
	c.Seek(0)
	got := c.Bytes()[:4]
	want := []byte{0x04, 0x03, 0x02, 0x01}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
	c.Seek(0)
	if v := c.Get32FP(CodecLittle); v != 0x01020304 {
		t.Errorf("Get32FP(Little) = %#x, want 0x01020304", v)
	}
}

func TestCodecMiddleEndian(t *testing.T) {
	tests := []struct {
		name  string
		flags uint8
	}{
		{"MiddleA", CodecMiddleA},
		{"MiddleB", CodecMiddleB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCodec(8)
			c.Put32F(0x11223344, tt.flags)
			c.Seek(0)
			if v := c.Get32FP(tt.flags); v != 0x11223344 {
				t.Errorf("round trip = %#x, want 0x11223344", v)
			}
		})
	}
}

func TestCodecOfs128Asymmetry(t *testing.T) {
	c := NewCodec(8)
	c.Put8F(10, CodecOfs128)
	c.Seek(0)
	raw := c.Bytes()[0]
	if raw != byte(10+128) {
		t.Fatalf("on-wire byte = %d, want %d", raw, byte(10+128))
	}
	c.Seek(0)
	if v := c.Get8FP(CodecOfs128); v != 10 {
		t.Errorf("Get8FP(Ofs128) = %d, want 10", v)
	}
}

func TestCodecNegative(t *testing.T) {
	c := NewCodec(8)
	c.Put8F(5, CodecNegative)
	c.Seek(0)
	if v := c.Get8FP(CodecNegative); v != 5 {
		t.Errorf("Get8FP(Negative) = %d, want 5", v)
	}
}

func TestCodecByteOrderComposedWithArithRoundTrip(t *testing.T) {
	// Regression: the arithmetic modifier must be applied to the value's
	// fixed most-significant byte before the byte-order reorder on write,
	// and after it on read, so the two remain exact inverses even when
	// composed with a byte-order flag.
	tests := []struct {
		name  string
		flags uint8
	}{
		{"LittleOfs128", CodecLittle | CodecOfs128},
		{"LittleNegative", CodecLittle | CodecNegative},
		{"LittleInv128", CodecLittle | CodecInv128},
		{"MiddleAOfs128", CodecMiddleA | CodecOfs128},
		{"MiddleBOfs128", CodecMiddleB | CodecOfs128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCodec(8)
			c.Put32F(0x1234ABCD, tt.flags)
			c.Seek(0)
			if v := c.Get32FP(tt.flags); v != 0x1234ABCD {
				t.Errorf("round trip = %#x, want 0x1234abcd", v)
			}
		})
	}

	c := NewCodec(8)
	c.Put16F(0x1234, CodecLittle|CodecOfs128)
	c.Seek(0)
	if v := c.Get16FP(CodecLittle | CodecOfs128); v != 0x1234 {
		t.Errorf("Get16FP(Little|Ofs128) = %#x, want 0x1234", v)
	}
}

func TestCodecBounds(t *testing.T) {
	c := NewCodec(1)
	if ok := c.Put16Checked(1); ok {
		t.Error("Put16Checked should fail past a 1-byte buffer")
	}
	c.Seek(0)
	if _, ok := c.Get16Checked(); ok {
		t.Error("Get16Checked should fail past a 1-byte buffer")
	}
}

func TestCodecBitsRoundTrip(t *testing.T) {
	c := NewCodec(4)
	c.SetBitMode(true)
	c.PutBits(3, 0b101)
	c.PutBits(5, 0b11010)
	c.SetBitMode(false)

	c.Seek(0)
	c.SetBitMode(true)
	if v := c.GetBits(3); v != 0b101 {
		t.Errorf("GetBits(3) = %b, want 101", v)
	}
	if v := c.GetBits(5); v != 0b11010 {
		t.Errorf("GetBits(5) = %b, want 11010", v)
	}
}

func TestCodecGetBitsCheckedShortRead(t *testing.T) {
	c := NewCodec(1)
	c.SetBitMode(true)
	if _, ok := c.GetBitsChecked(16); ok {
		t.Error("GetBitsChecked should report a short read past the buffer")
	}
}

func TestCodecStringRoundTrip(t *testing.T) {
	c := NewCodec(32)
	c.PutString("hello", 0)
	c.PutString("world", CodecJString)

	c.Seek(0)
	s, ok := c.GetString(6, 0)
	if !ok || s != "hello" {
		t.Fatalf("GetString() = %q, %v, want \"hello\", true", s, ok)
	}
	s, ok = c.GetString(6, CodecJString)
	if !ok || s != "world" {
		t.Fatalf("GetString() = %q, %v, want \"world\", true", s, ok)
	}
}

func TestCodecPutNGetN(t *testing.T) {
	c := NewCodec(16)
	src := []byte{1, 2, 3, 4, 5}
	c.PutN(src)
	c.Seek(0)
	got := c.GetN(nil, len(src))
	if got == nil {
		t.Fatal("GetN returned nil")
	}
	for i := range src {
		if got[i] != src[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], src[i])
		}
	}
}

func TestCodecConcat(t *testing.T) {
	a := NewCodec(8)
	a.Put16(0x0102)
	b := NewCodec(8)
	b.Put16(0x0304)

	a.Concat(b)
	if a.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", a.Len())
	}
	a.Seek(0)
	if v := a.Get32(); v != 0x01020304 {
		t.Errorf("concatenated value = %#x, want 0x01020304", v)
	}
}
