package cache

import (
	"encoding/binary"
	"hash/crc32"
	"testing"
)

func TestBuildCRCDigestLayout(t *testing.T) {
	c := &Cache{files: [][]CacheFile{
		{
			{Data: []byte("first file contents")},
			{Data: []byte("second, different contents")},
		},
	}}

	digest, err := c.BuildCRCDigest(0)
	if err != nil {
		t.Fatalf("BuildCRCDigest failed: %v", err)
	}
	if len(digest) != (2+1)*4 {
		t.Fatalf("digest length = %d, want %d", len(digest), (2+1)*4)
	}

	crc0 := crc32.ChecksumIEEE(c.files[0][0].Data)
	crc1 := crc32.ChecksumIEEE(c.files[0][1].Data)
	if got := binary.BigEndian.Uint32(digest[0:4]); got != crc0 {
		t.Errorf("digest[0] = %#x, want %#x", got, crc0)
	}
	if got := binary.BigEndian.Uint32(digest[4:8]); got != crc1 {
		t.Errorf("digest[1] = %#x, want %#x", got, crc1)
	}

	wantAcc := uint32(1234)
	wantAcc = (wantAcc << 1) + crc0
	wantAcc = (wantAcc << 1) + crc1
	if got := binary.BigEndian.Uint32(digest[8:12]); got != wantAcc {
		t.Errorf("digest trailer = %#x, want %#x", got, wantAcc)
	}
}

func TestBuildCRCDigestIndexOutOfRange(t *testing.T) {
	c := &Cache{files: [][]CacheFile{{}}}
	if _, err := c.BuildCRCDigest(1); err == nil {
		t.Error("BuildCRCDigest should fail for an out-of-range index")
	}
}
