package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

// ErrCorruptIndex is returned by BuildCRCDigest when the requested index
// does not exist in the cache.
var ErrCorruptIndex = errors.New("cache: index out of range")

// BuildCRCDigest computes a per-index CRC digest file: one big-endian
// uint32 CRC-32 (IEEE polynomial) per file in the index, followed by one
// trailing uint32 that is a running "checksum of checksums" over the
// preceding values. The running value is seeded at 1234 and updated as
// acc = (acc<<1) + crc for each file's CRC, in file order, before that CRC
// is byte-swapped into the output — matching the accumulation the game
// client itself performs when validating a cache's integrity.
func (c *Cache) BuildCRCDigest(index int) ([]byte, error) {
	if index < 0 || index >= len(c.files) {
		return nil, fmt.Errorf("%w: %d", ErrCorruptIndex, index)
	}
	files := c.files[index]

	out := make([]byte, (len(files)+1)*4)
	acc := uint32(1234)
	for i, f := range files {
		crc := crc32.ChecksumIEEE(f.Data)
		acc = (acc << 1) + crc
		binary.BigEndian.PutUint32(out[i*4:], crc)
	}
	binary.BigEndian.PutUint32(out[len(files)*4:], acc)
	return out, nil
}
