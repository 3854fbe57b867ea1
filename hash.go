package cache

// HashName computes the deterministic 32-bit name hash used to map archive
// entry names to their on-wire identifiers. It is a variant of the
// polynomial hash from Kernighan & Pike's "The Practice of Programming",
// with multiplier 61 and a -32 per-byte offset. Overflow wraps modulo 2^32
// (Go's unsigned arithmetic already does this natively).
func HashName(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = 61*h + uint32(s[i]) - 32
	}
	return h
}
