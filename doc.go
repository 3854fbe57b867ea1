/*

Package cache is a decoder/encoder for the client-side asset container
format used by a well-known legacy online game (the "Jagex cache").

The format layers two binary structures: a fixed-block file system that
reconstructs arbitrary-length files from a linked chain of 520-byte blocks
indexed by small 6-byte index entries, and an archive container that
aggregates many named sub-files into a single file, optionally compressed
headerlessly with bzip2.

This is not a general-purpose asset interpreter: it stops at reconstructed
bytes and archive entries. Sprites, maps, and scripts packed inside those
bytes are out of scope.

The block file system is read-only: files are read once at open time and
held in memory for the lifetime of the Cache. Archives are read-write: an
Archive can be built in memory and encoded to a standalone byte blob.

*/
package cache
