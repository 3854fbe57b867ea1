package cache

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Sentinel errors for the failure classes in the container format.
var (
	// ErrDuplicateIdentifier is returned by Archive.AddFile when the given
	// identifier already exists in the archive.
	ErrDuplicateIdentifier = errors.New("cache: duplicate archive identifier")

	// ErrMalformedContainer is returned when an archive's header or
	// per-file metadata is internally inconsistent, or a bzip2 pass fails.
	ErrMalformedContainer = errors.New("cache: malformed archive container")
)

// CompressionScheme selects how Archive.Encode compresses its payload.
type CompressionScheme int

const (
	// SchemePerFile compresses each file's bytes independently; the index
	// and data blocks themselves are stored verbatim.
	SchemePerFile CompressionScheme = iota
	// SchemeWhole compresses the concatenated index+data payload as a
	// single bzip2 stream.
	SchemeWhole
)

// ArchiveEntry is one named sub-file inside an Archive.
type ArchiveEntry struct {
	// Identifier is the 32-bit name hash uniquely identifying this entry
	// within its archive.
	Identifier uint32
	// Data is this entry's payload. Archive owns this slice; callers get
	// a copy on AddFile and GetFile returns the archive's own copy, not a
	// clone, so callers must not mutate it in place.
	Data []byte
}

// Archive is an ordered collection of uniquely identified byte payloads
// that can be encoded into, or decoded from, a single compressed
// container blob. Insertion order is preserved across an encode/decode
// round trip.
type Archive struct {
	entries []*ArchiveEntry
}

// NewArchive returns an empty Archive.
func NewArchive() *Archive {
	return &Archive{}
}

// NumFiles returns the number of entries in the archive.
func (a *Archive) NumFiles() int { return len(a.entries) }

// Entries returns the archive's entries in insertion order. The returned
// slice is the archive's own backing slice; callers must not mutate it.
func (a *Archive) Entries() []*ArchiveEntry { return a.entries }

// GetFile returns the first entry with the given identifier, if any.
func (a *Archive) GetFile(identifier uint32) (*ArchiveEntry, bool) {
	for _, e := range a.entries {
		if e.Identifier == identifier {
			return e, true
		}
	}
	return nil, false
}

// AddFile copies data into a new entry and appends it to the archive.
// It returns ErrDuplicateIdentifier, without modifying the archive, if
// identifier is already present.
func (a *Archive) AddFile(identifier uint32, data []byte) (*ArchiveEntry, error) {
	if _, ok := a.GetFile(identifier); ok {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateIdentifier, identifier)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	e := &ArchiveEntry{Identifier: identifier, Data: cp}
	a.entries = append(a.entries, e)
	return e, nil
}

// RemoveFile removes entry from the archive, if present. It is a no-op if
// entry does not belong to the archive (or has already been removed).
func (a *Archive) RemoveFile(entry *ArchiveEntry) {
	for i, e := range a.entries {
		if e == entry {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return
		}
	}
}

// archiveFileHeaderSize is the per-file metadata size in the index block:
// a 4-byte identifier, a 3-byte uncompressed length, a 3-byte on-disk
// length.
const archiveFileHeaderSize = 10

// Encode serializes the archive into a standalone byte blob using the
// given compression scheme. The blob is a 6-byte header (u24 final_len,
// u24 actual_len) followed by actual_len payload bytes. Uncompressed, the
// payload is an index block (u16 file count, then per file a u32
// identifier, a u24 uncompressed length and a u24 stored length) followed
// by the concatenated per-file bytes. All fields are big-endian.
func (a *Archive) Encode(scheme CompressionScheme) ([]byte, error) {
	indexLen := 2 + len(a.entries)*archiveFileHeaderSize

	// Per-file compression can expand small or incompressible payloads, so
	// the on-disk per-file bytes are computed before the data block is
	// sized, rather than assuming the data block is no larger than the
	// sum of the uncompressed entry lengths.
	fileData := make([][]byte, len(a.entries))
	dataLen := 0
	for i, e := range a.entries {
		fd := e.Data
		if scheme == SchemePerFile {
			compressed, err := compressHeaderless(e.Data)
			if err != nil {
				return nil, fmt.Errorf("%w: compressing entry %d: %v", ErrMalformedContainer, e.Identifier, err)
			}
			fd = compressed
		}
		fileData[i] = fd
		dataLen += len(fd)
	}

	index := newExactCodec(indexLen)
	data := newExactCodec(dataLen)

	index.Put16(uint16(len(a.entries)))
	for i, e := range a.entries {
		index.Put32(e.Identifier)
		index.Put24(uint32(len(e.Data)))
		index.Put24(uint32(len(fileData[i])))
		data.PutN(fileData[i])
	}

	finalLen := uint32(indexLen + dataLen)
	var payload []byte
	var actualLen uint32

	switch scheme {
	case SchemeWhole:
		raw := make([]byte, 0, indexLen+dataLen)
		raw = append(raw, index.Bytes()[:indexLen]...)
		raw = append(raw, data.Bytes()[:dataLen]...)
		compressed, err := compressHeaderless(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: compressing container: %v", ErrMalformedContainer, err)
		}
		payload = compressed
		actualLen = uint32(len(compressed))
	default: // SchemePerFile
		payload = make([]byte, 0, indexLen+dataLen)
		payload = append(payload, index.Bytes()[:indexLen]...)
		payload = append(payload, data.Bytes()[:dataLen]...)
		actualLen = uint32(len(payload))
	}

	out := newExactCodec(int(6 + actualLen))
	out.Put24(finalLen)
	out.Put24(actualLen)
	out.PutN(payload)
	return out.Bytes()[:out.Len()], nil
}

// DecodeArchive parses a container blob produced by Archive.Encode. It
// returns ErrMalformedContainer if the container's header, metadata, or
// bzip2 payload is inconsistent; no partial archive is ever returned.
func DecodeArchive(blob []byte) (*Archive, error) {
	container := newExactCodec(len(blob))
	container.PutN(blob)
	container.Seek(0)

	finalLen, ok := container.Get24FPChecked(0)
	if !ok {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedContainer)
	}
	actualLen, ok := container.Get24FPChecked(0)
	if !ok {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedContainer)
	}

	whole := finalLen != actualLen

	rest, ok := container.GetNChecked(nil, int(actualLen))
	if !ok {
		return nil, fmt.Errorf("%w: payload shorter than declared actual_len", ErrMalformedContainer)
	}

	payload := newExactCodec(len(rest))
	if whole {
		decompressed, err := decompressHeaderless(rest, int(finalLen))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
		}
		payload = newExactCodec(len(decompressed))
		payload.PutN(decompressed)
	} else {
		payload.PutN(rest)
	}
	payload.Seek(0)

	numFiles, ok := payload.Get16FPChecked(0)
	if !ok {
		return nil, fmt.Errorf("%w: truncated index header", ErrMalformedContainer)
	}

	type meta struct {
		identifier    uint32
		finalFileLen  uint32
		actualFileLen uint32
	}
	metas := make([]meta, numFiles)
	for i := range metas {
		id, ok1 := payload.Get32FPChecked(0)
		finalFileLen, ok2 := payload.Get24FPChecked(0)
		actualFileLen, ok3 := payload.Get24FPChecked(0)
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: truncated file metadata at entry %d", ErrMalformedContainer, i)
		}
		if whole && finalFileLen != actualFileLen {
			return nil, fmt.Errorf("%w: entry %d final/actual length mismatch under whole-container scheme", ErrMalformedContainer, i)
		}
		metas[i] = meta{id, finalFileLen, actualFileLen}
	}

	// The first file's payload begins right after the index block, at
	// 2 + numFiles*archiveFileHeaderSize bytes from the index header's
	// start (the cursor position after num_files plus the per-file
	// metadata) — which is exactly where the cursor already sits, since
	// each metas[i] was read sequentially above.
	archive := NewArchive()
	for i, m := range metas {
		raw, ok := payload.GetNChecked(nil, int(m.actualFileLen))
		if !ok {
			return nil, fmt.Errorf("%w: entry %d data runs past container", ErrMalformedContainer, i)
		}

		var content []byte
		if whole {
			content = raw
		} else {
			decompressed, err := decompressHeaderless(raw, int(m.finalFileLen))
			if err != nil {
				return nil, fmt.Errorf("%w: decompressing entry %d: %v", ErrMalformedContainer, i, err)
			}
			content = decompressed
		}

		if _, err := archive.AddFile(m.identifier, content); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
		}
	}

	return archive, nil
}

// bz2HeaderlessMagic is the 4-byte magic a standard bzip2 stream begins
// with, stripped from the on-disk container and synthesised back on
// decode. The block-size digit is always '1' (a 100 KiB block): the
// original codec compresses with block size 1 and the decoder always
// assumes that size regardless of what produced the stream.
var bz2HeaderlessMagic = []byte{'B', 'Z', 'h', '1'}

// compressHeaderless runs a full bzip2 compression pass over src at block
// size 1 and strips the leading 4 magic bytes of the result.
func compressHeaderless(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: 1})
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if len(out) < len(bz2HeaderlessMagic) {
		return nil, errors.New("bzip2 output shorter than its own magic header")
	}
	return out[len(bz2HeaderlessMagic):], nil
}

// decompressHeaderless synthesises the stripped bzip2 magic, runs a full
// decompression pass, and confirms the result is exactly wantLen bytes.
func decompressHeaderless(src []byte, wantLen int) ([]byte, error) {
	framed := make([]byte, 0, len(bz2HeaderlessMagic)+len(src))
	framed = append(framed, bz2HeaderlessMagic...)
	framed = append(framed, src...)

	r, err := bzip2.NewReader(bytes.NewReader(framed), nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(out) != wantLen {
		return nil, fmt.Errorf("decompressed %d bytes, want %d", len(out), wantLen)
	}
	return out, nil
}
