package cache

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// indexEntrySize is the size in bytes of one index-table entry: a
	// 24-bit file length and a 24-bit starting block number.
	indexEntrySize = 6
	// dataBlockSize is the size in bytes of one data block: an 8-byte
	// header plus a 512-byte payload region.
	dataBlockSize = 520
	// dataBlockPayloadSize is the usable payload region of a data block.
	dataBlockPayloadSize = 512
)

// Sentinel errors for the block file system.
var (
	// ErrNoDataFile is returned by OpenCacheDir when no file name in the
	// directory contains the substring "dat".
	ErrNoDataFile = errors.New("cache: no data file found in directory")
	// ErrNoIndexFiles is returned by OpenCacheDir when no file name in the
	// directory contains the substring "idx".
	ErrNoIndexFiles = errors.New("cache: no index files found in directory")
)

// CacheFile is one reconstructed file inside a Cache. A zero-length Data
// means the file is either genuinely empty or its block chain failed
// validation. The two differ only in whether Data is nil: a failed chain
// leaves Data nil, a genuinely empty file has a non-nil zero-length slice.
type CacheFile struct {
	Data []byte
}

// Cache holds, for each of a set of indices, a dense array of reconstructed
// files addressable by integer id. It is read-once: all files are
// materialised in memory at open time, and the block file system itself is
// never mutated.
type Cache struct {
	files [][]CacheFile
}

// NumIndices returns the number of indices in the cache.
func (c *Cache) NumIndices() int { return len(c.files) }

// NumFiles returns the number of files in the given index, or 0 if index is
// out of range.
func (c *Cache) NumFiles(index int) int {
	if index < 0 || index >= len(c.files) {
		return 0
	}
	return len(c.files[index])
}

// GetFile returns the file at (index, file), or ok=false if either
// coordinate is out of range.
func (c *Cache) GetFile(index, file int) (*CacheFile, bool) {
	if index < 0 || index >= len(c.files) {
		return nil, false
	}
	files := c.files[index]
	if file < 0 || file >= len(files) {
		return nil, false
	}
	return &files[file], true
}

// OpenCacheDir discovers and loads a cache from a directory laid out the
// way the game client lays its own cache on disk: file names containing
// "idx" are index tables, sorted lexicographically to assign index ids
// 0..n-1; a file name containing "dat" is the data file.
//
// If more than one name contains "dat", the first one in lexicographic
// order is used (os.ReadDir already returns entries name-sorted, so this is
// simply the first match encountered) — a resolved ambiguity from the
// source format, see SPEC_FULL.md §4.
func OpenCacheDir(dir string) (*Cache, error) {
	names, err := ListDir(dir)
	if err != nil {
		return nil, err
	}

	var idxNames []string
	var datName string
	haveDat := false
	for _, name := range names {
		switch {
		case strings.Contains(name, "idx"):
			idxNames = append(idxNames, name)
		case strings.Contains(name, "dat") && !haveDat:
			datName = name
			haveDat = true
		}
	}
	if !haveDat {
		return nil, ErrNoDataFile
	}
	if len(idxNames) == 0 {
		return nil, ErrNoIndexFiles
	}
	sort.Strings(idxNames)

	idxPaths := make([]string, len(idxNames))
	for i, name := range idxNames {
		idxPaths[i] = JoinPath(dir, name)
	}
	return OpenCacheFiles(idxPaths, JoinPath(dir, datName))
}

// OpenCacheFiles loads a cache from an explicit list of index-table file
// paths and a single data-file path. Index tables are assigned index ids in
// the order given.
func OpenCacheFiles(idxPaths []string, datPath string) (*Cache, error) {
	datBytes, err := ReadFile(datPath)
	if err != nil {
		return nil, fmt.Errorf("cache: reading data file: %w", err)
	}
	numBlocks := len(datBytes) / dataBlockSize

	dataBlocks := newExactCodec(len(datBytes))
	dataBlocks.PutN(datBytes)

	c := &Cache{files: make([][]CacheFile, len(idxPaths))}
	for i, idxPath := range idxPaths {
		idxBytes, err := ReadFile(idxPath)
		if err != nil {
			return nil, fmt.Errorf("cache: reading index file %s: %w", idxPath, err)
		}
		numFiles := len(idxBytes) / indexEntrySize

		idxCodec := newExactCodec(len(idxBytes))
		idxCodec.PutN(idxBytes)

		files := make([]CacheFile, numFiles)
		for fileID := 0; fileID < numFiles; fileID++ {
			files[fileID] = reconstructFile(idxCodec, dataBlocks, i, fileID, numBlocks)
		}
		c.files[i] = files
	}
	return c, nil
}

// reconstructFile walks the block chain for (indexID, fileID) and returns
// its reconstructed bytes, or a zero-length CacheFile if the file is
// empty or its chain fails validation.
func reconstructFile(idx, blocks *Codec, indexID, fileID, numBlocks int) CacheFile {
	idx.Seek(fileID * indexEntrySize)
	length, ok := idx.Get24FPChecked(0)
	if !ok {
		return CacheFile{}
	}
	firstBlock, ok := idx.Get24FPChecked(0)
	if !ok {
		return CacheFile{}
	}
	if firstBlock == 0 {
		return CacheFile{Data: []byte{}}
	}

	out := make([]byte, length)
	toRead := int(length)
	writeCaret := 0
	filePart := 0
	current := int(firstBlock)

	for current != 0 {
		if current < 1 || current > numBlocks {
			return CacheFile{}
		}
		blocks.Seek(current * dataBlockSize)

		blockFileID, ok1 := blocks.Get16FPChecked(0)
		blockFilePos, ok2 := blocks.Get16FPChecked(0)
		nextBlock, ok3 := blocks.Get24FPChecked(0)
		blockIndexIDPlusOne, ok4 := blocks.Get8FPChecked(0)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return CacheFile{}
		}

		readThis := toRead
		if readThis > dataBlockPayloadSize {
			readThis = dataBlockPayloadSize
		}

		if int(blockFileID) != fileID || int(blockFilePos) != filePart || int(blockIndexIDPlusOne)-1 != indexID {
			return CacheFile{}
		}

		if readThis > 0 {
			if _, ok := blocks.GetNChecked(out[writeCaret:writeCaret+readThis], readThis); !ok {
				return CacheFile{}
			}
		}

		writeCaret += readThis
		toRead -= readThis
		current = int(nextBlock)
		filePart++
	}

	if toRead != 0 {
		return CacheFile{}
	}
	return CacheFile{Data: out}
}
