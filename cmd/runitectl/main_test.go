package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kayeks/runite"
)

func TestHashCommandPrintsHexHash(t *testing.T) {
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"hash", "a"})
	require.NoError(t, root.Execute())
	require.Equal(t, "00000041\n", out.String())
}

func TestArchivePackUnpackRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "one.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "two.txt"), []byte("world, repeated content for bzip2"), 0644))

	archivePath := filepath.Join(t.TempDir(), "out.arc")

	packCmd := newRootCmd()
	packCmd.SetArgs([]string{"archive", "pack", srcDir, "--scheme", "per-file", "--out", archivePath})
	require.NoError(t, packCmd.Execute())

	info, err := os.Stat(archivePath)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	unpackDir := t.TempDir()
	unpackCmd := newRootCmd()
	unpackCmd.SetArgs([]string{"archive", "unpack", archivePath, "--out", unpackDir})
	require.NoError(t, unpackCmd.Execute())

	entries, err := os.ReadDir(unpackDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	want := map[uint32]string{
		cache.HashName("one.txt"): "hello",
		cache.HashName("two.txt"): "world, repeated content for bzip2",
	}
	for id, content := range want {
		got, err := os.ReadFile(filepath.Join(unpackDir, fmt.Sprintf("%08x", id)))
		require.NoError(t, err)
		require.Equal(t, content, string(got))
	}
}
