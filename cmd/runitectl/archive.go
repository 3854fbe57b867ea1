package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kayeks/runite"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Pack or unpack standalone archive containers",
	}
	cmd.AddCommand(newArchivePackCmd())
	cmd.AddCommand(newArchiveUnpackCmd())
	return cmd
}

func newArchivePackCmd() *cobra.Command {
	var scheme, out string

	cmd := &cobra.Command{
		Use:   "pack <dir>",
		Short: "Hash and pack every regular file in a directory into one archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			var compScheme cache.CompressionScheme
			switch scheme {
			case "per-file":
				compScheme = cache.SchemePerFile
			case "whole":
				compScheme = cache.SchemeWhole
			default:
				return fail(cmd, fmt.Errorf("unknown scheme %q (want per-file or whole)", scheme))
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fail(cmd, err)
			}

			a := cache.NewArchive()
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				data, err := cache.ReadFile(filepath.Join(dir, e.Name()))
				if err != nil {
					return fail(cmd, err)
				}
				if _, err := a.AddFile(cache.HashName(e.Name()), data); err != nil {
					return fail(cmd, err)
				}
			}

			blob, err := a.Encode(compScheme)
			if err != nil {
				return fail(cmd, err)
			}
			if err := cache.WriteFile(out, blob); err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s packed %d files into %s (%d bytes)\n", okColor("ok"), a.NumFiles(), out, len(blob))
			return nil
		},
	}
	cmd.Flags().StringVar(&scheme, "scheme", "per-file", "compression scheme: per-file or whole")
	cmd.Flags().StringVar(&out, "out", "", "output archive path (required)")
	cmd.MarkFlagRequired("out")
	return cmd
}

func newArchiveUnpackCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "unpack <archive-file>",
		Short: "Decode an archive and write each entry named by its hash, in hex",
		Long: `Decode an archive and write each entry to <out>/<hex-identifier>.
Archives store only a 32-bit name hash per entry, not the original name, so
the original file names cannot be recovered from an archive alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := cache.ReadFile(args[0])
			if err != nil {
				return fail(cmd, err)
			}
			a, err := cache.DecodeArchive(blob)
			if err != nil {
				return fail(cmd, err)
			}
			if err := os.MkdirAll(out, 0755); err != nil {
				return fail(cmd, err)
			}
			for _, e := range a.Entries() {
				name := fmt.Sprintf("%08x", e.Identifier)
				if err := cache.WriteFile(filepath.Join(out, name), e.Data); err != nil {
					return fail(cmd, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s unpacked %d entries into %s\n", okColor("ok"), a.NumFiles(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output directory (required)")
	cmd.MarkFlagRequired("out")
	return cmd
}
