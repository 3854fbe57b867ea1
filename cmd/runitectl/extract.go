package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kayeks/runite"
)

func newExtractCmd() *cobra.Command {
	var dir, out string
	var index, file int

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract one reconstructed file from a cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			var c *cache.Cache
			err := withSpinner(fmt.Sprintf("loading %s... ", dir), func() error {
				var err error
				c, err = cache.OpenCacheDir(dir)
				return err
			})
			if err != nil {
				return fail(cmd, err)
			}

			f, ok := c.GetFile(index, file)
			if !ok {
				return fail(cmd, fmt.Errorf("no such file: index %d, file %d", index, file))
			}
			if err := cache.WriteFile(out, f.Data); err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %d bytes to %s\n", okColor("ok"), len(f.Data), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "cache directory (required)")
	cmd.Flags().IntVar(&index, "index", 0, "index id")
	cmd.Flags().IntVar(&file, "file", 0, "file id within the index")
	cmd.Flags().StringVar(&out, "out", "", "output file path (required)")
	cmd.MarkFlagRequired("dir")
	cmd.MarkFlagRequired("out")
	return cmd
}
