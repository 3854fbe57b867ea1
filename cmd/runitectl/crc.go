package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kayeks/runite"
)

func newCRCCmd() *cobra.Command {
	var dir, out string
	var index int

	cmd := &cobra.Command{
		Use:   "crc",
		Short: "Write the CRC digest file for one index of a cache directory",
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

			digest, err := c.BuildCRCDigest(index)
			if err != nil {
				return fail(cmd, err)
			}
			if err := cache.WriteFile(out, digest); err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote CRC digest (%d bytes) to %s\n", okColor("ok"), len(digest), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "cache directory (required)")
	cmd.Flags().IntVar(&index, "index", 0, "index id")
	cmd.Flags().StringVar(&out, "out", "", "output file path (required)")
	cmd.MarkFlagRequired("dir")
	cmd.MarkFlagRequired("out")
	return cmd
}
