package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/kayeks/runite"
)

func withSpinner(prefix string, fn func() error) error {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Prefix = prefix
	s.Start()
	err := fn()
	s.Stop()
	return err
}

func newInspectCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Open a cache directory and print per-index file counts",
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

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d indices\n", okColor("ok"), c.NumIndices())
			for i := 0; i < c.NumIndices(); i++ {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %d: %d files\n", infoColor("index"), i, c.NumFiles(i))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "cache directory (required)")
	cmd.MarkFlagRequired("dir")
	return cmd
}
