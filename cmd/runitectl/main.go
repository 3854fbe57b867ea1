// Command runitectl is a small front door over the cache/archive codec:
// inspect a cache directory, extract a single reconstructed file, write a
// CRC digest, and pack/unpack standalone archive blobs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "runitectl",
		Short: "Inspect and extract Jagex-style cache directories and archives",
	}

	root.AddCommand(newInspectCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newCRCCmd())
	root.AddCommand(newArchiveCmd())
	root.AddCommand(newHashCmd())
	return root
}

func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", errColor(err.Error()))
	return err
}
