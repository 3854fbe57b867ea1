package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kayeks/runite"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <name>",
		Short: "Print the 32-bit name hash of a string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%08x\n", cache.HashName(args[0]))
			return nil
		},
	}
}
