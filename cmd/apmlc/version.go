package main

import (
	"fmt"

	"github.com/reglet-dev/apmlc/internal/version"
	"github.com/spf13/cobra"
)

// newVersionCmd implements the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apmlc",
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "apmlc version %s\n", info.Full())
		},
	}
}
