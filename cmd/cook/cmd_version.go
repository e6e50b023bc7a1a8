package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"pkt.systems/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Module(), version.Current())
		},
	}
}
