package main

import (
	"fmt"

	"github.com/dhamidi/cook/config"
	"github.com/dhamidi/cook/lsp"
	"github.com/spf13/cobra"
	"pkt.systems/version"
)

func newLSPCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(fmt.Sprint(version.Current()), cfg.Extensions)
			return server.RunStdio()
		},
	}
}
