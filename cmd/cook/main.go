package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/cook/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"pkt.systems/version"
)

var log = commonlog.GetLogger("cook")

func init() {
	version.SetDefaultModule("github.com/dhamidi/cook")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var verbose int

	rootCmd := &cobra.Command{
		Use:          "cook",
		Short:        "Read, scale and check recipes",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if cfg.LogFile != "" {
				path = &cfg.LogFile
			}
			commonlog.Configure(cfg.Verbosity+verbose, path)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Var(config.NewExtensionsValue(&cfg.Extensions), "extensions", "parser extensions: all, none or a comma separated list")
	flags.CountVarP(&verbose, "verbose", "v", "log more, repeat for debug output")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(cfg))
	rootCmd.AddCommand(newShowCmd(cfg))
	rootCmd.AddCommand(newCheckCmd(cfg))
	rootCmd.AddCommand(newLSPCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
