package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/cook/grammar"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var verify bool
	var production string

	cmd := &cobra.Command{
		Use:   "grammar [text]",
		Short: "Print, verify or try out the EBNF grammar of the markup",
		Long: `Print the EBNF grammar of the recipe markup.

With --verify the grammar is checked instead. With --match the text
argument is matched against a production and the matched prefix printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case verify:
				if err := grammar.Verify(); err != nil {
					for _, e := range grammar.Errors(err) {
						fmt.Fprintln(os.Stderr, e)
					}
					return err
				}
				fmt.Println("ok")
				return nil

			case production != "":
				if len(args) != 1 {
					return fmt.Errorf("--match needs the text to match")
				}
				g, err := grammar.Load()
				if err != nil {
					return err
				}
				if _, ok := g[production]; !ok {
					return fmt.Errorf("no production %s", production)
				}
				n, ok := grammar.NewMatcher(g).Match(production, args[0])
				if !ok {
					return fmt.Errorf("%s does not match", production)
				}
				fmt.Printf("%q\n", args[0][:n])
				return nil
			}

			_, err := os.Stdout.Write(grammar.Source())
			return err
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check that the grammar is complete")
	cmd.Flags().StringVar(&production, "match", "", "match the text argument against this production")

	return cmd
}
