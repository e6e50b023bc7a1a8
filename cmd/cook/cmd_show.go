package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/cook/config"
	"github.com/dhamidi/cook/format"
	"github.com/dhamidi/cook/recipe"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultWidth = 80

func newShowCmd(cfg *config.Config) *cobra.Command {
	var servings uint32
	var outputFormat string
	var width int

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Show a recipe, scaled to a number of servings",
		Long: `Show a recipe, scaled to a number of servings.

Without --servings the recipe is shown as written. Quantities that can't
be scaled keep their original value and are marked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := readSource(path)
			if err != nil {
				return err
			}

			result := recipe.Parse(source, cfg.Extensions)
			printDiagnostics(path, source, result.Diagnostics())

			r := result.Output
			r.Name = recipeName(path)
			scaled := r.SkipScaling()
			if servings > 0 {
				scaled = r.Scale(r.TargetFor(servings))
			}

			var encoder format.Encoder
			switch outputFormat {
			case "text":
				encoder = format.NewTextEncoder(os.Stdout, outputWidth(width))
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "lines":
				encoder = format.NewLineEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(scaled); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if result.HasErrors() {
				return fmt.Errorf("%s: %d errors", path, len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().Uint32VarP(&servings, "servings", "s", 0, "scale to this many servings")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, lines)")
	cmd.Flags().IntVarP(&width, "width", "w", cfg.Width, "output width, 0 uses the terminal width")

	return cmd
}

func outputWidth(width int) int {
	if width > 0 {
		return width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}
