package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/config"
	"github.com/dhamidi/cook/format"
	"github.com/dhamidi/cook/parser"
	"github.com/dhamidi/cook/span"
	"github.com/spf13/cobra"
)

func newParseCmd(cfg *config.Config) *cobra.Command {
	var outputFormat string
	var events bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a recipe and dump its syntax tree or parser events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := readSource(path)
			if err != nil {
				return err
			}

			if events {
				enc := format.NewEventJSONEncoder(os.Stdout)
				for ev := range parser.NewPullParser(source, cfg.Extensions).Events() {
					if err := enc.Encode(ev); err != nil {
						return fmt.Errorf("encode event: %w", err)
					}
				}
				return nil
			}

			result := parser.Parse(source, cfg.Extensions)
			switch outputFormat {
			case "json":
				if err := format.NewASTJSONEncoder(os.Stdout).Encode(result.Output); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "text":
				writeOutline(os.Stdout, result.Output)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			printDiagnostics(path, source, result.Diagnostics())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, text)")
	cmd.Flags().BoolVar(&events, "events", false, "dump parser events as JSON lines instead of the tree")

	return cmd
}

// writeOutline prints one line per block and one indented line per
// step item.
func writeOutline(w io.Writer, tree *ast.Ast) {
	for _, block := range tree.Blocks {
		switch b := block.(type) {
		case *ast.Metadata:
			fmt.Fprintf(w, "metadata %q = %q\n", b.Key.Trimmed(), b.Value.Trimmed())
		case *ast.Section:
			name := ""
			if b.Name != nil {
				name = b.Name.Trimmed()
			}
			fmt.Fprintf(w, "section %q\n", name)
		case *ast.Step:
			if b.IsText {
				fmt.Fprintln(w, "text step")
			} else {
				fmt.Fprintln(w, "step")
			}
			for _, item := range b.Items {
				fmt.Fprintf(w, "  %s\n", outlineItem(item))
			}
		}
	}
}

func outlineItem(item ast.Item) string {
	switch it := item.(type) {
	case *ast.TextItem:
		return fmt.Sprintf("text %q", it.Text.String())
	case *ast.IngredientItem:
		igr := it.Ingredient.Value
		return componentOutline("ingredient", igr.Modifiers.Value, igr.Name, quantityOutline(igr.Quantity))
	case *ast.CookwareItem:
		cw := it.Cookware.Value
		q := ""
		if cw.Quantity != nil {
			q = valuesOutline(cw.Quantity.Value)
		}
		return componentOutline("cookware", cw.Modifiers.Value, cw.Name, q)
	case *ast.TimerItem:
		tm := it.Timer.Value
		name := ast.Text{}
		if tm.Name != nil {
			name = *tm.Name
		}
		return componentOutline("timer", 0, name, quantityOutline(tm.Quantity))
	}
	return ""
}

func componentOutline(kind string, mods ast.Modifiers, name ast.Text, q string) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte(' ')
	b.WriteString(mods.String())
	fmt.Fprintf(&b, "%q", name.Trimmed())
	if q != "" {
		b.WriteString(" {" + q + "}")
	}
	return b.String()
}

func quantityOutline(q *span.Located[ast.Quantity]) string {
	if q == nil {
		return ""
	}
	s := valuesOutline(q.Value.Value)
	if q.Value.Unit != nil {
		s += "%" + q.Value.Unit.Trimmed()
	}
	return s
}

func valuesOutline(v ast.QuantityValue) string {
	values := v.Values()
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = value.Value.String()
	}
	s := strings.Join(parts, "|")
	if single, ok := v.(ast.Single); ok && single.AutoScale != nil {
		s += "*"
	}
	return s
}
