package parser

import (
	"iter"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/report"
	"github.com/dhamidi/cook/span"
)

// BuildAST folds events into a syntax tree. Errors and warnings are
// collected in the result; the tree is returned either way.
func BuildAST(events iter.Seq[Event]) report.Result[*ast.Ast] {
	var (
		ctx    report.Context
		blocks []ast.Block
		items  []ast.Item
	)

	for ev := range events {
		switch ev := ev.(type) {
		case Metadata:
			blocks = append(blocks, &ast.Metadata{Key: ev.Key, Value: ev.Value})
		case Section:
			blocks = append(blocks, &ast.Section{Name: ev.Name})
		case StartStep:
			items = nil
		case EndStep:
			if len(items) > 0 {
				blocks = append(blocks, &ast.Step{IsText: ev.IsText, Items: items})
				items = nil
			}
		case Text:
			items = append(items, &ast.TextItem{Text: ev.Value})
		case Ingredient:
			items = append(items, &ast.IngredientItem{Ingredient: span.Located[ast.Ingredient](ev)})
		case Cookware:
			items = append(items, &ast.CookwareItem{Cookware: span.Located[ast.Cookware](ev)})
		case Timer:
			items = append(items, &ast.TimerItem{Timer: span.Located[ast.Timer](ev)})
		case ErrorEvent:
			ctx.Error(ev.Err)
		case WarningEvent:
			ctx.Warn(ev.Warn)
		}
	}

	log.Debugf("built ast: %d blocks, %d errors, %d warnings", len(blocks), len(ctx.Errors()), len(ctx.Warnings()))
	return report.Finish(&ctx, &ast.Ast{Blocks: blocks})
}

// Parse lexes and parses input into a syntax tree.
func Parse(input string, ext Extensions) report.Result[*ast.Ast] {
	return BuildAST(NewPullParser(input, ext).Events())
}
