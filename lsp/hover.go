package lsp

import (
	"fmt"
	"strings"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/recipe"
	"github.com/dhamidi/cook/span"
)

// component is an ingredient, cookware or timer found in a recipe.
type component struct {
	kind     string
	name     string
	quantity *quantity.Quantity
	note     string
	optional bool
	span     span.Span
	// definition is where a referenced ingredient was first used.
	definition *span.Span
}

// componentUnder finds the component whose source covers offset.
func componentUnder(r *recipe.Recipe, offset int) (component, bool) {
	for _, igr := range r.Ingredients {
		if !igr.Span.Contains(offset) {
			continue
		}
		c := component{
			kind:     "ingredient",
			name:     igr.DisplayName(),
			quantity: igr.Quantity,
			note:     igr.Note,
			optional: igr.Modifiers.Has(ast.ModOpt),
			span:     igr.Span,
		}
		if igr.IsReference() {
			def := r.Ingredients[igr.ReferenceTo].Span
			c.definition = &def
		}
		return c, true
	}
	for _, cw := range r.Cookware {
		if cw.Span.Contains(offset) {
			return component{
				kind:     "cookware",
				name:     cw.DisplayName(),
				quantity: cw.Quantity,
				note:     cw.Note,
				optional: cw.Modifiers.Has(ast.ModOpt),
				span:     cw.Span,
			}, true
		}
	}
	for _, tm := range r.Timers {
		if tm.Span.Contains(offset) {
			return component{kind: "timer", name: tm.Name, quantity: tm.Quantity, span: tm.Span}, true
		}
	}
	return component{}, false
}

func (c component) markdown() string {
	var b strings.Builder
	if c.name != "" {
		fmt.Fprintf(&b, "**%s** ", c.name)
	}
	b.WriteString(c.kind)
	if c.optional {
		b.WriteString(" (optional)")
	}
	if c.quantity != nil {
		fmt.Fprintf(&b, "\n\n`%s`", c.quantity)
	}
	if c.note != "" {
		fmt.Fprintf(&b, "\n\n%s", c.note)
	}
	if c.definition != nil {
		b.WriteString("\n\nrefers to an earlier ingredient")
	}
	return b.String()
}
