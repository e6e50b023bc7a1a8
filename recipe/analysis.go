package recipe

import (
	"strconv"
	"strings"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/parser"
	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/report"
	"github.com/dhamidi/cook/span"
)

const servingsKey = "servings"

// Parse reads input all the way into a recipe. Diagnostics of the parser
// and the analysis are merged, parser first.
func Parse(input string, ext parser.Extensions) report.Result[*Recipe] {
	var ctx report.Context
	tree := parser.Parse(input, ext)
	report.Merge(&ctx, tree)
	analysed := Analyze(tree.Output)
	report.Merge(&ctx, analysed)
	return report.Finish(&ctx, analysed.Output)
}

type analyzer struct {
	ctx    report.Context
	recipe *Recipe
	// section is the index of the section steps go to, -1 before the
	// first step or header.
	section int
}

// Analyze builds a recipe out of a syntax tree.
func Analyze(tree *ast.Ast) report.Result[*Recipe] {
	a := &analyzer{recipe: &Recipe{}, section: -1}

	// metadata first, quantities need the servings
	for _, b := range tree.Blocks {
		if m, ok := b.(*ast.Metadata); ok {
			a.metadata(m)
		}
	}
	for _, b := range tree.Blocks {
		switch b := b.(type) {
		case *ast.Section:
			a.startSection(b)
		case *ast.Step:
			a.step(b)
		}
	}

	r := a.recipe
	log.Debugf("analysed recipe: %d sections, %d ingredients, %d cookware, %d timers",
		len(r.Sections), len(r.Ingredients), len(r.Cookware), len(r.Timers))
	return report.Finish(&a.ctx, r)
}

func (a *analyzer) metadata(m *ast.Metadata) {
	key := m.Key.Trimmed()
	if key == "" {
		// the parser already reported it
		return
	}
	value := m.Value.Trimmed()
	if a.recipe.Metadata.set(key, value) {
		a.ctx.Warn(&DuplicateMetadataKey{Key: key, Entry: m.Key.Span().Cover(m.Value.Span())})
	}
	if strings.EqualFold(key, servingsKey) {
		a.recipe.Metadata.Servings = a.servings(value, m.Value.Span())
	}
}

func (a *analyzer) servings(value string, at span.Span) []uint32 {
	var servings []uint32
	for _, part := range strings.Split(value, "|") {
		part = strings.TrimSpace(part)
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n == 0 {
			a.ctx.Error(&InvalidServings{Value: at, Reason: strconv.Quote(part) + " is not a positive whole number"})
			return nil
		}
		servings = append(servings, uint32(n))
	}
	return servings
}

func (a *analyzer) startSection(s *ast.Section) {
	var name string
	if s.Name != nil {
		name = s.Name.Trimmed()
	}
	a.recipe.Sections = append(a.recipe.Sections, Section{Name: name})
	a.section = len(a.recipe.Sections) - 1
}

func (a *analyzer) currentSection() *Section {
	if a.section < 0 {
		a.recipe.Sections = append(a.recipe.Sections, Section{})
		a.section = 0
	}
	return &a.recipe.Sections[a.section]
}

func (a *analyzer) step(s *ast.Step) {
	sec := a.currentSection()
	st := Step{IsText: s.IsText}
	if !s.IsText {
		n := 1
		for _, prev := range sec.Steps {
			if !prev.IsText {
				n++
			}
		}
		st.Number = n
	}

	for _, item := range s.Items {
		switch item := item.(type) {
		case *ast.TextItem:
			st.Items = append(st.Items, TextItem{Value: item.Text.String()})
		case *ast.IngredientItem:
			st.Items = append(st.Items, IngredientRef{Index: a.ingredient(item.Ingredient)})
		case *ast.CookwareItem:
			st.Items = append(st.Items, CookwareRef{Index: a.cookware(item.Cookware)})
		case *ast.TimerItem:
			st.Items = append(st.Items, TimerRef{Index: a.timer(item.Timer)})
		}
	}
	sec.Steps = append(sec.Steps, st)
}

func (a *analyzer) ingredient(located span.Located[ast.Ingredient]) int {
	igr := located.Value
	out := Ingredient{
		Name:        igr.Name.Trimmed(),
		Alias:       trimmedOrEmpty(igr.Alias),
		Note:        trimmedOrEmpty(igr.Note),
		Modifiers:   igr.Modifiers.Value,
		ReferenceTo: -1,
		Span:        located.Span,
	}
	if igr.Quantity != nil {
		out.Quantity = a.quantity(igr.Quantity.Value.Value, igr.Quantity.Value.Unit, igr.Quantity.Span)
	}
	if out.Modifiers.Has(ast.ModRef) {
		out.ReferenceTo = a.definition(out.Name)
		if out.ReferenceTo < 0 {
			a.ctx.Error(&ReferenceNotFound{Name: out.Name, Reference: located.Span})
		}
	}
	a.recipe.Ingredients = append(a.recipe.Ingredients, out)
	return len(a.recipe.Ingredients) - 1
}

// definition finds the latest ingredient called name that is not a
// reference itself.
func (a *analyzer) definition(name string) int {
	for i := len(a.recipe.Ingredients) - 1; i >= 0; i-- {
		igr := a.recipe.Ingredients[i]
		if !igr.IsReference() && strings.EqualFold(igr.Name, name) {
			return i
		}
	}
	return -1
}

func (a *analyzer) cookware(located span.Located[ast.Cookware]) int {
	cw := located.Value
	out := Cookware{
		Name:      cw.Name.Trimmed(),
		Alias:     trimmedOrEmpty(cw.Alias),
		Note:      trimmedOrEmpty(cw.Note),
		Modifiers: cw.Modifiers.Value,
		Span:      located.Span,
	}
	if cw.Quantity != nil {
		out.Quantity = a.quantity(cw.Quantity.Value, nil, cw.Quantity.Span)
	}
	a.recipe.Cookware = append(a.recipe.Cookware, out)
	return len(a.recipe.Cookware) - 1
}

func (a *analyzer) timer(located span.Located[ast.Timer]) int {
	tm := located.Value
	out := Timer{
		Name: trimmedOrEmpty(tm.Name),
		Span: located.Span,
	}
	if tm.Quantity != nil {
		out.Quantity = a.quantity(tm.Quantity.Value.Value, tm.Quantity.Value.Unit, tm.Quantity.Span)
	}
	a.recipe.Timers = append(a.recipe.Timers, out)
	return len(a.recipe.Timers) - 1
}

func (a *analyzer) quantity(value ast.QuantityValue, unit *ast.Text, at span.Span) *quantity.Quantity {
	q := &quantity.Quantity{Unit: trimmedOrEmpty(unit)}
	switch v := value.(type) {
	case ast.Single:
		if v.AutoScale != nil {
			q.Value = quantity.Linear{Value: v.Value.Value}
		} else {
			q.Value = quantity.Fixed{Value: v.Value.Value}
		}
	case ast.Many:
		values := make(quantity.ByServings, len(v))
		for i, lv := range v {
			values[i] = lv.Value
		}
		if declared := len(a.recipe.Metadata.Servings); declared != len(values) {
			a.ctx.Error(&ServingsMismatch{Quantity: at, Declared: declared, Got: len(values)})
		}
		q.Value = values
	default:
		panic("unknown quantity value, this is a bug")
	}
	return q
}

func trimmedOrEmpty(t *ast.Text) string {
	if t == nil {
		return ""
	}
	return t.Trimmed()
}
