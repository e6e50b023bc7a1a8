package ui

import (
	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/collection"
	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/recipe"
)

type RecipeView struct {
	Name        string
	Title       string
	Metadata    []recipe.MetadataEntry
	Servings    []uint32
	Target      uint32
	Ingredients []ComponentView
	Cookware    []ComponentView
	Sections    []SectionView
	Errors      []string
	Warnings    []string
}

type ComponentView struct {
	Name     string
	Quantity string
	Note     string
	Error    string
}

type SectionView struct {
	Name  string
	Steps []StepView
}

type StepView struct {
	Number int
	IsText bool
	Parts  []PartView
}

// PartView is a piece of a step. Kind is text, ingredient, cookware or
// timer.
type PartView struct {
	Kind string
	Text string
}

func newRecipeView(f *collection.File, r *recipe.ScaledRecipe) RecipeView {
	v := RecipeView{
		Name:     f.Name,
		Title:    r.Name,
		Servings: r.Metadata.Servings,
	}
	if title, ok := r.Metadata.Get("title"); ok {
		v.Title = title
	}
	for _, m := range r.Metadata.Entries {
		if m.Key != "title" && m.Key != "servings" {
			v.Metadata = append(v.Metadata, m)
		}
	}
	for _, d := range f.Result.Errors {
		v.Errors = append(v.Errors, d.Error())
	}
	for _, d := range f.Result.Warnings {
		v.Warnings = append(v.Warnings, d.Error())
	}

	data := r.ScaledData()
	if data != nil {
		v.Target = data.Target.Target()
	}
	outcomeError := func(outcomes []recipe.ScaleOutcome, i int) string {
		if outcomes != nil && outcomes[i].Err != nil {
			return outcomes[i].Err.Error()
		}
		return ""
	}
	var igrOutcomes, cwOutcomes []recipe.ScaleOutcome
	if data != nil {
		igrOutcomes, cwOutcomes = data.Ingredients, data.Cookware
	}

	for i, igr := range r.Ingredients {
		if igr.IsReference() || igr.Modifiers.Has(ast.ModHidden) {
			continue
		}
		v.Ingredients = append(v.Ingredients, ComponentView{
			Name:     igr.DisplayName(),
			Quantity: quantityText(igr.Quantity),
			Note:     igr.Note,
			Error:    outcomeError(igrOutcomes, i),
		})
	}
	for i, cw := range r.Cookware {
		if cw.Modifiers.Has(ast.ModHidden) || cw.Modifiers.Has(ast.ModRef) {
			continue
		}
		v.Cookware = append(v.Cookware, ComponentView{
			Name:     cw.DisplayName(),
			Quantity: quantityText(cw.Quantity),
			Note:     cw.Note,
			Error:    outcomeError(cwOutcomes, i),
		})
	}

	for _, sec := range r.Sections {
		sv := SectionView{Name: sec.Name}
		for _, st := range sec.Steps {
			sv.Steps = append(sv.Steps, stepView(&r.Recipe, st))
		}
		v.Sections = append(v.Sections, sv)
	}
	return v
}

func stepView(r *recipe.Recipe, st recipe.Step) StepView {
	sv := StepView{Number: st.Number, IsText: st.IsText}
	for _, item := range st.Items {
		switch item := item.(type) {
		case recipe.TextItem:
			sv.Parts = append(sv.Parts, PartView{Kind: "text", Text: item.Value})
		case recipe.IngredientRef:
			igr := r.Ingredients[item.Index]
			sv.Parts = append(sv.Parts, PartView{Kind: "ingredient", Text: igr.DisplayName()})
		case recipe.CookwareRef:
			sv.Parts = append(sv.Parts, PartView{Kind: "cookware", Text: r.Cookware[item.Index].DisplayName()})
		case recipe.TimerRef:
			tm := r.Timers[item.Index]
			text := quantityText(tm.Quantity)
			if text == "" {
				text = tm.Name
			}
			sv.Parts = append(sv.Parts, PartView{Kind: "timer", Text: text})
		}
	}
	return sv
}

func quantityText(q *quantity.Quantity) string {
	if q == nil {
		return ""
	}
	return q.String()
}
