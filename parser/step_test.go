package parser

import (
	"strings"
	"testing"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/quantity"
)

func firstStep(t *testing.T, input string, ext Extensions) (*ast.Step, []ParserError) {
	t.Helper()
	r := Parse(input, ext)
	var errs []ParserError
	for _, d := range r.Errors {
		errs = append(errs, d.(ParserError))
	}
	for _, b := range r.Output.Blocks {
		if st, ok := b.(*ast.Step); ok {
			return st, errs
		}
	}
	t.Fatalf("no step in %q", input)
	return nil, nil
}

func ingredients(st *ast.Step) []ast.Ingredient {
	var out []ast.Ingredient
	for _, item := range st.Items {
		if igr, ok := item.(*ast.IngredientItem); ok {
			out = append(out, igr.Ingredient.Value)
		}
	}
	return out
}

func TestIngredient(t *testing.T) {
	st, errs := firstStep(t, "Add @salt and @olive oil{2%tbsp}(extra virgin).", All)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	igrs := ingredients(st)
	if len(igrs) != 2 {
		t.Fatalf("got %d ingredients, want 2", len(igrs))
	}

	if igrs[0].Name.String() != "salt" || igrs[0].Quantity != nil {
		t.Errorf("got %q with quantity %v, want salt without quantity", igrs[0].Name.String(), igrs[0].Quantity)
	}

	oil := igrs[1]
	if oil.Name.String() != "olive oil" {
		t.Errorf("got name %q, want %q", oil.Name.String(), "olive oil")
	}
	if oil.Quantity == nil || oil.Quantity.Value.Unit == nil {
		t.Fatal("quantity or unit missing")
	}
	single := oil.Quantity.Value.Value.(ast.Single)
	if single.Value.Value != quantity.Number(2) || oil.Quantity.Value.Unit.String() != "tbsp" {
		t.Errorf("got %v %s, want 2 tbsp", single.Value.Value, oil.Quantity.Value.Unit.String())
	}
	if oil.Note == nil || oil.Note.String() != "extra virgin" {
		t.Errorf("got note %v, want %q", oil.Note, "extra virgin")
	}

	var text []string
	for _, item := range st.Items {
		if ti, ok := item.(*ast.TextItem); ok {
			text = append(text, ti.Text.String())
		}
	}
	if strings.Join(text, "|") != "Add | and |." {
		t.Errorf("got text items %q", text)
	}
}

func TestComponentSpan(t *testing.T) {
	input := "Use #pot{} now"
	r := Parse(input, All)
	st := r.Output.Blocks[0].(*ast.Step)
	cw := st.Items[1].(*ast.CookwareItem).Cookware
	if got := input[cw.Span.Start:cw.Span.End]; got != "#pot{}" {
		t.Errorf("got %q, want %q", got, "#pot{}")
	}
	if cw.Value.Quantity != nil {
		t.Error("empty braces produced a quantity")
	}
}

func TestModifiers(t *testing.T) {
	tests := []struct {
		input  string
		ext    Extensions
		mods   ast.Modifiers
		name   string
		errors int
	}{
		{"@&flour{}", All, ast.ModRef, "flour", 0},
		{"@?parsley{}", All, ast.ModOpt, "parsley", 0},
		{"@-+salt", All, ast.ModHidden | ast.ModNew, "salt", 0},
		{"@&&flour{}", All, ast.ModRef, "flour", 1},
		{"@&flour{}", None, 0, "&flour", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			st, errs := firstStep(t, tt.input, tt.ext)
			igrs := ingredients(st)
			if len(igrs) != 1 {
				t.Fatalf("got %d ingredients, want 1", len(igrs))
			}
			if igrs[0].Modifiers.Value != tt.mods {
				t.Errorf("got modifiers %q, want %q", igrs[0].Modifiers.Value, tt.mods)
			}
			if igrs[0].Name.String() != tt.name {
				t.Errorf("got name %q, want %q", igrs[0].Name.String(), tt.name)
			}
			if len(errs) != tt.errors {
				t.Errorf("got %d errors %v, want %d", len(errs), errs, tt.errors)
			}
			if tt.errors > 0 {
				if _, ok := errs[0].(*DuplicateModifiers); !ok {
					t.Errorf("got %T, want *DuplicateModifiers", errs[0])
				}
			}
		})
	}
}

func TestComponentErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ext   Extensions
		want  string
	}{
		{"timer without quantity", "~rest", All, "A timer is missing: quantity"},
		{"timer without unit", "~{10}", All, "A timer is missing: unit"},
		{"timer auto scale", "~{10*%min}", All, "A timer cannot have: auto scale marker"},
		{"timer modifiers", "~&{10%min}", All, "A timer cannot have: modifiers"},
		{"timer alias", "~a|b{1%min}", All, "A timer cannot have: alias"},
		{"cookware unit", "#pan{2%l}", All, "A cookware cannot have: unit"},
		{"cookware auto scale", "#pot{2*}", All, "A cookware cannot have: auto scale marker"},
		{"alias without extension", "@flour|wheat{}", None, "A ingredient cannot have: alias"},
		{"empty alias", "@flour|{}", All, "Invalid ingredient alias: is empty"},
		{"empty ingredient name", "@{1%kg}", All, "Invalid ingredient name: is empty"},
		{"empty cookware name", "#{}", All, "Invalid cookware name: is empty"},
		{"division by zero", "@eggs{1/0}", All, "Division by zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := firstStep(t, tt.input, tt.ext)
			if len(errs) != 1 {
				t.Fatalf("got %d errors %v, want 1", len(errs), errs)
			}
			if errs[0].Error() != tt.want {
				t.Errorf("got %q, want %q", errs[0].Error(), tt.want)
			}
			if len(errs[0].Labels()) == 0 {
				t.Error("error has no labels")
			}
			if errs[0].Code() != "parser" {
				t.Errorf("got code %q", errs[0].Code())
			}
		})
	}
}

func TestAlias(t *testing.T) {
	st, errs := firstStep(t, "@white wine|wine{1%cup}", All)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	igr := ingredients(st)[0]
	if igr.Name.String() != "white wine" || igr.Alias == nil || igr.Alias.String() != "wine" {
		t.Errorf("got %q alias %v", igr.Name.String(), igr.Alias)
	}
}

func TestTimer(t *testing.T) {
	r := Parse("Bake for ~oven{25%minutes} then ~{5%min}.", All)
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	var timers []ast.Timer
	for _, item := range r.Output.Blocks[0].(*ast.Step).Items {
		if tm, ok := item.(*ast.TimerItem); ok {
			timers = append(timers, tm.Timer.Value)
		}
	}
	if len(timers) != 2 {
		t.Fatalf("got %d timers, want 2", len(timers))
	}
	if timers[0].Name == nil || timers[0].Name.String() != "oven" {
		t.Errorf("got name %v, want oven", timers[0].Name)
	}
	if timers[1].Name != nil {
		t.Errorf("got name %q, want none", timers[1].Name.String())
	}
	if u := timers[0].Quantity.Value.Unit; u == nil || u.String() != "minutes" {
		t.Errorf("got unit %v, want minutes", u)
	}
}

func TestNotAComponent(t *testing.T) {
	inputs := []string{
		"email me @ home",
		"price: 3# of them",
		"about ~ 5 minutes",
		"@ {}",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			st, errs := firstStep(t, input, All)
			if len(errs) != 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
			if len(st.Items) != 1 {
				t.Fatalf("got %d items, want the text alone", len(st.Items))
			}
			ti, ok := st.Items[0].(*ast.TextItem)
			if !ok || ti.Text.String() != input {
				t.Errorf("got %#v, want text %q", st.Items[0], input)
			}
		})
	}
}

func TestComponentDiagnosticsFollowText(t *testing.T) {
	var got []string
	for ev := range NewPullParser("Add @{} now", All).Events() {
		got = append(got, describe(ev))
	}
	want := `start text("Add ") error(*parser.ComponentPartInvalid) @ text(" now") end`
	if strings.Join(got, " ") != want {
		t.Errorf("got  %s\nwant %s", strings.Join(got, " "), want)
	}
}

func TestStepsDoNotPanic(t *testing.T) {
	inputs := []string{
		"@", "#", "~", "@{", "@}", "@a{", "@a{1", "{}", "@a{}(", "@a{}()",
		">>", ">> :", ":", "=", "==", "= =", "\\", "a\\", "[-", "[- -]",
		"@a{1|}", "@a{|}", "@a{%}", "@a{*}", "@a{1**}", "@a{1%%}", "@a{ 1 2 3 4 5 }",
		"~{}", "~a", "#a|", "@a|b|c{}", "@&-?+&{}", "@a{1/}", "@a{/1}", "@a{1-}",
		"line one\n\n\n@two{2}\r\n#three{}\n>> k: v", "> \n>\n",
	}
	for _, input := range inputs {
		for _, ext := range []Extensions{None, All} {
			r := Parse(input, ext)
			if r.Output == nil {
				t.Errorf("%q (%s): no output", input, ext)
			}
		}
	}
}
