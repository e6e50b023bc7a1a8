package grammar

import (
	"strings"
	"testing"

	"github.com/dhamidi/cook/parser"
	"github.com/dhamidi/cook/recipe"
	"golang.org/x/exp/ebnf"
)

func TestVerify(t *testing.T) {
	if err := Verify(); err != nil {
		for _, e := range Errors(err) {
			t.Error(e)
		}
	}
}

func TestErrors(t *testing.T) {
	g, err := ebnf.Parse("bad.ebnf", strings.NewReader("a = b .\nc = \"x\" .\n"))
	if err != nil {
		t.Fatal(err)
	}
	errs := Errors(ebnf.Verify(g, "a"))
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if Errors(nil) != nil {
		t.Error("got errors for nil")
	}
}

func newMatcher(t *testing.T) *Matcher {
	t.Helper()
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	return NewMatcher(g)
}

func TestMatch(t *testing.T) {
	m := newMatcher(t)
	tests := []struct {
		production string
		input      string
		want       int // -1 when there is no match
	}{
		{"number", "1/2", 3},
		{"number", "1 1/2", 5},
		{"number", "1.5", 3},
		{"number", ".5", 2},
		{"number", "abc", -1},
		{"range", "2-3", 3},
		{"range", "2 - 3", 5},
		{"quantity", "200%g", 5},
		{"quantity", "100*%g", 6},
		{"quantity", "1|2|3%cups", 10},
		{"ingredient", "@olive oil{2%tbsp}(extra virgin)", 32},
		{"ingredient", "@salt and pepper", 5},
		{"ingredient", "@&flour{}", 9},
		{"ingredient", "salt", -1},
		{"cookware", "#pot", 4},
		{"timer", "~{10%min}", 9},
		{"timer", "~eggs{3%min}", 12},
		{"metadata", ">> servings: 2|4", 16},
		{"escape", `\@`, 2},
		{"word", "crème fraîche", 6},
		{"undefined", "x", -1},
	}
	for _, tt := range tests {
		t.Run(tt.production+" "+tt.input, func(t *testing.T) {
			n, ok := m.Match(tt.production, tt.input)
			got := n
			if !ok {
				got = -1
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMatchRecipe(t *testing.T) {
	m := newMatcher(t)
	input := ">> servings: 2\n\n= Dough\nMix @flour{200%g} in a #bowl.\n-- rest\n> Let it rest ~{1%h}.\n"
	if !m.MatchAll(Start, input) {
		n, _ := m.Match(Start, input)
		t.Errorf("matched only %q", input[:n])
	}
}

// Components the grammar accepts are parsed without errors.
func TestGrammarAgreesWithParser(t *testing.T) {
	m := newMatcher(t)
	inputs := []string{
		"@flour{200%g}",
		"@milk{1 1/2%cups}",
		"@eggs{2-3}",
		"@salt{}",
		"@?parsley{}",
		"@water{1|2%l}",
		"#pot",
		"#frying pan{}",
		"~{10%min}",
	}
	for _, input := range inputs {
		if !m.MatchAll("stepitem", input) {
			t.Errorf("%q: grammar does not match", input)
			continue
		}
		source := ">> servings: 1|2\n\n" + input
		r := recipe.Parse(source, parser.All)
		if err := r.Err(); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}
