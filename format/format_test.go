package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/cook/parser"
	"github.com/dhamidi/cook/recipe"
)

const soup = `>> servings: 2
>> title: Soup
>> source: grandma

Mix @flour{100*%g} in #bowl{}.

= Finish

Wait ~{5%min}.
`

func parseRecipe(t *testing.T, input string) *recipe.Recipe {
	t.Helper()
	r := recipe.Parse(input, parser.All)
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	return r.Output
}

func TestTextEncoder(t *testing.T) {
	r := parseRecipe(t, soup)
	var buf bytes.Buffer
	if err := NewTextEncoder(&buf, 0).Encode(r.Scale(r.TargetFor(4))); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"Soup\n",
		"servings: 4 (scaled from 2)\n",
		"source: grandma\n",
		"Ingredients:\n  flour  200 g\n",
		"Cookware:\n  bowl\n",
		" 1. Mix flour in bowl.\n",
		"    [flour: 200 g]\n",
		"= Finish\n 1. Wait 5 min.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("styled output written to a buffer")
	}
}

func TestTextEncoderWraps(t *testing.T) {
	r := parseRecipe(t, "Stir the @soup{} slowly and patiently until it thickens nicely.")
	var buf bytes.Buffer
	if err := NewTextEncoder(&buf, 24).Encode(r.SkipScaling()); err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if len(line) > 24 {
			t.Errorf("line %q is longer than 24", line)
		}
	}
}

func TestTextEncoderShowsScaleErrors(t *testing.T) {
	r := parseRecipe(t, ">> servings: 2|4\n\nAdd @water{1|2%l}.")
	var buf bytes.Buffer
	if err := NewTextEncoder(&buf, 0).Encode(r.Scale(r.TargetFor(3))); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "(not scaled: Value not scalable") {
		t.Errorf("scale error not shown:\n%s", buf.String())
	}
}

func TestJSONEncoder(t *testing.T) {
	r := parseRecipe(t, soup)
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(r.Scale(r.TargetFor(4))); err != nil {
		t.Fatal(err)
	}

	var got jsonRecipe
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Scale == nil || got.Scale.Factor != 2 {
		t.Fatalf("got scale %+v, want factor 2", got.Scale)
	}
	flour := got.Ingredients[0]
	if flour.Outcome != "scaled" || flour.Quantity.Kind != "fixed" || *flour.Quantity.Values[0].Number != 200 {
		t.Errorf("got %+v, want 200 g scaled", flour)
	}
	if len(got.Sections) != 2 || got.Sections[1].Name != "Finish" {
		t.Errorf("got sections %+v", got.Sections)
	}
	items := got.Sections[0].Steps[0].Items
	if items[1].Type != "ingredient" || items[1].Index == nil || *items[1].Index != 0 {
		t.Errorf("got item %+v, want a reference to ingredient 0", items[1])
	}
}

func TestJSONEncoderSkipped(t *testing.T) {
	r := parseRecipe(t, soup)
	enc := NewJSONEncoder(&bytes.Buffer{})
	if err := enc.Encode(r.SkipScaling()); err != nil {
		t.Fatal(err)
	}
	text, err := enc.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var got jsonRecipe
	if err := json.Unmarshal(text, &got); err != nil {
		t.Fatal(err)
	}
	if got.Scale != nil || got.Ingredients[0].Outcome != "" || got.Ingredients[0].Quantity.Kind != "linear" {
		t.Errorf("got %+v, want the quantities as written", got.Ingredients[0])
	}
}

func TestASTJSONEncoder(t *testing.T) {
	tree := parser.Parse("@flour{100*%g}", parser.All)
	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(tree.Output); err != nil {
		t.Fatal(err)
	}
	var root astJSONNode
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	igr := root.Children[0].Children[0]
	if root.Children[0].Kind != "step" || igr.Kind != "ingredient" {
		t.Fatalf("got %s/%s, want step/ingredient", root.Children[0].Kind, igr.Kind)
	}
	q := igr.Children[1]
	var kinds []string
	for _, c := range q.Children {
		kinds = append(kinds, c.Kind)
	}
	if q.Kind != "quantity" || strings.Join(kinds, ",") != "number,autoScale,unit" {
		t.Errorf("got %s with %v", q.Kind, kinds)
	}
	if *q.Span != (astJSONSpan{Start: 7, End: 13}) {
		t.Errorf("got quantity span %+v, want 7..13", *q.Span)
	}
}

func TestEventJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEventJSONEncoder(&buf)
	for ev := range parser.NewPullParser("Add @salt{1/0}", parser.None).Events() {
		if err := enc.Encode(ev); err != nil {
			t.Fatal(err)
		}
	}
	var types []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev eventJSON
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("invalid line %q: %v", line, err)
		}
		types = append(types, ev.Type)
		if ev.Type == "error" && (ev.Message != "Division by zero" || len(ev.Labels) == 0) {
			t.Errorf("got error %+v", ev)
		}
	}
	if got := strings.Join(types, " "); got != "startStep text error ingredient endStep" {
		t.Errorf("got %s", got)
	}
}

func TestLineEncoder(t *testing.T) {
	r := parseRecipe(t, "Mix @flour{100*%g} and @salt in #bowl; wait ~{5%min}.")
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(r.SkipScaling()); err != nil {
		t.Fatal(err)
	}
	want := "ingredient\tflour\t100*\tg\tunscaled\n" +
		"ingredient\tsalt\t\t\tunscaled\n" +
		"cookware\tbowl\t\t\tunscaled\n" +
		"timer\t\t5\tmin\tunscaled\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
