package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/recipe"
)

type JSONEncoder struct {
	w      io.Writer
	recipe *recipe.ScaledRecipe
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(r *recipe.ScaledRecipe) error {
	e.recipe = r
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildRecipeData(), "", "  ")
}

type jsonRecipe struct {
	Name        string           `json:"name,omitempty"`
	Metadata    []jsonMetadata   `json:"metadata,omitempty"`
	Servings    []uint32         `json:"servings,omitempty"`
	Scale       *jsonScale       `json:"scale,omitempty"`
	Sections    []jsonSection    `json:"sections"`
	Ingredients []jsonIngredient `json:"ingredients"`
	Cookware    []jsonCookware   `json:"cookware"`
	Timers      []jsonTimer      `json:"timers"`
}

type jsonMetadata struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type jsonScale struct {
	Base   uint32  `json:"base"`
	Target uint32  `json:"target"`
	Factor float64 `json:"factor"`
}

type jsonSection struct {
	Name  string     `json:"name,omitempty"`
	Steps []jsonStep `json:"steps"`
}

type jsonStep struct {
	Number int        `json:"number,omitempty"`
	IsText bool       `json:"isText,omitempty"`
	Items  []jsonItem `json:"items"`
}

type jsonItem struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Index *int   `json:"index,omitempty"`
}

type jsonOutcome struct {
	Outcome string `json:"outcome,omitempty"`
	Error   string `json:"error,omitempty"`
}

type jsonIngredient struct {
	Name        string        `json:"name"`
	Alias       string        `json:"alias,omitempty"`
	Note        string        `json:"note,omitempty"`
	Modifiers   string        `json:"modifiers,omitempty"`
	ReferenceTo *int          `json:"referenceTo,omitempty"`
	Quantity    *jsonQuantity `json:"quantity,omitempty"`
	jsonOutcome
}

type jsonCookware struct {
	Name      string        `json:"name"`
	Alias     string        `json:"alias,omitempty"`
	Note      string        `json:"note,omitempty"`
	Modifiers string        `json:"modifiers,omitempty"`
	Quantity  *jsonQuantity `json:"quantity,omitempty"`
	jsonOutcome
}

type jsonTimer struct {
	Name     string        `json:"name,omitempty"`
	Quantity *jsonQuantity `json:"quantity,omitempty"`
	jsonOutcome
}

type jsonQuantity struct {
	Kind   string      `json:"kind"`
	Values []jsonValue `json:"values"`
	Unit   string      `json:"unit,omitempty"`
}

type jsonValue struct {
	Type   string   `json:"type"`
	Number *float64 `json:"number,omitempty"`
	Start  *float64 `json:"start,omitempty"`
	End    *float64 `json:"end,omitempty"`
	Text   string   `json:"text,omitempty"`
}

func (e *JSONEncoder) buildRecipeData() jsonRecipe {
	r := e.recipe
	data := jsonRecipe{
		Name:        r.Name,
		Servings:    r.Metadata.Servings,
		Sections:    buildSections(r.Sections),
		Ingredients: make([]jsonIngredient, len(r.Ingredients)),
		Cookware:    make([]jsonCookware, len(r.Cookware)),
		Timers:      make([]jsonTimer, len(r.Timers)),
	}
	for _, m := range r.Metadata.Entries {
		data.Metadata = append(data.Metadata, jsonMetadata{Key: m.Key, Value: m.Value})
	}

	scaled := r.ScaledData()
	if scaled != nil {
		data.Scale = &jsonScale{
			Base:   scaled.Target.Base(),
			Target: scaled.Target.Target(),
			Factor: scaled.Target.Factor(),
		}
	}
	outcome := func(outcomes func(*recipe.ScaledData) []recipe.ScaleOutcome, i int) jsonOutcome {
		if scaled == nil {
			return jsonOutcome{}
		}
		return buildOutcome(outcomes(scaled)[i])
	}

	for i, igr := range r.Ingredients {
		data.Ingredients[i] = jsonIngredient{
			Name:        igr.Name,
			Alias:       igr.Alias,
			Note:        igr.Note,
			Modifiers:   igr.Modifiers.String(),
			Quantity:    buildQuantity(igr.Quantity),
			jsonOutcome: outcome(func(d *recipe.ScaledData) []recipe.ScaleOutcome { return d.Ingredients }, i),
		}
		if igr.IsReference() {
			data.Ingredients[i].ReferenceTo = &igr.ReferenceTo
		}
	}
	for i, cw := range r.Cookware {
		data.Cookware[i] = jsonCookware{
			Name:        cw.Name,
			Alias:       cw.Alias,
			Note:        cw.Note,
			Modifiers:   cw.Modifiers.String(),
			Quantity:    buildQuantity(cw.Quantity),
			jsonOutcome: outcome(func(d *recipe.ScaledData) []recipe.ScaleOutcome { return d.Cookware }, i),
		}
	}
	for i, tm := range r.Timers {
		data.Timers[i] = jsonTimer{
			Name:        tm.Name,
			Quantity:    buildQuantity(tm.Quantity),
			jsonOutcome: outcome(func(d *recipe.ScaledData) []recipe.ScaleOutcome { return d.Timers }, i),
		}
	}
	return data
}

func buildSections(sections []recipe.Section) []jsonSection {
	result := make([]jsonSection, len(sections))
	for i, sec := range sections {
		result[i] = jsonSection{Name: sec.Name, Steps: make([]jsonStep, len(sec.Steps))}
		for j, st := range sec.Steps {
			result[i].Steps[j] = jsonStep{Number: st.Number, IsText: st.IsText, Items: buildItems(st.Items)}
		}
	}
	return result
}

func buildItems(items []recipe.Item) []jsonItem {
	result := make([]jsonItem, len(items))
	for i, item := range items {
		switch item := item.(type) {
		case recipe.TextItem:
			result[i] = jsonItem{Type: "text", Value: item.Value}
		case recipe.IngredientRef:
			result[i] = jsonItem{Type: "ingredient", Index: &item.Index}
		case recipe.CookwareRef:
			result[i] = jsonItem{Type: "cookware", Index: &item.Index}
		case recipe.TimerRef:
			result[i] = jsonItem{Type: "timer", Index: &item.Index}
		}
	}
	return result
}

func buildOutcome(o recipe.ScaleOutcome) jsonOutcome {
	out := jsonOutcome{Outcome: o.Kind.String()}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return out
}

func buildQuantity(q *quantity.Quantity) *jsonQuantity {
	if q == nil {
		return nil
	}
	jq := &jsonQuantity{Unit: q.Unit}
	switch v := q.Value.(type) {
	case quantity.Fixed:
		jq.Kind = "fixed"
		jq.Values = []jsonValue{buildValue(v.Value)}
	case quantity.Linear:
		jq.Kind = "linear"
		jq.Values = []jsonValue{buildValue(v.Value)}
	case quantity.ByServings:
		jq.Kind = "byServings"
		for _, value := range v {
			jq.Values = append(jq.Values, buildValue(value))
		}
	}
	return jq
}

func buildValue(v quantity.Value) jsonValue {
	switch v := v.(type) {
	case quantity.Number:
		n := float64(v)
		return jsonValue{Type: "number", Number: &n}
	case quantity.Range:
		return jsonValue{Type: "range", Start: &v.Start, End: &v.End}
	case quantity.Text:
		return jsonValue{Type: "text", Text: string(v)}
	}
	return jsonValue{Type: "unknown"}
}
