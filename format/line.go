package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/recipe"
)

// LineEncoder writes one tab separated line per component, for grep and
// awk:
//
//	ingredient	flour	200	g	scaled
type LineEncoder struct {
	w      io.Writer
	recipe *recipe.ScaledRecipe
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(r *recipe.ScaledRecipe) error {
	e.recipe = r
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.recipe
	data := r.ScaledData()

	for _, m := range r.Metadata.Entries {
		fmt.Fprintf(&sb, "metadata\t%s\t%s\n", m.Key, m.Value)
	}
	for i, igr := range r.Ingredients {
		if igr.IsReference() {
			continue
		}
		var o *recipe.ScaleOutcome
		if data != nil {
			o = &data.Ingredients[i]
		}
		e.component(&sb, "ingredient", igr.DisplayName(), igr.Quantity, o)
	}
	for i, cw := range r.Cookware {
		var o *recipe.ScaleOutcome
		if data != nil {
			o = &data.Cookware[i]
		}
		e.component(&sb, "cookware", cw.DisplayName(), cw.Quantity, o)
	}
	for i, tm := range r.Timers {
		var o *recipe.ScaleOutcome
		if data != nil {
			o = &data.Timers[i]
		}
		e.component(&sb, "timer", tm.Name, tm.Quantity, o)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) component(sb *strings.Builder, kind, name string, q *quantity.Quantity, o *recipe.ScaleOutcome) {
	var value, unit string
	if q != nil {
		value = q.Value.String()
		unit = q.Unit
	}
	outcome := "unscaled"
	if o != nil {
		outcome = o.Kind.String()
	}
	fmt.Fprintf(sb, "%s\t%s\t%s\t%s\t%s\n", kind, name, value, unit, outcome)
}
