package recipe

import (
	"slices"

	"github.com/dhamidi/cook/quantity"
)

// ScaleTarget says how many servings a recipe is scaled for.
type ScaleTarget struct {
	base   uint32
	target uint32
	// index into the declared servings, -1 when target is not one of them
	index int
}

// NewScaleTarget scales from base to target servings. When target is one
// of the declared servings, per-serving values can be picked directly.
func NewScaleTarget(base, target uint32, declared []uint32) ScaleTarget {
	return ScaleTarget{
		base:   base,
		target: target,
		index:  slices.Index(declared, target),
	}
}

func (t ScaleTarget) Factor() float64 {
	return float64(t.target) / float64(t.base)
}

// Index is the position of the target in the declared servings.
func (t ScaleTarget) Index() (int, bool) {
	return t.index, t.index >= 0
}

func (t ScaleTarget) Base() uint32   { return t.base }
func (t ScaleTarget) Target() uint32 { return t.target }

type OutcomeKind int

const (
	// Scaled values were computed or picked for the target.
	Scaled OutcomeKind = iota
	// Fixed values do not depend on the servings.
	Fixed
	NoQuantity
	Failed
)

var outcomeNames = map[OutcomeKind]string{
	Scaled:     "scaled",
	Fixed:      "fixed",
	NoQuantity: "no quantity",
	Failed:     "error",
}

func (k OutcomeKind) String() string {
	return outcomeNames[k]
}

// ScaleOutcome records what happened to the quantity of one component.
type ScaleOutcome struct {
	Kind OutcomeKind
	// Err is set when Kind is Failed.
	Err error
}

// ScaleData is either SkippedScaling or *ScaledData.
type ScaleData interface {
	isScaleData()
}

// SkippedScaling marks a recipe whose quantities are as written.
type SkippedScaling struct{}

// ScaledData holds one outcome per component, in the order of the
// recipe's component lists.
type ScaledData struct {
	Target      ScaleTarget
	Ingredients []ScaleOutcome
	Cookware    []ScaleOutcome
	Timers      []ScaleOutcome
}

func (SkippedScaling) isScaleData() {}
func (*ScaledData) isScaleData()    {}

type ScaledRecipe struct {
	Recipe
	Data ScaleData
}

// ScaledData returns the outcomes, or nil if scaling was skipped.
func (r *ScaledRecipe) ScaledData() *ScaledData {
	data, _ := r.Data.(*ScaledData)
	return data
}

// SkipScaling keeps every quantity as written.
func (r *Recipe) SkipScaling() *ScaledRecipe {
	return &ScaledRecipe{Recipe: *r, Data: SkippedScaling{}}
}

// Scale fixes every quantity for target. Scaling does not stop at a
// failing component: its outcome records the error and its quantity is
// kept as written. r is not modified.
func (r *Recipe) Scale(target ScaleTarget) *ScaledRecipe {
	out := *r
	out.Ingredients = slices.Clone(r.Ingredients)
	out.Cookware = slices.Clone(r.Cookware)
	out.Timers = slices.Clone(r.Timers)

	data := &ScaledData{
		Target: target,
		Ingredients: scaleMany(target, out.Ingredients, func(i *Ingredient) **quantity.Quantity {
			return &i.Quantity
		}),
		Cookware: scaleMany(target, out.Cookware, func(c *Cookware) **quantity.Quantity {
			return &c.Quantity
		}),
		Timers: scaleMany(target, out.Timers, func(t *Timer) **quantity.Quantity {
			return &t.Quantity
		}),
	}
	return &ScaledRecipe{Recipe: out, Data: data}
}

// scaleMany replaces each quantity pointer with a scaled copy, leaving
// the pointed-to quantities untouched.
func scaleMany[T any](target ScaleTarget, components []T, quantityOf func(*T) **quantity.Quantity) []ScaleOutcome {
	outcomes := make([]ScaleOutcome, 0, len(components))
	for i := range components {
		q := quantityOf(&components[i])
		if *q == nil {
			outcomes = append(outcomes, ScaleOutcome{Kind: NoQuantity})
			continue
		}
		scaled, kind, err := scaleValue((*q).Value, target)
		if err != nil {
			log.Debugf("scale %s: %s", (*q).String(), err)
			outcomes = append(outcomes, ScaleOutcome{Kind: Failed, Err: err})
			continue
		}
		*q = &quantity.Quantity{Value: scaled, Unit: (*q).Unit}
		outcomes = append(outcomes, ScaleOutcome{Kind: kind})
	}
	return outcomes
}

func scaleValue(v quantity.QuantityValue, target ScaleTarget) (quantity.QuantityValue, OutcomeKind, error) {
	switch v := v.(type) {
	case quantity.Fixed:
		return v, Fixed, nil
	case quantity.Linear:
		scaled, err := quantity.Scale(v.Value, target.Factor())
		if err != nil {
			return nil, Failed, err
		}
		return quantity.Fixed{Value: scaled}, Scaled, nil
	case quantity.ByServings:
		index, ok := target.Index()
		if !ok {
			return nil, Failed, &NotScalableError{
				Value:  v,
				Reason: "tried to scale a value linearly when it has per serving values defined",
			}
		}
		if index >= len(v) {
			return nil, Failed, &NotDefinedError{Target: target, Value: v}
		}
		return quantity.Fixed{Value: v[index]}, Scaled, nil
	}
	panic("unknown quantity value, this is a bug")
}
