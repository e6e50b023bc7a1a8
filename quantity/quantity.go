package quantity

import "strings"

// QuantityValue is one of Fixed, Linear or ByServings.
//
// Fixed values never change with the servings. Linear values are
// multiplied by the scaling factor. ByServings values hold one value per
// declared serving count and are picked, not computed.
type QuantityValue interface {
	isQuantityValue()
	String() string
}

type Fixed struct {
	Value Value
}

type Linear struct {
	Value Value
}

type ByServings []Value

func (Fixed) isQuantityValue()      {}
func (Linear) isQuantityValue()     {}
func (ByServings) isQuantityValue() {}

func (f Fixed) String() string {
	return f.Value.String()
}

func (l Linear) String() string {
	return l.Value.String() + "*"
}

func (b ByServings) String() string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = v.String()
	}
	return strings.Join(parts, "|")
}

// IsScalable reports whether the value still depends on the servings.
func IsScalable(v QuantityValue) bool {
	switch v.(type) {
	case Linear, ByServings:
		return true
	}
	return false
}

type Quantity struct {
	Value QuantityValue
	// Unit is empty when the quantity has no unit.
	Unit string
}

func (q Quantity) String() string {
	if q.Unit == "" {
		return q.Value.String()
	}
	return q.Value.String() + " " + q.Unit
}
