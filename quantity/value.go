// Package quantity models the values and quantities of recipe components.
package quantity

import (
	"fmt"
	"math"
	"strconv"
)

// Value is one of Number, Range or Text.
type Value interface {
	isValue()
	String() string
}

type Number float64

// Range is an inclusive range of numbers, like 2-3.
type Range struct {
	Start float64
	End   float64
}

// Text is a value that is not a number: "a pinch".
type Text string

func (Number) isValue() {}
func (Range) isValue()  {}
func (Text) isValue()   {}

func (n Number) String() string {
	return formatNumber(float64(n))
}

func (r Range) String() string {
	return formatNumber(r.Start) + "-" + formatNumber(r.End)
}

func (t Text) String() string {
	return string(t)
}

// Recover is the value used in place of one that could not be parsed,
// so the surrounding quantity keeps its shape.
func Recover() Value {
	return Number(1)
}

// formatNumber rounds to three decimals and drops trailing zeros.
func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	rounded := math.Round(f*1000) / 1000
	if rounded == 0 {
		rounded = 0 // no "-0"
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// TextValueError is returned when a text value is used where a number is needed.
type TextValueError struct {
	Value Value
}

func (e *TextValueError) Error() string {
	return fmt.Sprintf("can't scale a text value: %q", e.Value.String())
}

func (e *TextValueError) Help() string {
	return "Use a number or a range, or remove the auto scale marker"
}

// Scale multiplies v by factor. Text can't be scaled.
func Scale(v Value, factor float64) (Value, error) {
	switch v := v.(type) {
	case Number:
		return Number(float64(v) * factor), nil
	case Range:
		return Range{Start: v.Start * factor, End: v.End * factor}, nil
	}
	return nil, &TextValueError{Value: v}
}
