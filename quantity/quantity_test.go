package quantity

import (
	"errors"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Number(100), "100"},
		{Number(0.5), "0.5"},
		{Number(1.0 / 3), "0.333"},
		{Number(-0.0001), "0"},
		{Range{Start: 2, End: 3}, "2-3"},
		{Text("a pinch"), "a pinch"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuantityString(t *testing.T) {
	tests := []struct {
		q    Quantity
		want string
	}{
		{Quantity{Value: Fixed{Value: Number(100)}, Unit: "ml"}, "100 ml"},
		{Quantity{Value: Linear{Value: Number(2)}}, "2*"},
		{Quantity{Value: ByServings{Number(1), Number(2), Number(3)}, Unit: "cups"}, "1|2|3 cups"},
	}
	for _, tt := range tests {
		if got := tt.q.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestIsScalable(t *testing.T) {
	if IsScalable(Fixed{Value: Number(1)}) {
		t.Error("fixed values are not scalable")
	}
	if !IsScalable(Linear{Value: Number(1)}) {
		t.Error("linear values are scalable")
	}
	if !IsScalable(ByServings{Number(1)}) {
		t.Error("by-servings values are scalable")
	}
}

func TestRecover(t *testing.T) {
	if v, ok := Recover().(Number); !ok || v != 1 {
		t.Errorf("Recover() = %v, want Number(1)", Recover())
	}
}

func TestScale(t *testing.T) {
	got, err := Scale(Number(100), 2)
	if err != nil || got != Number(200) {
		t.Errorf("got %v %v, want 200", got, err)
	}
	got, err = Scale(Range{Start: 1, End: 2}, 1.5)
	if err != nil || got != (Range{Start: 1.5, End: 3}) {
		t.Errorf("got %v %v, want 1.5-3", got, err)
	}
	_, err = Scale(Text("a pinch"), 2)
	var tve *TextValueError
	if !errors.As(err, &tve) || tve.Value != Text("a pinch") {
		t.Errorf("got %v, want a TextValueError", err)
	}
}
