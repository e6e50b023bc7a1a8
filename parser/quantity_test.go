package parser

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/lexer"
	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/span"
)

type quantityResult struct {
	q        ast.Quantity
	sep      *span.Span
	errors   []ParserError
	warnings []ParserWarning
}

func parseTestQuantity(t *testing.T, input string, ext Extensions) quantityResult {
	t.Helper()
	bp := newBlockParser(0, nil, input, ext)
	pq := parseQuantity(bp, lexer.Tokenize(input))

	r := quantityResult{q: pq.Quantity.Value, sep: pq.UnitSeparator}
	for _, ev := range bp.finish() {
		switch ev := ev.(type) {
		case ErrorEvent:
			r.errors = append(r.errors, ev.Err)
		case WarningEvent:
			r.warnings = append(r.warnings, ev.Warn)
		default:
			t.Fatalf("unexpected event %#v", ev)
		}
	}
	return r
}

func val(v quantity.Value, start, end int) span.Located[quantity.Value] {
	return span.At(v, span.New(start, end))
}

func spanPtr(start, end int) *span.Span {
	s := span.New(start, end)
	return &s
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ext      Extensions
		value    ast.QuantityValue
		unit     string
		unitAt   int
		sep      *span.Span
		errors   int
		warnings int
	}{
		{
			name:   "basic",
			input:  "100%ml",
			ext:    All,
			value:  ast.Single{Value: val(quantity.Number(100), 0, 3)},
			unit:   "ml",
			unitAt: 4,
			sep:    spanPtr(3, 4),
		},
		{
			name:   "advanced units",
			input:  "100 ml",
			ext:    All,
			value:  ast.Single{Value: val(quantity.Number(100), 0, 3)},
			unit:   "ml",
			unitAt: 4,
		},
		{
			name:  "no advanced units",
			input: "100 ml",
			ext:   All &^ AdvancedUnits,
			value: ast.Single{Value: val(quantity.Text("100 ml"), 0, 6)},
		},
		{
			name:  "many values",
			input: "100|200|300%ml",
			ext:   All,
			value: ast.Many{
				val(quantity.Number(100), 0, 3),
				val(quantity.Number(200), 4, 7),
				val(quantity.Number(300), 8, 11),
			},
			unit:   "ml",
			unitAt: 12,
			sep:    spanPtr(11, 12),
		},
		{
			name:  "mixed many values",
			input: "100|2-3|str*%ml",
			ext:   All,
			value: ast.Many{
				val(quantity.Number(100), 0, 3),
				val(quantity.Range{Start: 2, End: 3}, 4, 7),
				val(quantity.Text("str"), 8, 11),
			},
			unit:   "ml",
			unitAt: 13,
			sep:    spanPtr(12, 13),
			errors: 1,
		},
		{
			name:  "empty last value",
			input: "100|",
			ext:   All,
			value: ast.Many{
				val(quantity.Number(100), 0, 3),
				val(quantity.Text(""), 4, 4),
			},
			errors: 1,
		},
		{
			name:  "range",
			input: "2-3",
			ext:   All,
			value: ast.Single{Value: val(quantity.Range{Start: 2, End: 3}, 0, 3)},
		},
		{
			name:  "range without extension",
			input: "2-3",
			ext:   None,
			value: ast.Single{Value: val(quantity.Text("2-3"), 0, 3)},
		},
		{
			name:  "float range",
			input: "1.5 - 2",
			ext:   RangeValues,
			value: ast.Single{Value: val(quantity.Range{Start: 1.5, End: 2}, 0, 7)},
		},
		{
			name:  "auto scale",
			input: "100*",
			ext:   None,
			value: ast.Single{Value: val(quantity.Number(100), 0, 3), AutoScale: spanPtr(3, 4)},
		},
		{
			name:   "auto scale with unit",
			input:  "100*%g",
			ext:    All,
			value:  ast.Single{Value: val(quantity.Number(100), 0, 3), AutoScale: spanPtr(3, 4)},
			unit:   "g",
			unitAt: 5,
			sep:    spanPtr(4, 5),
		},
		{
			name:  "fraction",
			input: "1/2",
			ext:   None,
			value: ast.Single{Value: val(quantity.Number(0.5), 0, 3)},
		},
		{
			name:  "mixed number",
			input: "1 1/2",
			ext:   None,
			value: ast.Single{Value: val(quantity.Number(1.5), 0, 5)},
		},
		{
			name:  "float",
			input: "0.25",
			ext:   None,
			value: ast.Single{Value: val(quantity.Number(0.25), 0, 4)},
		},
		{
			name:  "text value",
			input: "a pinch",
			ext:   None,
			value: ast.Single{Value: val(quantity.Text("a pinch"), 0, 7)},
		},
		{
			name:  "garbage after auto scale",
			input: "2*x",
			ext:   None,
			value: ast.Single{Value: val(quantity.Text("2*x"), 0, 3)},
		},
		{
			name:   "empty unit",
			input:  "100%",
			ext:    None,
			value:  ast.Single{Value: val(quantity.Number(100), 0, 3)},
			sep:    spanPtr(3, 4),
			errors: 1,
		},
		{
			name:   "unit with escape",
			input:  `1%\%`,
			ext:    None,
			value:  ast.Single{Value: val(quantity.Number(1), 0, 1)},
			unit:   "%",
			unitAt: 2,
			sep:    spanPtr(1, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseTestQuantity(t, tt.input, tt.ext)
			if !reflect.DeepEqual(r.q.Value, tt.value) {
				t.Errorf("got value %#v, want %#v", r.q.Value, tt.value)
			}
			switch {
			case tt.unit == "" && r.q.Unit != nil:
				t.Errorf("got unit %q, want none", r.q.Unit.String())
			case tt.unit != "" && r.q.Unit == nil:
				t.Errorf("got no unit, want %q", tt.unit)
			case tt.unit != "":
				if r.q.Unit.String() != tt.unit || r.q.Unit.Offset() != tt.unitAt {
					t.Errorf("got unit %q at %d, want %q at %d", r.q.Unit.String(), r.q.Unit.Offset(), tt.unit, tt.unitAt)
				}
			}
			if !reflect.DeepEqual(r.sep, tt.sep) {
				t.Errorf("got separator %v, want %v", r.sep, tt.sep)
			}
			if len(r.errors) != tt.errors {
				t.Errorf("got %d errors (%v), want %d", len(r.errors), r.errors, tt.errors)
			}
			if len(r.warnings) != tt.warnings {
				t.Errorf("got %d warnings (%v), want %d", len(r.warnings), r.warnings, tt.warnings)
			}
		})
	}
}

func TestQuantityDivisionByZero(t *testing.T) {
	tests := []struct {
		input  string
		badBit span.Span
	}{
		{"1/0", span.New(0, 3)},
		{"0/0", span.New(0, 3)},
		{"7 / 0", span.New(0, 5)},
		{"2 1/0", span.New(2, 5)},
		{"12 3/0", span.New(3, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := parseTestQuantity(t, tt.input, None)
			if len(r.errors) != 1 {
				t.Fatalf("got %d errors, want 1", len(r.errors))
			}
			var dz *DivisionByZero
			if !errors.As(r.errors[0], &dz) {
				t.Fatalf("got %T, want *DivisionByZero", r.errors[0])
			}
			if dz.BadBit != tt.badBit {
				t.Errorf("got span %v, want %v", dz.BadBit, tt.badBit)
			}
			single, ok := r.q.Value.(ast.Single)
			if !ok {
				t.Fatalf("got %T, want ast.Single", r.q.Value)
			}
			if single.Value.Value != quantity.Recover() {
				t.Errorf("got %v, want the recover value", single.Value.Value)
			}
		})
	}
}

func TestQuantityScalingConflict(t *testing.T) {
	r := parseTestQuantity(t, "100|200*", None)
	if len(r.errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(r.errors))
	}
	conflict, ok := r.errors[0].(*QuantityScalingConflict)
	if !ok {
		t.Fatalf("got %T, want *QuantityScalingConflict", r.errors[0])
	}
	if conflict.BadBit != span.New(3, 8) {
		t.Errorf("got span %v, want 3..8", conflict.BadBit)
	}
	if _, ok := r.q.Value.(ast.Many); !ok {
		t.Errorf("got %T, want ast.Many", r.q.Value)
	}

	r = parseTestQuantity(t, "100*", None)
	if len(r.errors) != 0 {
		t.Fatalf("got errors %v, want none", r.errors)
	}
	if single := r.q.Value.(ast.Single); single.AutoScale == nil {
		t.Error("auto scale span not set")
	}
}

func TestQuantityValueAutoScaleWithManyValues(t *testing.T) {
	bp := newBlockParser(0, nil, "1|2*", None)
	values := []span.Located[quantity.Value]{val(quantity.Number(1), 0, 1), val(quantity.Number(2), 2, 3)}
	got := quantityValue(bp, values, spanPtr(3, 4))

	if _, ok := got.(ast.Many); !ok {
		t.Errorf("got %T, want ast.Many", got)
	}
	events := bp.finish()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	invalid, ok := events[0].(ErrorEvent).Err.(*ComponentPartInvalid)
	if !ok {
		t.Fatalf("got %#v, want *ComponentPartInvalid", events[0])
	}
	if invalid.Reason != "auto scale is not compatible with multiple values" {
		t.Errorf("got reason %q", invalid.Reason)
	}
	if l := invalid.Labels(); len(l) != 1 || l[0].Span != span.New(3, 4) {
		t.Errorf("got labels %v", l)
	}
}

func TestQuantityIntOverflow(t *testing.T) {
	r := parseTestQuantity(t, "99999999999%g", None)
	if len(r.errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(r.errors))
	}
	var perr *ParseIntError
	if !errors.As(r.errors[0], &perr) {
		t.Fatalf("got %T, want *ParseIntError", r.errors[0])
	}
	if !errors.Is(perr, strconv.ErrRange) {
		t.Errorf("got %v, want it to wrap strconv.ErrRange", perr.Err)
	}
	if perr.BadBit != span.New(0, 11) {
		t.Errorf("got span %v, want 0..11", perr.BadBit)
	}
	if r.q.Unit == nil || r.q.Unit.String() != "g" {
		t.Error("unit lost after a bad number")
	}
}

// A rejected advanced attempt keeps the diagnostics it produced, so the
// same problem is reported once per grammar that saw it.
func TestQuantityRejectedAttemptKeepsDiagnostics(t *testing.T) {
	r := parseTestQuantity(t, "1/0 ", AdvancedUnits)
	if len(r.errors) != 2 {
		t.Fatalf("got %d errors, want 2", len(r.errors))
	}
	for _, err := range r.errors {
		if _, ok := err.(*DivisionByZero); !ok {
			t.Errorf("got %T, want *DivisionByZero", err)
		}
	}

	r = parseTestQuantity(t, "1/0 ", None)
	if len(r.errors) != 1 {
		t.Fatalf("got %d errors without advanced units, want 1", len(r.errors))
	}
}

func TestQuantityEmptyTokensPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	parseQuantity(newBlockParser(0, nil, "", None), nil)
}
