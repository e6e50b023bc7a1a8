package recipe

import (
	"fmt"

	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/report"
	"github.com/dhamidi/cook/span"
)

const diagnosticCode = "analysis"

// InvalidServings is reported when the servings entry is not a list of
// positive whole numbers.
type InvalidServings struct {
	Value  span.Span
	Reason string
}

// ServingsMismatch is reported when a quantity lists a different number
// of values than servings were declared.
type ServingsMismatch struct {
	Quantity span.Span
	Declared int
	Got      int
}

// ReferenceNotFound is reported for @&name when no earlier ingredient
// is called name.
type ReferenceNotFound struct {
	Name      string
	Reference span.Span
}

// DuplicateMetadataKey is a warning: the later value replaces the
// earlier one.
type DuplicateMetadataKey struct {
	Key   string
	Entry span.Span
}

func (e *InvalidServings) Error() string {
	return "Invalid servings: " + e.Reason
}

func (e *InvalidServings) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.Value, "")}
}

func (e *InvalidServings) Help() string {
	return "Use positive whole numbers separated by |, like 2|4|6"
}

func (e *InvalidServings) Code() string { return diagnosticCode }

func (e *ServingsMismatch) Error() string {
	if e.Declared == 0 {
		return fmt.Sprintf("Quantity has %d values but no servings are declared", e.Got)
	}
	return fmt.Sprintf("Quantity has %d values but %d servings are declared", e.Got, e.Declared)
}

func (e *ServingsMismatch) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.Quantity, "")}
}

func (e *ServingsMismatch) Help() string {
	return "Give one value per serving count in the servings entry"
}

func (e *ServingsMismatch) Code() string { return diagnosticCode }

func (e *ReferenceNotFound) Error() string {
	return fmt.Sprintf("Reference not found: %s", e.Name)
}

func (e *ReferenceNotFound) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.Reference, "")}
}

func (e *ReferenceNotFound) Help() string {
	return "A reference needs an ingredient with the same name before it"
}

func (e *ReferenceNotFound) Code() string { return diagnosticCode }

func (e *DuplicateMetadataKey) Error() string {
	return fmt.Sprintf("Duplicate metadata key: %s", e.Key)
}

func (e *DuplicateMetadataKey) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.Entry, "this value replaces the previous one")}
}

func (e *DuplicateMetadataKey) Help() string { return "" }
func (e *DuplicateMetadataKey) Code() string { return diagnosticCode }

// NotScalableError is returned when a value cannot be scaled for the
// requested target.
type NotScalableError struct {
	Value  quantity.ByServings
	Reason string
}

func (e *NotScalableError) Error() string {
	return "Value not scalable: " + e.Reason
}

// NotDefinedError is returned when a per-serving list has no value for
// the target servings.
type NotDefinedError struct {
	Target ScaleTarget
	Value  quantity.ByServings
}

func (e *NotDefinedError) Error() string {
	return fmt.Sprintf("Value scaling not defined for target servings %d", e.Target.Target())
}
