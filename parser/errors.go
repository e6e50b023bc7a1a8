package parser

import (
	"fmt"

	"github.com/dhamidi/cook/report"
	"github.com/dhamidi/cook/span"
)

const diagnosticCode = "parser"

// ParserError is a problem in the recipe that the parser recovered from.
type ParserError interface {
	report.Diagnostic
	isParserError()
}

// ParserWarning is something suspicious that does not make the recipe
// wrong.
type ParserWarning interface {
	report.Diagnostic
	isParserWarning()
}

type ComponentPartMissing struct {
	Container   string
	What        string
	ExpectedPos span.Span
}

type ComponentPartNotAllowed struct {
	Container string
	What      string
	ToRemove  span.Span
	Hint      string
}

type ComponentPartInvalid struct {
	Container  string
	What       string
	Reason     string
	Highlights []report.Label
	Hint       string
}

type DuplicateModifiers struct {
	ModifiersSpan span.Span
	Dup           string
}

type ParseIntError struct {
	BadBit span.Span
	Err    error
}

type ParseFloatError struct {
	BadBit span.Span
	Err    error
}

type DivisionByZero struct {
	BadBit span.Span
}

type QuantityScalingConflict struct {
	BadBit span.Span
}

func (*ComponentPartMissing) isParserError()    {}
func (*ComponentPartNotAllowed) isParserError() {}
func (*ComponentPartInvalid) isParserError()    {}
func (*DuplicateModifiers) isParserError()      {}
func (*ParseIntError) isParserError()           {}
func (*ParseFloatError) isParserError()         {}
func (*DivisionByZero) isParserError()          {}
func (*QuantityScalingConflict) isParserError() {}

func (e *ComponentPartMissing) Error() string {
	return fmt.Sprintf("A %s is missing: %s", e.Container, e.What)
}

func (e *ComponentPartMissing) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.ExpectedPos, "expected "+e.What)}
}

func (e *ComponentPartMissing) Help() string { return "" }
func (e *ComponentPartMissing) Code() string { return diagnosticCode }

func (e *ComponentPartNotAllowed) Error() string {
	return fmt.Sprintf("A %s cannot have: %s", e.Container, e.What)
}

func (e *ComponentPartNotAllowed) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.ToRemove, "remove this")}
}

func (e *ComponentPartNotAllowed) Help() string { return e.Hint }
func (e *ComponentPartNotAllowed) Code() string { return diagnosticCode }

func (e *ComponentPartInvalid) Error() string {
	return fmt.Sprintf("Invalid %s %s: %s", e.Container, e.What, e.Reason)
}

func (e *ComponentPartInvalid) Labels() []report.Label { return e.Highlights }
func (e *ComponentPartInvalid) Help() string           { return e.Hint }
func (e *ComponentPartInvalid) Code() string           { return diagnosticCode }

func (e *DuplicateModifiers) Error() string {
	return "Duplicate ingredient modifier: " + e.Dup
}

func (e *DuplicateModifiers) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.ModifiersSpan, "")}
}

func (e *DuplicateModifiers) Help() string { return "Remove duplicate modifiers" }
func (e *DuplicateModifiers) Code() string { return diagnosticCode }

func (e *ParseIntError) Error() string {
	return "Error parsing integer number"
}

func (e *ParseIntError) Unwrap() error { return e.Err }

func (e *ParseIntError) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.BadBit, "")}
}

func (e *ParseIntError) Help() string { return "" }
func (e *ParseIntError) Code() string { return diagnosticCode }

func (e *ParseFloatError) Error() string {
	return "Error parsing decimal number"
}

func (e *ParseFloatError) Unwrap() error { return e.Err }

func (e *ParseFloatError) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.BadBit, "")}
}

func (e *ParseFloatError) Help() string { return "" }
func (e *ParseFloatError) Code() string { return diagnosticCode }

func (e *DivisionByZero) Error() string {
	return "Division by zero"
}

func (e *DivisionByZero) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.BadBit, "")}
}

func (e *DivisionByZero) Help() string {
	return "Change this please, we don't want an infinite amount of anything"
}

func (e *DivisionByZero) Code() string { return diagnosticCode }

func (e *QuantityScalingConflict) Error() string {
	return "Quantity scaling conflict"
}

func (e *QuantityScalingConflict) Labels() []report.Label {
	return []report.Label{report.NewLabel(e.BadBit, "")}
}

func (e *QuantityScalingConflict) Help() string {
	return "A quantity cannot have the auto scaling marker (*) and have fixed values at the same time"
}

func (e *QuantityScalingConflict) Code() string { return diagnosticCode }

type EmptyMetadataValue struct {
	Key span.Located[string]
}

type ComponentPartIgnored struct {
	Container string
	What      string
	Ignored   span.Span
	Hint      string
}

func (*EmptyMetadataValue) isParserWarning()   {}
func (*ComponentPartIgnored) isParserWarning() {}

func (w *EmptyMetadataValue) Error() string {
	return "Empty metadata value for key: " + w.Key.Value
}

func (w *EmptyMetadataValue) Labels() []report.Label {
	return []report.Label{report.NewLabel(w.Key.Span, "")}
}

func (w *EmptyMetadataValue) Help() string { return "" }
func (w *EmptyMetadataValue) Code() string { return diagnosticCode }

func (w *ComponentPartIgnored) Error() string {
	return fmt.Sprintf("A %s cannot have %s, it will be ignored", w.Container, w.What)
}

func (w *ComponentPartIgnored) Labels() []report.Label {
	return []report.Label{report.NewLabel(w.Ignored, "this is ignored")}
}

func (w *ComponentPartIgnored) Help() string { return w.Hint }
func (w *ComponentPartIgnored) Code() string { return diagnosticCode }
