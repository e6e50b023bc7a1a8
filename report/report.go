// Package report collects diagnostics produced while reading a recipe.
//
// Problems in a recipe are data, not control flow: passes record errors
// and warnings in a Context and keep going, then Finish with whatever
// they built.
package report

import (
	"errors"

	"github.com/dhamidi/cook/span"
)

// Label points at a part of the source, with an optional message.
type Label struct {
	Span    span.Span
	Message string
}

func NewLabel(s span.Span, message string) Label {
	return Label{Span: s, Message: message}
}

// Diagnostic is an error or warning that knows where it happened.
type Diagnostic interface {
	error
	Labels() []Label
	// Help is a hint to fix the problem, or "".
	Help() string
	// Code names the pass that produced the diagnostic.
	Code() string
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Context accumulates diagnostics for a single pass.
type Context struct {
	errors   []Diagnostic
	warnings []Diagnostic
}

func (c *Context) Error(d Diagnostic) {
	c.errors = append(c.errors, d)
}

func (c *Context) Warn(d Diagnostic) {
	c.warnings = append(c.warnings, d)
}

func (c *Context) Errors() []Diagnostic {
	return c.errors
}

func (c *Context) Warnings() []Diagnostic {
	return c.warnings
}

func (c *Context) HasErrors() bool {
	return len(c.errors) > 0
}

func (c *Context) IsEmpty() bool {
	return len(c.errors) == 0 && len(c.warnings) == 0
}

// Merge appends everything recorded in r.
func Merge[T any](c *Context, r Result[T]) {
	c.errors = append(c.errors, r.Errors...)
	c.warnings = append(c.warnings, r.Warnings...)
}

// Finish wraps output with the diagnostics collected so far.
func Finish[T any](c *Context, output T) Result[T] {
	return Result[T]{
		Output:   output,
		Errors:   c.errors,
		Warnings: c.warnings,
	}
}

// Result is the output of a pass together with its diagnostics. The
// output is present even when there are errors.
type Result[T any] struct {
	Output   T
	Errors   []Diagnostic
	Warnings []Diagnostic
}

func (r Result[T]) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r Result[T]) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// IsValid reports whether the output can be trusted: no errors were found.
func (r Result[T]) IsValid() bool {
	return !r.HasErrors()
}

// Err joins all errors into one, or returns nil.
func (r Result[T]) Err() error {
	if !r.HasErrors() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, d := range r.Errors {
		errs[i] = d
	}
	return errors.Join(errs...)
}

// Diagnostics returns every diagnostic with its severity, errors first.
func (r Result[T]) Diagnostics() []Entry {
	entries := make([]Entry, 0, len(r.Errors)+len(r.Warnings))
	for _, d := range r.Errors {
		entries = append(entries, Entry{Severity: SeverityError, Diagnostic: d})
	}
	for _, d := range r.Warnings {
		entries = append(entries, Entry{Severity: SeverityWarning, Diagnostic: d})
	}
	return entries
}

type Entry struct {
	Severity   Severity
	Diagnostic Diagnostic
}
