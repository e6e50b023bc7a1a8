package parser

import (
	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/span"
)

// Event is one thing the PullParser found.
//
// A StartStep is always followed by its EndStep, with only step items,
// errors and warnings in between. Steps never nest.
type Event interface {
	isEvent()
}

type Metadata struct {
	Key   ast.Text
	Value ast.Text
}

type Section struct {
	Name *ast.Text
}

type StartStep struct {
	IsText bool
}

type EndStep struct {
	IsText bool
}

type Text struct {
	Value ast.Text
}

type Ingredient span.Located[ast.Ingredient]

type Cookware span.Located[ast.Cookware]

type Timer span.Located[ast.Timer]

type ErrorEvent struct {
	Err ParserError
}

type WarningEvent struct {
	Warn ParserWarning
}

func (Metadata) isEvent()     {}
func (Section) isEvent()      {}
func (StartStep) isEvent()    {}
func (EndStep) isEvent()      {}
func (Text) isEvent()         {}
func (Ingredient) isEvent()   {}
func (Cookware) isEvent()     {}
func (Timer) isEvent()        {}
func (ErrorEvent) isEvent()   {}
func (WarningEvent) isEvent() {}
