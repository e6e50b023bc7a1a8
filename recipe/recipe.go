// Package recipe turns a syntax tree into a recipe and scales it.
//
// Analyze resolves what the parser left open: metadata is collected,
// servings are read, steps are numbered and components are gathered in
// per-kind lists that steps refer to by index. Scale then fixes every
// quantity for a number of servings.
package recipe

import (
	"strings"

	"github.com/dhamidi/cook/ast"
	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/span"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cook.recipe")

type Recipe struct {
	// Name is set by whoever knows where the recipe came from, usually
	// the file name without extension.
	Name        string
	Metadata    Metadata
	Sections    []Section
	Ingredients []Ingredient
	Cookware    []Cookware
	Timers      []Timer
}

type Metadata struct {
	Entries []MetadataEntry
	// Servings are the serving counts declared in the servings entry.
	Servings []uint32
}

type MetadataEntry struct {
	Key   string
	Value string
}

// Get returns the value of key. Keys are compared ignoring case.
func (m Metadata) Get(key string) (string, bool) {
	for _, e := range m.Entries {
		if strings.EqualFold(e.Key, key) {
			return e.Value, true
		}
	}
	return "", false
}

func (m *Metadata) set(key, value string) (replaced bool) {
	for i := range m.Entries {
		if strings.EqualFold(m.Entries[i].Key, key) {
			m.Entries[i].Value = value
			return true
		}
	}
	m.Entries = append(m.Entries, MetadataEntry{Key: key, Value: value})
	return false
}

type Section struct {
	// Name is empty for steps before the first section header.
	Name  string
	Steps []Step
}

type Step struct {
	// Number counts the steps of a section from 1. Text steps have 0.
	Number int
	IsText bool
	Items  []Item
}

// Item is one of TextItem, IngredientRef, CookwareRef or TimerRef.
type Item interface {
	isItem()
}

type TextItem struct {
	Value string
}

// IngredientRef points into Recipe.Ingredients.
type IngredientRef struct {
	Index int
}

// CookwareRef points into Recipe.Cookware.
type CookwareRef struct {
	Index int
}

// TimerRef points into Recipe.Timers.
type TimerRef struct {
	Index int
}

func (TextItem) isItem()      {}
func (IngredientRef) isItem() {}
func (CookwareRef) isItem()   {}
func (TimerRef) isItem()      {}

type Ingredient struct {
	Name      string
	Alias     string
	Quantity  *quantity.Quantity
	Note      string
	Modifiers ast.Modifiers
	// ReferenceTo is the index of the ingredient this one refers to,
	// or -1.
	ReferenceTo int
	Span        span.Span
}

// DisplayName is the alias if there is one, else the name.
func (i Ingredient) DisplayName() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.Name
}

func (i Ingredient) IsReference() bool {
	return i.ReferenceTo >= 0
}

type Cookware struct {
	Name      string
	Alias     string
	Quantity  *quantity.Quantity
	Note      string
	Modifiers ast.Modifiers
	Span      span.Span
}

func (c Cookware) DisplayName() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Name
}

type Timer struct {
	// Name is empty for anonymous timers.
	Name     string
	Quantity *quantity.Quantity
	Span     span.Span
}

// TargetFor builds the scale target for servings using the first
// declared serving count as the base, or 1 when none is declared.
func (r *Recipe) TargetFor(servings uint32) ScaleTarget {
	base := uint32(1)
	if len(r.Metadata.Servings) > 0 {
		base = r.Metadata.Servings[0]
	}
	return NewScaleTarget(base, servings, r.Metadata.Servings)
}
