// Package ast holds the syntax tree of a recipe: blocks of metadata,
// section headers and steps, with steps made of text and components.
//
// The tree is what the parser saw. Nothing is resolved yet: references,
// servings and scaling are handled by the recipe package.
package ast

import (
	"strings"

	"github.com/dhamidi/cook/quantity"
	"github.com/dhamidi/cook/span"
)

type Ast struct {
	Blocks []Block
}

// Block is one of *Metadata, *Section or *Step.
type Block interface {
	isBlock()
}

type Metadata struct {
	Key   Text
	Value Text
}

type Section struct {
	Name *Text
}

type Step struct {
	// IsText marks steps that are only text, without components.
	IsText bool
	Items  []Item
}

func (*Metadata) isBlock() {}
func (*Section) isBlock()  {}
func (*Step) isBlock()     {}

// Item is one of *TextItem, *IngredientItem, *CookwareItem or *TimerItem.
type Item interface {
	isItem()
}

type TextItem struct {
	Text Text
}

type IngredientItem struct {
	Ingredient span.Located[Ingredient]
}

type CookwareItem struct {
	Cookware span.Located[Cookware]
}

type TimerItem struct {
	Timer span.Located[Timer]
}

func (*TextItem) isItem()       {}
func (*IngredientItem) isItem() {}
func (*CookwareItem) isItem()   {}
func (*TimerItem) isItem()      {}

type Ingredient struct {
	Modifiers span.Located[Modifiers]
	Name      Text
	Alias     *Text
	Quantity  *span.Located[Quantity]
	Note      *Text
}

type Cookware struct {
	Modifiers span.Located[Modifiers]
	Name      Text
	Alias     *Text
	Quantity  *span.Located[QuantityValue]
	Note      *Text
}

type Timer struct {
	Name     *Text
	Quantity *span.Located[Quantity]
}

// Quantity is a quantity as written between braces.
type Quantity struct {
	Value QuantityValue
	Unit  *Text
}

// QuantityValue is either Single or Many.
type QuantityValue interface {
	isQuantityValue()
	// Values returns every value, in order.
	Values() []span.Located[quantity.Value]
}

// Single is one value, optionally marked to scale with the servings.
type Single struct {
	Value     span.Located[quantity.Value]
	AutoScale *span.Span
}

// Many is one value per declared serving count: 100|200|300.
type Many []span.Located[quantity.Value]

func (Single) isQuantityValue() {}
func (Many) isQuantityValue()   {}

func (s Single) Values() []span.Located[quantity.Value] {
	return []span.Located[quantity.Value]{s.Value}
}

func (m Many) Values() []span.Located[quantity.Value] {
	return m
}

// Modifiers alter how a component relates to the rest of the recipe.
type Modifiers uint8

const (
	// ModRef refers to an ingredient defined earlier: @&flour{}
	ModRef Modifiers = 1 << iota
	// ModHidden keeps the component out of listings: @-salt{}
	ModHidden
	// ModOpt marks the component optional: @?parsley{}
	ModOpt
	// ModNew forces a new component even if the name exists: @+water{}
	ModNew
)

var modifierChars = []struct {
	mod Modifiers
	ch  byte
}{
	{ModRef, '&'},
	{ModHidden, '-'},
	{ModOpt, '?'},
	{ModNew, '+'},
}

// ModifierFromChar returns the modifier written as ch.
func ModifierFromChar(ch byte) (Modifiers, bool) {
	for _, m := range modifierChars {
		if m.ch == ch {
			return m.mod, true
		}
	}
	return 0, false
}

func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other
}

func (m Modifiers) IsEmpty() bool {
	return m == 0
}

func (m Modifiers) String() string {
	var b strings.Builder
	for _, mc := range modifierChars {
		if m.Has(mc.mod) {
			b.WriteByte(mc.ch)
		}
	}
	return b.String()
}
