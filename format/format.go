// Package format writes recipes, syntax trees and parser events for
// people and programs.
package format

import (
	"encoding"

	"github.com/dhamidi/cook/recipe"
)

// Encoder writes a recipe. MarshalText returns what Encode would write
// for the last encoded recipe.
type Encoder interface {
	encoding.TextMarshaler
	Encode(r *recipe.ScaledRecipe) error
}
