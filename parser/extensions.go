package parser

import (
	"fmt"
	"strings"
)

// Extensions switch on parts of the markup that go beyond the base syntax.
type Extensions uint32

const (
	// MultilineSteps lets a step continue over non-blank lines.
	MultilineSteps Extensions = 1 << iota
	// AdvancedUnits accepts "100 ml" without a % separator.
	AdvancedUnits
	// RangeValues accepts ranges like 2-3.
	RangeValues
	// ComponentModifiers enables & ? + - after the component marker.
	ComponentModifiers
	// ComponentNote enables (notes) after ingredients and cookware.
	ComponentNote
	// ComponentAlias enables name|alias.
	ComponentAlias
	// TextSteps enables "> text" steps without components.
	TextSteps
)

const (
	None Extensions = 0
	All             = MultilineSteps | AdvancedUnits | RangeValues | ComponentModifiers |
		ComponentNote | ComponentAlias | TextSteps
)

var extensionNames = []struct {
	ext  Extensions
	name string
}{
	{MultilineSteps, "multiline_steps"},
	{AdvancedUnits, "advanced_units"},
	{RangeValues, "range_values"},
	{ComponentModifiers, "component_modifiers"},
	{ComponentNote, "component_note"},
	{ComponentAlias, "component_alias"},
	{TextSteps, "text_steps"},
}

func (e Extensions) Has(other Extensions) bool {
	return e&other == other
}

func (e Extensions) String() string {
	switch e {
	case None:
		return "none"
	case All:
		return "all"
	}
	var names []string
	for _, n := range extensionNames {
		if e.Has(n.ext) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseExtensions reads a comma separated list of extension names, or
// one of "all" and "none".
func ParseExtensions(s string) (Extensions, error) {
	var ext Extensions
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		switch name {
		case "":
			continue
		case "all":
			ext |= All
			continue
		case "none":
			continue
		}
		found := false
		for _, n := range extensionNames {
			if n.name == name {
				ext |= n.ext
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("unknown extension %q", part)
		}
	}
	return ext, nil
}
