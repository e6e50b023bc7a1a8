package main

import (
	"strings"
	"testing"

	"github.com/dhamidi/cook/parser"
)

func TestWriteOutline(t *testing.T) {
	result := parser.Parse(">> servings: 2\n= Dough\nMix @?flour{200*%g} in a #bowl for ~{5%min}.\n", parser.All)
	var b strings.Builder
	writeOutline(&b, result.Output)

	want := `metadata "servings" = "2"
section "Dough"
step
  text "Mix "
  ingredient ?"flour" {200*%g}
  text " in a "
  cookware "bowl"
  text " for "
  timer "" {5%min}
  text "."
`
	if got := b.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestRecipeName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"soups/tomato.cook", "tomato"},
		{"notes.txt", "notes.txt"},
		{"-", ""},
	}
	for _, tt := range tests {
		if got := recipeName(tt.path); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.path, got, tt.want)
		}
	}
}
