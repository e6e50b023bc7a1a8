// Package grammar holds an EBNF description of the recipe markup.
//
// The hand written parser in package parser is authoritative. The
// grammar documents the markup and is checked against the parser in
// tests by matching the same inputs with a Matcher.
package grammar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"reflect"

	"golang.org/x/exp/ebnf"
)

// Start is the production that matches a whole recipe file.
const Start = "recipe"

const filename = "cooklang.ebnf"

//go:embed cooklang.ebnf
var source []byte

// Source returns the text of the grammar.
func Source() []byte {
	return source
}

// Load parses the grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production used is defined and that every
// production is reachable from Start.
func Verify() error {
	g, err := Load()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Errors splits an error from Load or Verify into one error per problem.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	inner := err
	if u := errors.Unwrap(err); u != nil {
		inner = u
	}
	v := reflect.ValueOf(inner)
	if v.Kind() != reflect.Slice {
		return []error{err}
	}
	errs := make([]error, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if e, ok := v.Index(i).Interface().(error); ok {
			errs = append(errs, e)
		}
	}
	return errs
}
