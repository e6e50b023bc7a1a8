package config

import (
	"github.com/dhamidi/cook/parser"
	"github.com/spf13/pflag"
)

// ExtensionsValue is a flag holding a set of parser extensions, written
// as a comma separated list of names or one of "all" and "none".
type ExtensionsValue struct {
	ext *parser.Extensions
}

var _ pflag.Value = (*ExtensionsValue)(nil)

func NewExtensionsValue(ext *parser.Extensions) *ExtensionsValue {
	return &ExtensionsValue{ext: ext}
}

func (v *ExtensionsValue) Set(s string) error {
	ext, err := parser.ParseExtensions(s)
	if err != nil {
		return err
	}
	*v.ext = ext
	return nil
}

func (v *ExtensionsValue) String() string {
	if v.ext == nil {
		return ""
	}
	return v.ext.String()
}

func (v *ExtensionsValue) Type() string {
	return "extensions"
}
