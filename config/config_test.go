package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/cook/parser"
	"github.com/spf13/pflag"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		want    Config
		wantErr bool
	}{
		{"defaults", nil, Config{Extensions: parser.All}, false},
		{
			"all set",
			map[string]string{
				EnvExtensions: "range_values, text_steps",
				EnvVerbosity:  "2",
				EnvLogFile:    "cook.log",
				EnvWidth:      "60",
			},
			Config{Extensions: parser.RangeValues | parser.TextSteps, Verbosity: 2, LogFile: "cook.log", Width: 60},
			false,
		},
		{"no extensions", map[string]string{EnvExtensions: "none"}, Config{Extensions: parser.None}, false},
		{"bad extension", map[string]string{EnvExtensions: "bogus"}, Config{}, true},
		{"bad verbosity", map[string]string{EnvVerbosity: "loud"}, Config{}, true},
		{"negative width", map[string]string{EnvWidth: "-1"}, Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fromEnv(env(tt.vars))
			if (err != nil) != tt.wantErr {
				t.Fatalf("got error %v, want error %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvWidth, "")
	t.Setenv(EnvVerbosity, "1")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("COOK_WIDTH=72\nCOOK_VERBOSITY=3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv(EnvWidth)

	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 72 {
		t.Errorf("got width %d, want 72", c.Width)
	}
	// the environment wins over .env
	if c.Verbosity != 1 {
		t.Errorf("got verbosity %d, want 1", c.Verbosity)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("got %v, want no error", err)
	}
}

func TestExtensionsValue(t *testing.T) {
	ext := parser.All
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Var(NewExtensionsValue(&ext), "extensions", "")

	if err := flags.Parse([]string{"--extensions", "advanced_units,range_values"}); err != nil {
		t.Fatal(err)
	}
	if ext != parser.AdvancedUnits|parser.RangeValues {
		t.Errorf("got %v", ext)
	}
	if got := flags.Lookup("extensions").Value.String(); got != "advanced_units,range_values" {
		t.Errorf("got %q", got)
	}
	if err := flags.Parse([]string{"--extensions", "bogus"}); err == nil {
		t.Error("got no error for unknown extension")
	}
}
