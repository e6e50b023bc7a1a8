// Package config reads settings for the cook command from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/dhamidi/cook/parser"
	"github.com/joho/godotenv"
)

const (
	EnvExtensions = "COOK_EXTENSIONS"
	EnvVerbosity  = "COOK_VERBOSITY"
	EnvLogFile    = "COOK_LOG_FILE"
	EnvWidth      = "COOK_WIDTH"
)

type Config struct {
	Extensions parser.Extensions
	Verbosity  int
	// LogFile is empty to log to stderr.
	LogFile string
	// Width of text output, 0 to use the terminal width.
	Width int
}

func Default() Config {
	return Config{Extensions: parser.All}
}

// Load reads .env in the working directory if there is one, then the
// environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (Config, error) {
	c := Default()

	if v := strings.TrimSpace(getenv(EnvExtensions)); v != "" {
		ext, err := parser.ParseExtensions(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvExtensions, err)
		}
		c.Extensions = ext
	}

	if v := strings.TrimSpace(getenv(EnvVerbosity)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvVerbosity, err)
		}
		c.Verbosity = n
	}

	c.LogFile = strings.TrimSpace(getenv(EnvLogFile))

	if v := strings.TrimSpace(getenv(EnvWidth)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("%s: invalid width %q", EnvWidth, v)
		}
		c.Width = n
	}

	return c, nil
}
