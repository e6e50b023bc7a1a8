package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/cook/collection"
	"github.com/dhamidi/cook/report"
)

// readSource reads a recipe file, or stdin when path is "-".
func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read recipe: %w", err)
	}
	return string(data), nil
}

func recipeName(path string) string {
	if path == "-" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), collection.Ext)
}

func printDiagnostics(path, source string, entries []report.Entry) {
	if len(entries) == 0 {
		return
	}
	if err := report.NewPrinter(os.Stderr).Print(path, source, entries); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
