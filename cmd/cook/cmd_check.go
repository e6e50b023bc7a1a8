package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/cook/collection"
	"github.com/dhamidi/cook/config"
	"github.com/spf13/cobra"
)

func newCheckCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Report problems in recipe files and directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs, warnings int
			for _, path := range args {
				files, err := checkFiles(path, cfg)
				if err != nil {
					return err
				}
				for _, f := range files {
					printDiagnostics(f.Path, string(f.Content), f.Result.Diagnostics())
					errs += len(f.Result.Errors)
					warnings += len(f.Result.Warnings)
				}
			}

			fmt.Fprintf(os.Stderr, "%d errors, %d warnings\n", errs, warnings)
			if errs > 0 {
				return fmt.Errorf("found %d errors", errs)
			}
			return nil
		},
	}
}

func checkFiles(path string, cfg *config.Config) ([]*collection.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}

	if info.IsDir() {
		c := collection.New(path, cfg.Extensions)
		if err := c.ScanAll(); err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		return c.Files(), nil
	}

	c := collection.New(filepath.Dir(path), cfg.Extensions)
	if err := c.ScanFile(path); err != nil {
		return nil, err
	}
	return c.Files(), nil
}
