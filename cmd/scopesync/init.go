package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/justinpbarnett/scopesync/internal/config"
)

//go:embed scopesync.example.yaml
var exampleConfig []byte

// runInit writes the example config. An existing file is left alone unless
// --force is given.
func runInit(args []string, w io.Writer) error {
	fset := flag.NewFlagSet("init", flag.ContinueOnError)
	force := fset.Bool("force", false, "overwrite an existing config")
	path := fset.String("path", "scopesync.yaml", "where to write the config")
	if err := fset.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		fmt.Fprintf(w, "  %s already exists, use --force to overwrite\n", *path)
		return nil
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", *path, err)
	}

	if dir := filepath.Dir(*path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(*path, exampleConfig, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(w, "  created %s\n", *path)

	// catch a template that drifted from the loader
	if _, err := config.LoadFile(*path); err != nil {
		return fmt.Errorf("generated config does not load: %w", err)
	}
	fmt.Fprintln(w, "\nscopesync init complete.")
	return nil
}
