// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Command gen-schema writes the listener manifest JSON Schema.
//
// With --check it instead fails when the file on disk is out of date, for use
// in CI.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/holomush/evcompress/internal/registry"
)

func main() {
	out := pflag.String("out", filepath.Join("schemas", "listeners.schema.json"), "schema output path")
	check := pflag.Bool("check", false, "verify the existing file instead of writing it")
	pflag.Parse()

	if err := run(*out, *check); err != nil {
		fmt.Fprintf(os.Stderr, "gen-schema: %v\n", err)
		os.Exit(1)
	}
}

func run(outPath string, check bool) error {
	schema, err := registry.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generating schema: %w", err)
	}

	if check {
		current, err := os.ReadFile(outPath) //nolint:gosec // path is a developer-supplied flag
		if err != nil {
			return fmt.Errorf("reading %s: %w", outPath, err)
		}
		if !bytes.Equal(current, schema) {
			return fmt.Errorf("%s is out of date, run gen-schema", outPath)
		}
		fmt.Printf("%s is up to date\n", outPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(outPath, schema, 0o600); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	fmt.Printf("Generated %s\n", outPath)
	return nil
}
