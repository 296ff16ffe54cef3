package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/teammatch/internal/schemas"
	"github.com/spf13/cobra"
)

type validatable interface {
	Validate() error
}

// readInput reads path (or stdin for "-"), checks it against the named
// schema, decodes it into dst and runs the struct validation.
func readInput(cmd *cobra.Command, path, schema string, dst validatable) error {
	data, err := readRaw(cmd, path)
	if err != nil {
		return err
	}
	if err := schemas.Validate(schema, data); err != nil {
		return fmt.Errorf("invalid input %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := dst.Validate(); err != nil {
		return fmt.Errorf("invalid input %s: %w", path, err)
	}
	return nil
}

func readRaw(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes v as indented JSON to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
