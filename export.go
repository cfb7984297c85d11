// File: props/export.go
package props

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Export writes the resolved property tree to w in the given format
// ("toml", "json" or "yaml"). Placeholders are resolved before encoding;
// keys keep their normalized hyphenated form.
func (r *Resolver) Export(w io.Writer, format string) error {
	tree, err := r.GetAllProperties(KeyFormatHyphenated, TransformationNested)
	if err != nil {
		return fmt.Errorf("failed to collect properties for export: %w", err)
	}

	switch format {
	case "toml":
		encoder := toml.NewEncoder(w)
		if err := encoder.Encode(tree); err != nil {
			return fmt.Errorf("failed to encode properties as TOML: %w", err)
		}
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(tree); err != nil {
			return fmt.Errorf("failed to encode properties as JSON: %w", err)
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		if err := encoder.Encode(tree); err != nil {
			return fmt.Errorf("failed to encode properties as YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to finalize YAML output: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}

	return nil
}

// Save writes the resolved property tree to a file atomically. The format
// is taken from the file extension, defaulting to TOML.
func (r *Resolver) Save(path string) error {
	format := detectFileFormat(path)
	if format == "" {
		format = "toml"
	}

	var buf bytes.Buffer
	if err := r.Export(&buf, format); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
