// File: props/loader.go
package props

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileSource reads a TOML, JSON or YAML configuration file into a
// RAW-convention property source. The format is detected from the file
// extension first, then by attempting to parse. Nested tables become dotted
// keys; arrays stay whole values so the resolver can index them. A missing
// file yields ErrConfigNotFound.
func FileSource(name, path string) (*PropertySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	return BytesSource(name, data, detectFileFormat(path))
}

// BytesSource parses raw configuration bytes. An empty format triggers
// content detection.
func BytesSource(name string, data []byte, format string) (*PropertySource, error) {
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("unable to determine config format for source '%s'", name)
		}
	}

	tree := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse TOML source '%s': %w", name, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&tree); err != nil {
			return nil, fmt.Errorf("failed to parse JSON source '%s': %w", name, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse YAML source '%s': %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q for source '%s'", format, name)
	}

	flat := flattenTree(tree, "")
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: flat[k]})
	}
	return NewPropertySource(name, pairs, ConventionRaw), nil
}

// ArgsSource parses command-line arguments into a RAW-convention source.
// Accepted forms: "--key.path value", "--key.path=value" and bare
// "--booleanflag" (storing "true"). Values stay strings; the conversion
// service handles typing at lookup time.
func ArgsSource(name string, args []string) (*PropertySource, error) {
	var pairs []Pair

	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}
		content := strings.TrimPrefix(arg, "--")
		if content == "" {
			i++
			continue
		}

		var keyPath, value string
		if eq := strings.IndexByte(content, '='); eq > -1 {
			keyPath, value = content[:eq], content[eq+1:]
			i++
		} else {
			keyPath = content
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				value = "true"
				i++
			} else {
				value = args[i+1]
				i += 2
			}
		}

		for _, segment := range strings.Split(keyPath, ".") {
			if !isValidKeySegment(segment) {
				return nil, fmt.Errorf("%w: invalid key segment %q in %q", ErrCLIParse, segment, keyPath)
			}
		}
		pairs = append(pairs, Pair{Key: keyPath, Value: value})
	}

	return NewPropertySource(name, pairs, ConventionRaw), nil
}

// detectFileFormat determines format from file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing. JSON is
// strictest, then YAML (a superset of JSON), then TOML.
func detectFormatFromContent(data []byte) string {
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}
	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}
	return ""
}
