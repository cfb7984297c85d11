// File: props/decode.go
package props

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the properties under basePath into the target struct or map
// pointer, using "props" struct tags with weak typing and the default
// decode hooks. Keys are the hyphenated canonical forms, so a field holding
// "maxConnections" from a camelCase source is tagged `props:"max-connections"`.
func (r *Resolver) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	entries := r.cat.snapshot(catalogGenerated)
	nested := make(map[string]any)
	for key, raw := range entries {
		// Indexed element keys duplicate their whole-container key.
		if strings.Contains(key, "[") {
			continue
		}
		value, err := r.resolvePlaceholdersIfNecessary(raw)
		if err != nil {
			return err
		}
		placeNested(nested, key, value)
	}

	section := navigateToPath(nested, basePath)
	sectionMap, ok := section.(map[string]any)
	if !ok {
		if section == nil {
			sectionMap = make(map[string]any)
		} else {
			return fmt.Errorf("path %q refers to a non-map value (type %T)", basePath, section)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "props",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook:       defaultDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to decode path %q: %w", basePath, err)
	}
	return nil
}

// navigateToPath walks a nested map along a dotted path. Returns nil when
// the path does not exist or crosses a non-map value.
func navigateToPath(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	current := any(nested)
	for _, segment := range strings.Split(path, ".") {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}
	return current
}
