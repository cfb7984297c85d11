// File: props/submap.go
package props

import (
	"fmt"
	"reflect"
	"strings"
)

// keyFormatNone suppresses key reformatting in sub-map extraction.
const keyFormatNone KeyFormat = -1

func formatKey(f KeyFormat, key string) string {
	if f == keyFormatNone {
		return key
	}
	return f.Format(key)
}

// GetProperties returns a flat map of every property under prefix, with the
// prefix stripped and keys rendered in the requested format. Values have
// placeholders resolved.
func (r *Resolver) GetProperties(prefix string, keyFormat KeyFormat) (map[string]any, error) {
	if prefix == "" {
		return map[string]any{}, nil
	}

	cat := catalogGenerated
	if keyFormat == KeyFormatRaw {
		cat = catalogRaw
	}
	entries := r.cat.snapshot(cat)
	if entries == nil {
		entries = r.cat.snapshot(catalogGenerated)
	}
	if entries == nil {
		return map[string]any{}, nil
	}

	return r.resolveSubMap(prefix, entries, keyFormat, TransformationFlat, nil)
}

// resolveSubMap gathers the entries under name+"." into one map. FLAT keeps
// dotted remaining keys (reformatted, values converted to valueType when
// given); NESTED rebuilds intermediate maps, the inverse of ingestion-time
// collapsing. Indexed element keys are skipped when the declared value type
// is itself a list, so element keys are not double counted alongside the
// whole-list key.
func (r *Resolver) resolveSubMap(name string, entries map[string]any, keyFormat KeyFormat, transformation Transformation, valueType reflect.Type) (map[string]any, error) {
	subMap := make(map[string]any, len(entries))
	if entries == nil {
		return subMap, nil
	}

	valueTypeIsList := valueType != nil && valueType.Kind() == reflect.Slice
	convertValues := valueType != nil && valueType != anyType
	prefix := name + "."

	for key, raw := range entries {
		if valueTypeIsList && strings.Contains(key, "[") && strings.HasSuffix(key, "]") {
			continue
		}
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		subKey := key[len(prefix):]

		value, err := r.resolvePlaceholdersIfNecessary(raw)
		if err != nil {
			return nil, err
		}

		if transformation == TransformationFlat {
			if convertValues {
				converted, err := convertTo(r.conversion, value, valueType)
				if err != nil {
					continue
				}
				value = converted
			}
			subMap[formatKey(keyFormat, subKey)] = value
		} else {
			processSubmapKey(subMap, subKey, value, keyFormat)
		}
	}

	return subMap, nil
}

// processSubmapKey inserts one dotted key into a nested map, creating
// intermediate maps as needed. A scalar already occupying an intermediate
// position wins; the deeper key is dropped.
func processSubmapKey(m map[string]any, key string, value any, keyFormat KeyFormat) {
	index := strings.IndexByte(key, '.')
	if index == -1 {
		m[formatKey(keyFormat, key)] = value
		return
	}

	mapKey := formatKey(keyFormat, key[:index])
	if _, ok := m[mapKey]; !ok {
		m[mapKey] = make(map[string]any)
	}
	if nested, ok := m[mapKey].(map[string]any); ok {
		processSubmapKey(nested, key[index+1:], value, keyFormat)
	}
}

// subProperties builds the flat string bag for a prefix: every scalar entry
// under name+"." in the GENERATED partition, stringified with placeholders
// resolved.
func (r *Resolver) subProperties(name string) (Properties, error) {
	props := make(Properties)
	entries := r.cat.snapshot(catalogGenerated)
	if entries == nil {
		return props, nil
	}

	prefix := name + "."
	for key, raw := range entries {
		if raw == nil || !strings.HasPrefix(key, prefix) {
			continue
		}
		if kindOf(raw) != kindScalar {
			continue
		}
		resolved, err := r.placeholder.ResolveRequiredPlaceholders(fmt.Sprintf("%v", raw))
		if err != nil {
			return nil, err
		}
		props[key[len(prefix):]] = resolved
	}
	return props, nil
}

// GetPropertyEntries returns the distinct immediate child segment names
// under the given prefix.
func (r *Resolver) GetPropertyEntries(name string) map[string]bool {
	result := make(map[string]bool)
	if name == "" {
		return result
	}

	entries := r.cat.snapshot(catalogNormalized)
	if entries == nil {
		return result
	}

	prefix := name + "."
	for key := range entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		child := key[len(prefix):]
		if i := strings.IndexByte(child, '.'); i > -1 {
			child = child[:i]
		}
		result[child] = true
	}
	return result
}

// GetAllProperties dumps the whole catalog, keys rendered in the requested
// format and placeholders resolved, either flat or rebuilt into nested
// maps.
func (r *Resolver) GetAllProperties(keyFormat KeyFormat, transformation Transformation) (map[string]any, error) {
	cat := catalogGenerated
	if keyFormat == KeyFormatRaw {
		cat = catalogRaw
	}

	result := make(map[string]any)
	entries := r.cat.snapshot(cat)
	if entries == nil {
		return result, nil
	}

	for key, raw := range entries {
		value, err := r.resolvePlaceholdersIfNecessary(raw)
		if err != nil {
			return nil, err
		}
		formatted := formatKey(keyFormat, key)
		if transformation == TransformationNested && strings.Contains(formatted, ".") {
			placeNested(result, formatted, value)
		} else {
			result[formatted] = value
		}
	}
	return result, nil
}
