// File: props/helper.go
package props

import "strings"

// flattenTree converts a nested map into flat dot-notation keys. Only maps
// are descended into; sequences stay whole values so ingestion-time
// collapsing can index them.
func flattenTree(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			for subPath, subValue := range flattenTree(sub, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}
	return flat
}

// placeNested inserts a dot-notation key into a nested map, creating
// intermediate maps. A non-map value occupying an intermediate segment is
// replaced by a map.
func placeNested(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// isValidKeySegment reports whether one path segment of a command-line key
// is acceptable: letters, digits, underscores and dashes.
func isValidKeySegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit && r != '_' && r != '-' {
			return false
		}
	}
	return true
}
