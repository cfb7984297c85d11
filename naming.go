// File: props/naming.go
package props

import (
	"strings"
	"unicode"
)

// Hyphenate converts a camelCase or underscore-separated property key into
// its lower-case hyphenated canonical form. Dots are preserved as segment
// separators: "foo.barBaz" becomes "foo.bar-baz", "FOO_BAR" becomes
// "foo-bar".
func Hyphenate(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	var prev rune
	for _, r := range name {
		switch {
		case r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if prev != 0 && prev != '-' && prev != '_' && prev != '.' && !unicode.IsUpper(prev) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prev = r
	}

	return b.String()
}

// NormalizeName maps a hyphenated key to its dotted equivalent. Used as the
// second-chance lookup form so "foo-bar" finds a property stored as
// "foo.bar".
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "-", ".")
}

// KeyFormat controls how keys are rendered in sub-map extraction and full
// dumps.
type KeyFormat int

const (
	// KeyFormatRaw leaves keys exactly as stored.
	KeyFormatRaw KeyFormat = iota
	// KeyFormatHyphenated renders keys in lower-case hyphenated form.
	KeyFormatHyphenated
	// KeyFormatCamelCase joins hyphenated segments into camelCase, keeping
	// dots as separators.
	KeyFormatCamelCase
	// KeyFormatUpperUnderscore renders keys as environment variable names.
	KeyFormatUpperUnderscore
)

// Format renders key in the receiver's convention.
func (f KeyFormat) Format(key string) string {
	switch f {
	case KeyFormatHyphenated:
		return Hyphenate(key)
	case KeyFormatCamelCase:
		return camelCaseKey(key)
	case KeyFormatUpperUnderscore:
		upper := strings.ToUpper(key)
		upper = strings.ReplaceAll(upper, ".", "_")
		return strings.ReplaceAll(upper, "-", "_")
	default:
		return key
	}
}

func camelCaseKey(key string) string {
	segments := strings.Split(key, ".")
	for i, segment := range segments {
		parts := strings.Split(segment, "-")
		var b strings.Builder
		for j, part := range parts {
			if part == "" {
				continue
			}
			if j == 0 {
				b.WriteString(part)
				continue
			}
			b.WriteString(strings.ToUpper(part[:1]))
			b.WriteString(part[1:])
		}
		segments[i] = b.String()
	}
	return strings.Join(segments, ".")
}

// Transformation selects the shape of extracted sub-maps.
type Transformation int

const (
	// TransformationFlat produces one flat map from dotted key to value.
	TransformationFlat Transformation = iota
	// TransformationNested rebuilds intermediate maps from dotted keys.
	TransformationNested
)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
