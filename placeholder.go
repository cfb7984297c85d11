// File: props/placeholder.go
package props

import (
	"errors"
	"fmt"
	"strings"
)

// PlaceholderResolver substitutes ${...} references inside property values.
// Implementations typically resolve references against the owning Resolver,
// which re-enters placeholder resolution for the resolved value; recursion
// terminates when a value contains no further references.
type PlaceholderResolver interface {
	// Prefix returns the substring whose presence triggers resolution
	// (also the gate for ${random.*} expansion at ingestion time).
	Prefix() string
	// ResolveRequiredPlaceholders replaces every placeholder in s, failing
	// if a reference without a default cannot be resolved.
	ResolveRequiredPlaceholders(s string) (string, error)
}

const (
	placeholderPrefix = "${"
	placeholderSuffix = "}"
)

// defaultPlaceholderResolver implements the basic ${key} and ${key:default}
// grammar against a Resolver.
type defaultPlaceholderResolver struct {
	resolver *Resolver
}

func (p *defaultPlaceholderResolver) Prefix() string { return placeholderPrefix }

func (p *defaultPlaceholderResolver) ResolveRequiredPlaceholders(s string) (string, error) {
	if !strings.Contains(s, placeholderPrefix) {
		return s, nil
	}

	var b strings.Builder
	rest := s
	for {
		start := strings.Index(rest, placeholderPrefix)
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])

		end := matchingBrace(rest, start+len(placeholderPrefix))
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated placeholder in %q", ErrUnresolvedPlaceholder, s)
		}

		expr := rest[start+len(placeholderPrefix) : end]
		rest = rest[end+len(placeholderSuffix):]

		resolved, err := p.resolveExpression(expr)
		if err != nil {
			return "", err
		}
		b.WriteString(resolved)
	}
}

// resolveExpression handles one name[:default] expression. The resolved
// property value passes back through placeholder resolution via the
// resolver's lookup path; defaults are resolved recursively as well.
func (p *defaultPlaceholderResolver) resolveExpression(expr string) (string, error) {
	name := expr
	def := ""
	hasDefault := false
	if i := strings.IndexByte(expr, ':'); i > -1 {
		name, def = expr[:i], expr[i+1:]
		hasDefault = true
	}

	value, err := Get[string](p.resolver, name)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrPropertyNotFound) {
		return "", err
	}
	if hasDefault {
		return p.ResolveRequiredPlaceholders(def)
	}
	return "", fmt.Errorf("%w: %q", ErrUnresolvedPlaceholder, name)
}

// matchingBrace returns the index of the brace closing the placeholder whose
// content starts at from, honoring nested ${...} inside defaults.
func matchingBrace(s string, from int) int {
	depth := 0
	for i := from; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], placeholderPrefix):
			depth++
			i++ // skip the brace of the nested prefix
		case s[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
