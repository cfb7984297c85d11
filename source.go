// File: props/source.go
package props

import "sort"

// Convention declares how a source's keys are spelled, which controls the
// candidate names generated for each entry at ingestion time.
type Convention int

const (
	// ConventionRaw is for as-authored keys: dotted, hyphenated or
	// camelCase. Each key yields its single hyphenated canonical form.
	ConventionRaw Convention = iota
	// ConventionEnvironmentVariable is for UPPER_SNAKE keys whose
	// underscores are ambiguous separators. Each key yields every plausible
	// dotted/hyphenated segmentation.
	ConventionEnvironmentVariable
)

// Pair is one ordered key/value entry of a property source.
type Pair struct {
	Key   string
	Value any
}

// PropertySource is a named, ordered, immutable collection of key/value
// entries. Values are deep-copied at construction so later mutation of the
// caller's containers cannot leak into the catalog.
type PropertySource struct {
	name       string
	convention Convention
	pairs      []Pair
}

// NewPropertySource builds a source from explicit ordered pairs.
func NewPropertySource(name string, pairs []Pair, convention Convention) *PropertySource {
	copied := make([]Pair, len(pairs))
	for i, p := range pairs {
		copied[i] = Pair{Key: p.Key, Value: deepCopyValue(p.Value)}
	}
	return &PropertySource{name: name, convention: convention, pairs: copied}
}

// NewMapSource builds a RAW-convention source from a map, ordering entries
// by key for determinism.
func NewMapSource(name string, values map[string]any) *PropertySource {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: values[k]})
	}
	return NewPropertySource(name, pairs, ConventionRaw)
}

// Name returns the source name. Adding a source with the same name to a
// resolver replaces the prior one.
func (s *PropertySource) Name() string { return s.name }

// Convention returns the source's key naming convention.
func (s *PropertySource) Convention() Convention { return s.convention }

// Len returns the number of entries.
func (s *PropertySource) Len() int { return len(s.pairs) }

// Each visits entries in source order.
func (s *PropertySource) Each(fn func(key string, value any)) {
	for _, p := range s.pairs {
		fn(p.Key, p.Value)
	}
}
