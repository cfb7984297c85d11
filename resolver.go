// File: props/resolver.go
package props

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Properties is the flat string bag synthesized for prefix lookups.
type Properties map[string]string

// noValue marks a cached "we looked, there is nothing" outcome, so repeat
// misses never touch the catalog.
var noValue any = &struct{}{}

var (
	propertiesType = reflect.TypeOf((*Properties)(nil)).Elem()
	anyType        = reflect.TypeOf((*any)(nil)).Elem()
)

// Resolver answers typed property lookups across many property sources,
// reconciling naming conventions, structural access and placeholder
// interpolation. Construct with NewResolver or through a Builder; one
// instance may be shared across goroutines.
type Resolver struct {
	conversion  ConversionService
	placeholder PlaceholderResolver
	envLexicon  *EnvLexicon
	random      randomExpander

	sources sync.Map // source name -> *PropertySource, last writer wins
	cat     catalog

	containsCache sync.Map // property name -> bool
	valueCache    sync.Map // name|type -> value or noValue
}

// resolverConfig carries the collaborators a Builder may override.
type resolverConfig struct {
	conversion        ConversionService
	placeholder       PlaceholderResolver
	ports             PortScanner
	envLexicon        *EnvLexicon
	legacyRandomBound bool
}

func newResolver(cfg resolverConfig) *Resolver {
	r := &Resolver{
		conversion:  cfg.conversion,
		placeholder: cfg.placeholder,
		envLexicon:  cfg.envLexicon,
	}
	if r.conversion == nil {
		r.conversion = DefaultConversionService{}
	}
	if r.placeholder == nil {
		r.placeholder = &defaultPlaceholderResolver{resolver: r}
	}
	if r.envLexicon == nil {
		r.envLexicon = NewEnvLexicon(nil)
	}
	ports := cfg.ports
	if ports == nil {
		ports = tcpPortScanner{}
	}
	r.random = randomExpander{
		prefix:      r.placeholder.Prefix(),
		ports:       ports,
		legacyBound: cfg.legacyRandomBound,
	}
	return r
}

// NewResolver creates a resolver with default collaborators and ingests the
// given sources in order (later sources win on overlapping keys).
func NewResolver(sources ...*PropertySource) (*Resolver, error) {
	r := newResolver(resolverConfig{})
	for _, src := range sources {
		if err := r.AddPropertySource(src); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// AddPropertySource ingests a source, replacing any prior source of the
// same name, and resets the lookup caches.
func (r *Resolver) AddPropertySource(src *PropertySource) error {
	if src == nil {
		return nil
	}
	if err := r.processPropertySource(src); err != nil {
		return err
	}
	r.ResetCaches()
	return nil
}

// AddPropertySourceMap is shorthand for adding a RAW-convention map source.
// An empty map is a no-op.
func (r *Resolver) AddPropertySourceMap(name string, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.AddPropertySource(NewMapSource(name, values))
}

// Get resolves name to a value of type T. Misses and conversion failures
// return ErrPropertyNotFound; placeholder resolution errors propagate
// verbatim. Requests for Properties or a string-keyed map type never fail
// on absence: they synthesize the (possibly empty) sub-structure instead.
func Get[T any](r *Resolver, name string) (T, error) {
	var zero T
	if name == "" {
		return zero, fmt.Errorf("%w: empty property name", ErrPropertyNotFound)
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	cacheable := isCacheableType(t)
	cacheKey := name + "|" + t.String()
	if cacheable {
		if cached, ok := r.valueCache.Load(cacheKey); ok {
			if cached == noValue {
				return zero, fmt.Errorf("%w: %s", ErrPropertyNotFound, name)
			}
			return cached.(T), nil
		}
	}

	if value, found := r.lookupValue(name); found {
		resolved, err := r.resolvePlaceholdersIfNecessary(value)
		if err != nil {
			return zero, err
		}

		if typed, ok := resolved.(T); ok && !isContainerType(t) {
			if cacheable {
				r.valueCache.Store(cacheKey, typed)
			}
			return typed, nil
		}

		var out T
		if err := r.conversion.Convert(resolved, &out); err != nil {
			if cacheable {
				r.valueCache.Store(cacheKey, noValue)
			}
			return zero, fmt.Errorf("%w: %s", ErrPropertyNotFound, name)
		}
		if cacheable {
			r.valueCache.Store(cacheKey, out)
		}
		return out, nil
	}

	if cacheable {
		r.valueCache.Store(cacheKey, noValue)
		return zero, fmt.Errorf("%w: %s", ErrPropertyNotFound, name)
	}

	// Structural synthesis for bag and mapping types.
	if t == propertiesType {
		bag, err := r.subProperties(name)
		if err != nil {
			return zero, err
		}
		return any(bag).(T), nil
	}
	if t.Kind() == reflect.Map && t.Key().Kind() == reflect.String {
		sub, err := r.resolveSubMap(name, r.cat.snapshot(catalogGenerated), keyFormatNone, TransformationNested, t.Elem())
		if err != nil {
			return zero, err
		}
		if typed, ok := any(sub).(T); ok {
			return typed, nil
		}
		converted, err := convertTo(r.conversion, sub, t)
		if err != nil {
			return zero, fmt.Errorf("%w: %s", ErrPropertyNotFound, name)
		}
		return converted.(T), nil
	}

	return zero, fmt.Errorf("%w: %s", ErrPropertyNotFound, name)
}

// GetOr resolves name, falling back to the given value on any failure.
func GetOr[T any](r *Resolver, name string, fallback T) T {
	value, err := Get[T](r, name)
	if err != nil {
		return fallback
	}
	return value
}

// lookupValue finds the raw value for name across catalog partitions:
// GENERATED first, then RAW, with exact, normalized, and indexed matching.
// The returned value is a copy, safe to use after the read lock is
// released.
func (r *Resolver) lookupValue(name string) (any, bool) {
	r.cat.mu.RLock()
	defer r.cat.mu.RUnlock()

	entries := r.cat.entriesFor(catalogGenerated, false)
	if entries == nil {
		entries = r.cat.entriesFor(catalogRaw, false)
	}
	if entries == nil {
		return nil, false
	}

	value, ok := lookupNonNil(entries, name)
	if !ok {
		value, ok = lookupNonNil(entries, NormalizeName(name))
	}
	if !ok && !strings.Contains(name, "[") {
		// Last chance: the literal key as the source authored it.
		if raw := r.cat.entriesFor(catalogRaw, false); raw != nil {
			value, ok = lookupNonNil(raw, name)
		}
	}
	if !ok {
		value, ok = lookupIndexed(entries, name)
	}
	if !ok {
		return nil, false
	}
	return deepCopyValue(value), true
}

func lookupNonNil(entries map[string]any, key string) (any, bool) {
	if v, ok := entries[key]; ok && v != nil {
		return v, true
	}
	return nil, false
}

// lookupIndexed resolves a "base[idx]" request: index into a stored
// sequence or mapping at base, or fall back to the compound "base.idx" key.
func lookupIndexed(entries map[string]any, name string) (any, bool) {
	i := strings.IndexByte(name, '[')
	if i < 0 || !strings.HasSuffix(name, "]") {
		return nil, false
	}
	base := name[:i]
	index := name[i+1 : len(name)-1]

	if container, ok := lookupNonNil(entries, base); ok {
		if index == "" {
			return nil, false
		}
		switch c := container.(type) {
		case []any:
			n, err := strconv.Atoi(index)
			if err != nil || n < 0 || n >= len(c) {
				return nil, false
			}
			if c[n] == nil {
				return nil, false
			}
			return c[n], true
		case map[string]any:
			return lookupNonNil(c, index)
		}
		return nil, false
	}
	if index != "" {
		return lookupNonNil(entries, base+"."+index)
	}
	return nil, false
}

// resolvePlaceholdersIfNecessary substitutes ${...} references in string
// values, and inside sequence and mapping containers recursively. Container
// results are fresh copies.
func (r *Resolver) resolvePlaceholdersIfNecessary(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return r.placeholder.ResolveRequiredPlaceholders(v)
	case []any:
		out := make([]any, len(v))
		for i, el := range v {
			resolved, err := r.resolvePlaceholdersIfNecessary(el)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, el := range v {
			resolved, err := r.resolvePlaceholdersIfNecessary(el)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	}
	return value, nil
}

// ContainsProperty reports whether an entry exists under exactly this key
// in the GENERATED or RAW partition. Results are cached until the next
// source is added.
func (r *Resolver) ContainsProperty(name string) bool {
	if name == "" {
		return false
	}
	if cached, ok := r.containsCache.Load(name); ok {
		return cached.(bool)
	}

	result := false
	r.cat.mu.RLock()
	for _, cat := range lookupOrder {
		entries := r.cat.entriesFor(cat, false)
		if entries == nil {
			continue
		}
		if _, ok := entries[name]; ok {
			result = true
			break
		}
	}
	r.cat.mu.RUnlock()

	r.containsCache.Store(name, result)
	return result
}

// ContainsProperties reports whether any property lives at or under the
// given prefix path.
func (r *Resolver) ContainsProperties(name string) bool {
	if name == "" {
		return false
	}

	r.cat.mu.RLock()
	defer r.cat.mu.RUnlock()

	prefix := name + "."
	for _, cat := range lookupOrder {
		entries := r.cat.entriesFor(cat, false)
		if entries == nil {
			continue
		}
		if _, ok := entries[name]; ok {
			return true
		}
		for key := range entries {
			if strings.HasPrefix(key, prefix) {
				return true
			}
		}
	}
	return false
}

// ResetCaches drops the contains-cache and the resolved-value cache.
// Resets are not synchronized with in-flight lookups; a racing reader may
// repopulate an entry immediately, which is correct because every miss
// re-derives from the catalog.
func (r *Resolver) ResetCaches() {
	r.containsCache.Range(func(k, _ any) bool {
		r.containsCache.Delete(k)
		return true
	})
	r.valueCache.Range(func(k, _ any) bool {
		r.valueCache.Delete(k)
		return true
	})
}

// Close releases resources held by the placeholder resolver, if any.
func (r *Resolver) Close() error {
	if closer, ok := r.placeholder.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// isCacheableType limits the resolved-value cache to built-in scalar types,
// where a cached value cannot alias mutable state.
func isCacheableType(t reflect.Type) bool {
	if t.PkgPath() != "" {
		return false
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isContainerType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}
