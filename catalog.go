// File: props/catalog.go
package props

import "sync"

// propertyCatalog selects one of the three catalog partitions.
type propertyCatalog int

const (
	// catalogGenerated holds every convention variant of each key, so a
	// property is addressable regardless of the caller's naming style. An
	// environment variable FOO_BAR_BAZ produces foo.bar.baz, foo.bar-baz,
	// foo-bar.baz and foo-bar-baz here.
	catalogGenerated propertyCatalog = iota
	// catalogRaw holds keys exactly as the source supplied them, as the
	// fallback lookup partition.
	catalogRaw
	// catalogNormalized holds one canonical key per logical property.
	catalogNormalized
)

// lookupOrder is the partition priority for lookups.
var lookupOrder = [...]propertyCatalog{catalogGenerated, catalogRaw}

// catalog indexes resolved property entries in three partitions. Partitions
// are plain string-keyed maps created lazily on first write; ingestion holds
// the write lock, readers hold the read lock (Go maps tolerate no readers
// during a write).
type catalog struct {
	mu sync.RWMutex

	generated  map[string]any
	raw        map[string]any
	normalized map[string]any
}

// entriesFor returns the partition map, creating it when create is set. The
// caller must hold mu (write lock if create is possible).
func (c *catalog) entriesFor(cat propertyCatalog, create bool) map[string]any {
	var slot *map[string]any
	switch cat {
	case catalogRaw:
		slot = &c.raw
	case catalogNormalized:
		slot = &c.normalized
	default:
		slot = &c.generated
	}
	if *slot == nil && create {
		*slot = make(map[string]any)
	}
	return *slot
}

// snapshot copies a partition so callers can iterate and resolve
// placeholders without holding the read lock. Container values are
// deep-copied because ingestion of a later source may mutate them in place
// during structural expansion.
func (c *catalog) snapshot(cat propertyCatalog) map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := c.entriesFor(cat, false)
	if entries == nil {
		return nil
	}
	out := make(map[string]any, len(entries))
	for k, v := range entries {
		out[k] = deepCopyValue(v)
	}
	return out
}
