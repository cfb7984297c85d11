// File: props/process.go
package props

import (
	"strconv"
	"strings"
)

// processPropertySource ingests one source into the catalog. The source is
// registered by name first (last writer wins, outside the catalog lock; the
// registry race is benign because sources are immutable). Ingestion itself
// is serialized by the catalog write lock.
//
// A malformed ${random.*} expression aborts the source eagerly: entries
// processed before the bad one remain in the catalog, but nothing after it
// is ingested and the error is returned to the caller.
func (r *Resolver) processPropertySource(src *PropertySource) error {
	r.sources.Store(src.Name(), src)

	r.cat.mu.Lock()
	defer r.cat.mu.Unlock()

	for _, p := range src.pairs {
		value := deepCopyValue(p.Value)

		switch v := value.(type) {
		case string:
			expanded, err := r.random.expand(p.Key, v, src.convention)
			if err != nil {
				return err
			}
			value = expanded
		case []any:
			for i, el := range v {
				s, ok := el.(string)
				if !ok {
					continue
				}
				expanded, err := r.random.expand(p.Key, s, src.convention)
				if err != nil {
					return err
				}
				v[i] = expanded
			}
		}

		first := true
		for _, resolved := range r.candidateNames(p.Key, src.convention) {
			if i := strings.IndexByte(resolved, '['); i > -1 {
				base := resolved[:i]
				entries := r.cat.entriesFor(catalogGenerated, true)
				entries[resolved] = value
				expandProperty(resolved[i:],
					func(v any) { entries[base] = v },
					func() any { return entries[base] },
					value)
				if first {
					r.cat.entriesFor(catalogNormalized, true)[base] = value
					first = false
				}
			} else {
				entries := r.cat.entriesFor(catalogGenerated, true)
				if kindOf(value) != kindScalar {
					collapseProperty(resolved, entries, value)
				}
				entries[resolved] = value
				if first {
					r.cat.entriesFor(catalogNormalized, true)[resolved] = value
					first = false
				}
			}
		}

		r.cat.entriesFor(catalogRaw, true)[p.Key] = value
	}

	return nil
}

// candidateNames computes the resolved key names a source entry is stored
// under, per the source convention.
func (r *Resolver) candidateNames(key string, convention Convention) []string {
	if convention == ConventionEnvironmentVariable {
		return r.envLexicon.Candidates(key)
	}
	return []string{Hyphenate(key)}
}

// expandProperty walks an indexed/dotted path suffix ("[0].name") left to
// right, building or merging the nested containers it implies, and assigns
// the terminal value. set/get address the current container's slot in its
// parent.
func expandProperty(path string, set func(any), get func() any, actual any) {
	if path == "" {
		set(actual)
		return
	}

	if strings.HasPrefix(path, "[") {
		end := strings.IndexByte(path, ']')
		if end < 0 {
			return
		}
		index := path[1:end]
		rest := path[end+1:]

		if isDigits(index) {
			n, _ := strconv.Atoi(index)
			list, _ := get().([]any)
			for len(list) <= n {
				list = append(list, nil)
			}
			set(list)
			expandProperty(rest,
				func(v any) { list[n] = v },
				func() any { return list[n] },
				actual)
		} else {
			m, ok := get().(map[string]any)
			if !ok {
				m = make(map[string]any)
				set(m)
			}
			expandProperty(rest,
				func(v any) { m[index] = v },
				func() any { return m[index] },
				actual)
		}
		return
	}

	if strings.HasPrefix(path, ".") {
		var name, rest string
		if i := strings.IndexByte(path, '['); i > -1 {
			name, rest = path[1:i], path[i:]
		} else {
			name, rest = path[1:], ""
		}

		m, ok := get().(map[string]any)
		if !ok {
			m = make(map[string]any)
			set(m)
		}
		expandProperty(rest,
			func(v any) { m[name] = v },
			func() any { return m[name] },
			actual)
	}
}

// collapseProperty flattens a container value into additional dotted/indexed
// keys under prefix, so a=[x,y] also yields a[0]=x and a[1]=y. Sequences are
// additionally stored whole at the prefix; both representations coexist.
func collapseProperty(prefix string, entries map[string]any, value any) {
	switch kindOf(value) {
	case kindSequence:
		seq := value.([]any)
		for i, item := range seq {
			if item != nil {
				collapseProperty(prefix+"["+strconv.Itoa(i)+"]", entries, item)
			}
		}
		entries[prefix] = value
	case kindMapping:
		for k, v := range value.(map[string]any) {
			collapseProperty(prefix+"."+k, entries, v)
		}
	default:
		entries[prefix] = value
	}
}
