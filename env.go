// File: props/env.go
package props

import (
	"os"
	"sort"
	"strings"
	"sync"
)

// maxEnvCandidateGaps caps the combinatorial expansion of an environment
// variable name. A name with n underscores has 2^n plausible segmentations;
// beyond this many gaps only the canonical forms are produced.
const maxEnvCandidateGaps = 6

// EnvLexicon computes and caches the candidate dotted property names for an
// environment variable. Underscores are ambiguous: FOO_BAR_BAZ may mean
// "foo.bar.baz", "foo.bar-baz", "foo-bar.baz" or "foo-bar-baz", so every
// combination is generated (fully-dotted form first).
//
// A lexicon may be created with a parent whose cache is consulted read-only,
// allowing a shared process-wide snapshot while tests use isolated
// instances.
type EnvLexicon struct {
	parent *EnvLexicon

	mu    sync.RWMutex
	cache map[string][]string
}

// NewEnvLexicon creates a lexicon. parent may be nil.
func NewEnvLexicon(parent *EnvLexicon) *EnvLexicon {
	return &EnvLexicon{
		parent: parent,
		cache:  make(map[string][]string),
	}
}

// Candidates returns every plausible dotted/hyphenated segmentation of the
// given environment-variable-style key, in deterministic order. The result
// is cached and must not be modified by the caller.
func (l *EnvLexicon) Candidates(envVar string) []string {
	if cached, ok := l.lookup(envVar); ok {
		return cached
	}

	computed := computeEnvCandidates(envVar)

	l.mu.Lock()
	l.cache[envVar] = computed
	l.mu.Unlock()

	return computed
}

func (l *EnvLexicon) lookup(envVar string) ([]string, bool) {
	l.mu.RLock()
	cached, ok := l.cache[envVar]
	l.mu.RUnlock()
	if ok {
		return cached, true
	}
	if l.parent != nil {
		return l.parent.lookup(envVar)
	}
	return nil, false
}

func computeEnvCandidates(envVar string) []string {
	lower := strings.ToLower(envVar)
	words := strings.FieldsFunc(lower, func(r rune) bool { return r == '_' })
	if len(words) == 0 {
		return nil
	}
	if len(words) == 1 {
		return []string{words[0]}
	}

	if len(words)-1 > maxEnvCandidateGaps {
		// Too many gaps to enumerate. Keep the forms lookups depend on:
		// fully dotted, fully hyphenated, and dotted with a hyphenated last
		// segment.
		dotted := strings.Join(words, ".")
		lastHyphen := strings.Join(words[:len(words)-1], ".") + "-" + words[len(words)-1]
		hyphened := strings.Join(words, "-")
		return []string{dotted, lastHyphen, hyphened}
	}

	// Double the candidate list for each word: existing candidates extend
	// with '.' before '-', which yields the fully-dotted form first.
	candidates := []string{words[0]}
	for _, word := range words[1:] {
		next := make([]string, 0, len(candidates)*2)
		for _, c := range candidates {
			next = append(next, c+"."+word, c+"-"+word)
		}
		candidates = next
	}
	return candidates
}

// EnvironmentSource snapshots os.Environ into a property source with the
// ENVIRONMENT_VARIABLE convention. When prefix is non-empty only variables
// carrying it are included, with the prefix stripped:
// EnvironmentSource("MYAPP_") turns MYAPP_SERVER_PORT into the properties
// addressed by "server.port".
func EnvironmentSource(prefix string) *PropertySource {
	environ := os.Environ()
	pairs := make([]Pair, 0, len(environ))
	for _, kv := range environ {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			continue
		}
		key, value := kv[:eq], kv[eq+1:]
		if prefix != "" {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			key = strings.TrimPrefix(key, prefix)
			if key == "" {
				continue
			}
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return NewPropertySource("env", pairs, ConventionEnvironmentVariable)
}
