// File: props/wildcard.go
package props

import (
	"regexp"
	"sort"
	"strings"
)

const wildcardSuffix = ".*"

// GetPropertyPathMatches finds catalog keys matching a pattern with
// wildcards: "[*]" matches any array index, ".*." matches any single path
// segment, and a trailing ".*" matches any suffix. Each result is the tuple
// of captured wildcard values for one matching key, in deterministic order.
//
//	keys:    server.hosts[0].name, server.hosts[1].name
//	pattern: server.hosts[*].name
//	result:  [["0"], ["1"]]
func (r *Resolver) GetPropertyPathMatches(pattern string) [][]string {
	if pattern == "" {
		return nil
	}
	entries := r.cat.snapshot(catalogGenerated)
	if entries == nil {
		return nil
	}

	re, err := wildcardRegexp(pattern)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var results [][]string
	for key := range entries {
		m := re.FindStringSubmatch(key)
		if m == nil || len(m) < 2 {
			continue
		}
		groups := m[1:]
		sig := strings.Join(groups, "\x00")
		if seen[sig] {
			continue
		}
		seen[sig] = true
		results = append(results, groups)
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return results
}

// wildcardRegexp translates a path pattern into an anchored regexp with one
// capture group per wildcard. Everything outside the wildcards matches
// literally.
func wildcardRegexp(pattern string) (*regexp.Regexp, error) {
	trimmed := strings.TrimSuffix(pattern, wildcardSuffix)
	quoted := regexp.QuoteMeta(trimmed)
	quoted = strings.ReplaceAll(quoted, `\[\*\]`, `\[([\w-]+?)\]`)
	quoted = strings.ReplaceAll(quoted, `\.\*\.`, `\.([\w-]+?)\.`)
	return regexp.Compile(`^` + quoted + `\S*$`)
}
