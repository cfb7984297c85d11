// File: props/wildcard_test.go
package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetPropertyPathMatches tests wildcard extraction over catalog keys
func TestGetPropertyPathMatches(t *testing.T) {
	r, err := NewResolver(NewMapSource("app", map[string]any{
		"server.hosts": []any{
			map[string]any{"name": "alpha"},
			map[string]any{"name": "beta"},
		},
		"datasource.default.url": "jdbc://a",
		"datasource.backup.url":  "jdbc://b",
	}))
	require.NoError(t, err)

	t.Run("IndexWildcard", func(t *testing.T) {
		matches := r.GetPropertyPathMatches("server.hosts[*].name")
		assert.Equal(t, [][]string{{"0"}, {"1"}}, matches)
	})

	t.Run("SegmentWildcard", func(t *testing.T) {
		matches := r.GetPropertyPathMatches("datasource.*.url")
		assert.Equal(t, [][]string{{"backup"}, {"default"}}, matches)
	})

	t.Run("IndexWildcardWithTrailingSuffix", func(t *testing.T) {
		matches := r.GetPropertyPathMatches("server.hosts[*].*")
		assert.Equal(t, [][]string{{"0"}, {"1"}}, matches)
	})

	t.Run("NoMatches", func(t *testing.T) {
		assert.Empty(t, r.GetPropertyPathMatches("cache.*.ttl"))
	})

	t.Run("EmptyPattern", func(t *testing.T) {
		assert.Empty(t, r.GetPropertyPathMatches(""))
	})
}
