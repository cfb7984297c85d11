// File: props/env_test.go
package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnvCandidates tests the segmentation expansion of environment
// variable names
func TestEnvCandidates(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		expected []string
	}{
		{"SingleWord", "PORT", []string{"port"}},
		{"TwoWords", "SERVER_PORT", []string{"server.port", "server-port"}},
		{"ThreeWords", "FOO_BAR_BAZ", []string{
			"foo.bar.baz",
			"foo.bar-baz",
			"foo-bar.baz",
			"foo-bar-baz",
		}},
		{"Empty", "", nil},
		{"CollapsedUnderscores", "FOO__BAR", []string{"foo.bar", "foo-bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, computeEnvCandidates(tt.envVar))
		})
	}

	t.Run("DottedFormFirst", func(t *testing.T) {
		candidates := computeEnvCandidates("A_B_C_D")
		require.Len(t, candidates, 8)
		assert.Equal(t, "a.b.c.d", candidates[0])
		assert.Equal(t, "a-b-c-d", candidates[len(candidates)-1])
	})

	t.Run("GapCapFallsBackToCanonicalForms", func(t *testing.T) {
		candidates := computeEnvCandidates("A_B_C_D_E_F_G_H")
		require.Len(t, candidates, 3)
		assert.Equal(t, "a.b.c.d.e.f.g.h", candidates[0])
		assert.Equal(t, "a.b.c.d.e.f.g-h", candidates[1])
		assert.Equal(t, "a-b-c-d-e-f-g-h", candidates[2])
	})
}

// TestEnvLexicon tests candidate caching and parent delegation
func TestEnvLexicon(t *testing.T) {
	t.Run("CachesComputedCandidates", func(t *testing.T) {
		lex := NewEnvLexicon(nil)
		first := lex.Candidates("SERVER_PORT")
		second := lex.Candidates("SERVER_PORT")
		assert.Equal(t, first, second)

		lex.mu.RLock()
		_, cached := lex.cache["SERVER_PORT"]
		lex.mu.RUnlock()
		assert.True(t, cached)
	})

	t.Run("ConsultsParentCache", func(t *testing.T) {
		parent := NewEnvLexicon(nil)
		parent.Candidates("SHARED_KEY")

		child := NewEnvLexicon(parent)
		got, ok := child.lookup("SHARED_KEY")
		require.True(t, ok)
		assert.Equal(t, []string{"shared.key", "shared-key"}, got)
	})

	t.Run("ChildWritesStayLocal", func(t *testing.T) {
		parent := NewEnvLexicon(nil)
		child := NewEnvLexicon(parent)
		child.Candidates("CHILD_ONLY")

		_, ok := parent.lookup("CHILD_ONLY")
		assert.False(t, ok)
	})
}

// TestEnvironmentSource tests snapshotting prefixed process environment
// variables
func TestEnvironmentSource(t *testing.T) {
	t.Setenv("PROPSTEST_SERVER_PORT", "9090")
	t.Setenv("PROPSTEST_DEBUG", "true")
	t.Setenv("UNRELATED_VALUE", "nope")

	src := EnvironmentSource("PROPSTEST_")
	require.NotNil(t, src)
	assert.Equal(t, ConventionEnvironmentVariable, src.Convention())

	seen := make(map[string]any)
	src.Each(func(key string, value any) {
		seen[key] = value
	})
	assert.Equal(t, "9090", seen["SERVER_PORT"])
	assert.Equal(t, "true", seen["DEBUG"])
	assert.NotContains(t, seen, "UNRELATED_VALUE")

	t.Run("ResolvableUnderEveryConvention", func(t *testing.T) {
		r, err := NewResolver(src)
		require.NoError(t, err)

		port, err := Get[int](r, "server.port")
		require.NoError(t, err)
		assert.Equal(t, 9090, port)

		portHyphen, err := Get[string](r, "server-port")
		require.NoError(t, err)
		assert.Equal(t, "9090", portHyphen)
	})
}
