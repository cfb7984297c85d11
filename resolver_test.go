// File: props/resolver_test.go
package props

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGet tests typed lookups across naming conventions and value shapes
func TestGet(t *testing.T) {
	r, err := NewResolver(NewMapSource("app", map[string]any{
		"server.port":        "8080",
		"server.host":        "localhost",
		"server.timeout":     "30s",
		"featureEnabled":     true,
		"limits.max-entries": 100,
		"hosts":              []any{"a", "b", "c"},
	}))
	require.NoError(t, err)

	t.Run("StringIdentity", func(t *testing.T) {
		v, err := Get[string](r, "server.host")
		require.NoError(t, err)
		assert.Equal(t, "localhost", v)
	})

	t.Run("WeakConversionToInt", func(t *testing.T) {
		v, err := Get[int](r, "server.port")
		require.NoError(t, err)
		assert.Equal(t, 8080, v)
	})

	t.Run("IntStringified", func(t *testing.T) {
		v, err := Get[string](r, "limits.max-entries")
		require.NoError(t, err)
		assert.Equal(t, "100", v)
	})

	t.Run("Duration", func(t *testing.T) {
		v, err := Get[time.Duration](r, "server.timeout")
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, v)
	})

	t.Run("Bool", func(t *testing.T) {
		v, err := Get[bool](r, "feature-enabled")
		require.NoError(t, err)
		assert.True(t, v)
	})

	t.Run("HyphenatedNameFindsDottedKey", func(t *testing.T) {
		v, err := Get[string](r, "server-host")
		require.NoError(t, err)
		assert.Equal(t, "localhost", v)
	})

	t.Run("SliceWhole", func(t *testing.T) {
		v, err := Get[[]string](r, "hosts")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, v)
	})

	t.Run("SliceElement", func(t *testing.T) {
		v, err := Get[string](r, "hosts[2]")
		require.NoError(t, err)
		assert.Equal(t, "c", v)
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		_, err := Get[string](r, "hosts[9]")
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Get[string](r, "no.such.key")
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := Get[string](r, "")
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("UnconvertibleValue", func(t *testing.T) {
		_, err := Get[int](r, "server.host")
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})
}

// TestGetOr tests fallback behavior
func TestGetOr(t *testing.T) {
	r, err := NewResolver(NewMapSource("app", map[string]any{"port": "8080"}))
	require.NoError(t, err)

	assert.Equal(t, 8080, GetOr(r, "port", 1234))
	assert.Equal(t, 1234, GetOr(r, "missing", 1234))
	assert.Equal(t, "dflt", GetOr(r, "port.extra", "dflt"))
}

// TestConvenienceGetters tests the typed method shorthands
func TestConvenienceGetters(t *testing.T) {
	r, err := NewResolver(NewMapSource("app", map[string]any{
		"s": "text",
		"i": "42",
		"b": "true",
		"f": "2.5",
		"d": "1m30s",
	}))
	require.NoError(t, err)

	s, err := r.String("s")
	require.NoError(t, err)
	assert.Equal(t, "text", s)

	i, err := r.Int64("i")
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)

	b, err := r.Bool("b")
	require.NoError(t, err)
	assert.True(t, b)

	f, err := r.Float64("f")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	d, err := r.Duration("d")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}

// TestSourcePrecedence tests that later sources override earlier ones
func TestSourcePrecedence(t *testing.T) {
	defaults := NewMapSource("defaults", map[string]any{
		"server.port": 8080,
		"server.host": "localhost",
	})
	overrides := NewMapSource("overrides", map[string]any{
		"server.port": 9090,
	})

	r, err := NewResolver(defaults, overrides)
	require.NoError(t, err)

	port, err := Get[int](r, "server.port")
	require.NoError(t, err)
	assert.Equal(t, 9090, port)

	host, err := Get[string](r, "server.host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)

	t.Run("LazyAdditionWins", func(t *testing.T) {
		require.NoError(t, r.AddPropertySourceMap("late", map[string]any{
			"server.port": 7070,
		}))
		port, err := Get[int](r, "server.port")
		require.NoError(t, err)
		assert.Equal(t, 7070, port)
	})

	t.Run("ReaddingSameNameSupersedes", func(t *testing.T) {
		require.NoError(t, r.AddPropertySourceMap("overrides", map[string]any{
			"server.port": 6060,
		}))
		port, err := Get[int](r, "server.port")
		require.NoError(t, err)
		assert.Equal(t, 6060, port)
	})
}

// TestContainsProperty tests existence checks
func TestContainsProperty(t *testing.T) {
	r, err := NewResolver(NewMapSource("app", map[string]any{
		"server.port": 8080,
		"server.tls":  map[string]any{"enabled": true},
	}))
	require.NoError(t, err)

	assert.True(t, r.ContainsProperty("server.port"))
	assert.True(t, r.ContainsProperty("server.tls.enabled"))
	assert.False(t, r.ContainsProperty("server.missing"))
	assert.False(t, r.ContainsProperty(""))

	t.Run("PrefixCheck", func(t *testing.T) {
		assert.True(t, r.ContainsProperties("server"))
		assert.True(t, r.ContainsProperties("server.tls"))
		assert.False(t, r.ContainsProperties("client"))
		assert.False(t, r.ContainsProperties(""))
	})
}

// countingConversionService wraps the default service and counts Convert
// calls, to observe cache hits.
type countingConversionService struct {
	calls atomic.Int64
}

func (c *countingConversionService) Convert(value any, target any) error {
	c.calls.Add(1)
	return DefaultConversionService{}.Convert(value, target)
}

// TestResolvedValueCache tests that scalar results are cached until a
// source is added
func TestResolvedValueCache(t *testing.T) {
	counting := &countingConversionService{}
	r := newResolver(resolverConfig{conversion: counting})
	require.NoError(t, r.AddPropertySourceMap("app", map[string]any{
		"port": "8080",
	}))

	for i := 0; i < 5; i++ {
		v, err := Get[int](r, "port")
		require.NoError(t, err)
		assert.Equal(t, 8080, v)
	}
	assert.Equal(t, int64(1), counting.calls.Load())

	t.Run("MissesAreCachedToo", func(t *testing.T) {
		before := counting.calls.Load()
		for i := 0; i < 5; i++ {
			_, err := Get[int](r, "absent")
			assert.ErrorIs(t, err, ErrPropertyNotFound)
		}
		assert.Equal(t, before, counting.calls.Load())
	})

	t.Run("AddingSourceResetsCache", func(t *testing.T) {
		require.NoError(t, r.AddPropertySourceMap("late", map[string]any{
			"port": "9090",
		}))
		v, err := Get[int](r, "port")
		require.NoError(t, err)
		assert.Equal(t, 9090, v)
	})
}

// TestPropertiesSynthesis tests the flat string bag produced for prefix
// requests
func TestPropertiesSynthesis(t *testing.T) {
	r, err := NewResolver(NewMapSource("app", map[string]any{
		"datasource.url":      "jdbc:${datasource.driver}://db",
		"datasource.driver":   "postgres",
		"datasource.pool.max": 10,
	}))
	require.NoError(t, err)

	t.Run("ExistingPrefix", func(t *testing.T) {
		bag, err := Get[Properties](r, "datasource")
		require.NoError(t, err)
		assert.Equal(t, "jdbc:postgres://db", bag["url"])
		assert.Equal(t, "postgres", bag["driver"])
		assert.Equal(t, "10", bag["pool.max"])
	})

	t.Run("AbsentPrefixYieldsEmptyBag", func(t *testing.T) {
		bag, err := Get[Properties](r, "nothing.here")
		require.NoError(t, err)
		assert.Empty(t, bag)
	})

	t.Run("AbsentPrefixMapSynthesis", func(t *testing.T) {
		m, err := Get[map[string]any](r, "nothing.here")
		require.NoError(t, err)
		assert.Empty(t, m)
	})
}

// TestConcurrentAccess tests shared read access with interleaved source
// additions
func TestConcurrentAccess(t *testing.T) {
	r, err := NewResolver(NewMapSource("app", map[string]any{
		"server.port": "8080",
		"server.host": "localhost",
	}))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, err := Get[int](r, "server.port"); err != nil {
					t.Error(err)
					return
				}
				r.ContainsProperty("server.host")
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if err := r.AddPropertySourceMap("extra", map[string]any{
					"extra.value": j,
				}); err != nil {
					t.Error(err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	port, err := Get[int](r, "server.port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)
}

func TestClose(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)
	assert.NoError(t, r.Close())
}
