// File: props/convert_test.go
package props

import (
	"net"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConversionService tests weak typing and the decode hooks
func TestDefaultConversionService(t *testing.T) {
	cs := DefaultConversionService{}

	t.Run("StringToInt", func(t *testing.T) {
		var out int
		require.NoError(t, cs.Convert("8080", &out))
		assert.Equal(t, 8080, out)
	})

	t.Run("IntToString", func(t *testing.T) {
		var out string
		require.NoError(t, cs.Convert(42, &out))
		assert.Equal(t, "42", out)
	})

	t.Run("StringToBool", func(t *testing.T) {
		var out bool
		require.NoError(t, cs.Convert("true", &out))
		assert.True(t, out)
	})

	t.Run("StringToDuration", func(t *testing.T) {
		var out time.Duration
		require.NoError(t, cs.Convert("1h30m", &out))
		assert.Equal(t, 90*time.Minute, out)
	})

	t.Run("StringToTime", func(t *testing.T) {
		var out time.Time
		require.NoError(t, cs.Convert("2024-05-01T12:00:00Z", &out))
		assert.Equal(t, 2024, out.Year())
	})

	t.Run("CommaStringToSlice", func(t *testing.T) {
		var out []string
		require.NoError(t, cs.Convert("a,b,c", &out))
		assert.Equal(t, []string{"a", "b", "c"}, out)
	})

	t.Run("StringToIP", func(t *testing.T) {
		var out net.IP
		require.NoError(t, cs.Convert("192.168.1.1", &out))
		assert.Equal(t, "192.168.1.1", out.String())
	})

	t.Run("InvalidIP", func(t *testing.T) {
		var out net.IP
		assert.Error(t, cs.Convert("not-an-ip", &out))
	})

	t.Run("StringToCIDR", func(t *testing.T) {
		var out net.IPNet
		require.NoError(t, cs.Convert("10.0.0.0/8", &out))
		assert.Equal(t, "10.0.0.0/8", out.String())
	})

	t.Run("StringToURL", func(t *testing.T) {
		var out url.URL
		require.NoError(t, cs.Convert("https://example.com/path", &out))
		assert.Equal(t, "example.com", out.Host)
	})

	t.Run("StringToURLPointer", func(t *testing.T) {
		var out *url.URL
		require.NoError(t, cs.Convert("https://example.com", &out))
		require.NotNil(t, out)
		assert.Equal(t, "https", out.Scheme)
	})

	t.Run("MapToStruct", func(t *testing.T) {
		var out struct {
			Name  string `props:"name"`
			Count int    `props:"count"`
		}
		require.NoError(t, cs.Convert(map[string]any{"name": "x", "count": "3"}, &out))
		assert.Equal(t, "x", out.Name)
		assert.Equal(t, 3, out.Count)
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		var out int
		assert.Error(t, cs.Convert("1", out))
	})

	t.Run("UnparsableInt", func(t *testing.T) {
		var out int
		assert.Error(t, cs.Convert("not-a-number", &out))
	})
}

func TestConvertTo(t *testing.T) {
	v, err := convertTo(DefaultConversionService{}, "8080", reflect.TypeOf(0))
	require.NoError(t, err)
	assert.Equal(t, 8080, v)
}
