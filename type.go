// File: props/type.go
package props

import "time"

// String resolves a property as a string.
func (r *Resolver) String(name string) (string, error) {
	return Get[string](r, name)
}

// Int64 resolves a property as an int64, converting from numeric types and
// parsable strings.
func (r *Resolver) Int64(name string) (int64, error) {
	return Get[int64](r, name)
}

// Bool resolves a property as a bool, converting from parsable strings and
// numbers (0 is false, non-zero true).
func (r *Resolver) Bool(name string) (bool, error) {
	return Get[bool](r, name)
}

// Float64 resolves a property as a float64.
func (r *Resolver) Float64(name string) (float64, error) {
	return Get[float64](r, name)
}

// Duration resolves a property as a time.Duration, accepting Go duration
// strings such as "30s".
func (r *Resolver) Duration(name string) (time.Duration, error) {
	return Get[time.Duration](r, name)
}
