// File: props/value.go
package props

// valueKind is the closed set of structural shapes a property value can
// take. All structural branching in ingestion and resolution dispatches on
// it, so the supported container types are decided in exactly one place.
type valueKind int

const (
	kindScalar valueKind = iota
	kindSequence
	kindMapping
)

func kindOf(v any) valueKind {
	switch v.(type) {
	case []any:
		return kindSequence
	case map[string]any:
		return kindMapping
	default:
		return kindScalar
	}
}

// deepCopyValue copies sequence and mapping containers recursively. Scalars
// are returned as-is. Sources hand values to the resolver by reference, and
// the catalog mutates containers during structural expansion, so both
// ingestion and lock-released reads work on copies.
func deepCopyValue(v any) any {
	switch c := v.(type) {
	case []any:
		out := make([]any, len(c))
		for i, item := range c {
			out[i] = deepCopyValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(c))
		for k, item := range c {
			out[k] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
