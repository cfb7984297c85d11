// File: props/doc.go

// Package props resolves configuration properties from many named sources
// (files, environment variables, command-line arguments, plain maps) into a
// single consistent view with deterministic precedence, type conversion,
// placeholder interpolation, and random value generation.
//
// Features:
//   - Multiple property sources with last-registered-wins precedence
//   - Naming convention reconciliation: dotted, hyphenated, camelCase and
//     UPPER_SNAKE environment keys all address the same property
//   - Structural access into lists and maps ("servers[0].host")
//   - Wildcard path queries ("servers[*].host")
//   - ${...} placeholder interpolation with defaults, resolved recursively
//   - ${random.*} expressions (port, int, long, float, uuid variants)
//   - Typed access through generics plus mapstructure-backed struct decoding
//
// Quick Start:
//
//	src, err := props.FileSource("application", "application.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := props.NewResolver(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	host, _ := props.Get[string](r, "server.host")
//	port, _ := props.Get[int](r, "server.port")
//
// A property written by any source under one convention is readable under
// all of them. Given the environment variable SERVER_PORT=8080:
//
//	props.Get[int](r, "server.port")  // 8080
//	props.Get[int](r, "server-port")  // 8080
//
// Thread Safety:
// One resolver may be shared across goroutines. Source ingestion is
// serialized by a write lock; lookups take a read lock and are served from
// concurrent caches on repeat access.
package props
