// File: props/errors.go
package props

import "errors"

var (
	// ErrPropertyNotFound indicates a property could not be resolved for the
	// requested name and type. Conversion failures surface as this error as
	// well: the lookup path never distinguishes "absent" from "present but
	// unconvertible".
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidRandomExpression indicates an unknown ${random.<kind>} token
	// encountered while ingesting a property source.
	ErrInvalidRandomExpression = errors.New("invalid random expression")

	// ErrInvalidRandomRange indicates a malformed numeric bound or range in a
	// ${random.*} expression.
	ErrInvalidRandomRange = errors.New("invalid random range")

	// ErrUnresolvedPlaceholder indicates a required ${...} reference that no
	// property source could satisfy.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrConfigNotFound indicates a configuration file that does not exist.
	// Builders treat it as non-fatal.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrCLIParse indicates malformed command-line arguments.
	ErrCLIParse = errors.New("failed to parse command-line arguments")
)
