// File: props/builder.go
package props

import (
	"errors"
	"fmt"
	"os"
)

// ValidatorFunc validates a fully built Resolver, returning an error to
// fail the build.
type ValidatorFunc func(r *Resolver) error

type sourceFactory func() (*PropertySource, error)

// Builder provides a fluent interface for assembling a Resolver. Sources
// are ingested in the order their With* calls were made, so later calls
// win on overlapping keys.
type Builder struct {
	cfg        resolverConfig
	pending    []sourceFactory
	args       []string
	validators []ValidatorFunc
}

// NewBuilder creates a resolver builder. Command-line arguments default to
// os.Args[1:] for file discovery; they are not ingested unless WithArgs is
// called.
func NewBuilder() *Builder {
	return &Builder{args: os.Args[1:]}
}

// WithSource registers an already constructed property source.
func (b *Builder) WithSource(src *PropertySource) *Builder {
	b.pending = append(b.pending, func() (*PropertySource, error) { return src, nil })
	return b
}

// WithMap registers a RAW-convention map source.
func (b *Builder) WithMap(name string, values map[string]any) *Builder {
	b.pending = append(b.pending, func() (*PropertySource, error) { return NewMapSource(name, values), nil })
	return b
}

// WithFile registers a configuration file source. A missing file is
// non-fatal: Build returns the resolver along with ErrConfigNotFound.
func (b *Builder) WithFile(path string) *Builder {
	b.pending = append(b.pending, func() (*PropertySource, error) { return FileSource(path, path) })
	return b
}

// WithEnvironment registers a snapshot of prefixed environment variables.
func (b *Builder) WithEnvironment(prefix string) *Builder {
	b.pending = append(b.pending, func() (*PropertySource, error) { return EnvironmentSource(prefix), nil })
	return b
}

// WithArgs registers a command-line argument source and feeds file
// discovery.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	b.pending = append(b.pending, func() (*PropertySource, error) { return ArgsSource("cli", args) })
	return b
}

// WithConversionService overrides the default mapstructure-backed
// conversion service.
func (b *Builder) WithConversionService(cs ConversionService) *Builder {
	b.cfg.conversion = cs
	return b
}

// WithPlaceholderResolver overrides the default ${...} resolver.
func (b *Builder) WithPlaceholderResolver(pr PlaceholderResolver) *Builder {
	b.cfg.placeholder = pr
	return b
}

// WithPortScanner overrides the TCP port scanner used by ${random.port}.
func (b *Builder) WithPortScanner(ps PortScanner) *Builder {
	b.cfg.ports = ps
	return b
}

// WithEnvLexicon supplies a shared environment-name lexicon.
func (b *Builder) WithEnvLexicon(lex *EnvLexicon) *Builder {
	b.cfg.envLexicon = lex
	return b
}

// WithLegacyRandomBound restores the historical ${random.int(N)} handling
// for non-negative N, which always produced 1.
func (b *Builder) WithLegacyRandomBound() *Builder {
	b.cfg.legacyRandomBound = true
	return b
}

// WithValidator adds a validation function run at the end of the build.
// Validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build constructs the resolver and ingests all registered sources in
// order. Missing config files are collected and returned as a joined
// non-fatal error alongside the usable resolver; any other failure is
// fatal.
func (b *Builder) Build() (*Resolver, error) {
	r := newResolver(b.cfg)

	var notFound []error
	for _, factory := range b.pending {
		src, err := factory()
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				notFound = append(notFound, err)
				continue
			}
			return nil, err
		}
		if err := r.AddPropertySource(src); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(r); err != nil {
			return nil, fmt.Errorf("resolver validation failed: %w", err)
		}
	}

	return r, errors.Join(notFound...)
}

// MustBuild is like Build but panics on error. ErrConfigNotFound is not
// fatal: the application can proceed with the remaining sources.
func (b *Builder) MustBuild() *Resolver {
	r, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("resolver build failed: %v", err))
	}
	return r
}

// BuildAndScan builds the resolver and decodes the properties under
// basePath into target.
func (b *Builder) BuildAndScan(basePath string, target any) error {
	r, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return err
	}
	if scanErr := r.Scan(basePath, target); scanErr != nil {
		return fmt.Errorf("failed to scan resolved properties: %w", scanErr)
	}
	// ErrConfigNotFound or nil
	return err
}
