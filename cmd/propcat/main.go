// Command propcat loads configuration from files, environment variables
// and command-line overrides, resolves placeholders, and prints either the
// whole property tree or a single key.
//
// Usage:
//
//	propcat --config app.toml --env-prefix APP_ --format yaml
//	propcat --config app.toml --get datasource.url -- --datasource.pool-size 8
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/propsrc/props"
)

func main() {
	flags := pflag.NewFlagSet("propcat", pflag.ContinueOnError)
	configs := flags.StringArrayP("config", "c", nil, "configuration file (repeatable, later files win)")
	envPrefix := flags.StringP("env-prefix", "e", "", "environment variable prefix to snapshot")
	format := flags.StringP("format", "f", "toml", "output format: toml, json or yaml")
	get := flags.StringP("get", "g", "", "print a single property instead of the full tree")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fatal(err)
	}

	builder := props.NewBuilder()
	for _, path := range *configs {
		builder.WithFile(path)
	}
	if *envPrefix != "" {
		builder.WithEnvironment(*envPrefix)
	}
	if overrides := flags.Args(); len(overrides) > 0 {
		builder.WithArgs(overrides)
	}

	resolver, err := builder.Build()
	if err != nil {
		if !errors.Is(err, props.ErrConfigNotFound) {
			fatal(err)
		}
		fmt.Fprintf(os.Stderr, "propcat: warning: %v\n", err)
	}
	defer resolver.Close()

	if *get != "" {
		value, err := props.Get[string](resolver, *get)
		if err != nil {
			fatal(err)
		}
		fmt.Println(value)
		return
	}

	if err := resolver.Export(os.Stdout, *format); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "propcat: %v\n", err)
	os.Exit(1)
}
