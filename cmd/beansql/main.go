// Command beansql generates SQL statements from a table schema file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	var (
		configPath string
		flags      Options
		statements string
	)

	flag.StringVar(&configPath, "c", "", "Path to the options file (yaml/toml/json/ini)")
	flag.StringVar(&flags.Schema, "schema", "", "Path to the schema file")
	flag.StringVar(&statements, "statements", "", "Comma separated statement kinds (default: all)")
	flag.StringVar(&flags.Format, "format", "", "Output format: text, json, yaml, toml, msgpack, bson, protobuf (default: text)")
	flag.StringVar(&flags.Output, "output", "", `Output file, "-" for stdout (default: -)`)
	flag.BoolVar(&flags.Watch, "watch", false, "Regenerate when the schema file changes")
	flag.BoolVar(&flags.Metrics, "metrics", false, "Log statement counters on exit")
	flag.Parse()

	options, err := LoadOptions(configPath, func(options *Options) {
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "schema":
				options.Schema = flags.Schema
			case "statements":
				options.Statements = strings.Split(statements, ",")
			case "format":
				options.Format = flags.Format
			case "output":
				options.Output = flags.Output
			case "watch":
				options.Watch = flags.Watch
			case "metrics":
				options.Metrics = flags.Metrics
			}
		})
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	app, err := NewAppWithOptions(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
