package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/igorcanadi/graphql-js/internal/eventbus"
	"github.com/igorcanadi/graphql-js/internal/introspection"
	"github.com/igorcanadi/graphql-js/internal/language"
	"github.com/igorcanadi/graphql-js/internal/lint"
	"github.com/igorcanadi/graphql-js/internal/otel"
	"github.com/igorcanadi/graphql-js/internal/schema"
	"github.com/igorcanadi/graphql-js/internal/server"
)

const rootUsage = `graphql-typecheck — schema-aware GraphQL document checker & tools

USAGE:
  graphql-typecheck <command> [flags]

COMMANDS:
  check        Check query documents against a schema
  render-sdl   Parse a schema and print its canonical SDL
  serve        Run the HTTP check service
  help         Show help for any command
`

const checkUsage = `check FLAGS:
  -schema <file>   GraphQL SDL schema file (required)
  [query files...] Query documents to check; each problem prints as
                   file:line:col: message. Exits non-zero if any problem
                   is found.
`

const renderSDLUsage = `render-sdl FLAGS:
  -schema <file>   GraphQL SDL schema file (required)
  -introspection   Include introspection types in the output
  -out <file>      Write rendered SDL to file (default: stdout)
`

const serveUsage = `serve FLAGS:
  -schema <file>           GraphQL SDL schema file (required)
  -server.addr <addr>      HTTP listen address (default: :8080)
  -server.pretty           Pretty-print JSON responses
  -server.timeout <dur>    Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <n>     Max request body size in bytes (default: 1048576)
  -server.cors <origin>    Allowed CORS origin. Repeatable
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: graphql-typecheck)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("graphql-typecheck", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "check":
		return cmdCheck(cmdArgs)
	case "render-sdl":
		return cmdRenderSDL(cmdArgs)
	case "serve":
		return cmdServe(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "check":
		fmt.Print(checkUsage)
	case "render-sdl":
		fmt.Print(renderSDLUsage)
	case "serve":
		fmt.Print(serveUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, fmt.Errorf("-schema is required")
	}
	sdl, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sch, err := schema.BuildFromSDL(string(sdl))
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return sch, nil
}

func cmdCheck(args []string) error {
	schemaFile := ""
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, checkUsage)
		return err
	}
	queryFiles := fs.Args()
	if len(queryFiles) == 0 {
		fmt.Fprint(os.Stderr, checkUsage)
		return fmt.Errorf("no query files given")
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		fmt.Fprint(os.Stderr, checkUsage)
		return err
	}

	total := 0
	for _, qf := range queryFiles {
		src, err := os.ReadFile(qf)
		if err != nil {
			return err
		}
		doc, err := language.ParseQuery(string(src))
		if err != nil {
			fmt.Printf("%s: %v\n", qf, err)
			total++
			continue
		}
		for _, p := range lint.Check(sch, doc) {
			fmt.Printf("%s:%d:%d: %s\n", qf, p.Line, p.Column, p.Message)
			total++
		}
	}
	if total > 0 {
		return fmt.Errorf("%d problem(s) found", total)
	}
	return nil
}

func cmdRenderSDL(args []string) error {
	schemaFile := ""
	outFile := ""
	withIntrospection := false
	fs := flag.NewFlagSet("render-sdl", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.BoolVar(&withIntrospection, "introspection", withIntrospection, "Include introspection types")
	fs.StringVar(&outFile, "out", outFile, "Write rendered SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, renderSDLUsage)
		return err
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		fmt.Fprint(os.Stderr, renderSDLUsage)
		return err
	}
	if withIntrospection {
		sch = introspection.ExtendSchema(sch)
	}
	sdl := schema.Render(sch)
	if outFile == "" {
		fmt.Print(sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}

func cmdServe(args []string) error {
	schemaFile := ""
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	maxBody := int64(1 << 20)
	otelEndpoint := ""
	otelService := "graphql-typecheck"
	var corsOrigins stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Max request body size in bytes")
	fs.Var(&corsOrigins, "server.cors", "Allowed CORS origin")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	sopts := []server.Option{server.WithMaxBodyBytes(maxBody)}
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	if len(corsOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(corsOrigins...))
	}
	h, err := server.New(sch, sopts...)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/check", h)

	log.Printf("check server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
