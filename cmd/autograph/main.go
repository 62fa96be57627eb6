package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	eventbus "github.com/autographql/autograph/internal/eventbus"
	executor "github.com/autographql/autograph/internal/executor"
	introspection "github.com/autographql/autograph/internal/introspection"
	language "github.com/autographql/autograph/internal/language"
	otel "github.com/autographql/autograph/internal/otel"
	schema "github.com/autographql/autograph/internal/schema"
	server "github.com/autographql/autograph/internal/server"
	template "github.com/autographql/autograph/internal/template"
)

const rootUsage = `autograph - callable operation templates for any GraphQL schema

USAGE:
  autograph <command> [flags]

COMMANDS:
  operations       List every query and mutation the schema exposes
  render           Print the generated operation text for one operation
  call             Generate an operation and execute it against the endpoint
  schema           Print the schema as normalized SDL
  serve            Run the HTTP facade (discovery + invocation endpoints)
  help             Show help for any command
`

const sourceUsage = `  -endpoint <url>            GraphQL endpoint to introspect (and execute against)
  -schema.file <file>        Load the schema from an SDL file instead
  -header <name: value>      Extra HTTP header for the endpoint. Repeatable
  -http.timeout <duration>   HTTP request timeout (default: 30s)
  -log.level <level>         Log level: debug, info, warn, error (default: info)
`

const operationsUsage = `operations FLAGS:
` + sourceUsage

const renderUsage = `render FLAGS:
  -operation <name>          Operation to render (host or wire name, required)
  -args <json>               Arguments as a JSON object (default: {})
` + sourceUsage

const callUsage = `call FLAGS:
  -operation <name>          Operation to call (host or wire name, required)
  -args <json>               Arguments as a JSON object (default: {})
  -pretty                    Pretty-print the JSON result
  -otel.endpoint <addr>      OTLP collector endpoint
  -otel.service <name>       OpenTelemetry service name (default: autograph)
` + sourceUsage

const schemaUsage = `schema FLAGS:
` + sourceUsage

const serveUsage = `serve FLAGS:
  -server.addr <addr>        HTTP listen address (default: :8080)
  -server.pretty             Pretty-print JSON responses
  -server.timeout <duration> Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>   Max request body size (default: 1048576)
  -server.cors-origin <o>    Allowed CORS origin. Repeatable
  -otel.endpoint <addr>      OTLP collector endpoint
  -otel.service <name>       OpenTelemetry service name (default: autograph)
` + sourceUsage

func main() {
	if err := run(os.Args[1:]); err != nil {
		logrus.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}
	cmd := args[0]
	cmdArgs := args[1:]
	switch cmd {
	case "operations":
		return cmdOperations(cmdArgs)
	case "render":
		return cmdRender(cmdArgs)
	case "call":
		return cmdCall(cmdArgs)
	case "schema":
		return cmdSchema(cmdArgs)
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
	case "operations":
		fmt.Print(operationsUsage)
	case "render":
		fmt.Print(renderUsage)
	case "call":
		fmt.Print(callUsage)
	case "schema":
		fmt.Print(schemaUsage)
	case "serve":
		fmt.Print(serveUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

// source holds the shared flags for obtaining a schema and an executor.
type source struct {
	endpoint    string
	schemaFile  string
	headers     stringListFlag
	httpTimeout time.Duration
	logLevel    string
}

func (s *source) register(fs *flag.FlagSet) {
	fs.StringVar(&s.endpoint, "endpoint", "", "GraphQL endpoint URL")
	fs.StringVar(&s.schemaFile, "schema.file", "", "SDL schema file")
	fs.Var(&s.headers, "header", "Extra HTTP header")
	fs.DurationVar(&s.httpTimeout, "http.timeout", 30*time.Second, "HTTP request timeout")
	fs.StringVar(&s.logLevel, "log.level", "info", "Log level")
}

func (s *source) setupLogging() error {
	level, err := logrus.ParseLevel(s.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", s.logLevel)
	}
	logrus.SetLevel(level)
	return nil
}

func (s *source) executor() (executor.Executor, error) {
	if s.endpoint == "" {
		return nil, fmt.Errorf("-endpoint is required")
	}
	opts := []executor.HTTPOption{executor.WithTimeout(s.httpTimeout)}
	for _, h := range s.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header %q, want \"Name: value\"", h)
		}
		opts = append(opts, executor.WithHeader(strings.TrimSpace(name), strings.TrimSpace(value)))
	}
	return executor.NewHTTP(s.endpoint, opts...), nil
}

// loadSchema obtains a schema from the SDL file when given, falling
// back to live introspection of the endpoint.
func (s *source) loadSchema(ctx context.Context) (*schema.Schema, error) {
	if s.schemaFile != "" {
		sdl, err := os.ReadFile(s.schemaFile)
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
		ast, err := language.LoadSchema(s.schemaFile, string(sdl))
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		return schema.FromAST(ast)
	}
	exec, err := s.executor()
	if err != nil {
		return nil, err
	}
	return introspection.Fetch(ctx, exec)
}

func (s *source) registry(ctx context.Context) (*template.Registry, error) {
	sch, err := s.loadSchema(ctx)
	if err != nil {
		return nil, err
	}
	var exec executor.Executor
	if s.endpoint != "" {
		exec, err = s.executor()
		if err != nil {
			return nil, err
		}
	} else {
		exec = executor.Func(func(context.Context, string) (*executor.ExecutionResult, error) {
			return nil, fmt.Errorf("no endpoint configured")
		})
	}
	return template.NewRegistry(sch, exec), nil
}

func cmdOperations(args []string) error {
	var src source
	fs := flag.NewFlagSet("operations", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	src.register(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, operationsUsage)
		return err
	}
	if err := src.setupLogging(); err != nil {
		return err
	}
	reg, err := src.registry(context.Background())
	if err != nil {
		return err
	}
	for _, sig := range reg.Operations() {
		fmt.Println(sig)
	}
	return nil
}

func cmdRender(args []string) error {
	var src source
	operation := ""
	argsJSON := "{}"
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	src.register(fs)
	fs.StringVar(&operation, "operation", "", "Operation name")
	fs.StringVar(&argsJSON, "args", argsJSON, "Arguments JSON object")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, renderUsage)
		return err
	}
	if err := src.setupLogging(); err != nil {
		return err
	}
	if operation == "" {
		fmt.Fprint(os.Stderr, renderUsage)
		return fmt.Errorf("-operation is required")
	}

	reg, err := src.registry(context.Background())
	if err != nil {
		return err
	}
	tmpl := reg.Template(operation)
	if tmpl == nil {
		return fmt.Errorf("unknown operation %q", operation)
	}
	callArgs, err := parseArgs(argsJSON)
	if err != nil {
		return err
	}
	text, err := tmpl.BuildQueryText(callArgs)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func cmdCall(args []string) error {
	var src source
	operation := ""
	argsJSON := "{}"
	pretty := false
	otelEndpoint := ""
	otelService := "autograph"
	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	src.register(fs)
	fs.StringVar(&operation, "operation", "", "Operation name")
	fs.StringVar(&argsJSON, "args", argsJSON, "Arguments JSON object")
	fs.BoolVar(&pretty, "pretty", pretty, "Pretty-print the result")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, callUsage)
		return err
	}
	if err := src.setupLogging(); err != nil {
		return err
	}
	if operation == "" {
		fmt.Fprint(os.Stderr, callUsage)
		return fmt.Errorf("-operation is required")
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	ctx := context.Background()
	reg, err := src.registry(ctx)
	if err != nil {
		return err
	}
	tmpl := reg.Template(operation)
	if tmpl == nil {
		return fmt.Errorf("unknown operation %q", operation)
	}
	callArgs, err := parseArgs(argsJSON)
	if err != nil {
		return err
	}
	result, err := tmpl.Invoke(ctx, callArgs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func cmdSchema(args []string) error {
	var src source
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	src.register(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, schemaUsage)
		return err
	}
	if err := src.setupLogging(); err != nil {
		return err
	}
	sch, err := src.loadSchema(context.Background())
	if err != nil {
		return err
	}
	fmt.Print(schema.Render(sch))
	return nil
}

func cmdServe(args []string) error {
	var src source
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	maxBody := int64(1 << 20)
	otelEndpoint := ""
	otelService := "autograph"
	var corsOrigins stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	src.register(fs)
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Max request body size")
	fs.Var(&corsOrigins, "server.cors-origin", "Allowed CORS origin")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}
	if err := src.setupLogging(); err != nil {
		return err
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	reg, err := src.registry(context.Background())
	if err != nil {
		return err
	}

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

	handler := server.New(reg, sopts...)
	logrus.WithField("addr", addr).Info("serving operation facade")
	return http.ListenAndServe(addr, handler)
}

// parseArgs decodes a JSON object into an ordered argument list.
// JSON decoding loses object order, so keys are sorted.
func parseArgs(argsJSON string) (template.Args, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &m); err != nil {
		return nil, fmt.Errorf("invalid -args JSON: %w", err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make(template.Args, 0, len(keys))
	for _, k := range keys {
		args = append(args, template.Arg{Name: k, Value: m[k]})
	}
	return args, nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return strings.Join(*s, ",") }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}
