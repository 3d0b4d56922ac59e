package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funvibe/uplc/internal/backend"
	"github.com/funvibe/uplc/internal/builtin"
	"github.com/funvibe/uplc/internal/config"
	"github.com/funvibe/uplc/internal/evaluator"
	"github.com/funvibe/uplc/internal/parser"
	"github.com/funvibe/uplc/internal/prettyprinter"
	"github.com/funvibe/uplc/internal/term"
)

// version is stamped at build time using:
// -ldflags "-X main.version=x.y.z"
var version = "dev"

var errNoInput = errors.New("no input: pass a file, -e, or pipe source on stdin")

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("uplc", flag.ExitOnError)
	snippet := fs.String("e", "", "evaluate the given source text instead of reading a file")
	backendName := fs.String("backend", "", "execution engine: jit or tree-walk")
	pretty := fs.Bool("pretty", false, "pretty-print the parsed input instead of evaluating it")
	trace := fs.Bool("trace", false, "echo trace output to stderr after evaluation")
	configPath := fs.String("config", "", "path to uplc.yaml (default: search upward from the working directory)")
	logFormat := fs.String("log-format", "", "log output format: auto, console, logfmt or json")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.Usage = func() { usage(fs) }
	fs.Parse(args)

	if *showVersion {
		fmt.Println(version)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	// Flags given on the command line win over the config file.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["backend"] {
		cfg.Backend = *backendName
	}
	if set["trace"] {
		cfg.Trace = *trace
	}
	if set["log-format"] {
		cfg.Log.Format = *logFormat
	}
	if set["log-level"] {
		cfg.Log.Level = *logLevel
	}

	lc, err := cfg.LoggerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	log, err := lc.New(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	log = log.With(zap.String("run_id", uuid.NewString()))

	src, name, err := readSource(fs, *snippet)
	if err != nil {
		if errors.Is(err, errNoInput) {
			fs.Usage()
			return 2
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	t, prog, err := parseSource(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	if *pretty {
		p := prettyprinter.NewCodePrinter()
		if prog != nil {
			fmt.Println(p.PrintProgram(prog))
		} else {
			fmt.Println(p.PrintTerm(t))
		}
		return 0
	}

	engine, err := backend.ForName(cfg.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	m := evaluator.NewMachine(builtin.Catalog())
	m.WithLogger(log)

	log.Debug("evaluating", zap.String("source", name), zap.String("backend", engine.Name()))
	start := time.Now()
	v, err := engine.Run(m, t)
	if cfg.Trace {
		for _, msg := range m.Logs {
			fmt.Fprintln(os.Stderr, msg)
		}
	}
	if err != nil {
		log.Debug("evaluation failed", zap.Error(err), zap.Duration("took", time.Since(start)))
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	log.Debug("evaluation finished", zap.Duration("took", time.Since(start)))

	fmt.Println(v.Inspect())
	return 0
}

func usage(fs *flag.FlagSet) {
	fmt.Fprint(fs.Output(), `uplc evaluates untyped Plutus Core.

Usage:
  uplc [flags] <file.uplc>
  uplc [flags] -e '(program 1.1.0 term)'
  uplc [flags] < file.uplc

The settled value prints on stdout. Flags:
`)
	fs.PrintDefaults()
}

// loadConfig reads the explicit path when given, otherwise searches
// upward from the working directory and falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	found, err := config.Find(wd)
	if err != nil {
		return nil, err
	}
	if found == "" {
		return config.Default(), nil
	}
	return config.Load(found)
}

// readSource collects the program text from -e, the file argument or a
// piped stdin, in that order of preference.
func readSource(fs *flag.FlagSet, snippet string) (src, name string, err error) {
	if snippet != "" {
		if fs.NArg() > 0 {
			return "", "", fmt.Errorf("both -e and a file argument given")
		}
		return snippet, "-e", nil
	}
	switch fs.NArg() {
	case 0:
	case 1:
		path := fs.Arg(0)
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), path, nil
	default:
		return "", "", fmt.Errorf("expected one file argument, got %d", fs.NArg())
	}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", "", errNoInput
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "stdin", nil
}

// parseSource reads a complete `(program x.y.z term)` or, failing that, a
// bare term. When neither form fits, the program form's error is the one
// reported.
func parseSource(src string) (term.Term, *term.Program, error) {
	prog, err := parser.Parse(src)
	if err == nil {
		return prog.Body, prog, nil
	}
	if t, terr := parser.ParseTerm(src); terr == nil {
		return t, nil, nil
	}
	return nil, nil, err
}
