package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Brandon-Rozek/lispy/pkg/driver"
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

const version = "0.0.0.0.1"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return runWith(args, os.Stdout, os.Stderr)
}

func runWith(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lispy", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }
	configPath := fs.String("config", "", "path to lispy.yml (default: search upward from the working directory)")
	expr := fs.String("e", "", "evaluate `expression` and exit")
	verbose := fs.Bool("v", false, "trace prelude loading to stderr")
	showVersion := fs.Bool("version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "lispy %s\n", version)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	var logger *log.Logger
	if *verbose {
		logger = log.New(stderr, "lispy: ", 0)
		if cfg.Path != "" {
			logger.Printf("using config %s", cfg.Path)
		}
	}
	session := driver.NewSession(cfg, logger)
	if err := session.LoadPrelude(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	rest := fs.Args()
	switch {
	case *expr != "":
		if len(rest) > 0 {
			fmt.Fprintln(stderr, "-e does not take additional arguments")
			return 2
		}
		return evalExpression(session, *expr, stdout, stderr)
	case len(rest) == 0:
		return repl(session, stdout, stderr)
	case rest[0] == "run":
		return runFiles(session, rest[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", rest[0])
		printUsage(stderr, fs)
		return 2
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  lispy [flags]                 start the interactive prompt")
	fmt.Fprintln(w, "  lispy [flags] run <file>...   evaluate source files")
	fmt.Fprintln(w, "  lispy [flags] -e <expr>       evaluate one expression")
	fmt.Fprintln(w, "flags:")
	fs.PrintDefaults()
}

// loadConfig reads an explicit config path, or searches upward from the
// working directory, falling back to defaults when nothing is found.
func loadConfig(path string) (*driver.Config, error) {
	if path != "" {
		return driver.LoadConfig(path)
	}
	found, err := driver.FindConfig(".")
	if errors.Is(err, driver.ErrConfigNotFound) {
		return driver.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return driver.LoadConfig(found)
}

func evalExpression(session *driver.Session, expr string, stdout, stderr io.Writer) int {
	v, err := session.EvalLine(expr)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, runtime.Render(v))
	if runtime.IsError(v) {
		return 1
	}
	return 0
}

// runFiles evaluates each file in order. Errors are reported and make the
// exit status non-zero but do not stop later expressions.
func runFiles(session *driver.Session, paths []string, stdout, stderr io.Writer) int {
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "lispy run requires at least one source file")
		return 2
	}
	status := 0
	for _, path := range paths {
		results, err := session.EvalFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		for _, v := range results {
			switch {
			case runtime.IsError(v):
				fmt.Fprintf(stderr, "%s: %s\n", path, runtime.Render(v))
				status = 1
			case session.Config.EchoResults:
				fmt.Fprintln(stdout, runtime.Render(v))
			}
		}
	}
	return status
}
