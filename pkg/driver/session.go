package driver

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Brandon-Rozek/lispy/pkg/interpreter"
	"github.com/Brandon-Rozek/lispy/pkg/parser"
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

// Session pairs an interpreter with the configuration it was started with.
type Session struct {
	Interp *interpreter.Interpreter
	Config *Config
	logger *log.Logger
}

// NewSession builds a session with a fresh global environment. A nil config
// means DefaultConfig; a nil logger discards trace output.
func NewSession(cfg *Config, logger *log.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{Interp: interpreter.New(), Config: cfg, logger: logger}
}

// LoadPrelude evaluates every configured prelude file. The first file that
// fails to parse, or that produces an Error value, stops loading.
func (s *Session) LoadPrelude() error {
	for _, path := range s.Config.Prelude {
		s.logger.Printf("loading prelude %s", path)
		results, err := s.EvalFile(path)
		if err != nil {
			return fmt.Errorf("prelude: %w", err)
		}
		if errVal := FirstError(results); errVal != nil {
			return fmt.Errorf("prelude %s: %w", path, errVal)
		}
		s.logger.Printf("prelude %s: %d expressions", path, len(results))
	}
	return nil
}

// EvalFile evaluates every top-level expression in the file at path.
func (s *Session) EvalFile(path string) ([]runtime.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.EvalSource(path, string(data))
}

// EvalSource parses source as a program and evaluates it expression by
// expression in the global environment.
func (s *Session) EvalSource(name, source string) ([]runtime.Value, error) {
	root, err := parser.Parse(name, source)
	if err != nil {
		return nil, err
	}
	return s.Interp.EvaluateProgram(root), nil
}

// EvalLine evaluates one line of REPL input as a single S-expression.
// Incomplete input is reported with an error satisfying parser.IsIncomplete.
func (s *Session) EvalLine(line string) (runtime.Value, error) {
	root, err := parser.Parse("<stdin>", line)
	if err != nil {
		return nil, err
	}
	return s.Interp.Evaluate(s.Interp.GlobalEnvironment(), root), nil
}

// FirstError returns the first Error value in results, if any.
func FirstError(results []runtime.Value) *runtime.ErrorValue {
	for _, v := range results {
		if e, ok := v.(*runtime.ErrorValue); ok {
			return e
		}
	}
	return nil
}
