package interpreter

import (
	"fmt"

	"github.com/Brandon-Rozek/lispy/pkg/ast"
	"github.com/Brandon-Rozek/lispy/pkg/parser"
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

// Interpreter drives evaluation of lispy values against a global environment
// populated with the builtin primitives and special forms.
type Interpreter struct {
	global *runtime.Environment
}

// New returns an interpreter whose global environment holds every builtin.
func New() *Interpreter {
	i := &Interpreter{global: runtime.NewEnvironment(nil)}
	i.registerBuiltins()
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Evaluate reads a parsed tree and evaluates it in env. A root node holding a
// whole input line is treated as one S-expression, so "+ 1 2" yields 3.
func (i *Interpreter) Evaluate(env *runtime.Environment, root *ast.Node) runtime.Value {
	return i.Eval(env, Read(root))
}

// EvaluateProgram evaluates each top-level expression of a program in the
// global environment and returns the individual results.
func (i *Interpreter) EvaluateProgram(root *ast.Node) []runtime.Value {
	if root == nil {
		return nil
	}
	var results []runtime.Value
	for _, child := range readableChildren(root) {
		results = append(results, i.Eval(i.global, Read(child)))
	}
	return results
}

// EvaluateString parses source as a single input line and evaluates it in
// the global environment. Only syntax errors are returned as Go errors;
// evaluation failures come back as *runtime.ErrorValue results.
func (i *Interpreter) EvaluateString(source string) (runtime.Value, error) {
	root, err := parser.Parse("<input>", source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return i.Evaluate(i.global, root), nil
}
