package interpreter

import (
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

var orderingOrder = []string{"<", "<=", ">", ">="}

var orderingOps = map[string]func(a, b float64) bool{
	"<":  func(a, b float64) bool { return a < b },
	"<=": func(a, b float64) bool { return a <= b },
	">":  func(a, b float64) bool { return a > b },
	">=": func(a, b float64) bool { return a >= b },
}

func orderingBuiltin(name string) runtime.BuiltinFunc {
	return func(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
		return applyOrdering(name, args)
	}
}

// applyOrdering compares two numbers as doubles.
func applyOrdering(name string, args *runtime.SExprValue) runtime.Value {
	cmp, ok := orderingOps[name]
	if !ok {
		return fail(args, runtime.Errorf(runtime.UnknownOperator, "Unknown operator '%s'", name))
	}
	if err := checkCount(name, args, 2); err != nil {
		return fail(args, err)
	}
	for idx, cell := range args.Cells {
		if k := cell.Kind(); k != runtime.KindLong && k != runtime.KindDouble {
			return fail(args, runtime.ErrType(name, idx, k, "Number"))
		}
	}
	result := cmp(toFloat(args.Cells[0]), toFloat(args.Cells[1]))
	runtime.Destroy(args)
	return runtime.Bool(result)
}

func builtinEq(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	return compareEqual("==", args, true)
}

func builtinNe(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	return compareEqual("!=", args, false)
}

func compareEqual(name string, args *runtime.SExprValue, want bool) runtime.Value {
	if err := checkCount(name, args, 2); err != nil {
		return fail(args, err)
	}
	result := runtime.Equal(args.Cells[0], args.Cells[1]) == want
	runtime.Destroy(args)
	return runtime.Bool(result)
}

// logicalBuiltin builds `and`/`or`. Both operands are already evaluated by
// the time the builtin runs, so there is no short-circuit.
func logicalBuiltin(name string, conjunction bool) runtime.BuiltinFunc {
	return func(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
		if err := checkCount(name, args, 2); err != nil {
			return fail(args, err)
		}
		for idx := range args.Cells {
			if err := checkKind(name, args, idx, runtime.KindLong); err != nil {
				return fail(args, err)
			}
		}
		a := args.Cells[0].(*runtime.LongValue).Val != 0
		b := args.Cells[1].(*runtime.LongValue).Val != 0
		runtime.Destroy(args)
		if conjunction {
			return runtime.Bool(a && b)
		}
		return runtime.Bool(a || b)
	}
}
