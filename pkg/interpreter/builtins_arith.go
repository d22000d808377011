package interpreter

import (
	"math"

	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

type arithmeticOp struct {
	long   func(a, b int64) (int64, *runtime.ErrorValue)
	double func(a, b float64) (float64, *runtime.ErrorValue)
}

var arithmeticOrder = []string{"+", "-", "*", "/", "^", "%", "min", "max"}

var arithmeticOps = map[string]arithmeticOp{
	"+": {
		long:   func(a, b int64) (int64, *runtime.ErrorValue) { return a + b, nil },
		double: func(a, b float64) (float64, *runtime.ErrorValue) { return a + b, nil },
	},
	"-": {
		long:   func(a, b int64) (int64, *runtime.ErrorValue) { return a - b, nil },
		double: func(a, b float64) (float64, *runtime.ErrorValue) { return a - b, nil },
	},
	"*": {
		long:   func(a, b int64) (int64, *runtime.ErrorValue) { return a * b, nil },
		double: func(a, b float64) (float64, *runtime.ErrorValue) { return a * b, nil },
	},
	"/": {
		long: func(a, b int64) (int64, *runtime.ErrorValue) {
			if b == 0 {
				return 0, runtime.ErrDivideByZero()
			}
			return a / b, nil
		},
		double: func(a, b float64) (float64, *runtime.ErrorValue) {
			if b == 0 {
				return 0, runtime.ErrDivideByZero()
			}
			return a / b, nil
		},
	},
	"%": {
		long: func(a, b int64) (int64, *runtime.ErrorValue) {
			if b == 0 {
				return 0, runtime.ErrDivideByZero()
			}
			return a % b, nil
		},
		double: func(a, b float64) (float64, *runtime.ErrorValue) {
			if b == 0 {
				return 0, runtime.ErrDivideByZero()
			}
			return math.Mod(a, b), nil
		},
	},
	"^": {
		long: powLong,
		double: func(a, b float64) (float64, *runtime.ErrorValue) {
			return math.Pow(a, b), nil
		},
	},
	"min": {
		long:   func(a, b int64) (int64, *runtime.ErrorValue) { return min(a, b), nil },
		double: func(a, b float64) (float64, *runtime.ErrorValue) { return math.Min(a, b), nil },
	},
	"max": {
		long:   func(a, b int64) (int64, *runtime.ErrorValue) { return max(a, b), nil },
		double: func(a, b float64) (float64, *runtime.ErrorValue) { return math.Max(a, b), nil },
	},
}

// powLong raises base to exp by repeated squaring. Negative exponents
// truncate toward zero like integer division does.
func powLong(base, exp int64) (int64, *runtime.ErrorValue) {
	if exp < 0 {
		switch base {
		case 0:
			return 0, runtime.ErrDivideByZero()
		case 1:
			return 1, nil
		case -1:
			if exp%2 == 0 {
				return 1, nil
			}
			return -1, nil
		default:
			return 0, nil
		}
	}
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result, nil
}

func arithmeticBuiltin(name string) runtime.BuiltinFunc {
	return func(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
		return applyArithmetic(name, args)
	}
}

// applyArithmetic folds args left to right. The result stays a Long while
// every operand is a Long and becomes a Double otherwise.
func applyArithmetic(name string, args *runtime.SExprValue) runtime.Value {
	op, ok := arithmeticOps[name]
	if !ok {
		return fail(args, runtime.Errorf(runtime.UnknownOperator, "Unknown operator '%s'", name))
	}
	if args.Len() == 0 {
		return fail(args, runtime.ErrArity(name, 0, 1))
	}
	allLong := true
	for idx, cell := range args.Cells {
		switch cell.Kind() {
		case runtime.KindLong:
		case runtime.KindDouble:
			allLong = false
		default:
			return fail(args, runtime.ErrType(name, idx, cell.Kind(), "Number"))
		}
	}
	defer runtime.Destroy(args)

	if allLong {
		acc := args.Cells[0].(*runtime.LongValue).Val
		if name == "-" && args.Len() == 1 {
			return runtime.Long(-acc)
		}
		for _, cell := range args.Cells[1:] {
			next, err := op.long(acc, cell.(*runtime.LongValue).Val)
			if err != nil {
				return err
			}
			acc = next
		}
		return runtime.Long(acc)
	}

	acc := toFloat(args.Cells[0])
	if name == "-" && args.Len() == 1 {
		return runtime.Double(-acc)
	}
	for _, cell := range args.Cells[1:] {
		next, err := op.double(acc, toFloat(cell))
		if err != nil {
			return err
		}
		acc = next
	}
	return runtime.Double(acc)
}

func toFloat(v runtime.Value) float64 {
	switch n := v.(type) {
	case *runtime.LongValue:
		return float64(n.Val)
	case *runtime.DoubleValue:
		return n.Val
	default:
		return math.NaN()
	}
}
