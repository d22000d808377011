package interpreter

import (
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

func builtinDef(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	return bindVariables("def", env, args, env.DefineGlobal)
}

func builtinPut(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	return bindVariables("=", env, args, env.Define)
}

// bindVariables implements `def` and `=`: the first argument is a Q-expression
// of symbols, followed by one value per symbol.
func bindVariables(name string, env *runtime.Environment, args *runtime.SExprValue, bind func(string, runtime.Value)) runtime.Value {
	if args.Len() == 0 {
		return fail(args, runtime.ErrArity(name, 0, 1))
	}
	if err := checkKind(name, args, 0, runtime.KindQExpr); err != nil {
		return fail(args, err)
	}
	syms := args.Cells[0].(*runtime.QExprValue)
	for _, cell := range syms.Cells {
		if cell.Kind() != runtime.KindSymbol {
			return fail(args, runtime.Errorf(runtime.TypeMismatch,
				"Function '%s' cannot define non-symbol. Got %s, Expected %s.", name, cell.Kind(), runtime.KindSymbol))
		}
	}
	if syms.Len() != args.Len()-1 {
		return fail(args, runtime.Errorf(runtime.ArityMismatch,
			"Function '%s' passed incorrect number of values for symbols. Got %d, Expected %d.", name, args.Len()-1, syms.Len()))
	}

	args.Pop(0)
	for _, cell := range syms.Cells {
		bind(cell.(*runtime.SymbolValue).Name, args.Pop(0))
	}
	runtime.Destroy(syms)
	runtime.Destroy(args)
	return runtime.SExpr()
}

func builtinLambda(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if err := checkCount(`\`, args, 2); err != nil {
		return fail(args, err)
	}
	for idx := 0; idx < 2; idx++ {
		if err := checkKind(`\`, args, idx, runtime.KindQExpr); err != nil {
			return fail(args, err)
		}
	}
	for _, cell := range args.Cells[0].(*runtime.QExprValue).Cells {
		if cell.Kind() != runtime.KindSymbol {
			return fail(args, runtime.Errorf(runtime.TypeMismatch,
				"Cannot define non-symbol. Got %s, Expected %s.", cell.Kind(), runtime.KindSymbol))
		}
	}
	formals := args.Pop(0).(*runtime.QExprValue)
	body := args.Take(0).(*runtime.QExprValue)
	return runtime.Lambda(formals, body)
}

// builtinIf evaluates the chosen branch and discards the other unevaluated.
func (i *Interpreter) builtinIf(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if err := checkCount("if", args, 3); err != nil {
		return fail(args, err)
	}
	if err := checkKind("if", args, 0, runtime.KindLong); err != nil {
		return fail(args, err)
	}
	for idx := 1; idx < 3; idx++ {
		if err := checkKind("if", args, idx, runtime.KindQExpr); err != nil {
			return fail(args, err)
		}
	}
	branch := 2
	if args.Cells[0].(*runtime.LongValue).Val != 0 {
		branch = 1
	}
	chosen := args.Take(branch).(*runtime.QExprValue)
	return i.Eval(env, chosen.Unquote())
}
