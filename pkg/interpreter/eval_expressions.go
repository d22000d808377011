package interpreter

import (
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

// Eval evaluates v in env and returns the result. Eval takes ownership of v.
func (i *Interpreter) Eval(env *runtime.Environment, v runtime.Value) runtime.Value {
	switch expr := v.(type) {
	case *runtime.SymbolValue:
		return env.Get(expr.Name)
	case *runtime.SExprValue:
		return i.evalSExpr(env, expr)
	default:
		return v
	}
}

func (i *Interpreter) evalSExpr(env *runtime.Environment, expr *runtime.SExprValue) runtime.Value {
	if prim := i.introspectiveCall(env, expr); prim != nil {
		runtime.Destroy(expr)
		return prim.Fn(env, runtime.SExpr())
	}

	for idx, cell := range expr.Cells {
		expr.Cells[idx] = i.Eval(env, cell)
	}
	for idx, cell := range expr.Cells {
		if runtime.IsError(cell) {
			return expr.Take(idx)
		}
	}

	switch expr.Len() {
	case 0:
		return expr
	case 1:
		return i.Eval(env, expr.Take(0))
	}

	head := expr.Pop(0)
	if head.Kind() != runtime.KindFunction {
		runtime.Destroy(head)
		runtime.Destroy(expr)
		return runtime.Errorf(runtime.TypeMismatch, "S-Expression starts with incorrect type. Got %s, Expected %s.",
			head.Kind(), runtime.KindFunction)
	}
	return i.apply(env, head, expr)
}

// introspectiveCall reports the primitive to run when expr is a lone symbol
// bound to an introspective builtin such as `ls`.
func (i *Interpreter) introspectiveCall(env *runtime.Environment, expr *runtime.SExprValue) *runtime.Primitive {
	if expr.Len() != 1 {
		return nil
	}
	sym, ok := expr.Cells[0].(*runtime.SymbolValue)
	if !ok {
		return nil
	}
	bound, ok := env.Lookup(sym.Name)
	if !ok {
		return nil
	}
	builtin, ok := bound.(*runtime.BuiltinValue)
	if !ok || builtin.Prim == nil || !builtin.Prim.Introspective {
		return nil
	}
	return builtin.Prim
}

// apply calls fn with args in the caller's environment. It owns both.
func (i *Interpreter) apply(env *runtime.Environment, fn runtime.Value, args *runtime.SExprValue) runtime.Value {
	switch f := fn.(type) {
	case *runtime.BuiltinValue:
		return f.Prim.Fn(env, args)
	case *runtime.ClosureValue:
		return i.applyClosure(env, f, args)
	default:
		runtime.Destroy(fn)
		runtime.Destroy(args)
		return runtime.Errorf(runtime.TypeMismatch, "Cannot apply %s. Expected %s.", fn.Kind(), runtime.KindFunction)
	}
}

// applyClosure binds args to the closure's formals one at a time. Running
// out of arguments early yields the partially applied closure; otherwise the
// body runs in the closure's scope, linked to the caller's environment.
func (i *Interpreter) applyClosure(env *runtime.Environment, fn *runtime.ClosureValue, args *runtime.SExprValue) runtime.Value {
	given, total := args.Len(), fn.Formals.Len()

	abort := func(err *runtime.ErrorValue) runtime.Value {
		runtime.Destroy(fn)
		runtime.Destroy(args)
		return err
	}

	for args.Len() > 0 {
		if fn.Formals.Len() == 0 {
			return abort(runtime.Errorf(runtime.ArityMismatch,
				"Function passed too many arguments. Got %d, Expected %d.", given, total))
		}
		name, err := popFormal(fn)
		if err != nil {
			return abort(err)
		}
		if name == "&" {
			if fn.Formals.Len() != 1 {
				return abort(errVariadicFormat())
			}
			rest, err := popFormal(fn)
			if err != nil {
				return abort(err)
			}
			fn.Env.Define(rest, args.Quote())
			break
		}
		fn.Env.Define(name, args.Pop(0))
	}
	runtime.Destroy(args)

	if fn.Formals.Len() > 0 && isSymbol(fn.Formals.Cells[0], "&") {
		if fn.Formals.Len() != 2 {
			runtime.Destroy(fn)
			return errVariadicFormat()
		}
		popFormal(fn)
		rest, err := popFormal(fn)
		if err != nil {
			runtime.Destroy(fn)
			return err
		}
		fn.Env.Define(rest, runtime.QExpr())
	}

	if fn.Formals.Len() > 0 {
		return fn
	}

	if err := fn.Env.SetParent(env); err != nil {
		runtime.Destroy(fn)
		return runtime.Errorf(runtime.MalformedSpecialForm, "Function call rejected: %s", err.Error())
	}
	body := fn.Body.Unquote()
	result := i.evalSExpr(fn.Env, body)
	runtime.Destroy(fn)
	return result
}

func popFormal(fn *runtime.ClosureValue) (string, *runtime.ErrorValue) {
	formal := fn.Formals.Pop(0)
	sym, ok := formal.(*runtime.SymbolValue)
	if !ok {
		runtime.Destroy(formal)
		return "", runtime.Errorf(runtime.TypeMismatch, "Function formal is not a Symbol. Got %s, Expected %s.",
			formal.Kind(), runtime.KindSymbol)
	}
	return sym.Name, nil
}

func isSymbol(v runtime.Value, name string) bool {
	sym, ok := v.(*runtime.SymbolValue)
	return ok && sym.Name == name
}

func errVariadicFormat() *runtime.ErrorValue {
	return runtime.Errorf(runtime.MalformedSpecialForm, "Function format invalid. Symbol '&' not followed by single symbol.")
}
