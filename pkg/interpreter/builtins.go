package interpreter

import (
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

func (i *Interpreter) registerBuiltins() {
	// List primitives
	i.defineBuiltin("list", builtinList)
	i.defineBuiltin("head", builtinHead)
	i.defineBuiltin("tail", builtinTail)
	i.defineBuiltin("init", builtinInit)
	i.defineBuiltin("eval", i.builtinEval)
	i.defineBuiltin("join", builtinJoin)
	i.defineBuiltin("len", builtinLen)
	i.defineBuiltin("cons", builtinCons)

	// Special forms
	i.defineBuiltin("def", builtinDef)
	i.defineBuiltin("=", builtinPut)
	i.defineBuiltin(`\`, builtinLambda)
	i.defineBuiltin("if", i.builtinIf)
	i.definePrimitive(&runtime.Primitive{Name: "ls", Fn: builtinLs, Introspective: true})

	for _, name := range arithmeticOrder {
		i.defineBuiltin(name, arithmeticBuiltin(name))
	}
	for _, name := range orderingOrder {
		i.defineBuiltin(name, orderingBuiltin(name))
	}
	i.defineBuiltin("==", builtinEq)
	i.defineBuiltin("!=", builtinNe)
	i.defineBuiltin("and", logicalBuiltin("and", true))
	i.defineBuiltin("&&", logicalBuiltin("&&", true))
	i.defineBuiltin("or", logicalBuiltin("or", false))
	i.defineBuiltin("||", logicalBuiltin("||", false))
}

func (i *Interpreter) defineBuiltin(name string, fn runtime.BuiltinFunc) {
	i.definePrimitive(&runtime.Primitive{Name: name, Fn: fn})
}

func (i *Interpreter) definePrimitive(prim *runtime.Primitive) {
	i.global.Define(prim.Name, &runtime.BuiltinValue{Prim: prim})
}

// fail releases args and returns err. Builtins own their arguments, so every
// early return goes through here.
func fail(args *runtime.SExprValue, err *runtime.ErrorValue) runtime.Value {
	runtime.Destroy(args)
	return err
}

func checkCount(name string, args *runtime.SExprValue, want int) *runtime.ErrorValue {
	if args.Len() != want {
		return runtime.ErrArity(name, args.Len(), want)
	}
	return nil
}

func checkKind(name string, args *runtime.SExprValue, idx int, want runtime.Kind) *runtime.ErrorValue {
	if got := args.Cells[idx].Kind(); got != want {
		return runtime.ErrType(name, idx, got, want.String())
	}
	return nil
}

func checkNonEmpty(name string, args *runtime.SExprValue, idx int) *runtime.ErrorValue {
	if q, ok := args.Cells[idx].(*runtime.QExprValue); ok && q.Len() == 0 {
		return runtime.ErrEmpty(name)
	}
	return nil
}
