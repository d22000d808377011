package interpreter

import (
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

func builtinList(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	return args.Quote()
}

// singleList validates that args holds exactly one Q-expression and, when
// nonEmpty is set, that it has at least one element.
func singleList(name string, args *runtime.SExprValue, nonEmpty bool) *runtime.ErrorValue {
	if err := checkCount(name, args, 1); err != nil {
		return err
	}
	if err := checkKind(name, args, 0, runtime.KindQExpr); err != nil {
		return err
	}
	if nonEmpty {
		return checkNonEmpty(name, args, 0)
	}
	return nil
}

func builtinHead(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if err := singleList("head", args, true); err != nil {
		return fail(args, err)
	}
	q := args.Take(0).(*runtime.QExprValue)
	for q.Len() > 1 {
		runtime.Destroy(q.Pop(q.Len() - 1))
	}
	return q
}

func builtinTail(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if err := singleList("tail", args, true); err != nil {
		return fail(args, err)
	}
	q := args.Take(0).(*runtime.QExprValue)
	runtime.Destroy(q.Pop(0))
	return q
}

func builtinInit(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if err := singleList("init", args, true); err != nil {
		return fail(args, err)
	}
	q := args.Take(0).(*runtime.QExprValue)
	runtime.Destroy(q.Pop(q.Len() - 1))
	return q
}

func (i *Interpreter) builtinEval(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if err := singleList("eval", args, false); err != nil {
		return fail(args, err)
	}
	q := args.Take(0).(*runtime.QExprValue)
	return i.Eval(env, q.Unquote())
}

func builtinJoin(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if args.Len() == 0 {
		return fail(args, runtime.ErrArity("join", 0, 1))
	}
	for idx := range args.Cells {
		if err := checkKind("join", args, idx, runtime.KindQExpr); err != nil {
			return fail(args, err)
		}
	}
	out := args.Pop(0).(*runtime.QExprValue)
	for args.Len() > 0 {
		next := args.Pop(0).(*runtime.QExprValue)
		out.Append(&next.List)
	}
	runtime.Destroy(args)
	return out
}

func builtinLen(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if err := singleList("len", args, false); err != nil {
		return fail(args, err)
	}
	n := args.Cells[0].(*runtime.QExprValue).Len()
	runtime.Destroy(args)
	return runtime.Long(int64(n))
}

func builtinCons(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if err := checkCount("cons", args, 2); err != nil {
		return fail(args, err)
	}
	if got := args.Cells[0].Kind(); got == runtime.KindQExpr {
		return fail(args, runtime.ErrType("cons", 0, got, "non Q-Expression"))
	}
	if err := checkKind("cons", args, 1, runtime.KindQExpr); err != nil {
		return fail(args, err)
	}
	x := args.Pop(0)
	q := args.Take(0).(*runtime.QExprValue)
	q.Cells = append([]runtime.Value{x}, q.Cells...)
	return q
}

// builtinLs lists the names bound in the current scope, oldest first.
func builtinLs(env *runtime.Environment, args *runtime.SExprValue) runtime.Value {
	if err := checkCount("ls", args, 0); err != nil {
		return fail(args, err)
	}
	runtime.Destroy(args)
	out := runtime.QExpr()
	for _, name := range env.Keys() {
		out.Add(runtime.Symbol(name))
	}
	return out
}
