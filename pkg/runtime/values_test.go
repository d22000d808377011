package runtime

import (
	"errors"
	"testing"
)

func sampleValues() []Value {
	closure := Lambda(QExpr(Symbol("x"), Symbol("y")), QExpr(Symbol("+"), Symbol("x"), Symbol("y")))
	closure.Env.Define("z", Long(9))
	return []Value{
		Errorf(DivideByZero, "Division by zero"),
		Long(42),
		Double(2.5),
		Symbol("head"),
		SExpr(Symbol("+"), Long(1), Double(2)),
		QExpr(Long(1), QExpr(Long(2), QExpr())),
		&BuiltinValue{Prim: &Primitive{Name: "list"}},
		closure,
	}
}

func TestCopyIsEqualAndIndependent(t *testing.T) {
	for _, original := range sampleValues() {
		dup := Copy(original)
		if !Equal(original, dup) {
			t.Fatalf("copy of %s is not equal: %s", Render(original), Render(dup))
		}
		want := Render(original)
		Destroy(original)
		if got := Render(dup); got != want {
			t.Fatalf("destroying original changed copy: want %s, got %s", want, got)
		}
		Destroy(dup)
	}
}

func TestCopyClosureClonesScope(t *testing.T) {
	closure := Lambda(QExpr(Symbol("x")), QExpr(Symbol("x")))
	closure.Env.Define("captured", QExpr(Long(1)))

	dup := Copy(closure).(*ClosureValue)
	if dup.Env == closure.Env {
		t.Fatalf("expected cloned environment")
	}
	Destroy(closure)
	got := dup.Env.Get("captured")
	if !Equal(got, QExpr(Long(1))) {
		t.Fatalf("clone lost binding after original destroyed: %s", Render(got))
	}
}

func TestEqualDoesNotCoerceNumbers(t *testing.T) {
	if Equal(Long(1), Double(1)) {
		t.Fatalf("Long and Double must never be equal")
	}
	if !Equal(Double(1.5), Double(1.5)) {
		t.Fatalf("expected equal doubles")
	}
	if Equal(Symbol("a"), Errorf(GenericError, "a")) {
		t.Fatalf("symbol and error with same text must differ")
	}
}

func TestEqualLists(t *testing.T) {
	a := QExpr(Long(1), Long(2), QExpr(Long(3)))
	b := QExpr(Long(1), Long(2), QExpr(Long(3)))
	if !Equal(a, b) {
		t.Fatalf("expected nested lists to be equal")
	}
	if Equal(QExpr(Long(1), Long(2)), QExpr(Long(1), Long(2), Long(3))) {
		t.Fatalf("lists of different length must differ")
	}
	if Equal(SExpr(Long(1)), QExpr(Long(1))) {
		t.Fatalf("S- and Q-expressions must differ")
	}
}

func TestEqualFunctions(t *testing.T) {
	prim := &Primitive{Name: "+"}
	if !Equal(&BuiltinValue{Prim: prim}, &BuiltinValue{Prim: prim}) {
		t.Fatalf("builtins sharing a primitive must be equal")
	}
	if Equal(&BuiltinValue{Prim: prim}, &BuiltinValue{Prim: &Primitive{Name: "+"}}) {
		t.Fatalf("builtins with distinct primitives must differ")
	}

	a := Lambda(QExpr(Symbol("x")), QExpr(Symbol("x")))
	b := Lambda(QExpr(Symbol("x")), QExpr(Symbol("x")))
	a.Env.Define("only-in-a", Long(1))
	if !Equal(a, b) {
		t.Fatalf("closures with same formals and body must be equal regardless of scope")
	}
	if Equal(a, &BuiltinValue{Prim: prim}) {
		t.Fatalf("closure never equals builtin")
	}
}

func TestListPopAndTake(t *testing.T) {
	q := QExpr(Long(1), Long(2), Long(3))
	x := q.Pop(1)
	if !Equal(x, Long(2)) {
		t.Fatalf("unexpected pop result %s", Render(x))
	}
	if !Equal(q, QExpr(Long(1), Long(3))) {
		t.Fatalf("pop did not preserve order: %s", Render(q))
	}

	bad := q.Pop(5)
	var errVal *ErrorValue
	if !errors.As(asError(bad), &errVal) || errVal.Code != IndexError {
		t.Fatalf("expected IndexError, got %s", Render(bad))
	}
	if q.Len() != 2 {
		t.Fatalf("failed pop must not modify list")
	}

	first := q.Take(0)
	if !Equal(first, Long(1)) || q.Len() != 0 {
		t.Fatalf("take should return element and empty the rest")
	}
}

func TestQuoteMovesCells(t *testing.T) {
	s := SExpr(Long(1), Long(2))
	q := s.Quote()
	if s.Len() != 0 || q.Len() != 2 {
		t.Fatalf("quote must move cells")
	}
	back := q.Unquote()
	if q.Len() != 0 || !Equal(back, SExpr(Long(1), Long(2))) {
		t.Fatalf("unquote must move cells back")
	}
}

func TestRender(t *testing.T) {
	cases := []struct {
		val  Value
		want string
	}{
		{Long(-7), "-7"},
		{Double(3), "3.000000"},
		{Errorf(DivideByZero, "Division by zero"), "Error: Division by zero"},
		{Symbol("def"), "def"},
		{SExpr(Symbol("+"), Long(1), Long(2)), "(+ 1 2)"},
		{QExpr(Long(1), QExpr()), "{1 {}}"},
		{&BuiltinValue{Prim: &Primitive{Name: "head"}}, "<builtin>"},
		{Lambda(QExpr(Symbol("x")), QExpr(Symbol("+"), Symbol("x"), Long(1))), `(\ {x} {+ x 1})`},
	}
	for _, tc := range cases {
		if got := Render(tc.val); got != tc.want {
			t.Fatalf("render: want %q, got %q", tc.want, got)
		}
	}
}

func TestErrorValueMatchesByCode(t *testing.T) {
	err := error(ErrDivideByZero())
	if !errors.Is(err, &ErrorValue{Code: DivideByZero}) {
		t.Fatalf("expected errors.Is to match by code")
	}
	if errors.Is(err, &ErrorValue{Code: TypeMismatch}) {
		t.Fatalf("unexpected match across codes")
	}
}

func asError(v Value) error {
	if e, ok := v.(*ErrorValue); ok {
		return e
	}
	return nil
}
