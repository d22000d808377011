package runtime

import (
	"fmt"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindError Kind = iota
	KindLong
	KindDouble
	KindSymbol
	KindSExpr
	KindQExpr
	KindFunction
)

// String returns the user-facing type name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "Error"
	case KindLong:
		return "Long"
	case KindDouble:
		return "Double"
	case KindSymbol:
		return "Symbol"
	case KindSExpr:
		return "S-Expression"
	case KindQExpr:
		return "Q-Expression"
	case KindFunction:
		return "Function"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
//
// Values are owned: a container owns its cells, a closure owns its formals,
// body and scope. Handing a Value to another function transfers ownership
// unless the callee documents otherwise. Use Copy to duplicate and Destroy to
// release.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type LongValue struct {
	Val int64
}

func (v *LongValue) Kind() Kind { return KindLong }

type DoubleValue struct {
	Val float64
}

func (v *DoubleValue) Kind() Kind { return KindDouble }

type SymbolValue struct {
	Name string
}

func (v *SymbolValue) Kind() Kind { return KindSymbol }

func Long(n int64) *LongValue       { return &LongValue{Val: n} }
func Double(f float64) *DoubleValue { return &DoubleValue{Val: f} }
func Symbol(name string) *SymbolValue {
	return &SymbolValue{Name: name}
}

// Bool converts a Go truth value into the language's Long 1/0.
func Bool(b bool) *LongValue {
	if b {
		return Long(1)
	}
	return Long(0)
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// List is the ordered cell storage shared by S- and Q-expressions.
type List struct {
	Cells []Value
}

// Len reports the number of cells.
func (l *List) Len() int { return len(l.Cells) }

// Add appends x, taking ownership of it.
func (l *List) Add(x Value) {
	l.Cells = append(l.Cells, x)
}

// Pop removes and returns the cell at i, keeping the order of the rest.
// An out-of-range index yields an IndexError value and leaves the list intact.
func (l *List) Pop(i int) Value {
	if i < 0 || i >= len(l.Cells) {
		return Errorf(IndexError, "Index %d out of range for expression of length %d", i, len(l.Cells))
	}
	x := l.Cells[i]
	copy(l.Cells[i:], l.Cells[i+1:])
	l.Cells[len(l.Cells)-1] = nil
	l.Cells = l.Cells[:len(l.Cells)-1]
	return x
}

// Take pops the cell at i and destroys everything that remains.
func (l *List) Take(i int) Value {
	x := l.Pop(i)
	l.destroyCells()
	return x
}

// Append moves every cell of other onto the end of l, leaving other empty.
func (l *List) Append(other *List) {
	l.Cells = append(l.Cells, other.Cells...)
	other.Cells = nil
}

func (l *List) destroyCells() {
	for i, cell := range l.Cells {
		Destroy(cell)
		l.Cells[i] = nil
	}
	l.Cells = nil
}

type SExprValue struct {
	List
}

func (v *SExprValue) Kind() Kind { return KindSExpr }

type QExprValue struct {
	List
}

func (v *QExprValue) Kind() Kind { return KindQExpr }

// SExpr builds an S-expression owning cells.
func SExpr(cells ...Value) *SExprValue {
	return &SExprValue{List: List{Cells: cells}}
}

// QExpr builds a Q-expression owning cells.
func QExpr(cells ...Value) *QExprValue {
	return &QExprValue{List: List{Cells: cells}}
}

// Quote moves the cells of an S-expression into a new Q-expression.
// The receiver is left empty.
func (v *SExprValue) Quote() *QExprValue {
	q := &QExprValue{List: List{Cells: v.Cells}}
	v.Cells = nil
	return q
}

// Unquote moves the cells of a Q-expression into a new S-expression.
// The receiver is left empty.
func (v *QExprValue) Unquote() *SExprValue {
	s := &SExprValue{List: List{Cells: v.Cells}}
	v.Cells = nil
	return s
}

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// BuiltinFunc implements a primitive. It owns args and must consume them.
type BuiltinFunc func(env *Environment, args *SExprValue) Value

// Primitive is the identity of a builtin. Two builtin values are equal only
// when they share the same *Primitive.
type Primitive struct {
	Name string
	Fn   BuiltinFunc
	// Introspective primitives run when named alone, e.g. a bare `ls`.
	Introspective bool
}

type BuiltinValue struct {
	Prim *Primitive
}

func (v *BuiltinValue) Kind() Kind { return KindFunction }

// Name returns the registered primitive name.
func (v *BuiltinValue) Name() string {
	if v.Prim == nil {
		return ""
	}
	return v.Prim.Name
}

// ClosureValue is a user-defined function. Formals are consumed as arguments
// are bound, so a partially applied closure carries fewer formals and a
// scope holding the bindings made so far.
type ClosureValue struct {
	Formals *QExprValue
	Body    *QExprValue
	Env     *Environment
}

func (v *ClosureValue) Kind() Kind { return KindFunction }

// Lambda builds a closure with a fresh private scope.
func Lambda(formals, body *QExprValue) *ClosureValue {
	return &ClosureValue{Formals: formals, Body: body, Env: NewEnvironment(nil)}
}
