package runtime

// Copy returns a deep copy of v that shares no mutable structure with it.
// Closure scopes are cloned binding by binding; builtins share their
// immutable primitive.
func Copy(v Value) Value {
	switch x := v.(type) {
	case nil:
		return nil
	case *ErrorValue:
		return &ErrorValue{Code: x.Code, Message: x.Message}
	case *LongValue:
		return &LongValue{Val: x.Val}
	case *DoubleValue:
		return &DoubleValue{Val: x.Val}
	case *SymbolValue:
		return &SymbolValue{Name: x.Name}
	case *SExprValue:
		return &SExprValue{List: copyList(&x.List)}
	case *QExprValue:
		return &QExprValue{List: copyList(&x.List)}
	case *BuiltinValue:
		return &BuiltinValue{Prim: x.Prim}
	case *ClosureValue:
		return &ClosureValue{
			Formals: &QExprValue{List: copyList(&x.Formals.List)},
			Body:    &QExprValue{List: copyList(&x.Body.List)},
			Env:     x.Env.Clone(),
		}
	default:
		return v
	}
}

func copyList(l *List) List {
	if l.Cells == nil {
		return List{}
	}
	cells := make([]Value, len(l.Cells))
	for i, c := range l.Cells {
		cells[i] = Copy(c)
	}
	return List{Cells: cells}
}

// Destroy releases v and everything it owns. Containers and closures are
// cleared so a value destroyed twice, or used after destruction, is empty
// rather than aliased.
func Destroy(v Value) {
	switch x := v.(type) {
	case *SExprValue:
		x.destroyCells()
	case *QExprValue:
		x.destroyCells()
	case *ClosureValue:
		if x.Formals != nil {
			x.Formals.destroyCells()
		}
		if x.Body != nil {
			x.Body.destroyCells()
		}
		if x.Env != nil {
			x.Env.Destroy()
		}
	}
}
