package runtime

// Equal compares two values structurally. Numbers never coerce across
// Long/Double; closures compare formals and body but not their scope.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *ErrorValue:
		return x.Message == b.(*ErrorValue).Message
	case *LongValue:
		return x.Val == b.(*LongValue).Val
	case *DoubleValue:
		return x.Val == b.(*DoubleValue).Val
	case *SymbolValue:
		return x.Name == b.(*SymbolValue).Name
	case *SExprValue:
		return cellsEqual(x.Cells, b.(*SExprValue).Cells)
	case *QExprValue:
		return cellsEqual(x.Cells, b.(*QExprValue).Cells)
	case *BuiltinValue:
		y, ok := b.(*BuiltinValue)
		return ok && x.Prim == y.Prim
	case *ClosureValue:
		y, ok := b.(*ClosureValue)
		if !ok {
			return false
		}
		return cellsEqual(x.Formals.Cells, y.Formals.Cells) && cellsEqual(x.Body.Cells, y.Body.Cells)
	}
	return false
}

func cellsEqual(as, bs []Value) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}
