package runtime

import (
	"strconv"
	"strings"
)

// Render formats a value the way the REPL prints it.
func Render(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil:
		b.WriteString("()")
	case *LongValue:
		b.WriteString(strconv.FormatInt(x.Val, 10))
	case *DoubleValue:
		b.WriteString(strconv.FormatFloat(x.Val, 'f', 6, 64))
	case *ErrorValue:
		b.WriteString("Error: ")
		b.WriteString(x.Message)
	case *SymbolValue:
		b.WriteString(x.Name)
	case *SExprValue:
		writeCells(b, x.Cells, '(', ')')
	case *QExprValue:
		writeCells(b, x.Cells, '{', '}')
	case *BuiltinValue:
		b.WriteString("<builtin>")
	case *ClosureValue:
		b.WriteString(`(\ `)
		writeCells(b, x.Formals.Cells, '{', '}')
		b.WriteByte(' ')
		writeCells(b, x.Body.Cells, '{', '}')
		b.WriteByte(')')
	}
}

func writeCells(b *strings.Builder, cells []Value, open, close byte) {
	b.WriteByte(open)
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeValue(b, c)
	}
	b.WriteByte(close)
}
