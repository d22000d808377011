package runtime

import "fmt"

// ErrorCode classifies an Error value.
type ErrorCode int

const (
	GenericError ErrorCode = iota
	UnboundSymbol
	TypeMismatch
	ArityMismatch
	EmptyListAccess
	DivideByZero
	MalformedSpecialForm
	InvalidNumberLiteral
	UnknownOperator
	IndexError
	UnreadableNode
)

func (c ErrorCode) String() string {
	switch c {
	case UnboundSymbol:
		return "UnboundSymbol"
	case TypeMismatch:
		return "TypeMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case EmptyListAccess:
		return "EmptyListAccess"
	case DivideByZero:
		return "DivideByZero"
	case MalformedSpecialForm:
		return "MalformedSpecialForm"
	case InvalidNumberLiteral:
		return "InvalidNumberLiteral"
	case UnknownOperator:
		return "UnknownOperator"
	case IndexError:
		return "IndexError"
	case UnreadableNode:
		return "UnreadableNode"
	default:
		return "Error"
	}
}

// ErrorValue is the language's error variant. It doubles as a Go error so
// host code can wrap it with %w.
type ErrorValue struct {
	Code    ErrorCode
	Message string
}

func (v *ErrorValue) Kind() Kind { return KindError }

func (v *ErrorValue) Error() string { return v.Message }

// Is matches another *ErrorValue with the same code, which lets callers use
// errors.Is(err, &ErrorValue{Code: DivideByZero}).
func (v *ErrorValue) Is(target error) bool {
	t, ok := target.(*ErrorValue)
	if !ok {
		return false
	}
	return t.Code == v.Code
}

// Errorf builds an Error value.
func Errorf(code ErrorCode, format string, args ...any) *ErrorValue {
	return &ErrorValue{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether v is an Error value.
func IsError(v Value) bool {
	_, ok := v.(*ErrorValue)
	return ok
}

func ErrUnbound(name string) *ErrorValue {
	return Errorf(UnboundSymbol, "Unbound symbol '%s'", name)
}

func ErrType(fn string, index int, got Kind, expected string) *ErrorValue {
	return Errorf(TypeMismatch, "Function '%s' passed incorrect type for argument %d. Got %s, Expected %s.",
		fn, index, got, expected)
}

func ErrArity(fn string, given, expected int) *ErrorValue {
	return Errorf(ArityMismatch, "Function '%s' passed incorrect number of arguments. Got %d, Expected %d.",
		fn, given, expected)
}

func ErrEmpty(fn string) *ErrorValue {
	return Errorf(EmptyListAccess, "Function '%s' passed {} for argument 0.", fn)
}

func ErrDivideByZero() *ErrorValue {
	return Errorf(DivideByZero, "Division by zero")
}
