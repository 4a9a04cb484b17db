package interp

import (
	"errors"
	"fmt"

	"github.com/jcorbin/retrobasic/eval"
)

// ErrorKind is shared with package eval: most taxonomy entries
// originate in expression evaluation, the rest (stack discipline,
// undefined lines, out-of-data) are interpreter-level.
type ErrorKind = eval.ErrorKind

const (
	ErrSyntax             = eval.ErrSyntax
	ErrTypeMismatch       = eval.ErrTypeMismatch
	ErrUndefinedLine      = eval.ErrUndefinedLine
	ErrSubscriptRange     = eval.ErrSubscriptRange
	ErrArrayNotDeclared   = eval.ErrArrayNotDeclared
	ErrOutOfData          = eval.ErrOutOfData
	ErrReturnWithoutGosub = eval.ErrReturnWithoutGosub
	ErrNextWithoutFor     = eval.ErrNextWithoutFor
	ErrForWithoutNext     = eval.ErrForWithoutNext
	ErrDivisionByZero     = eval.ErrDivisionByZero
	ErrIllegalQuantity    = eval.ErrIllegalQuantity
	ErrOverflow           = eval.ErrOverflow
	ErrUndefinedFunction  = eval.ErrUndefinedFunction
)

// RuntimeError is the concrete error type surfaced to the host on any
// uncaught fault during a run (spec.md §7): a classified kind, a
// message, the source line where it occurred, and optional context.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Context string
}

func (e *RuntimeError) Error() string {
	if e.Line != 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// asRuntimeError classifies err (typically an *eval.Error, or a plain
// error from interpreter-level stack discipline checks) into a
// RuntimeError tagged with the current line.
func asRuntimeError(err error, line int) *RuntimeError {
	if err == nil {
		return nil
	}
	var re *RuntimeError
	if errors.As(err, &re) {
		if re.Line == 0 {
			re.Line = line
		}
		return re
	}
	var ee *eval.Error
	if errors.As(err, &ee) {
		return &RuntimeError{Kind: ee.Kind, Message: ee.Message, Line: line}
	}
	return &RuntimeError{Kind: ErrTypeMismatch, Message: err.Error(), Line: line}
}

func runtimeErrf(kind ErrorKind, line int, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line}
}
