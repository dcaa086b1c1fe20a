package script

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds
const (
	SyntaxError    = "SyntaxError"
	ReferenceError = "ReferenceError"
	TypeError      = "TypeError"
	RangeError     = "RangeError"
	GenericError   = "Error"
	TimeoutError   = "TimeoutError"
)

// Error is a runtime or syntax error raised by the interpreter
type Error struct {
	Kind    string
	Message string
}

// Error returns "<Kind>: <message>"
func (e *Error) Error() string {
	return e.Kind + ": " + e.Message
}

// NewError creates an error of kind
func NewError(kind string, format string, args ...interface{}) *Error {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: format}
}

// Throw carries a value raised with the throw statement
type Throw struct {
	Value interface{}
}

// Error returns description of the thrown value
func (t *Throw) Error() string {
	kind, message, ok := errorFields(t.Value)
	if ok {
		return kind + ": " + message
	}
	return "Uncaught " + Inspect(t.Value)
}

// Interrupt reports that the evaluation context ended; it cannot be caught by snippets
type Interrupt struct {
	Err error
}

func (e *Interrupt) Error() string {
	_, message := e.describe()
	return message
}

func (e *Interrupt) Unwrap() error {
	return e.Err
}

func (e *Interrupt) describe() (string, string) {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return TimeoutError, "Script execution timed out"
	}
	return GenericError, "Script execution interrupted"
}

// Describe returns the kind and message of an error leaving the interpreter.
// Thrown values that are not error objects report an empty kind.
func Describe(err error) (kind string, message string) {
	var interrupt *Interrupt
	if errors.As(err, &interrupt) {
		return interrupt.describe()
	}
	var scriptErr *Error
	if errors.As(err, &scriptErr) {
		return scriptErr.Kind, scriptErr.Message
	}
	var thrown *Throw
	if errors.As(err, &thrown) {
		if kind, message, ok := errorFields(thrown.Value); ok {
			return kind, message
		}
		return "", Inspect(thrown.Value)
	}
	return GenericError, err.Error()
}

// Uncaught formats an error the way an interactive shell reports it
func Uncaught(err error) string {
	kind, message := Describe(err)
	if kind == "" {
		return "Uncaught " + message
	}
	return "Uncaught " + kind + ": " + message
}

// errorFields extracts name and message of an error-like object
func errorFields(value interface{}) (string, string, bool) {
	obj, ok := value.(*Object)
	if !ok || !obj.isError() {
		return "", "", false
	}
	name := ToString(obj.Get("name"))
	message := ToString(obj.Get("message"))
	return name, message, true
}

// errorValue converts a Go error into the value seen by a catch clause
func (i *Interpreter) errorValue(err error) interface{} {
	var thrown *Throw
	if errors.As(err, &thrown) {
		return thrown.Value
	}
	kind, message := Describe(err)
	return i.newErrorObject(kind, message)
}

// signal errors never escape the interpreter
var (
	errShortCircuit = errors.New("optional chain short circuit")
)
