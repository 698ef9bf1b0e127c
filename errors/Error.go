package errors

import (
	"errors"
	"fmt"
)

type ERR int32

const (
	ERR_UNKNOWN ERR = iota
	ERR_INVALID_ARGUMENT
	ERR_THRESHOLD_EXCEEDED
	ERR_PROCESSING
	ERR_CONFIGURATION
	ERR_CONTEXT_CANCELED
	ERR_STORAGE
	ERR_TX_INVALID
	ERR_BLOCK_INVALID
)

var ERR_name = map[ERR]string{
	ERR_UNKNOWN:            "UNKNOWN",
	ERR_INVALID_ARGUMENT:   "INVALID_ARGUMENT",
	ERR_THRESHOLD_EXCEEDED: "THRESHOLD_EXCEEDED",
	ERR_PROCESSING:         "PROCESSING",
	ERR_CONFIGURATION:      "CONFIGURATION",
	ERR_CONTEXT_CANCELED:   "CONTEXT_CANCELED",
	ERR_STORAGE:            "STORAGE",
	ERR_TX_INVALID:         "TX_INVALID",
	ERR_BLOCK_INVALID:      "BLOCK_INVALID",
}

func (c ERR) String() string {
	if name, ok := ERR_name[c]; ok {
		return name
	}

	return fmt.Sprintf("ERR(%d)", int32(c))
}

type Error struct {
	code       ERR
	message    string
	wrappedErr error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.wrappedErr == nil {
		return fmt.Sprintf("Error: %s (error code: %d), Message: %v", e.code, e.code, e.message)
	}

	return fmt.Sprintf("Error: %s (error code: %d), Message: %v, Wrapped err: %v", e.code, e.code, e.message, e.wrappedErr)
}

// Is reports whether error codes match anywhere in the wrap chain.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}

	var targetError *Error
	if !errors.As(target, &targetError) {
		return false
	}

	if e.code == targetError.code {
		return true
	}

	var wrapped *Error
	if errors.As(e.wrappedErr, &wrapped) {
		return wrapped.Is(target)
	}

	return false
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

// New builds an Error. When the last param is an error it is wrapped, the
// remaining params format the message.
func New(code ERR, message string, params ...interface{}) *Error {
	var wErr error

	if len(params) > 0 {
		if err, ok := params[len(params)-1].(error); ok {
			wErr = err
			params = params[:len(params)-1]
		}
	}

	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}

	if _, ok := ERR_name[code]; !ok {
		return &Error{
			code:       code,
			message:    "invalid error code",
			wrappedErr: wErr,
		}
	}

	return &Error{
		code:       code,
		message:    message,
		wrappedErr: wErr,
	}
}

// Is and As forward to the standard library so callers only import this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
