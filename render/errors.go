package render

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines render error kinds.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindTimeout    ErrorKind = "timeout"
	KindCanceled   ErrorKind = "canceled"
	KindInternal   ErrorKind = "internal"
)

// Error wraps failures with a kind and an optional fine-grained code.
// The code survives into API error payloads so callers can dispatch on
// the exact rejection reason without parsing messages.
type Error struct {
	Kind ErrorKind
	Code string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new render error.
func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// NewCodedError creates a render error carrying a fine-grained code.
func NewCodedError(kind ErrorKind, code, msg string, err error) *Error {
	return &Error{Kind: kind, Code: code, Msg: msg, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	code := ""
	msg := err.Error()

	var renderErr *Error
	if errors.As(err, &renderErr) {
		kind = renderErr.Kind
		code = renderErr.Code
		if renderErr.Msg != "" {
			msg = renderErr.Msg
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}

	textCode := code
	if textCode == "" {
		textCode = string(kind)
	}

	switch kind {
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode(textCode)
	case KindNotFound:
		return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode(textCode)
	case KindTimeout:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("timeout")
	case KindCanceled:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode(textCode)
	}
}

// KindFromError maps an error to its render error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var renderErr *Error
	if errors.As(err, &renderErr) {
		return renderErr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	return KindInternal
}

// CodeFromError extracts the fine-grained code, if the error carries one.
func CodeFromError(err error) string {
	var renderErr *Error
	if errors.As(err, &renderErr) {
		return renderErr.Code
	}
	return ""
}
