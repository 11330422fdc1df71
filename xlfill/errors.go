package xlfill

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines fill pipeline error kinds.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindFetch      ErrorKind = "fetch"
	KindFont       ErrorKind = "font"
	KindRender     ErrorKind = "render"
	KindTimeout    ErrorKind = "timeout"
	KindCanceled   ErrorKind = "canceled"
	KindInternal   ErrorKind = "internal"
)

// FillError wraps errors with a kind.
type FillError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *FillError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *FillError) Unwrap() error {
	return e.Err
}

// NewError creates a new fill error.
func NewError(kind ErrorKind, msg string, err error) *FillError {
	return &FillError{Kind: kind, Msg: msg, Err: err}
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
	msg := err.Error()

	var fillErr *FillError
	if errors.As(err, &fillErr) {
		kind = fillErr.Kind
		if fillErr.Msg != "" {
			msg = fillErr.Msg
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}

	switch kind {
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("validation")
	case KindNotFound:
		return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode("not_found")
	case KindFetch:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("fetch")
	case KindFont:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("font")
	case KindRender:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("render")
	case KindTimeout:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("timeout")
	case KindCanceled:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its fill error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var fillErr *FillError
	if errors.As(err, &fillErr) {
		return fillErr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	return KindInternal
}
