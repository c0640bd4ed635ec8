package cacheerr

import "fmt"

// Error is the concrete structured error returned by every package in the
// cache engine. It is never constructed directly by callers; use the
// per-condition constructors below.
type Error struct {
	code           ErrorCode
	classification Classification
	message        string
	context        map[string]any
	cause          error
}

// New creates a structured error with the default classification for code.
func New(code ErrorCode, message string) *Error {
	return &Error{
		code:           code,
		classification: defaultClassification(code),
		message:        message,
	}
}

// Newf creates a structured error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a structured error that preserves cause for errors.Unwrap.
func Wrap(code ErrorCode, message string, cause error) *Error {
	e := New(code, message)
	e.cause = cause
	return e
}

// Code returns the machine-readable error code.
func (e *Error) Code() ErrorCode { return e.code }

// Classification reports whether the failure is retryable.
func (e *Error) Classification() Classification { return e.classification }

// Message returns the human-readable message, without the code prefix.
func (e *Error) Message() string { return e.message }

// Context returns a defensive copy of the attached structured context, or nil.
func (e *Error) Context() map[string]any {
	if e.context == nil {
		return nil
	}
	ctx := make(map[string]any, len(e.context))
	for k, v := range e.context {
		ctx[k] = v
	}
	return ctx
}

// WithContext returns a copy of e with key=value merged into its context.
func (e *Error) WithContext(key string, value any) *Error {
	ctx := make(map[string]any, len(e.context)+1)
	for k, v := range e.context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Error{
		code:           e.code,
		classification: e.classification,
		message:        e.message,
		context:        ctx,
		cause:          e.cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }
