// Package adrerr defines the single error type used across dotadr.
//
// Every failure the tool can report carries a Kind (used to pick an exit
// code and a JSON error category) and a stable Code that scripts can rely on.
package adrerr

import (
	"errors"
	"fmt"
)

// Kind groups error codes into broad categories.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidState
	KindConflict
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindConflict:
		return "conflict"
	case KindUnsupported:
		return "unsupported"
	default:
		return "internal"
	}
}

// Error codes. These are stable and part of the JSON output contract.
const (
	CodeConfigMissing      = "CONFIG_MISSING"
	CodeConfigCorrupt      = "CONFIG_CORRUPT"
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeSettingsInvalid    = "SETTINGS_INVALID"
	CodeDirectoryNotFound  = "DIRECTORY_NOT_FOUND"
	CodeTemplateNotFound   = "TEMPLATE_NOT_FOUND"
	CodeRecordNotFound     = "RECORD_NOT_FOUND"
	CodeSupersededNotFound = "SUPERSEDED_NOT_FOUND"
	CodeSupersededMissing  = "SUPERSEDED_MISSING"
	CodeRecordExists       = "RECORD_EXISTS"
	CodeDirectoryLocked    = "DIRECTORY_LOCKED"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnsupportedCommand = "UNSUPPORTED_COMMAND"
	CodeInternal           = "INTERNAL_ERROR"
)

// Error is the domain error returned by dotadr packages.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code, so sentinel
// comparisons like errors.Is(err, adrerr.New(..., CodeRecordExists, ...)) work.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New builds an error without a cause.
func New(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an error that keeps err as its cause.
func Wrap(err error, kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// NotFound reports an absent directory, file, or record.
func NotFound(code, format string, args ...any) *Error {
	return New(KindNotFound, code, format, args...)
}

// InvalidState reports data that exists but cannot be used.
func InvalidState(code, format string, args ...any) *Error {
	return New(KindInvalidState, code, format, args...)
}

// Conflict reports a write that would clobber existing state.
func Conflict(code, format string, args ...any) *Error {
	return New(KindConflict, code, format, args...)
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the stable code for err, or CodeInternal for foreign errors.
func CodeOf(err error) string {
	if e, ok := As(err); ok {
		return e.Code
	}
	return CodeInternal
}

// KindOf returns the kind for err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// ExitCode maps an error to the process exit status. Every failure is
// terminal for the invocation, so all kinds map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
