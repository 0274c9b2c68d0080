package errors

import (
	stderrors "errors"
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Error kinds. Every error produced by the loaders matches exactly one of
// these through [Is].
var (
	// ErrNotFound indicates a required file does not exist.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidType indicates a value of the wrong shape was supplied.
	ErrInvalidType = crdb.New("invalid type")

	// ErrInvalidValue indicates a recognized option received an invalid value.
	ErrInvalidValue = crdb.New("invalid value")

	// ErrDecode indicates a file was read but its content is malformed.
	ErrDecode = crdb.New("decode error")

	// ErrUnknownExtension indicates an unsupported file extension or format tag.
	ErrUnknownExtension = crdb.New("unknown extension")

	// ErrInvalidConfig indicates the CLI settings failed validation.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// Re-exported helpers so callers only import one errors package.
var (
	New       = crdb.New
	Newf      = crdb.Newf
	Wrap      = crdb.Wrap
	Wrapf     = crdb.Wrapf
	WithStack = crdb.WithStack
	WithHint  = crdb.WithHint

	// Is and As follow the standard library so kind matching works the
	// same for callers that never import this package.
	Is = stderrors.Is
	As = stderrors.As
)

// KindError carries a human-readable message and the kind it belongs to.
// Its message is returned verbatim so callers can show it as-is.
type KindError struct {
	Kind error
	Msg  string
}

func (e *KindError) Error() string { return e.Msg }

// Is reports whether target is the kind of e.
func (e *KindError) Is(target error) bool { return target == e.Kind }

func kindf(kind error, format string, args ...any) error {
	return crdb.WithStackDepth(&KindError{Kind: kind, Msg: fmt.Sprintf(format, args...)}, 2)
}

// NotFoundf returns an ErrNotFound-kind error.
func NotFoundf(format string, args ...any) error { return kindf(ErrNotFound, format, args...) }

// InvalidTypef returns an ErrInvalidType-kind error.
func InvalidTypef(format string, args ...any) error { return kindf(ErrInvalidType, format, args...) }

// InvalidValuef returns an ErrInvalidValue-kind error.
func InvalidValuef(format string, args ...any) error { return kindf(ErrInvalidValue, format, args...) }

// UnknownExtensionf returns an ErrUnknownExtension-kind error.
func UnknownExtensionf(format string, args ...any) error {
	return kindf(ErrUnknownExtension, format, args...)
}

// DecodeError reports content that violates a format's grammar.
// Path, Line and Fragment are set when they are known.
type DecodeError struct {
	Path     string
	Format   string
	Line     int
	Fragment string

	// Msg overrides the default message built from Path and Format.
	Msg string

	// Err is the underlying decoder error, if any.
	Err error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Line > 0:
		return fmt.Sprintf("file %s: the line n°%d is not correct: \"%s\"", e.Path, e.Line, e.Fragment)
	case e.Path != "":
		return fmt.Sprintf("%s is not well %s formatted", e.Path, e.Format)
	default:
		return fmt.Sprintf("the file is not well %s formatted", e.Format)
	}
}

// Unwrap returns the underlying decoder error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Check your configuror settings file",
	}
}

// FromLoadError classifies a loader error into an ExitError.
// Problems with the caller's input map to ExitUser, everything else to ExitSystem.
func FromLoadError(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr
	}
	switch {
	case Is(err, ErrNotFound):
		return NewUserError(err, "Pass --ignore-missing to skip absent files")
	case Is(err, ErrUnknownExtension):
		return NewUserError(err, "Run: configuror formats")
	case Is(err, ErrDecode), Is(err, ErrInvalidType), Is(err, ErrInvalidValue):
		return NewUserError(err, "")
	default:
		return NewSystemError(err, "")
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
