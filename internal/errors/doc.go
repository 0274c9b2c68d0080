// Package errors provides the error taxonomy shared by the configuror
// loaders and the CLI.
//
// # Kinds
//
// Every loader failure belongs to one kind, checked with [Is]:
//
//   - [ErrNotFound]: a required file does not exist
//   - [ErrInvalidType]: a value of the wrong shape was passed
//   - [ErrInvalidValue]: an enumerated option received an unknown value
//   - [ErrDecode]: file content violates its format, see [DecodeError]
//   - [ErrUnknownExtension]: a file extension or format tag is unsupported
//
// Kind errors keep their message verbatim; the kind is only visible through
// [Is]:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // the file was absent
//	}
//
// Wrapping helpers are re-exported from github.com/cockroachdb/errors so the
// rest of the module imports a single errors package.
//
// # Exit Codes
//
// [ExitError] wraps an error with an exit code and an optional suggestion for
// the CLI. [FromLoadError] maps loader kinds onto ExitUser or ExitSystem.
package errors
