package settings

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/export"
	"github.com/thoreinstein/configuror/internal/iniconv"
	"github.com/thoreinstein/configuror/pkg/configuror"
)

// Validation errors for settings fields.
var (
	// ErrInvalidOutput indicates an unknown output format.
	ErrInvalidOutput = errors.New("unsupported output format")

	// ErrInvalidInterpolation indicates an unknown INI interpolation mode.
	ErrInvalidInterpolation = errors.New("invalid interpolation")

	// ErrInvalidSource indicates a malformed sources entry.
	ErrInvalidSource = errors.New("invalid source")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks Settings for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(s *Settings) []error {
	if s == nil {
		return []error{errors.New("settings are nil")}
	}

	var errs []error

	if _, err := export.ParseFormat(s.Output); err != nil {
		errs = append(errs, &FieldError{Field: "output", Value: s.Output, Err: ErrInvalidOutput})
	}

	if _, err := iniconv.ParseInterpolation(s.Interpolation); err != nil {
		errs = append(errs, &FieldError{Field: "interpolation", Value: s.Interpolation, Err: ErrInvalidInterpolation})
	}

	for _, p := range s.Files {
		if err := validatePath(p); err != nil {
			errs = append(errs, &FieldError{Field: "files", Value: p, Err: err})
		}
	}

	groups, err := configuror.MappingFilesFromMap(s.Sources)
	if err != nil {
		errs = append(errs, &FieldError{Field: "sources", Value: err.Error(), Err: ErrInvalidSource})
	}
	for _, g := range groups {
		if _, err := configuror.ParseFormat(g.Tag); err != nil {
			errs = append(errs, &FieldError{Field: "sources", Value: g.Tag, Err: ErrInvalidSource})
			continue
		}
		for _, p := range g.Paths {
			if err := validatePath(p); err != nil {
				errs = append(errs, &FieldError{Field: "sources." + g.Tag, Value: p, Err: err})
			}
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an invalid value of one settings field.
// It matches errors.ErrInvalidConfig.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is reports whether target is errors.ErrInvalidConfig.
func (e *FieldError) Is(target error) bool {
	return target == errors.ErrInvalidConfig
}
