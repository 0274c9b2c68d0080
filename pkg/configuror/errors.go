package configuror

import "github.com/thoreinstein/configuror/internal/errors"

// Error kinds, matched with errors.Is.
var (
	ErrNotFound         = errors.ErrNotFound
	ErrInvalidType      = errors.ErrInvalidType
	ErrInvalidValue     = errors.ErrInvalidValue
	ErrDecode           = errors.ErrDecode
	ErrUnknownExtension = errors.ErrUnknownExtension
)

// DecodeError reports a file whose content does not follow its format.
type DecodeError = errors.DecodeError
