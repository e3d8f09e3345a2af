package media

import (
	"fmt"

	"theroom/internal/pkg/apperr"
)

var (
	ErrUploadNotFound  = fmt.Errorf("%w: upload not found", apperr.ErrNotFound)
	ErrFileTooLarge    = fmt.Errorf("%w: file exceeds maximum allowed size", apperr.ErrValidation)
	ErrInvalidMimeType = fmt.Errorf("%w: file type is not allowed", apperr.ErrValidation)
	ErrImageTooLarge   = fmt.Errorf("%w: image dimensions exceed the allowed pixel count", apperr.ErrValidation)
	ErrEmptyFile       = fmt.Errorf("%w: file is empty", apperr.ErrValidation)
	ErrTooManyFiles    = fmt.Errorf("%w: too many files", apperr.ErrValidation)
	ErrUploadFailed    = fmt.Errorf("%w: upload failed", apperr.ErrUpstream)
)
