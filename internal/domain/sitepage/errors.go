package sitepage

import (
	"fmt"

	"theroom/internal/pkg/apperr"
)

var (
	ErrPageNotFound   = fmt.Errorf("%w: page not found", apperr.ErrNotFound)
	ErrSlugTaken      = fmt.Errorf("%w: this URL is already in use", apperr.ErrConflict)
	ErrSystemPage     = fmt.Errorf("%w: system pages cannot be deleted", apperr.ErrForbidden)
	ErrSystemPageSlug = fmt.Errorf("%w: the URL of a system page cannot be changed", apperr.ErrForbidden)
)
