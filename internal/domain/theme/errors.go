package theme

import (
	"fmt"

	"theroom/internal/pkg/apperr"
)

var (
	ErrThemeNotFound = fmt.Errorf("%w: theme not found", apperr.ErrNotFound)
	ErrNoActiveTheme = fmt.Errorf("%w: no active theme", apperr.ErrNotFound)
	ErrActiveTheme   = fmt.Errorf("%w: active theme cannot be deleted, activate another theme first", apperr.ErrConflict)
)
