package staticpage

import (
	"fmt"

	"theroom/internal/pkg/apperr"
)

var ErrUnknownType = fmt.Errorf("%w: unknown page type", apperr.ErrValidation)
