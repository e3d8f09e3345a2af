package room

import (
	"fmt"

	"theroom/internal/pkg/apperr"
)

var (
	ErrRoomNotFound  = fmt.Errorf("%w: room not found", apperr.ErrNotFound)
	ErrMediaNotFound = fmt.Errorf("%w: media not found on room", apperr.ErrNotFound)
	ErrPriceRequired = fmt.Errorf("%w: price is required", apperr.ErrValidation)
	ErrInvalidPrice  = fmt.Errorf("%w: price must be a non-negative number", apperr.ErrValidation)
)
