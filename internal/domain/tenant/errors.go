package tenant

import (
	"fmt"

	"theroom/internal/pkg/apperr"
)

var (
	ErrTenantNotFound     = fmt.Errorf("%w: hotel not found", apperr.ErrNotFound)
	ErrEmailTaken         = fmt.Errorf("%w: this email is already registered", apperr.ErrConflict)
	ErrDomainTaken        = fmt.Errorf("%w: this domain is already in use", apperr.ErrConflict)
	ErrInvalidToken       = fmt.Errorf("%w: token is invalid or expired", apperr.ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	ErrNotVerified        = fmt.Errorf("%w: email must be verified before login", apperr.ErrForbidden)
	ErrMailFailed         = fmt.Errorf("%w: email could not be sent", apperr.ErrUpstream)
)
