package impl

import (
	"fmt"

	"collegeconnect/internal/domain"
)

var (
	ErrEmptyPassword   = fmt.Errorf("%w: empty password", domain.ErrInvalidInput)
	ErrEmptyCredential = fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	ErrEmptyEmail      = fmt.Errorf("%w: empty email", domain.ErrInvalidInput)
	ErrPasswordLength  = fmt.Errorf("%w: password too short", domain.ErrInvalidInput)
	ErrInvalidToken    = fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	ErrSessionEnded    = fmt.Errorf("%w: session expired or revoked", domain.ErrUnauthorized)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...)
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrConflict}, args...)...)
}
