package models

import "errors"

// Error kinds shared by the repository, services and handlers. Callers wrap
// them with detail via fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("no user with this email and password")
	ErrUnauthorized       = errors.New("unauthorized")
)
