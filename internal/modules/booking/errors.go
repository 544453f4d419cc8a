package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking not found")
	ErrCaregiverNotFound       = errors.New("caregiver not found")
	ErrCaregiverNotVerified    = errors.New("caregiver not verified")
	ErrNotAvailable            = errors.New("caregiver not available")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
