package booking

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("booking not found")
	ErrForbidden  = errors.New("operation not allowed for this actor")
	// ErrConflict: the booking is not in a status the requested
	// transition allows.
	ErrConflict = errors.New("booking status does not allow this transition")
)
