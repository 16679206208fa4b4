package mechanic

import "errors"

var (
	ErrProfileNotFound = errors.New("mechanic profile not found")
	ErrValidation      = errors.New("validation error")
)
