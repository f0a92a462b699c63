package invoice

import "errors"

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotFound            = errors.New("invoice not found")
	ErrDuplicate           = errors.New("invoice already exists for this reservation")
	ErrInvalidState        = errors.New("invalid invoice state transition")
	ErrValidation          = errors.New("validation error")
)
