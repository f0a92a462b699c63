package reservation

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrRoomNotFound    = errors.New("room not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrServiceNotFound = errors.New("one or more services not found")
	ErrNotFound        = errors.New("reservation not found")
	ErrNotAvailable    = errors.New("room not available for the requested dates")
	ErrRoomOutOfOrder  = errors.New("room is under maintenance")
)
