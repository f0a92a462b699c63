package event

import "errors"

var (
	ErrNotFound      = errors.New("event not found")
	ErrHotelNotFound = errors.New("hotel not found")
	ErrRoomNotFound  = errors.New("room not found")
	ErrConflict      = errors.New("room already has an event in this window")
	ErrValidation    = errors.New("validation failed")
)
