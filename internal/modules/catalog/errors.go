package catalog

import "errors"

var (
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrValidation      = errors.New("validation failed")
)
