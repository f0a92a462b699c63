package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// ValidRoomStatus reports whether s is one of the known room states.
func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

// Room is never hard-deleted; it is taken out of rotation by flipping Status.
type Room struct {
	ID        int64           `json:"id"`
	HotelID   int64           `json:"hotel_id" validate:"required"`
	Number    string          `json:"number" validate:"required"`
	Capacity  int             `json:"capacity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
	Status    RoomStatus      `json:"status"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
