package domain

import "time"

// EventWindow is how long a single event occupies its room.
const EventWindow = time.Hour

// Event always belongs to a hotel; RoomID is set when the event occupies a
// specific room, in which case it takes part in availability conflicts over
// [Date, Date+EventWindow).
type Event struct {
	ID          int64     `json:"id"`
	HotelID     int64     `json:"hotel_id" validate:"required"`
	RoomID      *int64    `json:"room_id,omitempty"`
	Date        time.Time `json:"date" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
