package domain

import "time"

type Reservation struct {
	ID     int64 `json:"id"`
	RoomID int64 `json:"room_id" validate:"required"`
	UserID int64 `json:"user_id" validate:"required"`

	// ServiceIDs keeps insertion order and permits duplicates: the same
	// service booked twice is billed twice.
	ServiceIDs []int64 `json:"service_ids,omitempty"`

	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
