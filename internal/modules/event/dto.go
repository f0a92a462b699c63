package event

import (
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

type CreateEventRequest struct {
	HotelID     int64     `json:"hotel_id" binding:"required"`
	RoomID      *int64    `json:"room_id"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description" binding:"required"`
}

type UpdateEventRequest struct {
	RoomID      *int64     `json:"room_id"`
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
}

type EventResponse struct {
	ID          int64     `json:"id"`
	HotelID     int64     `json:"hotel_id"`
	HotelName   string    `json:"hotel_name,omitempty"`
	RoomID      *int64    `json:"room_id,omitempty"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		HotelID:     e.HotelID,
		RoomID:      e.RoomID,
		Date:        e.Date,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func toEventListItem(row repository.EventWithHotel) EventResponse {
	out := toEventResponse(&row.Event)
	out.HotelName = row.HotelName
	return out
}
