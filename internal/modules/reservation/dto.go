package reservation

import (
	"time"

	"hotelier/internal/repository"

	"github.com/shopspring/decimal"
)

type CreateReservationRequest struct {
	RoomID     int64     `json:"room_id" binding:"required"`
	UserID     int64     `json:"user_id" binding:"required"`
	ServiceIDs []int64   `json:"service_ids"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
}

// UpdateReservationRequest is a partial patch; nil fields stay untouched.
type UpdateReservationRequest struct {
	RoomID     *int64     `json:"room_id"`
	UserID     *int64     `json:"user_id"`
	ServiceIDs *[]int64   `json:"service_ids"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

type RoomRef struct {
	ID     int64           `json:"id"`
	Number string          `json:"number"`
	Price  decimal.Decimal `json:"price"`
}

type UserRef struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type ServiceRef struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ReservationResponse carries display-relevant fields of the referenced
// documents only, never the full records.
type ReservationResponse struct {
	ID        int64        `json:"id"`
	Room      RoomRef      `json:"room"`
	User      UserRef      `json:"user"`
	Services  []ServiceRef `json:"services"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"created_at"`
}

func toReservationResponse(d *repository.ReservationDetails) ReservationResponse {
	services := make([]ServiceRef, 0, len(d.Services))
	for _, l := range d.Services {
		services = append(services, ServiceRef{
			ID:    l.ServiceID,
			Name:  l.Name,
			Price: l.Price,
		})
	}

	return ReservationResponse{
		ID: d.Reservation.ID,
		Room: RoomRef{
			ID:     d.Reservation.RoomID,
			Number: d.RoomNumber,
			Price:  d.RoomPrice,
		},
		User: UserRef{
			ID:    d.Reservation.UserID,
			Email: d.UserEmail,
		},
		Services:  services,
		StartDate: d.Reservation.StartDate,
		EndDate:   d.Reservation.EndDate,
		Active:    d.Reservation.Active,
		CreatedAt: d.Reservation.CreatedAt,
	}
}
