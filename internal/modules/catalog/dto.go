package catalog

import (
	"time"

	"hotelier/internal/domain"

	"github.com/shopspring/decimal"
)

type CreateHotelRequest struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address" binding:"required"`
	Category  string   `json:"category"`
	Amenities []string `json:"amenities"`
}

type UpdateHotelRequest struct {
	Name      *string   `json:"name"`
	Address   *string   `json:"address"`
	Category  *string   `json:"category"`
	Amenities *[]string `json:"amenities"`
}

type HotelResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Category  string    `json:"category"`
	Amenities []string  `json:"amenities"`
	CreatedAt time.Time `json:"created_at"`
}

func toHotelResponse(h *domain.Hotel) HotelResponse {
	return HotelResponse{
		ID:        h.ID,
		Name:      h.Name,
		Address:   h.Address,
		Category:  h.Category,
		Amenities: h.Amenities,
		CreatedAt: h.CreatedAt,
	}
}

type CreateRoomRequest struct {
	Number   string          `json:"number" binding:"required"`
	Capacity int             `json:"capacity" binding:"required,min=1"`
	Price    decimal.Decimal `json:"price" binding:"required"`
}

type UpdateRoomRequest struct {
	Number   *string          `json:"number"`
	Capacity *int             `json:"capacity"`
	Price    *decimal.Decimal `json:"price"`
}

type SetRoomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RoomResponse struct {
	ID       int64           `json:"id"`
	HotelID  int64           `json:"hotel_id"`
	Number   string          `json:"number"`
	Capacity int             `json:"capacity"`
	Price    decimal.Decimal `json:"price"`
	Status   string          `json:"status"`
}

func toRoomResponse(r *domain.Room) RoomResponse {
	return RoomResponse{
		ID:       r.ID,
		HotelID:  r.HotelID,
		Number:   r.Number,
		Capacity: r.Capacity,
		Price:    r.Price,
		Status:   string(r.Status),
	}
}

type CreateServiceRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
}

type UpdateServiceRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type ServiceResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func toServiceResponse(s *domain.Service) ServiceResponse {
	return ServiceResponse{ID: s.ID, Name: s.Name, Price: s.Price}
}
