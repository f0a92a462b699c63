package catalog

import (
	"context"

	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

type HotelRepository interface {
	Create(ctx context.Context, h *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	ListActive(ctx context.Context, limit, offset int) ([]domain.Hotel, int64, error)
	Update(ctx context.Context, h *domain.Hotel) error
	Deactivate(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListByHotel(ctx context.Context, hotelID int64, limit, offset int) ([]domain.Room, int64, error)
	Update(ctx context.Context, r *domain.Room) error
	SetStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context, limit, offset int) ([]domain.Service, int64, error)
	Update(ctx context.Context, s *domain.Service) error
	Deactivate(ctx context.Context, id int64) error
}

type ReservationStats interface {
	TopHotels(ctx context.Context, limit int) ([]repository.HotelReservationCount, error)
}
