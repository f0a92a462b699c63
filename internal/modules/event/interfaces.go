package event

import (
	"context"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListActive(ctx context.Context, limit, offset int) ([]repository.EventWithHotel, int64, error)
	Update(ctx context.Context, e *domain.Event) error
	Deactivate(ctx context.Context, id int64) error
	HasConflict(ctx context.Context, roomID int64, date time.Time, excludeID int64) (bool, error)
}

type HotelRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}
