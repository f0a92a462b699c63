package reservation

import (
	"context"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

// ReservationRepository defines the persistence operations the lifecycle
// manager needs.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
	Deactivate(ctx context.Context, id int64) error
	IsRoomAvailable(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error)
	ListActiveDetails(ctx context.Context, limit, offset int) ([]repository.ReservationDetails, int64, error)
	GetDetails(ctx context.Context, id int64) (*repository.ReservationDetails, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	MonthlyCounts(ctx context.Context, year int) ([12]int64, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ServiceRepository interface {
	GetActiveByIDs(ctx context.Context, ids []int64) (map[int64]domain.Service, error)
}
