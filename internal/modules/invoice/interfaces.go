package invoice

import (
	"context"

	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"github.com/shopspring/decimal"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	ExistsForReservation(ctx context.Context, reservationID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, filter repository.InvoiceFilter, limit, offset int) ([]repository.InvoiceDetails, int64, error)
	SumPaidTotals(ctx context.Context) (decimal.Decimal, error)
	PaidTotalsByMonth(ctx context.Context, year int) ([12]decimal.Decimal, error)
}

type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type ServiceRepository interface {
	GetActiveByIDs(ctx context.Context, ids []int64) (map[int64]domain.Service, error)
}
