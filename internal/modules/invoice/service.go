package invoice

import (
	"context"
	"errors"
	"math"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	invoices     InvoiceRepository
	reservations ReservationRepository
	rooms        RoomRepository
	services     ServiceRepository
}

func NewService(
	invoices InvoiceRepository,
	reservations ReservationRepository,
	rooms RoomRepository,
	services ServiceRepository,
) *Service {
	return &Service{
		invoices:     invoices,
		reservations: reservations,
		rooms:        rooms,
		services:     services,
	}
}

// billableDays counts the stay inclusively: both boundary days are billed,
// and a partial trailing day counts as a full one.
func billableDays(start, end time.Time) int64 {
	return int64(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// Generate derives a priced invoice from a reservation: room rate times the
// inclusive stay length plus the current price of every referenced service,
// duplicates counted. Exactly one invoice may exist per reservation.
func (s *Service) Generate(ctx context.Context, reservationID int64) (*InvoiceResponse, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	if !res.Active {
		return nil, ErrReservationNotFound
	}

	exists, err := s.invoices.ExistsForReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	room, err := s.rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}

	days := billableDays(res.StartDate, res.EndDate)
	total := room.Price.Mul(decimal.NewFromInt(days))

	if len(res.ServiceIDs) > 0 {
		prices, err := s.services.GetActiveByIDs(ctx, res.ServiceIDs)
		if err != nil {
			return nil, err
		}
		// duplicates bill twice: iterate the reference list, not the map
		for _, sid := range res.ServiceIDs {
			svc, ok := prices[sid]
			if !ok {
				return nil, ErrValidation
			}
			total = total.Add(svc.Price)
		}
	}
	total = total.Round(2)

	inv := &domain.Invoice{
		Number:        uuid.NewString(),
		ReservationID: res.ID,
		UserID:        res.UserID,
		HotelID:       room.HotelID,
		RoomID:        room.ID,
		ServiceIDs:    res.ServiceIDs,
		Total:         total,
		Status:        domain.InvoicePending,
		Active:        true,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		// two concurrent generate calls can both pass the pre-check; the
		// unique index on reservation_id decides the race
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// MarkPaid transitions PENDING -> PAID. There is no way out of PAID.
func (s *Service) MarkPaid(ctx context.Context, id int64) (*InvoiceResponse, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !inv.Active || inv.Status != domain.InvoicePending {
		return nil, ErrInvalidState
	}

	if err := s.invoices.UpdateStatus(ctx, id, domain.InvoicePaid); err != nil {
		return nil, err
	}

	inv.Status = domain.InvoicePaid
	return toInvoiceResponse(inv), nil
}

// Cancel voids an unpaid invoice. Paid invoices are immutable records and
// cannot be voided.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	inv, err := s.invoices.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if inv.Status == domain.InvoicePaid {
		return ErrInvalidState
	}

	return s.invoices.Deactivate(ctx, id)
}

func (s *Service) List(ctx context.Context, filter repository.InvoiceFilter, limit, offset int) ([]InvoiceListItem, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	rows, total, err := s.invoices.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]InvoiceListItem, 0, len(rows))
	for _, d := range rows {
		out = append(out, toInvoiceListItem(d))
	}
	return out, total, nil
}

// TotalIncome sums active PAID invoices.
func (s *Service) TotalIncome(ctx context.Context) (decimal.Decimal, error) {
	return s.invoices.SumPaidTotals(ctx)
}

// MonthlyIncome returns PAID income per month of the given year, index 0 =
// January, zero-filled.
func (s *Service) MonthlyIncome(ctx context.Context, year int) ([12]decimal.Decimal, error) {
	return s.invoices.PaidTotalsByMonth(ctx, year)
}

func toInvoiceResponse(inv *domain.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		ReservationID: inv.ReservationID,
		UserID:        inv.UserID,
		HotelID:       inv.HotelID,
		RoomID:        inv.RoomID,
		ServiceIDs:    inv.ServiceIDs,
		Total:         inv.Total,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt,
	}
}
