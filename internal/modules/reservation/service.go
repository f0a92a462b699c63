package reservation

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	reservations ReservationRepository
	rooms        RoomRepository
	users        UserRepository
	services     ServiceRepository
}

func NewService(
	reservations ReservationRepository,
	rooms RoomRepository,
	users UserRepository,
	services ServiceRepository,
) *Service {
	return &Service{
		reservations: reservations,
		rooms:        rooms,
		users:        users,
		services:     services,
	}
}

// Create validates every referenced entity, runs the availability check and
// persists the reservation. Service resolution is all-or-nothing: a single
// unknown or inactive service id fails the whole request.
func (s *Service) Create(ctx context.Context, req CreateReservationRequest) (*ReservationResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if !room.Active {
		return nil, ErrRoomNotFound
	}
	if room.Status == domain.RoomMaintenance {
		return nil, ErrRoomOutOfOrder
	}

	ok, err := s.users.Exists(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	if err := s.resolveServices(ctx, req.ServiceIDs); err != nil {
		return nil, err
	}

	free, err := s.reservations.IsRoomAvailable(ctx, req.RoomID, req.StartDate, req.EndDate, 0)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrNotAvailable
	}

	res := &domain.Reservation{
		RoomID:     req.RoomID,
		UserID:     req.UserID,
		ServiceIDs: req.ServiceIDs,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Active:     true,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	details, err := s.reservations.GetDetails(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	resp := toReservationResponse(details)
	return &resp, nil
}

// Update applies a partial patch. Replaced room/user references are
// re-validated; the availability check re-runs whenever the room or either
// date changes.
func (s *Service) Update(ctx context.Context, id int64, req UpdateReservationRequest) (*ReservationResponse, error) {
	current, err := s.reservations.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !current.Active {
		return nil, ErrNotFound
	}

	datesTouched := false

	if req.RoomID != nil && *req.RoomID != current.RoomID {
		room, err := s.rooms.GetByID(ctx, *req.RoomID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		if err != nil {
			return nil, err
		}
		if !room.Active {
			return nil, ErrRoomNotFound
		}
		if room.Status == domain.RoomMaintenance {
			return nil, ErrRoomOutOfOrder
		}
		current.RoomID = *req.RoomID
		datesTouched = true
	}

	if req.UserID != nil && *req.UserID != current.UserID {
		ok, err := s.users.Exists(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUserNotFound
		}
		current.UserID = *req.UserID
	}

	if req.ServiceIDs != nil {
		if err := s.resolveServices(ctx, *req.ServiceIDs); err != nil {
			return nil, err
		}
		current.ServiceIDs = *req.ServiceIDs
	}

	if req.StartDate != nil && !req.StartDate.Equal(current.StartDate) {
		current.StartDate = *req.StartDate
		datesTouched = true
	}
	if req.EndDate != nil && !req.EndDate.Equal(current.EndDate) {
		current.EndDate = *req.EndDate
		datesTouched = true
	}

	if !current.EndDate.After(current.StartDate) {
		return nil, ErrValidation
	}

	if datesTouched {
		free, err := s.reservations.IsRoomAvailable(ctx, current.RoomID, current.StartDate, current.EndDate, id)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, ErrNotAvailable
		}
	}

	if err := s.reservations.Update(ctx, current); err != nil {
		return nil, err
	}

	details, err := s.reservations.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toReservationResponse(details)
	return &resp, nil
}

// Cancel soft-deletes the reservation. Cancelling twice leaves the same end
// state and reports no error.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	_, err := s.reservations.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	return s.reservations.Deactivate(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*ReservationResponse, error) {
	details, err := s.reservations.GetDetails(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !details.Reservation.Active {
		return nil, ErrNotFound
	}
	resp := toReservationResponse(details)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]ReservationResponse, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	rows, total, err := s.reservations.ListActiveDetails(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ReservationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toReservationResponse(&rows[i]))
	}
	return out, total, nil
}

// MonthlyStats returns reservation counts per month of the current UTC year.
func (s *Service) MonthlyStats(ctx context.Context) ([12]int64, error) {
	return s.reservations.MonthlyCounts(ctx, time.Now().UTC().Year())
}

// CurrentMonthCount counts active reservations created in the current UTC
// calendar month.
func (s *Service) CurrentMonthCount(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return s.reservations.CountCreatedBetween(ctx, from, to)
}

func (s *Service) resolveServices(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := s.services.GetActiveByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return ErrServiceNotFound
		}
	}
	return nil
}
