package event

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	events EventRepository
	hotels HotelRepository
	rooms  RoomRepository
}

func NewService(events EventRepository, hotels HotelRepository, rooms RoomRepository) *Service {
	return &Service{events: events, hotels: hotels, rooms: rooms}
}

func (s *Service) Create(ctx context.Context, req CreateEventRequest) (*domain.Event, error) {
	if !req.Date.After(time.Now().UTC()) {
		return nil, ErrValidation
	}

	exists, err := s.hotels.Exists(ctx, req.HotelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrHotelNotFound
	}

	if req.RoomID != nil {
		if err := s.checkRoom(ctx, req.HotelID, *req.RoomID, 0, req.Date); err != nil {
			return nil, err
		}
	}

	ev := &domain.Event{
		HotelID:     req.HotelID,
		RoomID:      req.RoomID,
		Date:        req.Date,
		Description: req.Description,
		Active:      true,
	}
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Event, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !ev.Active {
		return nil, ErrNotFound
	}
	return ev, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]repository.EventWithHotel, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.events.ListActive(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEventRequest) (*domain.Event, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		if !req.Date.After(time.Now().UTC()) {
			return nil, ErrValidation
		}
		ev.Date = *req.Date
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.RoomID != nil {
		ev.RoomID = req.RoomID
	}

	if ev.RoomID != nil && (req.RoomID != nil || req.Date != nil) {
		if err := s.checkRoom(ctx, ev.HotelID, *ev.RoomID, ev.ID, ev.Date); err != nil {
			return nil, err
		}
	}

	if err := s.events.Update(ctx, ev); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

// Cancel soft-deletes; cancelling an already cancelled event is a no-op.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	if _, err := s.events.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.events.Deactivate(ctx, id)
}

func (s *Service) checkRoom(ctx context.Context, hotelID, roomID, excludeEventID int64, date time.Time) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	if !room.Active || room.HotelID != hotelID {
		return ErrRoomNotFound
	}

	conflict, err := s.events.HasConflict(ctx, roomID, date, excludeEventID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrConflict
	}
	return nil
}
