package catalog

import (
	"context"
	"errors"

	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"gorm.io/gorm"
)

const defaultTopHotels = 5

type Service struct {
	hotels       HotelRepository
	rooms        RoomRepository
	services     ServiceRepository
	reservations ReservationStats
}

func NewService(hotels HotelRepository, rooms RoomRepository, services ServiceRepository, reservations ReservationStats) *Service {
	return &Service{hotels: hotels, rooms: rooms, services: services, reservations: reservations}
}

func (s *Service) CreateHotel(ctx context.Context, req CreateHotelRequest) (*domain.Hotel, error) {
	hotel := &domain.Hotel{
		Name:      req.Name,
		Address:   req.Address,
		Category:  req.Category,
		Amenities: req.Amenities,
		Active:    true,
	}
	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *Service) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	if !hotel.Active {
		return nil, ErrHotelNotFound
	}
	return hotel, nil
}

func (s *Service) ListHotels(ctx context.Context, limit, offset int) ([]domain.Hotel, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.hotels.ListActive(ctx, limit, offset)
}

func (s *Service) UpdateHotel(ctx context.Context, id int64, req UpdateHotelRequest) (*domain.Hotel, error) {
	hotel, err := s.GetHotel(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		hotel.Name = *req.Name
	}
	if req.Address != nil {
		hotel.Address = *req.Address
	}
	if req.Category != nil {
		hotel.Category = *req.Category
	}
	if req.Amenities != nil {
		hotel.Amenities = *req.Amenities
	}

	if err := s.hotels.Update(ctx, hotel); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return hotel, nil
}

// DeleteHotel soft-deletes. Rooms of the hotel stay in place.
func (s *Service) DeleteHotel(ctx context.Context, id int64) error {
	if err := s.hotels.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHotelNotFound
		}
		return err
	}
	return nil
}

func (s *Service) MostReservedHotels(ctx context.Context, limit int) ([]repository.HotelReservationCount, error) {
	if limit <= 0 {
		limit = defaultTopHotels
	}
	return s.reservations.TopHotels(ctx, limit)
}

func (s *Service) CreateRoom(ctx context.Context, hotelID int64, req CreateRoomRequest) (*domain.Room, error) {
	exists, err := s.hotels.Exists(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrHotelNotFound
	}
	if req.Price.IsNegative() {
		return nil, ErrValidation
	}

	room := &domain.Room{
		HotelID:  hotelID,
		Number:   req.Number,
		Capacity: req.Capacity,
		Price:    req.Price,
		Status:   domain.RoomAvailable,
		Active:   true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, hotelID int64, limit, offset int) ([]domain.Room, int64, error) {
	exists, err := s.hotels.Exists(ctx, hotelID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrHotelNotFound
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.rooms.ListByHotel(ctx, hotelID, limit, offset)
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if req.Number != nil {
		room.Number = *req.Number
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrValidation
		}
		room.Capacity = *req.Capacity
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrValidation
		}
		room.Price = *req.Price
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) SetRoomStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error) {
	if !domain.ValidRoomStatus(status) {
		return nil, ErrValidation
	}

	if err := s.rooms.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	if req.Price.IsNegative() {
		return nil, ErrValidation
	}

	svc := &domain.Service{
		Name:   req.Name,
		Price:  req.Price,
		Active: true,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context, limit, offset int) ([]domain.Service, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.services.ListActive(ctx, limit, offset)
}

func (s *Service) UpdateService(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.Active {
		return nil, ErrServiceNotFound
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrValidation
		}
		svc.Price = *req.Price
	}

	if err := s.services.Update(ctx, svc); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.services.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return nil
}
