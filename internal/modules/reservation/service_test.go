package reservation

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	if res != nil {
		res.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) IsRoomAvailable(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error) {
	args := m.Called(ctx, roomID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) ListActiveDetails(ctx context.Context, limit, offset int) ([]repository.ReservationDetails, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repository.ReservationDetails), args.Get(1).(int64), args.Error(2)
}

func (m *MockReservationRepository) GetDetails(ctx context.Context, id int64) (*repository.ReservationDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ReservationDetails), args.Error(1)
}

func (m *MockReservationRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) MonthlyCounts(ctx context.Context, year int) ([12]int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).([12]int64), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetActiveByIDs(ctx context.Context, ids []int64) (map[int64]domain.Service, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Service), args.Error(1)
}

func activeRoom(id, hotelID int64) *domain.Room {
	return &domain.Room{
		ID:       id,
		HotelID:  hotelID,
		Number:   "101",
		Capacity: 2,
		Price:    decimal.NewFromInt(20000),
		Status:   domain.RoomAvailable,
		Active:   true,
	}
}

func newTestService() (*Service, *MockReservationRepository, *MockRoomRepository, *MockUserRepository, *MockServiceRepository) {
	reservations := new(MockReservationRepository)
	rooms := new(MockRoomRepository)
	users := new(MockUserRepository)
	services := new(MockServiceRepository)
	return NewService(reservations, rooms, users, services), reservations, rooms, users, services
}

func TestService_Create_Success(t *testing.T) {
	svc, reservations, rooms, users, services := newTestService()

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	rooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(10, 1), nil)
	users.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	services.On("GetActiveByIDs", mock.Anything, []int64{3, 3}).Return(map[int64]domain.Service{
		3: {ID: 3, Name: "Breakfast", Price: decimal.NewFromInt(3000), Active: true},
	}, nil)
	reservations.On("IsRoomAvailable", mock.Anything, int64(10), start, end, int64(0)).Return(true, nil)
	reservations.On("Create", mock.Anything, mock.Anything).Return(nil)
	reservations.On("GetDetails", mock.Anything, int64(999)).Return(&repository.ReservationDetails{
		Reservation: domain.Reservation{
			ID:         999,
			RoomID:     10,
			UserID:     7,
			ServiceIDs: []int64{3, 3},
			StartDate:  start,
			EndDate:    end,
			Active:     true,
		},
		RoomNumber: "101",
		RoomPrice:  decimal.NewFromInt(20000),
		UserEmail:  "asel@mail.kz",
		Services: []repository.ServiceLine{
			{ServiceID: 3, Name: "Breakfast", Price: decimal.NewFromInt(3000)},
			{ServiceID: 3, Name: "Breakfast", Price: decimal.NewFromInt(3000)},
		},
	}, nil)

	res, err := svc.Create(context.Background(), CreateReservationRequest{
		RoomID:     10,
		UserID:     7,
		ServiceIDs: []int64{3, 3},
		StartDate:  start,
		EndDate:    end,
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, int64(999), res.ID)
	assert.Equal(t, "101", res.Room.Number)
	assert.Equal(t, "asel@mail.kz", res.User.Email)
	assert.Len(t, res.Services, 2)
	reservations.AssertExpectations(t)
}

func TestService_Create_InvalidDates(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	start := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), CreateReservationRequest{
		RoomID:    10,
		UserID:    7,
		StartDate: start,
		EndDate:   start, // zero-length stay
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_RoomNotFound(t *testing.T) {
	svc, _, rooms, _, _ := newTestService()

	rooms.On("GetByID", mock.Anything, int64(10)).Return(nil, gorm.ErrRecordNotFound)

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateReservationRequest{
		RoomID:    10,
		UserID:    7,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
	})

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestService_Create_RoomUnderMaintenance(t *testing.T) {
	svc, _, rooms, _, _ := newTestService()

	room := activeRoom(10, 1)
	room.Status = domain.RoomMaintenance
	rooms.On("GetByID", mock.Anything, int64(10)).Return(room, nil)

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateReservationRequest{
		RoomID:    10,
		UserID:    7,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
	})

	assert.ErrorIs(t, err, ErrRoomOutOfOrder)
}

func TestService_Create_UnknownService(t *testing.T) {
	svc, _, rooms, users, services := newTestService()

	rooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(10, 1), nil)
	users.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	services.On("GetActiveByIDs", mock.Anything, []int64{3, 44}).Return(map[int64]domain.Service{
		3: {ID: 3, Name: "Breakfast", Price: decimal.NewFromInt(3000), Active: true},
	}, nil)

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateReservationRequest{
		RoomID:     10,
		UserID:     7,
		ServiceIDs: []int64{3, 44},
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 2),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_Create_Overlap(t *testing.T) {
	svc, reservations, rooms, users, _ := newTestService()

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	rooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(10, 1), nil)
	users.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	reservations.On("IsRoomAvailable", mock.Anything, int64(10), start, end, int64(0)).Return(false, nil)

	_, err := svc.Create(context.Background(), CreateReservationRequest{
		RoomID:    10,
		UserID:    7,
		StartDate: start,
		EndDate:   end,
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestService_Update_DateChangeRechecksAvailability(t *testing.T) {
	svc, reservations, _, _, _ := newTestService()

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	newEnd := start.AddDate(0, 0, 5)

	reservations.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:        42,
		RoomID:    10,
		UserID:    7,
		StartDate: start,
		EndDate:   end,
		Active:    true,
	}, nil)
	reservations.On("IsRoomAvailable", mock.Anything, int64(10), start, newEnd, int64(42)).Return(false, nil)

	_, err := svc.Update(context.Background(), 42, UpdateReservationRequest{EndDate: &newEnd})

	assert.ErrorIs(t, err, ErrNotAvailable)
	reservations.AssertExpectations(t)
}

func TestService_Update_NoDateChangeSkipsAvailability(t *testing.T) {
	svc, reservations, _, users, _ := newTestService()

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	newUser := int64(8)

	current := &domain.Reservation{
		ID:        42,
		RoomID:    10,
		UserID:    7,
		StartDate: start,
		EndDate:   end,
		Active:    true,
	}
	reservations.On("GetByID", mock.Anything, int64(42)).Return(current, nil)
	users.On("Exists", mock.Anything, newUser).Return(true, nil)
	reservations.On("Update", mock.Anything, mock.Anything).Return(nil)
	reservations.On("GetDetails", mock.Anything, int64(42)).Return(&repository.ReservationDetails{
		Reservation: domain.Reservation{ID: 42, RoomID: 10, UserID: newUser, StartDate: start, EndDate: end, Active: true},
		RoomNumber:  "101",
		RoomPrice:   decimal.NewFromInt(20000),
		UserEmail:   "bekzat@gmail.com",
	}, nil)

	res, err := svc.Update(context.Background(), 42, UpdateReservationRequest{UserID: &newUser})

	assert.NoError(t, err)
	assert.Equal(t, newUser, res.User.ID)
	reservations.AssertNotCalled(t, "IsRoomAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Cancel_Idempotent(t *testing.T) {
	svc, reservations, _, _, _ := newTestService()

	reservations.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:     42,
		Active: false, // already cancelled
	}, nil)
	reservations.On("Deactivate", mock.Anything, int64(42)).Return(nil)

	err := svc.Cancel(context.Background(), 42)

	assert.NoError(t, err)
	reservations.AssertExpectations(t)
}

func TestService_Cancel_NotFound(t *testing.T) {
	svc, reservations, _, _, _ := newTestService()

	reservations.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Cancel(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Get_InactiveHidden(t *testing.T) {
	svc, reservations, _, _, _ := newTestService()

	reservations.On("GetDetails", mock.Anything, int64(42)).Return(&repository.ReservationDetails{
		Reservation: domain.Reservation{ID: 42, Active: false},
	}, nil)

	_, err := svc.Get(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_MonthlyStats_TwelveSlots(t *testing.T) {
	svc, reservations, _, _, _ := newTestService()

	var counts [12]int64
	counts[0] = 3 // January
	counts[6] = 1 // July
	reservations.On("MonthlyCounts", mock.Anything, time.Now().UTC().Year()).Return(counts, nil)

	got, err := svc.MonthlyStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), got[0])
	assert.Equal(t, int64(1), got[6])
	assert.Equal(t, int64(0), got[11])
}
