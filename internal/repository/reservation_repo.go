package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	RoomID    int64     `gorm:"column:room_id;index"`
	UserID    int64     `gorm:"column:user_id;index"`
	StartDate time.Time `gorm:"column:start_date"`
	EndDate   time.Time `gorm:"column:end_date"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

// reservationServiceModel keeps the ordered service list. Position preserves
// insertion order and lets the same service appear more than once.
type reservationServiceModel struct {
	ID            int64 `gorm:"column:id;primaryKey"`
	ReservationID int64 `gorm:"column:reservation_id;index"`
	ServiceID     int64 `gorm:"column:service_id"`
	Position      int   `gorm:"column:position"`
}

func (reservationServiceModel) TableName() string { return "reservation_services" }

func toDomainReservation(m reservationModel, serviceIDs []int64) *domain.Reservation {
	return &domain.Reservation{
		ID:         m.ID,
		RoomID:     m.RoomID,
		UserID:     m.UserID,
		ServiceIDs: serviceIDs,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := reservationModel{
			RoomID:    res.RoomID,
			UserID:    res.UserID,
			StartDate: res.StartDate,
			EndDate:   res.EndDate,
			Active:    res.Active,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		for i, sid := range res.ServiceIDs {
			link := reservationServiceModel{
				ReservationID: m.ID,
				ServiceID:     sid,
				Position:      i,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		*res = *toDomainReservation(m, res.ServiceIDs)
		return nil
	})
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}

	serviceIDs, err := r.serviceIDsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return toDomainReservation(m, serviceIDs[id]), nil
}

// Update replaces the mutable fields and the whole service list.
func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upd := tx.Model(&reservationModel{}).
			Where("id = ?", res.ID).
			Updates(map[string]interface{}{
				"room_id":    res.RoomID,
				"user_id":    res.UserID,
				"start_date": res.StartDate,
				"end_date":   res.EndDate,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("reservation_id = ?", res.ID).
			Delete(&reservationServiceModel{}).Error; err != nil {
			return err
		}
		for i, sid := range res.ServiceIDs {
			link := reservationServiceModel{
				ReservationID: res.ID,
				ServiceID:     sid,
				Position:      i,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Deactivate soft-deletes the reservation. Calling it on an already inactive
// reservation is a no-op.
func (r *ReservationRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Update("active", false)
	return tx.Error
}

// IsRoomAvailable runs the half-open overlap test against active
// reservations and active room-scoped events. Back-to-back bookings that
// touch at a boundary do not conflict. excludeID skips one reservation so
// updates do not collide with themselves; pass 0 on create.
func (r *ReservationRepository) IsRoomAvailable(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("room_id = ? AND active = ?", roomID, true).
		Where("start_date < ? AND end_date > ?", end, start)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&cnt).Error; err != nil {
		return false, err
	}
	if cnt > 0 {
		return false, nil
	}

	// An event occupies [date, date+EventWindow), so it overlaps the window
	// iff date < end AND date > start-EventWindow.
	var evCnt int64
	err := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("room_id = ? AND active = ?", roomID, true).
		Where("date < ? AND date > ?", end, start.Add(-domain.EventWindow)).
		Count(&evCnt).Error
	if err != nil {
		return false, err
	}
	return evCnt == 0, nil
}

// ReservationDetails is the list projection: display-relevant fields only,
// not the full room/user documents.
type ReservationDetails struct {
	Reservation domain.Reservation
	RoomNumber  string
	RoomPrice   decimal.Decimal
	UserEmail   string
	Services    []ServiceLine
}

type ServiceLine struct {
	ServiceID int64
	Name      string
	Price     decimal.Decimal
}

type reservationDetailsRow struct {
	ID         int64           `gorm:"column:id"`
	RoomID     int64           `gorm:"column:room_id"`
	UserID     int64           `gorm:"column:user_id"`
	StartDate  time.Time       `gorm:"column:start_date"`
	EndDate    time.Time       `gorm:"column:end_date"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
	RoomNumber string          `gorm:"column:room_number"`
	RoomPrice  decimal.Decimal `gorm:"column:room_price"`
	UserEmail  string          `gorm:"column:user_email"`
}

func (r *ReservationRepository) ListActiveDetails(ctx context.Context, limit, offset int) ([]ReservationDetails, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("active = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []reservationDetailsRow
	err := r.db.WithContext(ctx).
		Table("reservations r").
		Select("r.id, r.room_id, r.user_id, r.start_date, r.end_date, r.created_at, r.updated_at, rm.number AS room_number, rm.price AS room_price, u.email AS user_email").
		Joins("JOIN rooms rm ON rm.id = r.room_id").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.active = ?", true).
		Order("r.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	lines, err := r.serviceLinesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ReservationDetails, 0, len(rows))
	for _, row := range rows {
		serviceIDs := make([]int64, 0, len(lines[row.ID]))
		for _, l := range lines[row.ID] {
			serviceIDs = append(serviceIDs, l.ServiceID)
		}
		out = append(out, ReservationDetails{
			Reservation: domain.Reservation{
				ID:         row.ID,
				RoomID:     row.RoomID,
				UserID:     row.UserID,
				ServiceIDs: serviceIDs,
				StartDate:  row.StartDate,
				EndDate:    row.EndDate,
				Active:     true,
				CreatedAt:  row.CreatedAt,
				UpdatedAt:  row.UpdatedAt,
			},
			RoomNumber: row.RoomNumber,
			RoomPrice:  row.RoomPrice,
			UserEmail:  row.UserEmail,
			Services:   lines[row.ID],
		})
	}
	return out, total, nil
}

// GetDetails returns the same projection as ListActiveDetails for a single
// reservation, regardless of its active flag.
func (r *ReservationRepository) GetDetails(ctx context.Context, id int64) (*ReservationDetails, error) {
	var row reservationDetailsRow
	tx := r.db.WithContext(ctx).
		Table("reservations r").
		Select("r.id, r.room_id, r.user_id, r.start_date, r.end_date, r.created_at, r.updated_at, rm.number AS room_number, rm.price AS room_price, u.email AS user_email").
		Joins("JOIN rooms rm ON rm.id = r.room_id").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.id = ?", id).
		Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	lines, err := r.serviceLinesFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	var res reservationModel
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}

	serviceIDs := make([]int64, 0, len(lines[id]))
	for _, l := range lines[id] {
		serviceIDs = append(serviceIDs, l.ServiceID)
	}
	return &ReservationDetails{
		Reservation: *toDomainReservation(res, serviceIDs),
		RoomNumber:  row.RoomNumber,
		RoomPrice:   row.RoomPrice,
		UserEmail:   row.UserEmail,
		Services:    lines[id],
	}, nil
}

func (r *ReservationRepository) serviceIDsFor(ctx context.Context, reservationIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return out, nil
	}

	var links []reservationServiceModel
	err := r.db.WithContext(ctx).
		Where("reservation_id IN ?", reservationIDs).
		Order("reservation_id ASC, position ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	for _, l := range links {
		out[l.ReservationID] = append(out[l.ReservationID], l.ServiceID)
	}
	return out, nil
}

type serviceLineRow struct {
	ReservationID int64           `gorm:"column:reservation_id"`
	ServiceID     int64           `gorm:"column:service_id"`
	Name          string          `gorm:"column:name"`
	Price         decimal.Decimal `gorm:"column:price"`
}

func (r *ReservationRepository) serviceLinesFor(ctx context.Context, reservationIDs []int64) (map[int64][]ServiceLine, error) {
	out := make(map[int64][]ServiceLine, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return out, nil
	}

	var rows []serviceLineRow
	err := r.db.WithContext(ctx).
		Table("reservation_services rs").
		Select("rs.reservation_id, rs.service_id, s.name, s.price").
		Joins("JOIN services s ON s.id = rs.service_id").
		Where("rs.reservation_id IN ?", reservationIDs).
		Order("rs.reservation_id ASC, rs.position ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.ReservationID] = append(out[row.ReservationID], ServiceLine{
			ServiceID: row.ServiceID,
			Name:      row.Name,
			Price:     row.Price,
		})
	}
	return out, nil
}

// CountCreatedBetween counts active reservations created in [from, to).
func (r *ReservationRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("active = ?", true).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&cnt).Error
	return cnt, err
}

// MonthlyCounts buckets active reservations of the given year by creation
// month. Index 0 is January; months with no reservations stay zero. The
// bucketing runs in Go so the query stays portable across drivers.
func (r *ReservationRepository) MonthlyCounts(ctx context.Context, year int) ([12]int64, error) {
	var out [12]int64

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var createdAts []time.Time
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("active = ?", true).
		Where("created_at >= ? AND created_at < ?", from, to).
		Pluck("created_at", &createdAts).Error
	if err != nil {
		return out, err
	}

	for _, ts := range createdAts {
		out[ts.UTC().Month()-1]++
	}
	return out, nil
}

// HotelReservationCount is one row of the most-reserved-hotels report.
type HotelReservationCount struct {
	HotelID      int64  `gorm:"column:hotel_id" json:"hotel_id"`
	HotelName    string `gorm:"column:hotel_name" json:"hotel_name"`
	Reservations int64  `gorm:"column:reservations" json:"reservations"`
}

// TopHotels groups active reservations by the hotel owning each room.
// Secondary ordering by hotel id keeps ties deterministic.
func (r *ReservationRepository) TopHotels(ctx context.Context, limit int) ([]HotelReservationCount, error) {
	var rows []HotelReservationCount
	err := r.db.WithContext(ctx).
		Table("reservations r").
		Select("h.id AS hotel_id, h.name AS hotel_name, COUNT(*) AS reservations").
		Joins("JOIN rooms rm ON rm.id = r.room_id").
		Joins("JOIN hotels h ON h.id = rm.hotel_id").
		Where("r.active = ?", true).
		Group("h.id, h.name").
		Order("reservations DESC, hotel_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
