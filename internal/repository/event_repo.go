package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	HotelID     int64     `gorm:"column:hotel_id;index"`
	RoomID      *int64    `gorm:"column:room_id;index"`
	Date        time.Time `gorm:"column:date"`
	Description string    `gorm:"column:description"`
	Active      bool      `gorm:"column:active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (eventModel) TableName() string { return "events" }

func toDomainEvent(m eventModel) *domain.Event {
	return &domain.Event{
		ID:          m.ID,
		HotelID:     m.HotelID,
		RoomID:      m.RoomID,
		Date:        m.Date,
		Description: m.Description,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	m := eventModel{
		HotelID:     e.HotelID,
		RoomID:      e.RoomID,
		Date:        e.Date,
		Description: e.Description,
		Active:      e.Active,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainEvent(m)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var m eventModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainEvent(m), nil
}

// EventWithHotel carries the hotel name for list responses.
type EventWithHotel struct {
	Event     domain.Event
	HotelName string
}

type eventWithHotelRow struct {
	ID          int64     `gorm:"column:id"`
	HotelID     int64     `gorm:"column:hotel_id"`
	RoomID      *int64    `gorm:"column:room_id"`
	Date        time.Time `gorm:"column:date"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
	HotelName   string    `gorm:"column:hotel_name"`
}

func (r *EventRepository) ListActive(ctx context.Context, limit, offset int) ([]EventWithHotel, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("active = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []eventWithHotelRow
	err := r.db.WithContext(ctx).
		Table("events e").
		Select("e.id, e.hotel_id, e.room_id, e.date, e.description, e.created_at, e.updated_at, h.name AS hotel_name").
		Joins("JOIN hotels h ON h.id = e.hotel_id").
		Where("e.active = ?", true).
		Order("e.date ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]EventWithHotel, 0, len(rows))
	for _, row := range rows {
		out = append(out, EventWithHotel{
			Event: domain.Event{
				ID:          row.ID,
				HotelID:     row.HotelID,
				RoomID:      row.RoomID,
				Date:        row.Date,
				Description: row.Description,
				Active:      true,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			HotelName: row.HotelName,
		})
	}
	return out, total, nil
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	tx := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"hotel_id":    e.HotelID,
			"room_id":     e.RoomID,
			"date":        e.Date,
			"description": e.Description,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes the event; repeated calls are a no-op.
func (r *EventRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("id = ?", id).
		Update("active", false)
	return tx.Error
}

// HasConflict reports whether another active room-scoped event overlaps the
// 1-hour window starting at date. excludeID skips one event on update.
func (r *EventRepository) HasConflict(ctx context.Context, roomID int64, date time.Time, excludeID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("room_id = ? AND active = ?", roomID, true).
		Where("date < ? AND date > ?", date.Add(domain.EventWindow), date.Add(-domain.EventWindow))
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
