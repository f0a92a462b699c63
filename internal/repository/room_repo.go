package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID        int64           `gorm:"column:id;primaryKey"`
	HotelID   int64           `gorm:"column:hotel_id;index"`
	Number    string          `gorm:"column:number"`
	Capacity  int             `gorm:"column:capacity"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2)"`
	Status    string          `gorm:"column:status"`
	Active    bool            `gorm:"column:active"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:        m.ID,
		HotelID:   m.HotelID,
		Number:    m.Number,
		Capacity:  m.Capacity,
		Price:     m.Price,
		Status:    domain.RoomStatus(m.Status),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toRoomModel(rm *domain.Room) roomModel {
	return roomModel{
		ID:        rm.ID,
		HotelID:   rm.HotelID,
		Number:    rm.Number,
		Capacity:  rm.Capacity,
		Price:     rm.Price,
		Status:    string(rm.Status),
		Active:    rm.Active,
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, rm *domain.Room) error {
	m := toRoomModel(rm)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rm = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64, limit, offset int) ([]domain.Room, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("hotel_id = ? AND active = ?", hotelID, true)

	var total int64
	if tx := q.Session(&gorm.Session{}).Count(&total); tx.Error != nil {
		return nil, 0, tx.Error
	}

	var rows []roomModel
	tx := q.Order("number ASC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, total, nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *domain.Room) error {
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", rm.ID).
		Updates(map[string]interface{}{
			"number":   rm.Number,
			"capacity": rm.Capacity,
			"price":    rm.Price,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetStatus flips the availability flag. Rooms are never deleted.
func (r *RoomRepository) SetStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
