package repository

import (
	"context"
	"encoding/json"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

type hotelModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Address   string    `gorm:"column:address"`
	Category  string    `gorm:"column:category"`
	Amenities *string   `gorm:"column:amenities;type:text"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (hotelModel) TableName() string { return "hotels" }

func toDomainHotel(m hotelModel) *domain.Hotel {
	var amenities []string
	if m.Amenities != nil && *m.Amenities != "" {
		_ = json.Unmarshal([]byte(*m.Amenities), &amenities)
	}

	return &domain.Hotel{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Category:  m.Category,
		Amenities: amenities,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toHotelModel(h *domain.Hotel) hotelModel {
	var amenities *string
	if len(h.Amenities) > 0 {
		if raw, err := json.Marshal(h.Amenities); err == nil {
			v := string(raw)
			amenities = &v
		}
	}

	return hotelModel{
		ID:        h.ID,
		Name:      h.Name,
		Address:   h.Address,
		Category:  h.Category,
		Amenities: amenities,
		Active:    h.Active,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	m := toHotelModel(h)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*h = *toDomainHotel(m)
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var m hotelModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainHotel(m), nil
}

func (r *HotelRepository) ListActive(ctx context.Context, limit, offset int) ([]domain.Hotel, int64, error) {
	q := r.db.WithContext(ctx).Model(&hotelModel{}).Where("active = ?", true)

	var total int64
	if tx := q.Count(&total); tx.Error != nil {
		return nil, 0, tx.Error
	}

	var rows []hotelModel
	tx := q.Order("id ASC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.Hotel, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainHotel(m))
	}
	return out, total, nil
}

func (r *HotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	m := toHotelModel(h)
	tx := r.db.WithContext(ctx).
		Model(&hotelModel{}).
		Where("id = ?", h.ID).
		Updates(map[string]interface{}{
			"name":      m.Name,
			"address":   m.Address,
			"category":  m.Category,
			"amenities": m.Amenities,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes the hotel.
func (r *HotelRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&hotelModel{}).
		Where("id = ?", id).
		Update("active", false)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists reports whether an active hotel with this id is present.
func (r *HotelRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&hotelModel{}).
		Where("id = ? AND active = ?", id, true).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
