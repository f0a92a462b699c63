package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID        int64           `gorm:"column:id;primaryKey"`
	Name      string          `gorm:"column:name"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2)"`
	Active    bool            `gorm:"column:active"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	return &domain.Service{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := serviceModel{
		Name:   s.Name,
		Price:  s.Price,
		Active: s.Active,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

// GetActiveByIDs resolves the given ids to active services. The result is
// keyed by id; callers decide what a missing id means.
func (r *ServiceRepository) GetActiveByIDs(ctx context.Context, ids []int64) (map[int64]domain.Service, error) {
	out := make(map[int64]domain.Service, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []serviceModel
	tx := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	for _, m := range rows {
		out[m.ID] = *toDomainService(m)
	}
	return out, nil
}

func (r *ServiceRepository) ListActive(ctx context.Context, limit, offset int) ([]domain.Service, int64, error) {
	q := r.db.WithContext(ctx).Model(&serviceModel{}).Where("active = ?", true)

	var total int64
	if tx := q.Count(&total); tx.Error != nil {
		return nil, 0, tx.Error
	}

	var rows []serviceModel
	tx := q.Order("id ASC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, total, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	tx := r.db.WithContext(ctx).
		Model(&serviceModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"name":  s.Name,
			"price": s.Price,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ServiceRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&serviceModel{}).
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
