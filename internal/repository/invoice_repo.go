package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

type invoiceModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	Number        string          `gorm:"column:number"`
	ReservationID int64           `gorm:"column:reservation_id;uniqueIndex:idx_invoice_per_reservation"`
	UserID        int64           `gorm:"column:user_id;index"`
	HotelID       int64           `gorm:"column:hotel_id"`
	RoomID        int64           `gorm:"column:room_id"`
	Total         decimal.Decimal `gorm:"column:total;type:decimal(10,2)"`
	Status        string          `gorm:"column:status"`
	Active        bool            `gorm:"column:active"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (invoiceModel) TableName() string { return "invoices" }

type invoiceServiceModel struct {
	ID        int64 `gorm:"column:id;primaryKey"`
	InvoiceID int64 `gorm:"column:invoice_id;index"`
	ServiceID int64 `gorm:"column:service_id"`
	Position  int   `gorm:"column:position"`
}

func (invoiceServiceModel) TableName() string { return "invoice_services" }

func toDomainInvoice(m invoiceModel, serviceIDs []int64) *domain.Invoice {
	return &domain.Invoice{
		ID:            m.ID,
		Number:        m.Number,
		ReservationID: m.ReservationID,
		UserID:        m.UserID,
		HotelID:       m.HotelID,
		RoomID:        m.RoomID,
		ServiceIDs:    serviceIDs,
		Total:         m.Total,
		Status:        domain.InvoiceStatus(m.Status),
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := invoiceModel{
			Number:        inv.Number,
			ReservationID: inv.ReservationID,
			UserID:        inv.UserID,
			HotelID:       inv.HotelID,
			RoomID:        inv.RoomID,
			Total:         inv.Total,
			Status:        string(inv.Status),
			Active:        inv.Active,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		for i, sid := range inv.ServiceIDs {
			link := invoiceServiceModel{
				InvoiceID: m.ID,
				ServiceID: sid,
				Position:  i,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		*inv = *toDomainInvoice(m, inv.ServiceIDs)
		return nil
	})
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var m invoiceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}

	serviceIDs, err := r.serviceIDsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainInvoice(m, serviceIDs), nil
}

// ExistsForReservation is the duplicate-invoice pre-check. The unique index
// on reservation_id backs it up when two generate calls race.
func (r *InvoiceRepository) ExistsForReservation(ctx context.Context, reservationID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&invoiceModel{}).
		Where("reservation_id = ?", reservationID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// UpdateStatus flips the payment status without touching the frozen total.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&invoiceModel{}).
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

func (r *InvoiceRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&invoiceModel{}).
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

// InvoiceFilter narrows List; zero values mean "no filter".
type InvoiceFilter struct {
	UserID int64
	Status domain.InvoiceStatus
}

// InvoiceDetails is the list projection joined with display fields.
type InvoiceDetails struct {
	Invoice    domain.Invoice
	StartDate  time.Time
	EndDate    time.Time
	UserEmail  string
	HotelName  string
	RoomNumber string
	RoomPrice  decimal.Decimal
}

type invoiceDetailsRow struct {
	ID            int64           `gorm:"column:id"`
	Number        string          `gorm:"column:number"`
	ReservationID int64           `gorm:"column:reservation_id"`
	UserID        int64           `gorm:"column:user_id"`
	HotelID       int64           `gorm:"column:hotel_id"`
	RoomID        int64           `gorm:"column:room_id"`
	Total         decimal.Decimal `gorm:"column:total"`
	Status        string          `gorm:"column:status"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
	StartDate     time.Time       `gorm:"column:start_date"`
	EndDate       time.Time       `gorm:"column:end_date"`
	UserEmail     string          `gorm:"column:user_email"`
	HotelName     string          `gorm:"column:hotel_name"`
	RoomNumber    string          `gorm:"column:room_number"`
	RoomPrice     decimal.Decimal `gorm:"column:room_price"`
}

func (r *InvoiceRepository) List(ctx context.Context, filter InvoiceFilter, limit, offset int) ([]InvoiceDetails, int64, error) {
	base := r.db.WithContext(ctx).
		Table("invoices i").
		Where("i.active = ?", true)
	if filter.UserID != 0 {
		base = base.Where("i.user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		base = base.Where("i.status = ?", string(filter.Status))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []invoiceDetailsRow
	err := base.
		Select("i.id, i.number, i.reservation_id, i.user_id, i.hotel_id, i.room_id, i.total, i.status, i.created_at, i.updated_at, res.start_date, res.end_date, u.email AS user_email, h.name AS hotel_name, rm.number AS room_number, rm.price AS room_price").
		Joins("JOIN reservations res ON res.id = i.reservation_id").
		Joins("JOIN users u ON u.id = i.user_id").
		Joins("JOIN hotels h ON h.id = i.hotel_id").
		Joins("JOIN rooms rm ON rm.id = i.room_id").
		Order("i.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]InvoiceDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, InvoiceDetails{
			Invoice: domain.Invoice{
				ID:            row.ID,
				Number:        row.Number,
				ReservationID: row.ReservationID,
				UserID:        row.UserID,
				HotelID:       row.HotelID,
				RoomID:        row.RoomID,
				Total:         row.Total,
				Status:        domain.InvoiceStatus(row.Status),
				Active:        true,
				CreatedAt:     row.CreatedAt,
				UpdatedAt:     row.UpdatedAt,
			},
			StartDate:  row.StartDate,
			EndDate:    row.EndDate,
			UserEmail:  row.UserEmail,
			HotelName:  row.HotelName,
			RoomNumber: row.RoomNumber,
			RoomPrice:  row.RoomPrice,
		})
	}
	return out, total, nil
}

type paidInvoiceRow struct {
	Total     decimal.Decimal `gorm:"column:total"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

// SumPaidTotals adds up active PAID invoices. Accumulation happens in Go on
// the decimal type so no precision is lost to driver float conversions.
func (r *InvoiceRepository) SumPaidTotals(ctx context.Context) (decimal.Decimal, error) {
	var rows []paidInvoiceRow
	err := r.db.WithContext(ctx).
		Model(&invoiceModel{}).
		Select("total, created_at").
		Where("active = ? AND status = ?", true, string(domain.InvoicePaid)).
		Scan(&rows).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total)
	}
	return total, nil
}

// PaidTotalsByMonth buckets active PAID invoices of the given year by
// creation month. Index 0 is January; empty months stay at zero.
func (r *InvoiceRepository) PaidTotalsByMonth(ctx context.Context, year int) ([12]decimal.Decimal, error) {
	var out [12]decimal.Decimal
	for i := range out {
		out[i] = decimal.Zero
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var rows []paidInvoiceRow
	err := r.db.WithContext(ctx).
		Model(&invoiceModel{}).
		Select("total, created_at").
		Where("active = ? AND status = ?", true, string(domain.InvoicePaid)).
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&rows).Error
	if err != nil {
		return out, err
	}

	for _, row := range rows {
		idx := row.CreatedAt.UTC().Month() - 1
		out[idx] = out[idx].Add(row.Total)
	}
	return out, nil
}

func (r *InvoiceRepository) serviceIDsFor(ctx context.Context, invoiceID int64) ([]int64, error) {
	var links []invoiceServiceModel
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("position ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(links))
	for _, l := range links {
		out = append(out, l.ServiceID)
	}
	return out, nil
}
