package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "PENDING"
	InvoicePaid    InvoiceStatus = "PAID"
)

// Invoice is generated once per reservation. Total is derived at generation
// time and frozen; only Status and Active may change afterwards.
type Invoice struct {
	ID            int64           `json:"id"`
	Number        string          `json:"number"`
	ReservationID int64           `json:"reservation_id"`
	UserID        int64           `json:"user_id"`
	HotelID       int64           `json:"hotel_id"`
	RoomID        int64           `json:"room_id"`
	ServiceIDs    []int64         `json:"service_ids,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Status        InvoiceStatus   `json:"status"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
