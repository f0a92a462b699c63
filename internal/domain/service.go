package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is an extra billable item attached to a reservation (breakfast,
// parking, spa access). Read-only from the reservation/invoice side.
type Service struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
