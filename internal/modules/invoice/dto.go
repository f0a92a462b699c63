package invoice

import (
	"time"

	"hotelier/internal/repository"

	"github.com/shopspring/decimal"
)

type GenerateInvoiceRequest struct {
	ReservationID int64 `json:"reservation_id" binding:"required"`
}

type InvoiceResponse struct {
	ID            int64           `json:"id"`
	Number        string          `json:"number"`
	ReservationID int64           `json:"reservation_id"`
	UserID        int64           `json:"user_id"`
	HotelID       int64           `json:"hotel_id"`
	RoomID        int64           `json:"room_id"`
	ServiceIDs    []int64         `json:"service_ids,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceListItem joins the display fields the invoice listing shows.
type InvoiceListItem struct {
	InvoiceResponse
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	UserEmail  string          `json:"user_email"`
	HotelName  string          `json:"hotel_name"`
	RoomNumber string          `json:"room_number"`
	RoomPrice  decimal.Decimal `json:"room_price"`
}

func toInvoiceListItem(d repository.InvoiceDetails) InvoiceListItem {
	return InvoiceListItem{
		InvoiceResponse: InvoiceResponse{
			ID:            d.Invoice.ID,
			Number:        d.Invoice.Number,
			ReservationID: d.Invoice.ReservationID,
			UserID:        d.Invoice.UserID,
			HotelID:       d.Invoice.HotelID,
			RoomID:        d.Invoice.RoomID,
			Total:         d.Invoice.Total,
			Status:        string(d.Invoice.Status),
			CreatedAt:     d.Invoice.CreatedAt,
		},
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		UserEmail:  d.UserEmail,
		HotelName:  d.HotelName,
		RoomNumber: d.RoomNumber,
		RoomPrice:  d.RoomPrice,
	}
}
