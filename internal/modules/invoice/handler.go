package invoice

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/middleware"
	"hotelier/internal/pkg/response"
	"hotelier/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Generate)
		invoices.GET("", h.List)
		invoices.GET("/income/total", middleware.AdminOnly(), h.TotalIncome)
		invoices.GET("/income/monthly", middleware.AdminOnly(), h.MonthlyIncome)
		invoices.PUT("/:id/pay", h.MarkPaid)
		invoices.DELETE("/:id", h.Cancel)
	}
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.Generate(c.Request.Context(), req.ReservationID)
	if err != nil {
		h.writeError(c, err, "Error generating invoice")
		return
	}

	response.Success(c, http.StatusCreated, "Invoice generated successfully", gin.H{
		"invoice": inv,
	})
}

func (h *Handler) MarkPaid(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	inv, err := h.service.MarkPaid(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Error changing invoice status")
		return
	}

	response.Success(c, http.StatusOK, "Invoice marked as PAID successfully", gin.H{
		"invoice": inv,
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Error cancelling invoice")
		return
	}

	response.Success(c, http.StatusOK, "Invoice disabled", gin.H{
		"id": id,
	})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var filter repository.InvoiceFilter
	if v := c.Query("user_id"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID filter")
			return
		}
		filter.UserID = userID
	}
	if v := c.Query("status"); v != "" {
		if v != string(domain.InvoicePending) && v != string(domain.InvoicePaid) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown invoice status filter")
			return
		}
		filter.Status = domain.InvoiceStatus(v)
	}

	invoices, total, err := h.service.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error getting invoices")
		return
	}

	response.Success(c, http.StatusOK, "Invoices get successfully", gin.H{
		"total":    total,
		"invoices": invoices,
	})
}

func (h *Handler) TotalIncome(c *gin.Context) {
	total, err := h.service.TotalIncome(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error computing total income")
		return
	}

	response.Success(c, http.StatusOK, "Total income computed successfully", gin.H{
		"total_income": total,
	})
}

func (h *Handler) MonthlyIncome(c *gin.Context) {
	year := time.Now().UTC().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid year")
			return
		}
		year = parsed
	}

	income, err := h.service.MonthlyIncome(c.Request.Context(), year)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error computing monthly income")
		return
	}

	response.Success(c, http.StatusOK, "Income per month", gin.H{
		"year":             year,
		"income_per_month": income,
	})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrReservationNotFound):
		response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "INVOICE_NOT_FOUND", "Invoice not found")
	case errors.Is(err, ErrDuplicate):
		response.Error(c, http.StatusConflict, "INVOICE_EXISTS", "Invoice already exists for this reservation")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusBadRequest, "INVALID_STATE", "Invoice status does not allow this operation")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invoice references could not be resolved")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
