package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"hotelier/internal/middleware"
	"hotelier/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", h.Create)
		reservations.GET("", h.List)
		reservations.GET("/stats/monthly", middleware.AdminOnly(), h.MonthlyStats)
		reservations.GET("/stats/current-month", middleware.AdminOnly(), h.CurrentMonthCount)
		reservations.GET("/:id", h.Get)
		reservations.PUT("/:id", h.Update)
		reservations.DELETE("/:id", h.Cancel)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create reservation")
		return
	}

	response.Success(c, http.StatusCreated, "Reservation added successfully", gin.H{
		"reservation": res,
	})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reservations, total, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}

	response.Success(c, http.StatusOK, "Reservations found successfully", gin.H{
		"total":        total,
		"reservations": reservations,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get reservation")
		return
	}

	response.Success(c, http.StatusOK, "Reservation found successfully", gin.H{
		"reservation": res,
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update reservation")
		return
	}

	response.Success(c, http.StatusOK, "Reservation updated successfully", gin.H{
		"reservation": res,
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}

	response.Success(c, http.StatusOK, "Reservation disabled", gin.H{
		"id": id,
	})
}

func (h *Handler) MonthlyStats(c *gin.Context) {
	counts, err := h.service.MonthlyStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute monthly stats")
		return
	}

	response.Success(c, http.StatusOK, "Reservations per month of the current year", gin.H{
		"reservations_per_month": counts,
	})
}

func (h *Handler) CurrentMonthCount(c *gin.Context) {
	count, err := h.service.CurrentMonthCount(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to count reservations")
		return
	}

	response.Success(c, http.StatusOK, "Reservations made this month", gin.H{
		"reservations_this_month": count,
	})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation date range")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "One or more services not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "RESERVATION_CONFLICT", "Room is not available for the selected dates")
	case errors.Is(err, ErrRoomOutOfOrder):
		response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", "Room is under maintenance")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
