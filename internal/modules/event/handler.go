package event

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
	events := rg.Group("/events")
	{
		events.GET("", h.List)
		events.GET("/:id", h.Get)
		events.POST("", middleware.AdminOnly(), h.Create)
		events.PUT("/:id", middleware.AdminOnly(), h.Update)
		events.DELETE("/:id", middleware.AdminOnly(), h.Cancel)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ev, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Error creating event")
		return
	}

	response.Success(c, http.StatusCreated, "Event added successfully", gin.H{
		"event": toEventResponse(ev),
	})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	events, total, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error getting events")
		return
	}

	out := make([]EventResponse, 0, len(events))
	for _, row := range events {
		out = append(out, toEventListItem(row))
	}

	response.Success(c, http.StatusOK, "Events get successfully", gin.H{
		"total":  total,
		"events": out,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return
	}

	ev, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Error getting event")
		return
	}

	response.Success(c, http.StatusOK, "Event get successfully", gin.H{
		"event": toEventResponse(ev),
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ev, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Error updating event")
		return
	}

	response.Success(c, http.StatusOK, "Event updated successfully", gin.H{
		"event": toEventResponse(ev),
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Error cancelling event")
		return
	}

	response.Success(c, http.StatusOK, "Event disabled", gin.H{"id": id})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrHotelNotFound):
		response.Error(c, http.StatusNotFound, "HOTEL_NOT_FOUND", "Hotel not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "EVENT_CONFLICT", "Room already has an event in this window")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Event date must be in the future")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
