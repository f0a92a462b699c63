package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"hotelier/internal/domain"
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

// RegisterRoutes wires hotel, room and service endpoints. Mutations are
// admin-gated, reads only need a valid token.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	hotels := rg.Group("/hotels")
	{
		hotels.GET("", h.ListHotels)
		hotels.GET("/most-reserved", middleware.AdminOnly(), h.MostReserved)
		hotels.GET("/:id", h.GetHotel)
		hotels.GET("/:id/rooms", h.ListRooms)
		hotels.POST("", middleware.AdminOnly(), h.CreateHotel)
		hotels.PUT("/:id", middleware.AdminOnly(), h.UpdateHotel)
		hotels.DELETE("/:id", middleware.AdminOnly(), h.DeleteHotel)
		hotels.POST("/:id/rooms", middleware.AdminOnly(), h.CreateRoom)
	}

	rooms := rg.Group("/rooms")
	{
		rooms.PUT("/:id", middleware.AdminOnly(), h.UpdateRoom)
		rooms.PATCH("/:id/status", middleware.AdminOnly(), h.SetRoomStatus)
	}

	services := rg.Group("/services")
	{
		services.GET("", h.ListServices)
		services.POST("", middleware.AdminOnly(), h.CreateService)
		services.PUT("/:id", middleware.AdminOnly(), h.UpdateService)
		services.DELETE("/:id", middleware.AdminOnly(), h.DeleteService)
	}
}

func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Error creating hotel")
		return
	}

	response.Success(c, http.StatusCreated, "Hotel added successfully", gin.H{
		"hotel": toHotelResponse(hotel),
	})
}

func (h *Handler) GetHotel(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	hotel, err := h.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Error getting hotel")
		return
	}

	response.Success(c, http.StatusOK, "Hotel get successfully", gin.H{
		"hotel": toHotelResponse(hotel),
	})
}

func (h *Handler) ListHotels(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	hotels, total, err := h.service.ListHotels(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error getting hotels")
		return
	}

	out := make([]HotelResponse, 0, len(hotels))
	for i := range hotels {
		out = append(out, toHotelResponse(&hotels[i]))
	}

	response.Success(c, http.StatusOK, "Hotels get successfully", gin.H{
		"total":  total,
		"hotels": out,
	})
}

func (h *Handler) UpdateHotel(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	hotel, err := h.service.UpdateHotel(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Error updating hotel")
		return
	}

	response.Success(c, http.StatusOK, "Hotel updated successfully", gin.H{
		"hotel": toHotelResponse(hotel),
	})
}

func (h *Handler) DeleteHotel(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteHotel(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Error deleting hotel")
		return
	}

	response.Success(c, http.StatusOK, "Hotel disabled", gin.H{"id": id})
}

func (h *Handler) MostReserved(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	top, err := h.service.MostReservedHotels(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error computing most reserved hotels")
		return
	}

	response.Success(c, http.StatusOK, "Most reserved hotels", gin.H{
		"hotels": top,
	})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	hotelID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), hotelID, req)
	if err != nil {
		h.writeError(c, err, "Error creating room")
		return
	}

	response.Success(c, http.StatusCreated, "Room added successfully", gin.H{
		"room": toRoomResponse(room),
	})
}

func (h *Handler) ListRooms(c *gin.Context) {
	hotelID, ok := h.pathID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rooms, total, err := h.service.ListRooms(c.Request.Context(), hotelID, limit, offset)
	if err != nil {
		h.writeError(c, err, "Error getting rooms")
		return
	}

	out := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResponse(&rooms[i]))
	}

	response.Success(c, http.StatusOK, "Rooms get successfully", gin.H{
		"total": total,
		"rooms": out,
	})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Error updating room")
		return
	}

	response.Success(c, http.StatusOK, "Room updated successfully", gin.H{
		"room": toRoomResponse(room),
	})
}

func (h *Handler) SetRoomStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req SetRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.SetRoomStatus(c.Request.Context(), id, domain.RoomStatus(req.Status))
	if err != nil {
		h.writeError(c, err, "Error changing room status")
		return
	}

	response.Success(c, http.StatusOK, "Room status updated successfully", gin.H{
		"room": toRoomResponse(room),
	})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Error creating service")
		return
	}

	response.Success(c, http.StatusCreated, "Service added successfully", gin.H{
		"service": toServiceResponse(svc),
	})
}

func (h *Handler) ListServices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	services, total, err := h.service.ListServices(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error getting services")
		return
	}

	out := make([]ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, toServiceResponse(&services[i]))
	}

	response.Success(c, http.StatusOK, "Services get successfully", gin.H{
		"total":    total,
		"services": out,
	})
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Error updating service")
		return
	}

	response.Success(c, http.StatusOK, "Service updated successfully", gin.H{
		"service": toServiceResponse(svc),
	})
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Error deleting service")
		return
	}

	response.Success(c, http.StatusOK, "Service disabled", gin.H{"id": id})
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrHotelNotFound):
		response.Error(c, http.StatusNotFound, "HOTEL_NOT_FOUND", "Hotel not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field values")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
