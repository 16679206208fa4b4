package booking

import (
	"errors"
	"net/http"
	"strconv"

	"motofix/internal/domain"
	"motofix/internal/pkg/response"
	"motofix/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the customer-facing lifecycle endpoints. The
// mechanic-only transitions are registered separately so the role
// middleware can guard them.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mechanicOnly gin.HandlerFunc) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
	rg.POST("/bookings/:id/start", mechanicOnly, h.StartWork)
	rg.POST("/bookings/:id/complete", mechanicOnly, h.CompleteWork)

	rg.POST("/motorcycles", h.CreateMotorcycle)
	rg.GET("/motorcycles", h.ListMotorcycles)
	rg.PUT("/motorcycles/:id", h.UpdateMotorcycle)
	rg.DELETE("/motorcycles/:id", h.DeleteMotorcycle)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking fields")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), actorID(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create booking")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id, actorID(c), actorRole(c))
	if err != nil {
		h.writeError(c, err, "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var (
		rows []domain.Booking
		err  error
	)
	if actorRole(c) == domain.RoleMechanic {
		rows, err = h.service.ListMechanicBookings(c.Request.Context(), actorID(c), limit, offset)
	} else {
		rows, err = h.service.ListCustomerBookings(c.Request.Context(), actorID(c), limit, offset)
	}
	if err != nil {
		h.writeError(c, err, "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) StartWork(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.StartWork(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.writeError(c, err, "Failed to start work")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CompleteWork(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CompleteWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid completion fields")
		return
	}

	b, err := h.service.CompleteWork(c.Request.Context(), id, actorID(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to complete work")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), id, actorID(c), actorRole(c))
	if err != nil {
		h.writeError(c, err, "Failed to cancel booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CreateMotorcycle(c *gin.Context) {
	var req CreateMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid motorcycle fields")
		return
	}

	m, err := h.service.CreateMotorcycle(c.Request.Context(), actorID(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create motorcycle")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"motorcycle": m})
}

func (h *Handler) ListMotorcycles(c *gin.Context) {
	rows, err := h.service.ListMotorcycles(c.Request.Context(), actorID(c))
	if err != nil {
		h.writeError(c, err, "Failed to list motorcycles")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"motorcycles": rows})
}

func (h *Handler) UpdateMotorcycle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid motorcycle fields")
		return
	}

	m, err := h.service.UpdateMotorcycle(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update motorcycle")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"motorcycle": m})
}

func (h *Handler) DeleteMotorcycle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMotorcycle(c.Request.Context(), actorID(c), id); err != nil {
		h.writeError(c, err, "Failed to delete motorcycle")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot perform this action")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Booking status does not allow this action")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func actorID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

func actorRole(c *gin.Context) domain.UserRole {
	return domain.UserRole(c.GetString("role"))
}
