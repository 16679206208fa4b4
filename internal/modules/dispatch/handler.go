package dispatch

import (
	"errors"
	"net/http"
	"strconv"

	"motofix/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the mechanic work queue. All three endpoints sit
// behind the mechanic role guard.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/offers", h.ListOffers)
	rg.POST("/offers/:id/accept", h.AcceptOffer)
	rg.POST("/offers/:id/reject", h.RejectOffer)
}

func (h *Handler) ListOffers(c *gin.Context) {
	offers, err := h.service.ListOffers(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list offers")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offers": offers})
}

func (h *Handler) AcceptOffer(c *gin.Context) {
	offerID, ok := offerPathID(c)
	if !ok {
		return
	}

	b, err := h.service.AcceptOffer(c.Request.Context(), offerID, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrOfferNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer not found")
		case errors.Is(err, ErrJobTaken):
			response.Error(c, http.StatusConflict, "OFFER_CONFLICT", "This job has already been taken by another mechanic")
		case errors.Is(err, ErrOfferResolved):
			response.Error(c, http.StatusConflict, "OFFER_CONFLICT", "This offer is no longer pending")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to accept offer")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) RejectOffer(c *gin.Context) {
	offerID, ok := offerPathID(c)
	if !ok {
		return
	}

	o, err := h.service.RejectOffer(c.Request.Context(), offerID, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrOfferNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer not found")
		case errors.Is(err, ErrOfferResolved):
			response.Error(c, http.StatusConflict, "OFFER_CONFLICT", "This offer is no longer pending")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reject offer")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": o})
}

func offerPathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid offer id")
		return 0, false
	}
	return id, true
}
