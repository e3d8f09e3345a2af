package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"theroom/internal/middleware"
	"theroom/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Status(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	st, err := h.service.Status(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) Price(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Pricing())
}

// CreateCheckout is a placeholder until a payment provider is integrated.
func (h *Handler) CreateCheckout(c *gin.Context) {
	if _, ok := middleware.RequireHotel(c); !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"available": false,
		"message":   "Online payment is not available yet. Please contact support to upgrade.",
	})
}
