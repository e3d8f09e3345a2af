package theme

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

type CreateThemeRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateThemeRequest struct {
	Name     *string        `json:"name"`
	IsActive *bool          `json:"isActive"`
	Config   map[string]any `json:"config"`
}

func (h *Handler) List(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	themes, err := h.service.List(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"themes": themes})
}

func (h *Handler) Active(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	t, err := h.service.Active(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"theme": t})
}

func (h *Handler) Create(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	var req CreateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}
	t, err := h.service.Create(c.Request.Context(), hotelID, req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"theme": t})
}

// @Summary		Update theme
// @Description	isActive=true makes this the only active theme of the hotel.
// @Tags		Themes
// @Accept		json
// @Produce		json
// @Security	BearerAuth
// @Param		id		path	string				true	"theme id"
// @Param		body	body	UpdateThemeRequest	true	"payload"
// @Router		/themes/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	var req UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	t, err := h.service.Update(c.Request.Context(), hotelID, c.Param("id"), UpdateInput{
		Name:     req.Name,
		IsActive: req.IsActive,
		Config:   req.Config,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"theme": t})
}

func (h *Handler) Activate(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	t, err := h.service.Activate(c.Request.Context(), hotelID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"theme": t})
}

func (h *Handler) Delete(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), hotelID, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Theme deleted"})
}
