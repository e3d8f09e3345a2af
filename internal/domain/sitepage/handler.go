package sitepage

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

type CreatePageRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type UpdatePageRequest struct {
	Name       *string      `json:"name"`
	Slug       *string      `json:"slug"`
	Components *[]Component `json:"components"`
}

func (h *Handler) Components(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"components": Registry()})
}

func (h *Handler) List(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	pages, err := h.service.List(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pages": pages})
}

func (h *Handler) Get(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	page, err := h.service.Get(c.Request.Context(), hotelID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"page": page})
}

// @Summary		Create website page
// @Tags		WebsitePages
// @Accept		json
// @Produce		json
// @Security	BearerAuth
// @Param		body	body	CreatePageRequest	true	"payload"
// @Router		/website-pages [post]
func (h *Handler) Create(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "name and slug are required")
		return
	}
	page, err := h.service.Create(c.Request.Context(), hotelID, req.Name, req.Slug)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"page": page})
}

// @Summary		Save website page
// @Description	Any of name, slug and components. Components replace the stored list.
// @Tags		WebsitePages
// @Accept		json
// @Produce		json
// @Security	BearerAuth
// @Param		id		path	string				true	"page id"
// @Param		body	body	UpdatePageRequest	true	"payload"
// @Router		/website-pages/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	page, err := h.service.Update(c.Request.Context(), hotelID, c.Param("id"), UpdateInput{
		Name:       req.Name,
		Slug:       req.Slug,
		Components: req.Components,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"page": page, "message": "Page saved"})
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
	response.Success(c, http.StatusOK, gin.H{"message": "Page deleted"})
}
