package staticpage

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"theroom/internal/media"
	"theroom/internal/middleware"
	"theroom/internal/pkg/apperr"
	"theroom/internal/pkg/localized"
	"theroom/internal/pkg/response"
)

// MaxImageBytes caps the single page image.
const MaxImageBytes = 3 << 20

type Handler struct {
	service     *Service
	defaultLang string
}

func NewHandler(service *Service, defaultLang string) *Handler {
	return &Handler{service: service, defaultLang: defaultLang}
}

func (h *Handler) Types(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"types": Types()})
}

// @Summary		Get static page
// @Description	Returns an empty page when the type was never saved.
// @Tags		Pages
// @Produce		json
// @Security	BearerAuth
// @Param		type	path	string	true	"kvkk | privacy | cookie | terms | contact"
// @Router		/pages/{type} [get]
func (h *Handler) Get(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	page, err := h.service.Get(c.Request.Context(), hotelID, c.Param("type"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"page": page})
}

// @Summary		Save static page
// @Tags		Pages
// @Accept		multipart/form-data
// @Produce		json
// @Security	BearerAuth
// @Param		type	path	string	true	"page type"
// @Param		image	formData	file	false	"page image, at most 3MB"
// @Router		/pages/{type} [put]
func (h *Handler) Upsert(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes+1<<20)
	var in UpsertInput
	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		if fh.Size > MaxImageBytes {
			response.FromError(c, media.ErrFileTooLarge)
			return
		}
		f := media.FromHeader(fh)
		in.Image = &f
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FromError(c, media.ErrFileTooLarge)
			return
		}
		response.FromError(c, apperr.Validation("invalid multipart form"))
		return
	}

	if raw, ok := c.GetPostForm("title"); ok {
		t := localized.Parse(raw, h.defaultLang)
		in.Title = &t
	}
	if raw, ok := c.GetPostForm("content"); ok {
		t := localized.Parse(raw, h.defaultLang)
		in.Content = &t
	}

	page, err := h.service.Upsert(c.Request.Context(), hotelID, c.Param("type"), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"page": page, "message": "Page saved"})
}
