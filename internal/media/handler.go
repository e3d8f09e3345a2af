package media

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"theroom/internal/middleware"
	"theroom/internal/pkg/apperr"
	"theroom/internal/pkg/response"
)

const libraryPrefix = "library"

// Handler exposes the hotel's media library.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload a media file
// @Description kind=image (default) is resized and recompressed; kind=video is stored as sent.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param kind formData string false "image or video"
// @Router /uploads [post]
func (h *Handler) Upload(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFileSize+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FromError(c, ErrFileTooLarge)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "no file provided")
		return
	}

	var upload *Upload
	switch kind := c.DefaultPostForm("kind", KindImage); kind {
	case KindImage:
		upload, err = h.service.ProcessImage(c.Request.Context(), hotelID, libraryPrefix, FromHeader(fh))
	case KindVideo:
		upload, err = h.service.StoreVideo(c.Request.Context(), hotelID, libraryPrefix, FromHeader(fh))
	default:
		err = apperr.Validation("kind must be image or video")
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"upload": upload})
}

// List godoc
// @Summary List the hotel's media library
// @Tags Uploads
// @Produce json
// @Security BearerAuth
// @Param kind query string false "image or video"
// @Router /uploads [get]
func (h *Handler) List(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	kind := c.Query("kind")
	if kind != "" && kind != KindImage && kind != KindVideo {
		response.FromError(c, apperr.Validation("kind must be image or video"))
		return
	}
	uploads, err := h.service.List(c.Request.Context(), hotelID, kind)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"uploads": uploads})
}

// Delete removes a library file by URL. Unknown URLs succeed.
func (h *Handler) Delete(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	url := c.Query("url")
	if url == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "url is required")
		return
	}
	if err := h.service.Remove(c.Request.Context(), hotelID, url); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "deleted"})
}
