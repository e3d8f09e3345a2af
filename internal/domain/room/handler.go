package room

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"theroom/internal/media"
	"theroom/internal/middleware"
	"theroom/internal/pkg/apperr"
	"theroom/internal/pkg/response"
)

const (
	MaxImages      = 10
	MaxVideos      = 3
	MaxUploadBytes = 50 << 20
)

type Handler struct {
	service     *Service
	defaultLang string
}

func NewHandler(service *Service, defaultLang string) *Handler {
	return &Handler{service: service, defaultLang: defaultLang}
}

// @Summary		List rooms
// @Tags		Rooms
// @Produce		json
// @Security	BearerAuth
// @Router		/rooms [get]
func (h *Handler) List(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	rooms, err := h.service.List(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

// @Summary		Create room
// @Description	Multipart form. Localized and nested fields are JSON text; files go in "images" and "videos".
// @Tags		Rooms
// @Accept		multipart/form-data
// @Produce		json
// @Security	BearerAuth
// @Router		/rooms [post]
func (h *Handler) Create(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	payload, files, err := h.bind(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	room, err := h.service.Create(c.Request.Context(), hotelID, payload, files)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) Get(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	room, err := h.service.Get(c.Request.Context(), hotelID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// @Summary		Update room
// @Description	Only sent fields change. New files are appended to the existing media.
// @Tags		Rooms
// @Accept		multipart/form-data
// @Produce		json
// @Security	BearerAuth
// @Router		/rooms/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	payload, files, err := h.bind(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	room, err := h.service.Update(c.Request.Context(), hotelID, c.Param("id"), payload, files)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
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
	response.Success(c, http.StatusOK, gin.H{"message": "Room deleted"})
}

func (h *Handler) RemoveMedia(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	url := c.Query("url")
	if url == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "url is required")
		return
	}
	room, err := h.service.RemoveMedia(c.Request.Context(), hotelID, c.Param("id"), url)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) bind(c *gin.Context) (Payload, Files, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+1<<20)

	var files Files
	form, err := c.MultipartForm()
	switch {
	case err == nil:
		files, err = collectFiles(form)
		if err != nil {
			return Payload{}, Files{}, err
		}
	case errors.Is(err, http.ErrNotMultipart):
		// plain urlencoded form without files
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Payload{}, Files{}, media.ErrFileTooLarge
		}
		return Payload{}, Files{}, apperr.Validation("invalid multipart form")
	}

	payload, err := ParseForm(c, h.defaultLang)
	if err != nil {
		return Payload{}, Files{}, err
	}
	return payload, files, nil
}

func collectFiles(form *multipart.Form) (Files, error) {
	images, videos := form.File["images"], form.File["videos"]
	if len(images) > MaxImages || len(videos) > MaxVideos {
		return Files{}, media.ErrTooManyFiles
	}
	var total int64
	var files Files
	for _, fh := range images {
		total += fh.Size
		files.Images = append(files.Images, media.FromHeader(fh))
	}
	for _, fh := range videos {
		total += fh.Size
		files.Videos = append(files.Videos, media.FromHeader(fh))
	}
	if total > MaxUploadBytes {
		return Files{}, media.ErrFileTooLarge
	}
	return files, nil
}
