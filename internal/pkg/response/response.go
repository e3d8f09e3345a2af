package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"theroom/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes the envelope for a classified error.
// Unclassified errors are logged and reported as INTERNAL_ERROR without details.
func FromError(c *gin.Context, err error) {
	kind := apperr.Kind(err)
	status, code := statusFor(kind)
	if kind == nil {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		Error(c, status, code, "Internal server error")
		return
	}
	if errors.Is(kind, apperr.ErrUpstream) {
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("upstream failure")
	}
	Error(c, status, code, publicMessage(err, kind))
}

func statusFor(kind error) (int, string) {
	switch kind {
	case apperr.ErrValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case apperr.ErrNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case apperr.ErrConflict:
		return http.StatusConflict, "CONFLICT"
	case apperr.ErrUnauthorized:
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case apperr.ErrForbidden:
		return http.StatusForbidden, "FORBIDDEN"
	case apperr.ErrUpstream:
		return http.StatusBadGateway, "UPSTREAM_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// publicMessage strips the class prefix so "not found: room not found" reads "room not found".
// Outside validation only the first segment is shown; wrapped causes stay in the logs.
func publicMessage(err error, kind error) string {
	msg := err.Error()
	if i := strings.Index(msg, kind.Error()); i >= 0 {
		msg = strings.TrimPrefix(msg[i+len(kind.Error()):], ": ")
	}
	if !errors.Is(kind, apperr.ErrValidation) {
		if i := strings.Index(msg, ": "); i >= 0 {
			msg = msg[:i]
		}
	}
	if msg == "" {
		status, _ := statusFor(kind)
		return http.StatusText(status)
	}
	return msg
}
