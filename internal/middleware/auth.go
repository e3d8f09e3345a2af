package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"theroom/internal/pkg/jwt"
	"theroom/internal/pkg/response"
)

const (
	CtxHotelID  = "hotel_id"
	CtxTenantID = "tenant_id"
	CtxEmail    = "email"
)

// JWTAuth authenticates the tenant administrator from the Authorization header.
// Both "Bearer <token>" and a bare token are accepted.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		token := header
		if scheme, rest, found := strings.Cut(header, " "); found {
			if !strings.EqualFold(scheme, "Bearer") {
				response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be a Bearer token")
				c.Abort()
				return
			}
			token = strings.TrimSpace(rest)
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired")
			c.Abort()
			return
		}

		c.Set(CtxHotelID, claims.ID)
		c.Set(CtxTenantID, claims.TenantID)
		c.Set(CtxEmail, claims.Email)
		c.Next()
	}
}

// HotelID returns the authenticated tenant key set by JWTAuth.
func HotelID(c *gin.Context) string {
	return c.GetString(CtxHotelID)
}

// RequireHotel aborts with 401 when no tenant identity is present.
func RequireHotel(c *gin.Context) (string, bool) {
	id := HotelID(c)
	if id == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		c.Abort()
		return "", false
	}
	return id, true
}
