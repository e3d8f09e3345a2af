package tenant

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the unauthenticated account flows. guard is applied
// to every route, typically a rate limiter.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, guard ...gin.HandlerFunc) {
	authGroup := api.Group("/auth", guard...)
	{
		authGroup.POST("/register", h.Register)
		authGroup.GET("/verify", h.Verify)
		authGroup.POST("/verify/resend", h.ResendVerification)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.Me)
		authGroup.PUT("/update", h.UpdateProfile)
		authGroup.PUT("/update-site-settings", h.UpdateSiteSettings)
	}
}
