package theme

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	themes := protected.Group("/themes")
	{
		themes.GET("", h.List)
		themes.GET("/active", h.Active)
		themes.POST("", h.Create)
		themes.PUT("/:id", h.Update)
		themes.POST("/:id/activate", h.Activate)
		themes.DELETE("/:id", h.Delete)
	}
}
