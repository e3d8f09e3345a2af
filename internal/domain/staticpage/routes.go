package staticpage

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	pages := protected.Group("/pages")
	{
		pages.GET("/types", h.Types)
		pages.GET("/:type", h.Get)
		pages.PUT("/:type", h.Upsert)
	}
}
