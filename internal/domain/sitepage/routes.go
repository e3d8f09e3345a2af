package sitepage

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	pages := protected.Group("/website-pages")
	{
		pages.GET("/components", h.Components)
		pages.GET("", h.List)
		pages.GET("/:id", h.Get)
		pages.POST("", h.Create)
		pages.PUT("/:id", h.Update)
		pages.DELETE("/:id", h.Delete)
	}
}
