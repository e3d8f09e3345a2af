package subscription

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/payments/price", h.Price)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/subscription/status", h.Status)
	protected.POST("/payments/create-checkout", h.CreateCheckout)
}
