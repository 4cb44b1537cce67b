package route

import (
	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/controller"
	"github.com/rajgh7/surprisevista/pkg/auth"
)

// RegisterOrderRoutes registers the public order routes
func RegisterOrderRoutes(r *gin.RouterGroup, orderController *controller.OrderController) {
	orders := r.Group("/orders")
	{
		orders.POST("", orderController.Create)
		orders.GET("/track/:code", orderController.Track)
	}
}

// RegisterAdminOrderRoutes registers the fulfilment routes behind auth
func RegisterAdminOrderRoutes(r *gin.RouterGroup, orderController *controller.OrderController) {
	orders := r.Group("/admin/orders")
	orders.Use(auth.JWTAuthMiddleware())
	{
		orders.GET("", orderController.List)
		orders.PATCH("/:id/status", orderController.UpdateStatus)
	}
}
