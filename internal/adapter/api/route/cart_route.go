package route

import (
	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/controller"
)

// RegisterCartRoutes registers the storefront cart routes
func RegisterCartRoutes(r *gin.RouterGroup, cartController *controller.CartController) {
	cart := r.Group("/cart")
	{
		cart.POST("/add", cartController.Add)
		cart.GET("/:sessionId", cartController.Get)
	}
}
