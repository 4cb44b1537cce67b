package route

import (
	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/controller"
)

// RegisterAuthRoutes registers the admin authentication routes
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
	}
}
