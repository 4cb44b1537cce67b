package route

import (
	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/controller"
	"github.com/rajgh7/surprisevista/pkg/auth"
)

// RegisterProductRoutes registers the public catalog routes
func RegisterProductRoutes(r *gin.RouterGroup, productController *controller.ProductController) {
	products := r.Group("/products")
	{
		products.GET("", productController.List)
		products.GET("/:id", productController.Get)
	}
}

// RegisterAdminProductRoutes registers catalog management behind auth
func RegisterAdminProductRoutes(r *gin.RouterGroup, productController *controller.ProductController) {
	products := r.Group("/admin/products")
	products.Use(auth.JWTAuthMiddleware())
	{
		products.POST("", productController.Create)
		products.PUT("/:id", productController.Update)
		products.DELETE("/:id", productController.Delete)
	}
}
