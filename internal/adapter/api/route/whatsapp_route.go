package route

import (
	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/controller"
)

// RegisterWhatsAppRoutes registers the WhatsApp webhook routes
func RegisterWhatsAppRoutes(r *gin.RouterGroup, whatsAppController *controller.WhatsAppController) {
	webhook := r.Group("/whatsapp")
	{
		webhook.GET("/webhook", whatsAppController.Verify)
		webhook.POST("/webhook", whatsAppController.Receive)
	}
}
