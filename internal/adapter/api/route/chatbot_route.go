package route

import (
	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/controller"
)

// RegisterChatbotRoutes registers the web-chat channel routes
func RegisterChatbotRoutes(r *gin.RouterGroup, chatbotController *controller.ChatbotController) {
	chatbot := r.Group("/chatbot")
	{
		chatbot.POST("/ask", chatbotController.Ask)
	}
}
