package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rajgh7/surprisevista/internal/adapter/api/dto"
	"github.com/rajgh7/surprisevista/pkg/dialogue"
	"github.com/rajgh7/surprisevista/pkg/logger"
)

// ChatbotController is the web-chat channel adapter: it extracts the
// normalized event from the widget's JSON request, feeds the dialogue
// engine and returns the reply as plain JSON. Session identity is a
// generated opaque id the widget persists client-side.
type ChatbotController struct {
	engine *dialogue.Engine
	logger logger.Logger
}

// NewChatbotController creates a new chatbot controller
func NewChatbotController(engine *dialogue.Engine, log logger.Logger) *ChatbotController {
	return &ChatbotController{engine: engine, logger: log}
}

// Ask godoc
// @Summary Process one chat turn
// @Description Feeds a user message to the conversational engine and returns the reply
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param message body dto.ChatAskRequest true "Chat turn"
// @Success 200 {object} dto.ChatAskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/chatbot/ask [post]
func (c *ChatbotController) Ask(ctx *gin.Context) {
	var req dto.ChatAskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "message required", err.Error()))
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()
	}

	reply, err := c.engine.HandleMessage(ctx.Request.Context(), dialogue.Event{
		SessionID: sessionID,
		UserID:    req.UserID,
		Text:      req.Message,
	})
	if err != nil {
		c.logger.Error("chat turn failed", "session_id", sessionID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.ChatAskResponse{
		Reply:       reply.Text,
		SessionID:   reply.SessionID,
		Products:    reply.Products,
		Suggestions: reply.Suggestions,
		CartCount:   reply.CartCount,
		OrderCode:   reply.OrderCode,
	})
}
