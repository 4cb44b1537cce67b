package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/pkg/dialogue"
	"github.com/rajgh7/surprisevista/pkg/logger"
	"github.com/rajgh7/surprisevista/pkg/whatsapp"
)

// WhatsAppController is the WhatsApp channel adapter. Inbound webhooks
// are translated into the same textual commands the web chat produces,
// and the engine reply is rendered back as text, reply buttons or an
// interactive list. The sender phone number is the session key, so a
// conversation survives across webhook deliveries.
type WhatsAppController struct {
	engine *dialogue.Engine
	client *whatsapp.Client
	cfg    whatsapp.Config
	logger logger.Logger
}

// NewWhatsAppController creates a new WhatsApp webhook controller
func NewWhatsAppController(engine *dialogue.Engine, client *whatsapp.Client, cfg whatsapp.Config, log logger.Logger) *WhatsAppController {
	return &WhatsAppController{engine: engine, client: client, cfg: cfg, logger: log}
}

// Verify godoc
// @Summary Webhook verification handshake
// @Description Answers the Graph API subscription challenge
// @Tags WhatsApp
// @Produce plain
// @Param hub.mode query string true "subscribe"
// @Param hub.verify_token query string true "Configured verify token"
// @Param hub.challenge query string true "Challenge to echo"
// @Success 200 {string} string "challenge"
// @Failure 403 {string} string "forbidden"
// @Router /api/whatsapp/webhook [get]
func (c *WhatsAppController) Verify(ctx *gin.Context) {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == c.cfg.VerifyToken {
		ctx.String(http.StatusOK, challenge)
		return
	}
	ctx.String(http.StatusForbidden, "forbidden")
}

// Receive godoc
// @Summary Receive inbound WhatsApp messages
// @Description Processes one webhook delivery and replies through the Cloud API
// @Tags WhatsApp
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/whatsapp/webhook [post]
func (c *WhatsAppController) Receive(ctx *gin.Context) {
	// The Graph API retries non-200 deliveries aggressively, so the
	// webhook acknowledges everything and logs failures instead.
	var envelope whatsapp.WebhookEnvelope
	if err := ctx.ShouldBindJSON(&envelope); err != nil {
		c.logger.Warn("unreadable webhook body", "error", err)
		ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	msg, ok := envelope.FirstMessage()
	if !ok {
		ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	text := extractText(msg)
	if text == "" {
		if err := c.client.SendText(ctx.Request.Context(), msg.From,
			"Sorry, I can only read text messages right now. Tell me who you are shopping for!"); err != nil {
			c.logger.Error("whatsapp reply failed", "to", msg.From, "error", err)
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	reply, err := c.engine.HandleMessage(ctx.Request.Context(), dialogue.Event{
		SessionID: "wa_" + msg.From,
		UserID:    msg.From,
		Text:      text,
	})
	if err != nil {
		c.logger.Error("whatsapp turn failed", "from", msg.From, "error", err)
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	if err := c.deliver(ctx.Request.Context(), msg.From, reply); err != nil {
		c.logger.Error("whatsapp reply failed", "to", msg.From, "error", err)
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// deliver picks the richest message shape the reply supports
func (c *WhatsAppController) deliver(ctx context.Context, to string, reply *dialogue.Reply) error {
	if len(reply.Products) > 0 {
		rows := make([]whatsapp.Row, 0, len(reply.Products))
		for i, p := range reply.Products {
			if i >= 10 {
				break
			}
			rows = append(rows, whatsapp.Row{
				ID:          fmt.Sprintf("item_%d", i+1),
				Title:       truncate(p.Title, 24),
				Description: fmt.Sprintf("₹%.0f", p.Price),
			})
		}
		return c.client.SendInteractiveList(ctx, to, "Gift ideas", reply.Text, rows)
	}

	if n := len(reply.Suggestions); n > 0 && n <= 3 {
		buttons := make([]whatsapp.Button, 0, n)
		for i, s := range reply.Suggestions {
			buttons = append(buttons, whatsapp.Button{
				ID:    fmt.Sprintf("suggestion_%d", i+1),
				Title: truncate(s, 20),
			})
		}
		return c.client.SendButtons(ctx, to, reply.Text, buttons)
	}

	return c.client.SendText(ctx, to, reply.Text)
}

// extractText flattens text, list-reply and button-reply messages onto
// the engine's textual command vocabulary
func extractText(msg whatsapp.InboundMessage) string {
	if msg.Text != nil && strings.TrimSpace(msg.Text.Body) != "" {
		return strings.TrimSpace(msg.Text.Body)
	}
	if msg.Interactive == nil {
		return ""
	}
	if lr := msg.Interactive.ListReply; lr != nil {
		if n, ok := itemNumber(lr.ID); ok {
			return fmt.Sprintf("select %d", n)
		}
		return lr.Title
	}
	if br := msg.Interactive.ButtonReply; br != nil {
		switch br.ID {
		case "view_cart":
			return "view cart"
		case "track_order":
			return "track my order"
		case "menu":
			return "show me gifts"
		}
		return br.Title
	}
	return ""
}

// itemNumber parses "item_N" list row ids
func itemNumber(id string) (int, bool) {
	rest, found := strings.CutPrefix(id, "item_")
	if !found {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(rest, "%d", &n); err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// truncate trims display strings to the Cloud API field limits
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
