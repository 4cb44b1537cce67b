package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/dto"
	"github.com/rajgh7/surprisevista/internal/adapter/repository"
	"github.com/rajgh7/surprisevista/internal/domain/product"
	"github.com/rajgh7/surprisevista/internal/domain/session"
	"github.com/rajgh7/surprisevista/pkg/logger"
)

// CartController exposes the session cart to the storefront directly,
// for the product-card buttons that bypass the chat input. It mutates
// the same session record the dialogue engine reads, so "view cart" in
// chat sees button-added items too.
type CartController struct {
	sessions session.Store
	products product.Repository
	logger   logger.Logger
}

// NewCartController creates a new cart controller
func NewCartController(sessions session.Store, products product.Repository, log logger.Logger) *CartController {
	return &CartController{sessions: sessions, products: products, logger: log}
}

// Add godoc
// @Summary Add a product to a session cart
// @Description Merges a catalog product into the conversation's cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body dto.CartAddRequest true "Item to add"
// @Success 200 {object} dto.CartAddResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/cart/add [post]
func (c *CartController) Add(ctx *gin.Context) {
	var req dto.CartAddRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "invalid payload", err.Error()))
		return
	}

	p, err := c.products.FindByID(ctx.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
				http.StatusNotFound, "product not found", ""))
			return
		}
		c.logger.Error("cart add lookup failed", "product_id", req.ProductID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	sess, err := c.sessions.Get(ctx.Request.Context(), req.SessionID)
	if err != nil {
		c.logger.Error("cart add session load failed", "session_id", req.SessionID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	qty := req.Qty
	if qty < 1 {
		qty = 1
	}
	sess.AddToCart(p.Summarize(), qty)

	if err := c.sessions.Save(ctx.Request.Context(), sess); err != nil {
		c.logger.Error("cart add session save failed", "session_id", req.SessionID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.CartAddResponse{
		OK: true,
		Added: dto.CartAddedItem{
			ProductID: p.ID,
			Title:     p.Name,
			Price:     p.Price,
			Qty:       qty,
		},
		Count: sess.CartCount(),
		Total: sess.CartTotal(),
	})
}

// Get godoc
// @Summary Fetch a session cart
// @Description Returns the cart lines of a conversation session
// @Tags Cart
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.CartGetResponse
// @Router /api/cart/{sessionId} [get]
func (c *CartController) Get(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	sess, err := c.sessions.Get(ctx.Request.Context(), sessionID)
	if err != nil {
		c.logger.Error("cart fetch failed", "session_id", sessionID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	items := sess.Cart
	if items == nil {
		items = []session.CartItem{}
	}

	ctx.JSON(http.StatusOK, dto.CartGetResponse{
		SessionID: sessionID,
		Items:     items,
		Count:     sess.CartCount(),
		Total:     sess.CartTotal(),
	})
}
