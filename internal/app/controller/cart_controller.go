package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nchoi/atelier-backend/internal/app/service"
	apperrors "github.com/nchoi/atelier-backend/internal/errors"
	"github.com/nchoi/atelier-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID     int    `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size"`
	SelectedColor string `json:"selected_color"`
}

type UpdateCartRequest struct {
	ProductID     int    `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size"`
	SelectedColor string `json:"selected_color"`
}

type RemoveCartRequest struct {
	ProductID     int    `json:"product_id" binding:"required"`
	SelectedSize  string `json:"selected_size"`
	SelectedColor string `json:"selected_color"`
}

// GetCart returns the session's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	summary, err := ctrl.cartService.GetCart(sessionID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items": summary.Items,
		"count":      summary.Count,
		"total":      summary.Total,
	})
}

// AddToCart adds a product line to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	if err := ctrl.cartService.AddToCart(sessionID, req.ProductID, req.Quantity, req.SelectedSize, req.SelectedColor); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add to cart", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add to cart")
		return
	}

	ctrl.respondWithCart(c, sessionID)
}

// UpdateCart changes the quantity of a cart line
// PUT /api/v1/cart
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	if err := ctrl.cartService.UpdateQuantity(sessionID, req.ProductID, req.SelectedSize, req.SelectedColor, req.Quantity); err != nil {
		log.Error("Failed to update cart", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to update cart")
		return
	}

	ctrl.respondWithCart(c, sessionID)
}

// RemoveFromCart removes a cart line
// DELETE /api/v1/cart
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req RemoveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid remove cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	if err := ctrl.cartService.RemoveFromCart(sessionID, req.ProductID, req.SelectedSize, req.SelectedColor); err != nil {
		log.Error("Failed to remove from cart", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to remove from cart")
		return
	}

	ctrl.respondWithCart(c, sessionID)
}

// ClearCart empties the cart
// DELETE /api/v1/cart/all
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	if err := ctrl.cartService.ClearCart(sessionID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

func (ctrl *CartController) respondWithCart(c *gin.Context, sessionID string) {
	summary, err := ctrl.cartService.GetCart(sessionID)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cart_items": summary.Items,
		"count":      summary.Count,
		"total":      summary.Total,
	})
}
