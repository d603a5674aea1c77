package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/service"
	apperrors "github.com/nchoi/atelier-backend/internal/errors"
	"github.com/nchoi/atelier-backend/internal/middleware"
)

// WishlistController serves both saved-for-later lists: the wishlist and
// the closet. The two behave identically, so the handlers share a body.
type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

// GetWishlist returns the session's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	ctrl.getList(c, "wishlist", ctrl.wishlistService.GetWishlist)
}

// AddToWishlist adds a product to the wishlist
// POST /api/v1/wishlist/:productId
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	ctrl.mutateList(c, "wishlist", ctrl.wishlistService.AddToWishlist, ctrl.wishlistService.GetWishlist)
}

// RemoveFromWishlist removes a product from the wishlist
// DELETE /api/v1/wishlist/:productId
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	ctrl.mutateList(c, "wishlist", ctrl.wishlistService.RemoveFromWishlist, ctrl.wishlistService.GetWishlist)
}

// ClearWishlist empties the wishlist
// DELETE /api/v1/wishlist
func (ctrl *WishlistController) ClearWishlist(c *gin.Context) {
	ctrl.clearList(c, "wishlist", ctrl.wishlistService.ClearWishlist, ctrl.wishlistService.GetWishlist)
}

// GetCloset returns the session's closet
// GET /api/v1/closet
func (ctrl *WishlistController) GetCloset(c *gin.Context) {
	ctrl.getList(c, "closet", ctrl.wishlistService.GetCloset)
}

// AddToCloset adds a product to the closet
// POST /api/v1/closet/:productId
func (ctrl *WishlistController) AddToCloset(c *gin.Context) {
	ctrl.mutateList(c, "closet", ctrl.wishlistService.AddToCloset, ctrl.wishlistService.GetCloset)
}

// RemoveFromCloset removes a product from the closet
// DELETE /api/v1/closet/:productId
func (ctrl *WishlistController) RemoveFromCloset(c *gin.Context) {
	ctrl.mutateList(c, "closet", ctrl.wishlistService.RemoveFromCloset, ctrl.wishlistService.GetCloset)
}

// ClearCloset empties the closet
// DELETE /api/v1/closet
func (ctrl *WishlistController) ClearCloset(c *gin.Context) {
	ctrl.clearList(c, "closet", ctrl.wishlistService.ClearCloset, ctrl.wishlistService.GetCloset)
}

func (ctrl *WishlistController) clearList(
	c *gin.Context,
	name string,
	clear func(string) error,
	fetch func(string) ([]model.Product, error),
) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	if err := clear(sessionID); err != nil {
		log.Error("Failed to clear "+name, err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to clear "+name)
		return
	}

	ctrl.getList(c, name, fetch)
}

func (ctrl *WishlistController) getList(c *gin.Context, name string, fetch func(string) ([]model.Product, error)) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	items, err := fetch(sessionID)
	if err != nil {
		log.Error("Failed to fetch "+name, err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to fetch "+name)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (ctrl *WishlistController) mutateList(
	c *gin.Context,
	name string,
	mutate func(string, int) error,
	fetch func(string) ([]model.Product, error),
) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := mutate(sessionID, productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to update "+name, err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to update "+name)
		return
	}

	ctrl.getList(c, name, fetch)
}
