package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nchoi/atelier-backend/internal/app/service"
	apperrors "github.com/nchoi/atelier-backend/internal/errors"
	"github.com/nchoi/atelier-backend/internal/middleware"
)

type CompareController struct {
	compareService service.CompareService
}

func NewCompareController(compareService service.CompareService) *CompareController {
	return &CompareController{
		compareService: compareService,
	}
}

// GetCompareItems returns the comparison set
// GET /api/v1/compare
func (ctrl *CompareController) GetCompareItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	items, err := ctrl.compareService.GetCompareItems(sessionID)
	if err != nil {
		log.Error("Failed to fetch compare items", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to fetch compare items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// AddToCompare adds a product to the comparison set. A full set (4
// items) leaves the set unchanged; the response always reflects the
// resulting set so clients can tell.
// POST /api/v1/compare/:productId
func (ctrl *CompareController) AddToCompare(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	items, err := ctrl.compareService.AddToCompare(sessionID, productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add to compare", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to add to compare")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// RemoveFromCompare removes a product from the comparison set
// DELETE /api/v1/compare/:productId
func (ctrl *CompareController) RemoveFromCompare(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.compareService.RemoveFromCompare(sessionID, productID); err != nil {
		log.Error("Failed to remove from compare", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to remove from compare")
		return
	}

	ctrl.GetCompareItems(c)
}

// ClearCompare empties the comparison set
// DELETE /api/v1/compare
func (ctrl *CompareController) ClearCompare(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	if err := ctrl.compareService.ClearCompare(sessionID); err != nil {
		log.Error("Failed to clear compare", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to clear compare")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comparison cleared",
	})
}
