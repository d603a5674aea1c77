package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nchoi/atelier-backend/internal/app/service"
	apperrors "github.com/nchoi/atelier-backend/internal/errors"
	"github.com/nchoi/atelier-backend/internal/middleware"
)

// ActivityController exposes the browsing trails: recently viewed
// products and the search history.
type ActivityController struct {
	catalogService service.CatalogService
}

func NewActivityController(catalogService service.CatalogService) *ActivityController {
	return &ActivityController{
		catalogService: catalogService,
	}
}

// GetRecentlyViewed returns up to the last 10 viewed products
// GET /api/v1/activity/recently-viewed
func (ctrl *ActivityController) GetRecentlyViewed(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	products, err := ctrl.catalogService.GetRecentlyViewed(sessionID)
	if err != nil {
		log.Error("Failed to fetch recently viewed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to fetch recently viewed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetSearchHistory returns up to the last 10 search terms
// GET /api/v1/activity/search-history
func (ctrl *ActivityController) GetSearchHistory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	terms, err := ctrl.catalogService.GetSearchHistory(sessionID)
	if err != nil {
		log.Error("Failed to fetch search history", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to fetch search history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"terms": terms,
		"count": len(terms),
	})
}

// ClearSearchHistory wipes the search history
// DELETE /api/v1/activity/search-history
func (ctrl *ActivityController) ClearSearchHistory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	if err := ctrl.catalogService.ClearSearchHistory(sessionID); err != nil {
		log.Error("Failed to clear search history", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to clear search history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search history cleared",
	})
}
