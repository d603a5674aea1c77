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

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type AddReviewRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
	Verified bool   `json:"verified"`
}

// GetProductReviews lists reviews for a product
// GET /api/v1/products/:id/reviews
func (ctrl *ReviewController) GetProductReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	reviews, err := ctrl.reviewService.GetProductReviews(sessionID, productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// AddReview creates a review for a product
// POST /api/v1/products/:id/reviews
func (ctrl *ReviewController) AddReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add review request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	review, err := ctrl.reviewService.AddReview(sessionID, productID, req.UserName, req.Rating, req.Comment, req.Verified)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		if errors.Is(err, service.ErrInvalidReviewRating) {
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
			return
		}
		log.Error("Failed to add review", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to add review")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// MarkHelpful increments a review's helpful counter
// POST /api/v1/reviews/:reviewId/helpful
func (ctrl *ReviewController) MarkHelpful(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	reviewID := c.Param("reviewId")
	if err := ctrl.reviewService.MarkHelpful(sessionID, reviewID); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		log.Error("Failed to mark review helpful", err, map[string]interface{}{
			"review_id": reviewID,
		})
		apperrors.InternalError(c, "Failed to mark review helpful")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review marked as helpful",
	})
}
