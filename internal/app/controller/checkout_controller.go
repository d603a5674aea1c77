package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/service"
	apperrors "github.com/nchoi/atelier-backend/internal/errors"
	"github.com/nchoi/atelier-backend/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// Begin starts or resumes the checkout wizard
// POST /api/v1/checkout
func (ctrl *CheckoutController) Begin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	stage, err := ctrl.checkoutService.Begin(sessionID)
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
			return
		}
		log.Error("Failed to start checkout", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to start checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stage": stage})
}

// GetStage reports the wizard's current stage
// GET /api/v1/checkout
func (ctrl *CheckoutController) GetStage(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	stage, err := ctrl.checkoutService.CurrentStage(sessionID)
	if err != nil {
		apperrors.NotFound(c, apperrors.CheckoutNotStarted, "Checkout has not been started")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stage": stage})
}

// SubmitShipping completes the shipping stage
// POST /api/v1/checkout/shipping
func (ctrl *CheckoutController) SubmitShipping(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var form model.ShippingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		log.Warn("Invalid shipping request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	fieldErrors, err := ctrl.checkoutService.SubmitShipping(sessionID, form)
	if err != nil {
		ctrl.respondStageError(c, err)
		return
	}
	if len(fieldErrors) > 0 {
		apperrors.RespondWithValidationError(c, fieldErrors)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stage": model.StagePayment})
}

// SubmitPayment completes the payment stage
// POST /api/v1/checkout/payment
func (ctrl *CheckoutController) SubmitPayment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var form model.PaymentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		log.Warn("Invalid payment request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	fieldErrors, err := ctrl.checkoutService.SubmitPayment(sessionID, form)
	if err != nil {
		ctrl.respondStageError(c, err)
		return
	}
	if len(fieldErrors) > 0 {
		apperrors.RespondWithValidationError(c, fieldErrors)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stage": model.StageReview})
}

// Back steps the wizard one stage backwards
// POST /api/v1/checkout/back
func (ctrl *CheckoutController) Back(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	stage, err := ctrl.checkoutService.Back(sessionID)
	if err != nil {
		ctrl.respondStageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stage": stage})
}

// GetReview returns the order recap with the final quote
// GET /api/v1/checkout/review
func (ctrl *CheckoutController) GetReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	review, err := ctrl.checkoutService.Review(sessionID)
	if err != nil {
		log.Warn("Checkout review unavailable", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		ctrl.respondStageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// PlaceOrder commits the order and ends the wizard
// POST /api/v1/checkout/place-order
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	orderID, err := ctrl.checkoutService.PlaceOrder(sessionID)
	if err != nil {
		ctrl.respondStageError(c, err)
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"session_id": sessionID,
		"order_id":   orderID,
	})
	c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
}

func (ctrl *CheckoutController) respondStageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCheckoutNotStarted):
		apperrors.NotFound(c, apperrors.CheckoutNotStarted, "Checkout has not been started")
	case errors.Is(err, service.ErrWrongStage):
		apperrors.Conflict(c, apperrors.CheckoutWrongStage, "Operation not valid for the current checkout stage")
	case errors.Is(err, service.ErrCartEmpty):
		apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
	default:
		apperrors.InternalError(c, "Checkout failed")
	}
}
