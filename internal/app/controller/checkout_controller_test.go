package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nchoi/atelier-backend/config"
	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/service"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/kv"
)

func setupCheckoutControllerTest(t *testing.T) (*gin.Engine, *state.Manager) {
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	sessions := state.NewManager(store)
	cfg := config.CheckoutConfig{
		FreeShippingThreshold: 100,
		FlatShippingRate:      9.99,
		TaxRate:               0.08,
	}
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	checkoutService := service.NewCheckoutService(sessions, cfg, func() time.Time { return now })
	controller := NewCheckoutController(checkoutService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("session_id", "test-session")
		c.Next()
	})
	router.POST("/checkout", controller.Begin)
	router.POST("/checkout/shipping", controller.SubmitShipping)
	router.POST("/checkout/payment", controller.SubmitPayment)
	router.GET("/checkout/review", controller.GetReview)
	router.POST("/checkout/place-order", controller.PlaceOrder)

	return router, sessions
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutController_Begin_EmptyCart(t *testing.T) {
	router, _ := setupCheckoutControllerTest(t)

	w := postJSON(t, router, "/checkout", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CART_EMPTY")
}

func TestCheckoutController_FullFlow(t *testing.T) {
	router, sessions := setupCheckoutControllerTest(t)

	session := sessions.Session("test-session")
	session.AddToCart(model.Product{ID: 1, Name: "Premium Cotton T-Shirt", Price: 49.99}, 2, "M", "Black")
	session.AddToCart(model.Product{ID: 2, Name: "Elegant Midi Dress", Price: 129.99}, 1, "S", "White")

	w := postJSON(t, router, "/checkout", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shipping")

	shipping := model.ShippingForm{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+1 (555) 010-2030",
		Address:   "12 Analytical Way",
		City:      "London",
		State:     "LDN",
		ZipCode:   "12345",
	}
	w = postJSON(t, router, "/checkout/shipping", shipping)
	require.Equal(t, http.StatusOK, w.Code)

	payment := model.PaymentForm{
		CardName:   "Ada Lovelace",
		CardNumber: "4242 4242 4242 4242",
		ExpiryDate: "09/26",
		CVV:        "123",
	}
	w = postJSON(t, router, "/checkout/payment", payment)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/checkout/review", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var reviewResponse struct {
		Review struct {
			CardSummary string      `json:"card_summary"`
			Quote       model.Quote `json:"quote"`
		} `json:"review"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &reviewResponse))
	assert.Equal(t, "Card ending in 4242", reviewResponse.Review.CardSummary)
	assert.Equal(t, 229.97, reviewResponse.Review.Quote.Subtotal)
	assert.Equal(t, 0.0, reviewResponse.Review.Quote.Shipping)
	assert.Equal(t, 248.37, reviewResponse.Review.Quote.Total)

	w = postJSON(t, router, "/checkout/place-order", gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)

	var placed struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.Len(t, placed.OrderID, 9)

	// Cart is empty and the order is queryable.
	assert.Empty(t, session.CartItems())
	order, ok := session.Order(placed.OrderID)
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)
}

func TestCheckoutController_SubmitShipping_FieldErrors(t *testing.T) {
	router, sessions := setupCheckoutControllerTest(t)
	sessions.Session("test-session").AddToCart(model.Product{ID: 1, Name: "Tee", Price: 20}, 1, "M", "Black")

	w := postJSON(t, router, "/checkout", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/checkout/shipping", model.ShippingForm{Email: "bad"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Fields, "email")
	assert.Contains(t, response.Fields, "first_name")
}

func TestCheckoutController_SubmitPayment_BeforeShipping(t *testing.T) {
	router, sessions := setupCheckoutControllerTest(t)
	sessions.Session("test-session").AddToCart(model.Product{ID: 1, Name: "Tee", Price: 20}, 1, "M", "Black")

	w := postJSON(t, router, "/checkout", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/checkout/payment", model.PaymentForm{
		CardName:   "Ada Lovelace",
		CardNumber: "4242424242424242",
		ExpiryDate: "09/26",
		CVV:        "123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CHECKOUT_WRONG_STAGE")
}
