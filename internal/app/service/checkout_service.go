package service

import (
	"errors"
	"sync"
	"time"

	"github.com/nchoi/atelier-backend/config"
	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/logger"
	"github.com/nchoi/atelier-backend/pkg/util"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCheckoutNotStarted = errors.New("checkout has not been started")
	ErrWrongStage         = errors.New("operation not valid for the current checkout stage")
)

// CheckoutService drives the three-stage wizard shipping -> payment ->
// review, with placeOrder as the terminal action. Each stage's submit is
// the only forward transition; going back never discards data already
// entered for the stage being returned to. Validation failures are
// field-scoped, block the transition, and commit nothing.
type CheckoutService interface {
	// Begin starts (or resumes) the wizard. A session with an empty cart
	// never enters the shipping stage: Begin returns ErrCartEmpty.
	Begin(sessionID string) (model.CheckoutStage, error)
	CurrentStage(sessionID string) (model.CheckoutStage, error)
	SubmitShipping(sessionID string, form model.ShippingForm) (map[string]string, error)
	SubmitPayment(sessionID string, form model.PaymentForm) (map[string]string, error)
	Back(sessionID string) (model.CheckoutStage, error)
	Review(sessionID string) (*model.CheckoutReview, error)
	PlaceOrder(sessionID string) (string, error)
}

type checkoutWizard struct {
	stage    model.CheckoutStage
	shipping model.ShippingForm
	payment  model.PaymentForm
}

type checkoutService struct {
	sessions *state.Manager
	cfg      config.CheckoutConfig
	now      func() time.Time

	mu      sync.Mutex
	wizards map[string]*checkoutWizard
}

// NewCheckoutService builds the wizard controller. The optional clock is
// used by expiry validation; tests pin it.
func NewCheckoutService(sessions *state.Manager, cfg config.CheckoutConfig, clock ...func() time.Time) CheckoutService {
	now := time.Now
	if len(clock) > 0 && clock[0] != nil {
		now = clock[0]
	}
	return &checkoutService{
		sessions: sessions,
		cfg:      cfg,
		now:      now,
		wizards:  make(map[string]*checkoutWizard),
	}
}

func (s *checkoutService) Begin(sessionID string) (model.CheckoutStage, error) {
	if s.sessions.Session(sessionID).CartItemsCount() == 0 {
		logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
			"session_id": sessionID,
		})
		return "", ErrCartEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wizard, ok := s.wizards[sessionID]
	if !ok {
		wizard = &checkoutWizard{
			stage:    model.StageShipping,
			shipping: model.ShippingForm{Country: "United States"},
			payment:  model.PaymentForm{SameAsShipping: true},
		}
		s.wizards[sessionID] = wizard

		logger.Info("Checkout started", map[string]interface{}{
			"session_id": sessionID,
		})
	}
	return wizard.stage, nil
}

func (s *checkoutService) CurrentStage(sessionID string) (model.CheckoutStage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wizard, ok := s.wizards[sessionID]
	if !ok {
		return "", ErrCheckoutNotStarted
	}
	return wizard.stage, nil
}

// SubmitShipping validates the shipping stage. A non-empty error map
// means the stage did not transition and nothing was stored.
func (s *checkoutService) SubmitShipping(sessionID string, form model.ShippingForm) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wizard, ok := s.wizards[sessionID]
	if !ok {
		return nil, ErrCheckoutNotStarted
	}
	if wizard.stage != model.StageShipping {
		return nil, ErrWrongStage
	}

	if form.Country == "" {
		form.Country = "United States"
	}

	fieldErrors := validateShipping(form)
	if len(fieldErrors) > 0 {
		logger.Debug("Shipping validation failed", map[string]interface{}{
			"session_id": sessionID,
			"fields":     len(fieldErrors),
		})
		return fieldErrors, nil
	}

	wizard.shipping = form
	wizard.stage = model.StagePayment

	logger.Info("Shipping stage completed", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil, nil
}

// SubmitPayment normalizes the card inputs (number grouped in 4s and
// capped at 16 digits, expiry as MM/YY) before validating.
func (s *checkoutService) SubmitPayment(sessionID string, form model.PaymentForm) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wizard, ok := s.wizards[sessionID]
	if !ok {
		return nil, ErrCheckoutNotStarted
	}
	if wizard.stage != model.StagePayment {
		return nil, ErrWrongStage
	}

	form.CardNumber = util.FormatCardNumber(form.CardNumber)
	form.ExpiryDate = util.FormatExpiry(form.ExpiryDate)

	fieldErrors := validatePayment(form, s.now())
	if len(fieldErrors) > 0 {
		logger.Debug("Payment validation failed", map[string]interface{}{
			"session_id": sessionID,
			"fields":     len(fieldErrors),
		})
		return fieldErrors, nil
	}

	wizard.payment = form
	wizard.stage = model.StageReview

	logger.Info("Payment stage completed", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil, nil
}

// Back steps one stage backwards without discarding entered data. On the
// shipping stage it stays put.
func (s *checkoutService) Back(sessionID string) (model.CheckoutStage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wizard, ok := s.wizards[sessionID]
	if !ok {
		return "", ErrCheckoutNotStarted
	}

	switch wizard.stage {
	case model.StagePayment:
		wizard.stage = model.StageShipping
	case model.StageReview:
		wizard.stage = model.StagePayment
	}
	return wizard.stage, nil
}

func (s *checkoutService) Review(sessionID string) (*model.CheckoutReview, error) {
	s.mu.Lock()
	wizard, ok := s.wizards[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrCheckoutNotStarted
	}
	if wizard.stage != model.StageReview {
		s.mu.Unlock()
		return nil, ErrWrongStage
	}
	shipping := wizard.shipping
	payment := wizard.payment
	s.mu.Unlock()

	session := s.sessions.Session(sessionID)
	items := session.CartItems()
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	return &model.CheckoutReview{
		Shipping:       shipping,
		CardName:       payment.CardName,
		CardSummary:    util.MaskCardNumber(payment.CardNumber),
		ExpiryDate:     payment.ExpiryDate,
		SameAsShipping: payment.SameAsShipping,
		Items:          items,
		Quote:          s.quote(session.CartTotal()),
	}, nil
}

// PlaceOrder commits the order through the state store (which snapshots
// the cart and clears it atomically) and ends the wizard. It returns the
// new order id; navigating to the confirmation view with that id is the
// caller's final step.
func (s *checkoutService) PlaceOrder(sessionID string) (string, error) {
	s.mu.Lock()
	wizard, ok := s.wizards[sessionID]
	if !ok {
		s.mu.Unlock()
		return "", ErrCheckoutNotStarted
	}
	if wizard.stage != model.StageReview {
		s.mu.Unlock()
		return "", ErrWrongStage
	}
	shipping := wizard.shipping
	payment := wizard.payment
	s.mu.Unlock()

	session := s.sessions.Session(sessionID)
	if session.CartItemsCount() == 0 {
		return "", ErrCartEmpty
	}

	quote := s.quote(session.CartTotal())
	address := model.ShippingAddress{
		FirstName: shipping.FirstName,
		LastName:  shipping.LastName,
		Email:     shipping.Email,
		Phone:     shipping.Phone,
		Address:   shipping.Address,
		Apartment: shipping.Apartment,
		City:      shipping.City,
		State:     shipping.State,
		ZipCode:   shipping.ZipCode,
		Country:   shipping.Country,
	}

	orderID := session.CreateOrder(quote, address, util.MaskCardNumber(payment.CardNumber))

	s.mu.Lock()
	delete(s.wizards, sessionID)
	s.mu.Unlock()

	logger.Info("Checkout completed", map[string]interface{}{
		"session_id": sessionID,
		"order_id":   orderID,
		"total":      quote.Total,
	})
	return orderID, nil
}

// quote computes the money breakdown. Shipping is free when the subtotal
// reaches the threshold (the 100.00 boundary is inclusive), otherwise the
// flat rate applies; tax is a flat percentage of the subtotal rounded to
// cents.
func (s *checkoutService) quote(subtotal float64) model.Quote {
	shipping := s.cfg.FlatShippingRate
	if subtotal >= s.cfg.FreeShippingThreshold {
		shipping = 0
	}
	tax := util.TaxOn(subtotal, s.cfg.TaxRate)

	return model.Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    util.SumToCents(subtotal, shipping, tax),
	}
}

func validateShipping(form model.ShippingForm) map[string]string {
	fieldErrors := make(map[string]string)

	required := []struct {
		name  string
		value string
		label string
	}{
		{"first_name", form.FirstName, "First name"},
		{"last_name", form.LastName, "Last name"},
		{"email", form.Email, "Email"},
		{"phone", form.Phone, "Phone"},
		{"address", form.Address, "Address"},
		{"city", form.City, "City"},
		{"state", form.State, "State"},
		{"zip_code", form.ZipCode, "ZIP code"},
	}
	for _, field := range required {
		if field.value == "" {
			fieldErrors[field.name] = field.label + " is required"
		}
	}

	if form.Email != "" && !util.IsValidEmail(form.Email) {
		fieldErrors["email"] = "Please enter a valid email address"
	}
	if form.Phone != "" && !util.IsValidPhone(form.Phone) {
		fieldErrors["phone"] = "Please enter a valid phone number"
	}
	if form.ZipCode != "" && !util.IsValidZipCode(form.ZipCode) {
		fieldErrors["zip_code"] = "Please enter a valid ZIP code"
	}

	return fieldErrors
}

func validatePayment(form model.PaymentForm, now time.Time) map[string]string {
	fieldErrors := make(map[string]string)

	required := []struct {
		name  string
		value string
		label string
	}{
		{"card_name", form.CardName, "Name on card"},
		{"card_number", form.CardNumber, "Card number"},
		{"expiry_date", form.ExpiryDate, "Expiry date"},
		{"cvv", form.CVV, "CVV"},
	}
	for _, field := range required {
		if field.value == "" {
			fieldErrors[field.name] = field.label + " is required"
		}
	}

	if form.CardNumber != "" && len(util.StripCardNumber(form.CardNumber)) < 16 {
		fieldErrors["card_number"] = "Please enter a valid card number"
	}

	if form.ExpiryDate != "" {
		month, year, err := util.ParseExpiry(form.ExpiryDate)
		if err != nil {
			fieldErrors["expiry_date"] = "Please enter a valid expiry date"
		} else if util.ExpiryInPast(month, year, now) {
			fieldErrors["expiry_date"] = "Card has expired"
		}
	}

	if form.CVV != "" && !util.IsValidCVV(form.CVV) {
		fieldErrors["cvv"] = "CVV must be 3 or 4 digits"
	}

	return fieldErrors
}
