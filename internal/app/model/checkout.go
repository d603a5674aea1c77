package model

type CheckoutStage string

const (
	StageShipping CheckoutStage = "shipping"
	StagePayment  CheckoutStage = "payment"
	StageReview   CheckoutStage = "review"
)

// ShippingForm is the input collected by the shipping stage.
type ShippingForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	SaveInfo  bool   `json:"save_info"`
}

// PaymentForm is the input collected by the payment stage. CardNumber is
// kept auto-formatted in groups of 4 digits; only the masked descriptor
// ever reaches an order record.
type PaymentForm struct {
	CardName       string `json:"card_name"`
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"` // MM/YY
	CVV            string `json:"cvv"`
	SameAsShipping bool   `json:"same_as_shipping"`
}

// Quote is the money breakdown computed at the review stage.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CheckoutReview is the read-only recap shown by the review stage.
type CheckoutReview struct {
	Shipping       ShippingForm `json:"shipping"`
	CardName       string       `json:"card_name"`
	CardSummary    string       `json:"card_summary"`
	ExpiryDate     string       `json:"expiry_date"`
	SameAsShipping bool         `json:"same_as_shipping"`
	Items          []CartItem   `json:"items"`
	Quote          Quote        `json:"quote"`
}
