package model

import "time"

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// ShippingAddress is the validated shipping snapshot recorded on an order.
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// Order is created exactly once by checkout completion. Items and the
// four money fields are snapshots taken at creation time; they never
// recompute from live cart or catalog prices. Only Status changes after
// creation.
type Order struct {
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	Status          OrderStatus     `json:"status"`
	Items           []CartItem      `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Tax             float64         `json:"tax"`
	Total           float64         `json:"total"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"` // display string only, e.g. "Card ending in 1234"
}
