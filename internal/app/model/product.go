package model

// Product is immutable reference data within a session. Products are
// seeded into the catalog at startup and never created or destroyed by
// the user-facing flows.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	IsOnSale      bool     `json:"is_on_sale"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Description   string   `json:"description,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Material      string   `json:"material,omitempty"`
}
