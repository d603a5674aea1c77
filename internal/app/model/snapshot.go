package model

// SessionSnapshot is the persisted shape of one session's state store.
// It serializes as a JSON object keyed by field name into the session's
// key-value slot; all arrays keep insertion order.
type SessionSnapshot struct {
	CartItems      []CartItem `json:"cart_items"`
	Orders         []Order    `json:"orders"`
	WishlistItems  []Product  `json:"wishlist_items"`
	ClosetItems    []Product  `json:"closet_items"`
	CompareItems   []Product  `json:"compare_items"`
	Reviews        []Review   `json:"reviews"`
	RecentlyViewed []Product  `json:"recently_viewed"`
	SearchHistory  []string   `json:"search_history"`
}
