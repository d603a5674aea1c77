package model

// CartItem is one cart line. Line identity is the tuple
// (ProductID, SelectedSize, SelectedColor): adding the same tuple again
// increments Quantity, a different size or color creates a distinct line.
type CartItem struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
}

// SameLine reports whether the item matches the given line key.
func (c CartItem) SameLine(productID int, size, color string) bool {
	return c.ID == productID && c.SelectedSize == size && c.SelectedColor == color
}
