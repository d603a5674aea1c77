package state

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/pkg/kv"
	"github.com/nchoi/atelier-backend/pkg/logger"
	"github.com/nchoi/atelier-backend/pkg/util"
)

const (
	// Namespace is the key prefix session snapshots persist under.
	Namespace = "storefront"

	maxCompareItems   = 4
	maxRecentlyViewed = 10
	maxSearchHistory  = 10
)

// Session is one user session's state store: cart, wishlist, closet,
// compare set, reviews, recently-viewed, search history, and orders.
// Every mutation happens under the session lock and is followed by a
// serialize-on-change write into the session's key-value slot, so
// CreateOrder's snapshot-and-clear is atomic from any caller's view.
type Session struct {
	id string

	mu   sync.Mutex
	data model.SessionSnapshot

	store      kv.Store
	newOrderID util.IDGenerator
	now        func() time.Time
}

func (s *Session) ID() string {
	return s.id
}

// save writes the current snapshot to the session's slot. Persistence
// failures are logged, not surfaced: no store operation fails under
// normal conditions and the in-memory state stays authoritative.
func (s *Session) save() {
	data, err := json.Marshal(s.data)
	if err != nil {
		logger.Error("Failed to serialize session snapshot", err, map[string]interface{}{
			"session_id": s.id,
		})
		return
	}
	if err := s.store.Set(Namespace+":"+s.id, data); err != nil {
		logger.Error("Failed to persist session snapshot", err, map[string]interface{}{
			"session_id": s.id,
		})
	}
}

// ---- Cart ----

// AddToCart merges by line identity (productID, size, color): an existing
// line gets its quantity incremented, otherwise a new line is appended.
func (s *Session) AddToCart(product model.Product, quantity int, size, color string) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.CartItems {
		if s.data.CartItems[i].SameLine(product.ID, size, color) {
			s.data.CartItems[i].Quantity += quantity
			s.save()
			return
		}
	}

	s.data.CartItems = append(s.data.CartItems, model.CartItem{
		Product:       product,
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	})
	s.save()
}

// RemoveFromCart deletes the line with the given identity. Removing an
// absent line is a no-op.
func (s *Session) RemoveFromCart(productID int, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.data.CartItems[:0]
	for _, item := range s.data.CartItems {
		if !item.SameLine(productID, size, color) {
			kept = append(kept, item)
		}
	}
	s.data.CartItems = kept
	s.save()
}

// UpdateCartQuantity sets the quantity of one line; a quantity of zero or
// less removes the line.
func (s *Session) UpdateCartQuantity(productID int, size, color string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID, size, color)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.CartItems {
		if s.data.CartItems[i].SameLine(productID, size, color) {
			s.data.CartItems[i].Quantity = quantity
			s.save()
			return
		}
	}
}

func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.CartItems = nil
	s.save()
}

// CartItems returns a copy of the cart lines in insertion order.
func (s *Session) CartItems() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.CartItem(nil), s.data.CartItems...)
}

// CartTotal is the derived sum of price times quantity over all lines.
func (s *Session) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cartTotalLocked(s.data.CartItems)
}

func cartTotalLocked(items []model.CartItem) float64 {
	amounts := make([]float64, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, item.Price*float64(item.Quantity))
	}
	return util.SumToCents(amounts...)
}

// CartItemsCount is the derived sum of quantities over all lines.
func (s *Session) CartItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.data.CartItems {
		count += item.Quantity
	}
	return count
}

// ---- Wishlist / Closet / Compare ----

// AddToWishlist adds a product if absent; duplicates are silent no-ops.
func (s *Session) AddToWishlist(product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if containsProduct(s.data.WishlistItems, product.ID) {
		return
	}
	s.data.WishlistItems = append(s.data.WishlistItems, product)
	s.save()
}

// RemoveFromWishlist removes by product id; absent ids are no-ops.
func (s *Session) RemoveFromWishlist(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.WishlistItems = removeProduct(s.data.WishlistItems, productID)
	s.save()
}

func (s *Session) IsInWishlist(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return containsProduct(s.data.WishlistItems, productID)
}

func (s *Session) WishlistItems() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Product(nil), s.data.WishlistItems...)
}

func (s *Session) ClearWishlist() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.WishlistItems = nil
	s.save()
}

// AddToCloset adds a product to the save-for-later bucket if absent.
func (s *Session) AddToCloset(product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if containsProduct(s.data.ClosetItems, product.ID) {
		return
	}
	s.data.ClosetItems = append(s.data.ClosetItems, product)
	s.save()
}

func (s *Session) RemoveFromCloset(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.ClosetItems = removeProduct(s.data.ClosetItems, productID)
	s.save()
}

func (s *Session) IsInCloset(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return containsProduct(s.data.ClosetItems, productID)
}

func (s *Session) ClosetItems() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Product(nil), s.data.ClosetItems...)
}

func (s *Session) ClearCloset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.ClosetItems = nil
	s.save()
}

// AddToCompare adds a product to the comparison set. The set is capped at
// 4 entries; adds beyond the cap are silent no-ops, so callers that care
// must check the resulting set size.
func (s *Session) AddToCompare(product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data.CompareItems) >= maxCompareItems {
		return
	}
	if containsProduct(s.data.CompareItems, product.ID) {
		return
	}
	s.data.CompareItems = append(s.data.CompareItems, product)
	s.save()
}

func (s *Session) RemoveFromCompare(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.CompareItems = removeProduct(s.data.CompareItems, productID)
	s.save()
}

func (s *Session) IsInCompare(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return containsProduct(s.data.CompareItems, productID)
}

func (s *Session) CompareItems() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Product(nil), s.data.CompareItems...)
}

func (s *Session) ClearCompare() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.CompareItems = nil
	s.save()
}

// ---- Reviews ----

// AddReview stamps id, creation time, and a zero helpful counter.
func (s *Session) AddReview(review model.Review) model.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	review.ID = uuid.NewString()
	review.CreatedAt = s.now()
	review.Helpful = 0

	s.data.Reviews = append(s.data.Reviews, review)
	s.save()
	return review
}

// MarkReviewHelpful increments a review's helpful-vote counter, reporting
// whether the review exists.
func (s *Session) MarkReviewHelpful(reviewID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Reviews {
		if s.data.Reviews[i].ID == reviewID {
			s.data.Reviews[i].Helpful++
			s.save()
			return true
		}
	}
	return false
}

func (s *Session) ProductReviews(productID int) []model.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reviews []model.Review
	for _, r := range s.data.Reviews {
		if r.ProductID == productID {
			reviews = append(reviews, r)
		}
	}
	return reviews
}

// ---- Recently viewed / search history ----

// AddToRecentlyViewed moves the product to the front, keeping at most 10.
func (s *Session) AddToRecentlyViewed(product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := removeProduct(s.data.RecentlyViewed, product.ID)
	items = append([]model.Product{product}, items...)
	if len(items) > maxRecentlyViewed {
		items = items[:maxRecentlyViewed]
	}
	s.data.RecentlyViewed = items
	s.save()
}

func (s *Session) RecentlyViewed() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Product(nil), s.data.RecentlyViewed...)
}

// AddToSearchHistory records a query at the front, deduplicated, keeping
// at most 10. Blank queries are ignored.
func (s *Session) AddToSearchHistory(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]string, 0, len(s.data.SearchHistory)+1)
	history = append(history, query)
	for _, q := range s.data.SearchHistory {
		if q != query {
			history = append(history, q)
		}
	}
	if len(history) > maxSearchHistory {
		history = history[:maxSearchHistory]
	}
	s.data.SearchHistory = history
	s.save()
}

func (s *Session) SearchHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.data.SearchHistory...)
}

func (s *Session) ClearSearchHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.SearchHistory = nil
	s.save()
}

// ---- Orders ----

// CreateOrder snapshots the current cart into a new order, stamps id,
// creation time, and the initial "Processing" status, clears the live
// cart, and persists both changes in one write. It returns the new order
// id. The snapshot is a deep copy: later cart or catalog mutation never
// alters the recorded items or money fields.
func (s *Session) CreateOrder(quote model.Quote, address model.ShippingAddress, paymentMethod string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := append([]model.CartItem(nil), s.data.CartItems...)

	order := model.Order{
		ID:              s.newOrderID(),
		CreatedAt:       s.now(),
		Status:          model.OrderStatusProcessing,
		Items:           items,
		Subtotal:        quote.Subtotal,
		Shipping:        quote.Shipping,
		Tax:             quote.Tax,
		Total:           quote.Total,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
	}

	s.data.Orders = append(s.data.Orders, order)
	s.data.CartItems = nil
	s.save()

	logger.Info("Order created", map[string]interface{}{
		"session_id": s.id,
		"order_id":   order.ID,
		"item_count": len(items),
		"total":      order.Total,
	})
	return order.ID
}

// Order looks up one order by id. Absence is reported by the boolean, not
// an error.
func (s *Session) Order(orderID string) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.data.Orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return model.Order{}, false
}

// Orders returns all orders in creation order.
func (s *Session) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Order(nil), s.data.Orders...)
}

// SetOrderStatus updates one order's status, reporting whether the order
// exists. Item and money snapshots are never touched.
func (s *Session) SetOrderStatus(orderID string, status model.OrderStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Orders {
		if s.data.Orders[i].ID == orderID {
			s.data.Orders[i].Status = status
			s.save()
			return true
		}
	}
	return false
}

// ---- helpers ----

func containsProduct(items []model.Product, productID int) bool {
	for _, p := range items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func removeProduct(items []model.Product, productID int) []model.Product {
	kept := make([]model.Product, 0, len(items))
	for _, p := range items {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	return kept
}
