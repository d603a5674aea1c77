package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/pkg/kv"
)

var testTime = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func setupManager(t *testing.T) (*Manager, kv.Store) {
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	orderSeq := 0
	manager := NewManager(store,
		WithOrderIDGenerator(func() string {
			orderSeq++
			return []string{"k7m2p9x4q", "b3n8r1z6w", "d5t0v7y2j"}[orderSeq-1]
		}),
		WithClock(func() time.Time { return testTime }),
	)
	return manager, store
}

func testProduct(id int, name string, price float64) model.Product {
	return model.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: "women",
		Sizes:    []string{"S", "M", "L"},
		Colors:   []string{"Black", "White"},
	}
}

func TestSession_AddToCart_MergesByLineIdentity(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	shirt := testProduct(1, "Premium Cotton T-Shirt", 49.99)

	session.AddToCart(shirt, 1, "M", "Black")
	session.AddToCart(shirt, 2, "M", "Black")

	items := session.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	// A different size is a separate line even for the same product.
	session.AddToCart(shirt, 1, "L", "Black")
	items = session.CartItems()
	require.Len(t, items, 2)
	assert.Equal(t, 4, session.CartItemsCount())
}

func TestSession_RemoveFromCart_MatchesFullLineIdentity(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	shirt := testProduct(1, "Premium Cotton T-Shirt", 49.99)
	session.AddToCart(shirt, 1, "M", "Black")
	session.AddToCart(shirt, 1, "L", "Black")

	session.RemoveFromCart(1, "M", "Black")

	items := session.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].SelectedSize)

	// Removing an absent line changes nothing.
	session.RemoveFromCart(1, "XL", "Red")
	assert.Len(t, session.CartItems(), 1)
}

func TestSession_UpdateCartQuantity(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	shirt := testProduct(1, "Premium Cotton T-Shirt", 49.99)
	session.AddToCart(shirt, 2, "M", "Black")

	session.UpdateCartQuantity(1, "M", "Black", 5)
	items := session.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	// Quantity zero removes the line.
	session.UpdateCartQuantity(1, "M", "Black", 0)
	assert.Empty(t, session.CartItems())
}

func TestSession_CartTotal(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	session.AddToCart(testProduct(1, "Premium Cotton T-Shirt", 49.99), 2, "M", "Black")
	session.AddToCart(testProduct(2, "Elegant Midi Dress", 129.99), 1, "S", "White")

	assert.Equal(t, 229.97, session.CartTotal())
	assert.Equal(t, 3, session.CartItemsCount())
}

func TestSession_WishlistToggle_Idempotent(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	dress := testProduct(2, "Elegant Midi Dress", 129.99)

	session.AddToWishlist(dress)
	session.AddToWishlist(dress)
	assert.Len(t, session.WishlistItems(), 1)
	assert.True(t, session.IsInWishlist(2))

	session.RemoveFromWishlist(2)
	session.RemoveFromWishlist(2)
	assert.Empty(t, session.WishlistItems())
	assert.False(t, session.IsInWishlist(2))
}

func TestSession_Closet_AddRemoveClear(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	tee := testProduct(1, "Premium Cotton T-Shirt", 49.99)
	dress := testProduct(2, "Elegant Midi Dress", 129.99)

	session.AddToCloset(tee)
	session.AddToCloset(tee)
	session.AddToCloset(dress)
	assert.Len(t, session.ClosetItems(), 2)
	assert.True(t, session.IsInCloset(1))

	session.RemoveFromCloset(1)
	assert.False(t, session.IsInCloset(1))

	session.ClearCloset()
	assert.Empty(t, session.ClosetItems())
}

func TestSession_AddToCompare_CapAtFour(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	for i := 1; i <= 4; i++ {
		session.AddToCompare(testProduct(i, "Item", 10))
	}
	require.Len(t, session.CompareItems(), 4)

	// A fifth add is a silent no-op.
	session.AddToCompare(testProduct(5, "Item", 10))
	items := session.CompareItems()
	assert.Len(t, items, 4)
	assert.False(t, session.IsInCompare(5))

	session.RemoveFromCompare(1)
	session.AddToCompare(testProduct(5, "Item", 10))
	assert.True(t, session.IsInCompare(5))
}

func TestSession_AddToRecentlyViewed_MovesToFrontAndTrims(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	for i := 1; i <= 12; i++ {
		session.AddToRecentlyViewed(testProduct(i, "Item", 10))
	}

	viewed := session.RecentlyViewed()
	require.Len(t, viewed, 10)
	assert.Equal(t, 12, viewed[0].ID)
	assert.Equal(t, 3, viewed[9].ID)

	// Re-viewing an older product moves it to the front without growing
	// the list.
	session.AddToRecentlyViewed(testProduct(7, "Item", 10))
	viewed = session.RecentlyViewed()
	require.Len(t, viewed, 10)
	assert.Equal(t, 7, viewed[0].ID)
}

func TestSession_AddToSearchHistory_DedupAndLimit(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	session.AddToSearchHistory("dress")
	session.AddToSearchHistory("shirt")
	session.AddToSearchHistory("dress")

	history := session.SearchHistory()
	require.Len(t, history, 2)
	assert.Equal(t, []string{"dress", "shirt"}, history)

	// Blank queries are ignored.
	session.AddToSearchHistory("   ")
	assert.Len(t, session.SearchHistory(), 2)

	for i := 0; i < 12; i++ {
		session.AddToSearchHistory(string(rune('a' + i)))
	}
	assert.Len(t, session.SearchHistory(), 10)

	session.ClearSearchHistory()
	assert.Empty(t, session.SearchHistory())
}

func TestSession_CreateOrder_SnapshotsAndClearsCart(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	session.AddToCart(testProduct(1, "Premium Cotton T-Shirt", 49.99), 2, "M", "Black")
	session.AddToCart(testProduct(2, "Elegant Midi Dress", 129.99), 1, "S", "White")

	quote := model.Quote{Subtotal: 229.97, Shipping: 0, Tax: 18.40, Total: 248.37}
	address := model.ShippingAddress{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Address:   "12 Analytical Way",
		City:      "London",
		State:     "LDN",
		ZipCode:   "12345",
		Country:   "United States",
	}

	orderID := session.CreateOrder(quote, address, "Card ending in 3456")

	assert.Equal(t, "k7m2p9x4q", orderID)
	assert.Empty(t, session.CartItems())

	order, ok := session.Order(orderID)
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)
	assert.Equal(t, testTime, order.CreatedAt)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 248.37, order.Total)
	assert.Equal(t, "Card ending in 3456", order.PaymentMethod)

	// The snapshot is independent of the live cart.
	session.AddToCart(testProduct(3, "Silk Scarf", 39.99), 1, "", "Red")
	order, _ = session.Order(orderID)
	assert.Len(t, order.Items, 2)
}

func TestSession_Order_UnknownIDIsNotFound(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	_, ok := session.Order("zzzzzzzzz")
	assert.False(t, ok)
}

func TestSession_SetOrderStatus(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	session.AddToCart(testProduct(1, "Premium Cotton T-Shirt", 49.99), 1, "M", "Black")
	orderID := session.CreateOrder(model.Quote{}, model.ShippingAddress{}, "Card ending in 0000")

	assert.True(t, session.SetOrderStatus(orderID, model.OrderStatusShipped))
	order, _ := session.Order(orderID)
	assert.Equal(t, model.OrderStatusShipped, order.Status)

	assert.False(t, session.SetOrderStatus("missing", model.OrderStatusDelivered))
}

func TestSession_MarkReviewHelpful(t *testing.T) {
	manager, _ := setupManager(t)
	session := manager.Session("s1")

	review := session.AddReview(model.Review{
		ProductID: 1,
		UserName:  "Ada",
		Rating:    5,
		Comment:   "Fits perfectly.",
	})
	require.NotEmpty(t, review.ID)
	assert.Equal(t, 0, review.Helpful)

	assert.True(t, session.MarkReviewHelpful(review.ID))
	assert.True(t, session.MarkReviewHelpful(review.ID))
	assert.False(t, session.MarkReviewHelpful("missing"))

	reviews := session.ProductReviews(1)
	require.Len(t, reviews, 1)
	assert.Equal(t, 2, reviews[0].Helpful)
}

func TestManager_Session_HydratesFromStore(t *testing.T) {
	manager, store := setupManager(t)

	session := manager.Session("s1")
	session.AddToCart(testProduct(1, "Premium Cotton T-Shirt", 49.99), 2, "M", "Black")
	session.AddToWishlist(testProduct(2, "Elegant Midi Dress", 129.99))
	session.AddToSearchHistory("dress")

	// A fresh manager over the same store sees the persisted snapshot.
	reloaded := NewManager(store).Session("s1")
	items := reloaded.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, reloaded.IsInWishlist(2))
	assert.Equal(t, []string{"dress"}, reloaded.SearchHistory())
}

func TestManager_SessionIDs(t *testing.T) {
	manager, _ := setupManager(t)

	manager.Session("s1").AddToSearchHistory("dress")
	manager.Session("s2").AddToSearchHistory("shirt")

	ids, err := manager.SessionIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s1", "s2"}, ids)
}
