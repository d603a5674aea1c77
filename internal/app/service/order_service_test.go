package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/kv"
)

func setupOrderTest(t *testing.T, now func() time.Time) (OrderService, *state.Manager) {
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	sessions := state.NewManager(store)
	return NewOrderService(sessions, now), sessions
}

func placeTestOrder(sessions *state.Manager, sessionID, itemName string) string {
	session := sessions.Session(sessionID)
	session.AddToCart(model.Product{ID: 1, Name: itemName, Price: 25.00}, 1, "M", "Black")
	return session.CreateOrder(model.Quote{Subtotal: 25, Tax: 2, Shipping: 9.99, Total: 36.99}, model.ShippingAddress{}, "Card ending in 4242")
}

func TestOrderService_GetOrders_NewestFirst(t *testing.T) {
	svc, sessions := setupOrderTest(t, time.Now)

	first := placeTestOrder(sessions, "s1", "Premium Cotton T-Shirt")
	second := placeTestOrder(sessions, "s1", "Elegant Midi Dress")

	orders := svc.GetOrders("s1", "")
	require.Len(t, orders, 2)
	assert.Equal(t, second, orders[0].ID)
	assert.Equal(t, first, orders[1].ID)
}

func TestOrderService_GetOrders_FiltersByIDAndItemName(t *testing.T) {
	svc, sessions := setupOrderTest(t, time.Now)

	shirtOrder := placeTestOrder(sessions, "s1", "Premium Cotton T-Shirt")
	placeTestOrder(sessions, "s1", "Elegant Midi Dress")

	// Case-insensitive match on item name.
	orders := svc.GetOrders("s1", "cotton")
	require.Len(t, orders, 1)
	assert.Equal(t, shirtOrder, orders[0].ID)

	// Match on a fragment of the order id.
	orders = svc.GetOrders("s1", shirtOrder[:4])
	require.Len(t, orders, 1)
	assert.Equal(t, shirtOrder, orders[0].ID)

	// No match yields an empty list, not an error.
	orders = svc.GetOrders("s1", "nonexistent")
	assert.Empty(t, orders)
}

func TestOrderService_GetOrderByID(t *testing.T) {
	svc, sessions := setupOrderTest(t, time.Now)

	orderID := placeTestOrder(sessions, "s1", "Premium Cotton T-Shirt")

	order, err := svc.GetOrderByID("s1", orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)

	_, err = svc.GetOrderByID("s1", "zzzzzzzzz")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_AdvanceStatuses(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	orderTime := now
	sessions := state.NewManager(store, state.WithClock(func() time.Time { return orderTime }))
	svc := NewOrderService(sessions, func() time.Time { return now })

	session := sessions.Session("s1")

	// Fresh order, stays in Processing.
	session.AddToCart(model.Product{ID: 1, Name: "Tee", Price: 10}, 1, "M", "Black")
	fresh := session.CreateOrder(model.Quote{}, model.ShippingAddress{}, "Card ending in 1111")

	// A day-old order ships.
	orderTime = now.Add(-25 * time.Hour)
	session.AddToCart(model.Product{ID: 2, Name: "Dress", Price: 20}, 1, "S", "White")
	dayOld := session.CreateOrder(model.Quote{}, model.ShippingAddress{}, "Card ending in 2222")

	// A three-day-old order is delivered outright.
	orderTime = now.Add(-80 * time.Hour)
	session.AddToCart(model.Product{ID: 3, Name: "Scarf", Price: 30}, 1, "", "Red")
	threeDaysOld := session.CreateOrder(model.Quote{}, model.ShippingAddress{}, "Card ending in 3333")

	advanced := svc.AdvanceStatuses()
	assert.Equal(t, 2, advanced)

	order, _ := session.Order(fresh)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)

	order, _ = session.Order(dayOld)
	assert.Equal(t, model.OrderStatusShipped, order.Status)

	order, _ = session.Order(threeDaysOld)
	assert.Equal(t, model.OrderStatusDelivered, order.Status)
}
