package service

import (
	"errors"
	"strings"
	"time"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

var ErrOrderNotFound = errors.New("order not found")

const (
	shippedAfter   = 24 * time.Hour
	deliveredAfter = 72 * time.Hour
)

// OrderService exposes the per-session order history and the background
// status progression.
type OrderService interface {
	// GetOrders returns the session's orders, newest first. A non-empty
	// query filters by order id or item name, case-insensitively.
	GetOrders(sessionID string, query string) []model.Order
	// GetOrderByID looks up a single order. An unknown id is an expected
	// outcome and maps to ErrOrderNotFound, never an internal failure.
	GetOrderByID(sessionID string, orderID string) (*model.Order, error)
	// AdvanceStatuses walks every known session and moves orders along
	// Processing -> Shipped -> Delivered based on their age. Only the
	// status field changes.
	AdvanceStatuses() int
}

type orderService struct {
	sessions *state.Manager
	now      func() time.Time
}

func NewOrderService(sessions *state.Manager, clock ...func() time.Time) OrderService {
	now := time.Now
	if len(clock) > 0 && clock[0] != nil {
		now = clock[0]
	}
	return &orderService{sessions: sessions, now: now}
}

func (s *orderService) GetOrders(sessionID string, query string) []model.Order {
	orders := s.sessions.Session(sessionID).Orders()

	// Newest first.
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return orders
	}

	filtered := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if orderMatches(order, query) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

func orderMatches(order model.Order, query string) bool {
	if strings.Contains(strings.ToLower(order.ID), query) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			return true
		}
	}
	return false
}

func (s *orderService) GetOrderByID(sessionID string, orderID string) (*model.Order, error) {
	order, ok := s.sessions.Session(sessionID).Order(orderID)
	if !ok {
		logger.Debug("Order not found", map[string]interface{}{
			"session_id": sessionID,
			"order_id":   orderID,
		})
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

func (s *orderService) AdvanceStatuses() int {
	now := s.now()
	advanced := 0

	sessionIDs, err := s.sessions.SessionIDs()
	if err != nil {
		logger.Error("Failed to list sessions for status progression", err)
		return 0
	}

	for _, sessionID := range sessionIDs {
		session := s.sessions.Session(sessionID)
		for _, order := range session.Orders() {
			next, ok := nextStatus(order, now)
			if !ok {
				continue
			}
			if session.SetOrderStatus(order.ID, next) {
				advanced++
				logger.Info("Order status advanced", map[string]interface{}{
					"session_id": sessionID,
					"order_id":   order.ID,
					"status":     string(next),
				})
			}
		}
	}
	return advanced
}

func nextStatus(order model.Order, now time.Time) (model.OrderStatus, bool) {
	age := now.Sub(order.CreatedAt)
	switch order.Status {
	case model.OrderStatusProcessing:
		if age > deliveredAfter {
			return model.OrderStatusDelivered, true
		}
		if age > shippedAfter {
			return model.OrderStatusShipped, true
		}
	case model.OrderStatusShipped:
		if age > deliveredAfter {
			return model.OrderStatusDelivered, true
		}
	}
	return "", false
}
