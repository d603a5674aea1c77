package service

import (
	"errors"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

// CartSummary is a cart listing with its derived values.
type CartSummary struct {
	Items []model.CartItem `json:"items"`
	Total float64          `json:"total"`
	Count int              `json:"count"`
}

type CartService interface {
	GetCart(sessionID string) (*CartSummary, error)
	AddToCart(sessionID string, productID, quantity int, size, color string) error
	UpdateQuantity(sessionID string, productID int, size, color string, quantity int) error
	RemoveFromCart(sessionID string, productID int, size, color string) error
	ClearCart(sessionID string) error
}

type cartService struct {
	sessions    *state.Manager
	catalogRepo repository.CatalogRepository
}

func NewCartService(sessions *state.Manager, catalogRepo repository.CatalogRepository) CartService {
	return &cartService{
		sessions:    sessions,
		catalogRepo: catalogRepo,
	}
}

func (s *cartService) GetCart(sessionID string) (*CartSummary, error) {
	session := s.sessions.Session(sessionID)

	summary := &CartSummary{
		Items: session.CartItems(),
		Total: session.CartTotal(),
		Count: session.CartItemsCount(),
	}

	logger.Debug("Cart fetched", map[string]interface{}{
		"session_id": sessionID,
		"lines":      len(summary.Items),
		"total":      summary.Total,
	})
	return summary, nil
}

func (s *cartService) AddToCart(sessionID string, productID, quantity int, size, color string) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   quantity,
		"size":       size,
		"color":      color,
	})

	product, err := s.catalogRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return err
	}

	s.sessions.Session(sessionID).AddToCart(*product, quantity, size, color)
	return nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
// An absent line is a no-op, not an error.
func (s *cartService) UpdateQuantity(sessionID string, productID int, size, color string, quantity int) error {
	logger.Info("Updating cart line quantity", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   quantity,
	})

	s.sessions.Session(sessionID).UpdateCartQuantity(productID, size, color, quantity)
	return nil
}

func (s *cartService) RemoveFromCart(sessionID string, productID int, size, color string) error {
	logger.Info("Removing cart line", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"size":       size,
		"color":      color,
	})

	s.sessions.Session(sessionID).RemoveFromCart(productID, size, color)
	return nil
}

func (s *cartService) ClearCart(sessionID string) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"session_id": sessionID,
	})

	s.sessions.Session(sessionID).ClearCart()
	return nil
}
