package service

import (
	"errors"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

// WishlistService manages the wishlist and the closet (the save-for-later
// bucket, same shape as the wishlist but a separate collection). Both are
// sets keyed by product id: adds are idempotent and removes of absent ids
// are no-ops.
type WishlistService interface {
	GetWishlist(sessionID string) ([]model.Product, error)
	AddToWishlist(sessionID string, productID int) error
	RemoveFromWishlist(sessionID string, productID int) error
	ClearWishlist(sessionID string) error

	GetCloset(sessionID string) ([]model.Product, error)
	AddToCloset(sessionID string, productID int) error
	RemoveFromCloset(sessionID string, productID int) error
	ClearCloset(sessionID string) error
}

type wishlistService struct {
	sessions    *state.Manager
	catalogRepo repository.CatalogRepository
}

func NewWishlistService(sessions *state.Manager, catalogRepo repository.CatalogRepository) WishlistService {
	return &wishlistService{
		sessions:    sessions,
		catalogRepo: catalogRepo,
	}
}

func (s *wishlistService) GetWishlist(sessionID string) ([]model.Product, error) {
	items := s.sessions.Session(sessionID).WishlistItems()

	logger.Debug("Wishlist fetched", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(items),
	})
	return items, nil
}

func (s *wishlistService) AddToWishlist(sessionID string, productID int) error {
	product, err := s.lookup(sessionID, productID, "wishlist")
	if err != nil {
		return err
	}

	s.sessions.Session(sessionID).AddToWishlist(*product)

	logger.Info("Item added to wishlist", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})
	return nil
}

func (s *wishlistService) RemoveFromWishlist(sessionID string, productID int) error {
	s.sessions.Session(sessionID).RemoveFromWishlist(productID)

	logger.Info("Item removed from wishlist", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})
	return nil
}

func (s *wishlistService) ClearWishlist(sessionID string) error {
	s.sessions.Session(sessionID).ClearWishlist()

	logger.Info("Wishlist cleared", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

func (s *wishlistService) GetCloset(sessionID string) ([]model.Product, error) {
	items := s.sessions.Session(sessionID).ClosetItems()

	logger.Debug("Closet fetched", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(items),
	})
	return items, nil
}

func (s *wishlistService) AddToCloset(sessionID string, productID int) error {
	product, err := s.lookup(sessionID, productID, "closet")
	if err != nil {
		return err
	}

	s.sessions.Session(sessionID).AddToCloset(*product)

	logger.Info("Item added to closet", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})
	return nil
}

func (s *wishlistService) RemoveFromCloset(sessionID string, productID int) error {
	s.sessions.Session(sessionID).RemoveFromCloset(productID)

	logger.Info("Item removed from closet", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})
	return nil
}

func (s *wishlistService) ClearCloset(sessionID string) error {
	s.sessions.Session(sessionID).ClearCloset()

	logger.Info("Closet cleared", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

func (s *wishlistService) lookup(sessionID string, productID int, collection string) (*model.Product, error) {
	product, err := s.catalogRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
				"collection": collection,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return nil, err
	}
	return product, nil
}
