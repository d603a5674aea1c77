package service

import (
	"errors"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

// CatalogService serves product reference data and records the browsing
// signals (recently viewed, search history) that ride along with it.
type CatalogService interface {
	GetAllProducts(sessionID string, filter repository.CatalogFilter) ([]model.Product, error)
	GetProductByID(sessionID string, productID int) (*model.Product, error)
	GetPopularProducts(limit int) ([]model.Product, error)
	GetCategories() ([]string, error)

	GetRecentlyViewed(sessionID string) ([]model.Product, error)
	GetSearchHistory(sessionID string) ([]string, error)
	ClearSearchHistory(sessionID string) error
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	sessions    *state.Manager
}

func NewCatalogService(catalogRepo repository.CatalogRepository, sessions *state.Manager) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		sessions:    sessions,
	}
}

// GetAllProducts lists the catalog with optional filters. A non-empty
// search query is recorded into the session's search history.
func (s *catalogService) GetAllProducts(sessionID string, filter repository.CatalogFilter) ([]model.Product, error) {
	products, err := s.catalogRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	if filter.Query != "" && sessionID != "" {
		s.sessions.Session(sessionID).AddToSearchHistory(filter.Query)
	}

	logger.Debug("Products listed", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(products),
		"category":   filter.Category,
		"query":      filter.Query,
	})
	return products, nil
}

// GetProductByID fetches one product and records the view into the
// session's recently-viewed list.
func (s *catalogService) GetProductByID(sessionID string, productID int) (*model.Product, error) {
	product, err := s.catalogRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	if sessionID != "" {
		s.sessions.Session(sessionID).AddToRecentlyViewed(*product)
	}
	return product, nil
}

func (s *catalogService) GetPopularProducts(limit int) ([]model.Product, error) {
	return s.catalogRepo.FindPopular(limit)
}

func (s *catalogService) GetCategories() ([]string, error) {
	return s.catalogRepo.Categories()
}

func (s *catalogService) GetRecentlyViewed(sessionID string) ([]model.Product, error) {
	return s.sessions.Session(sessionID).RecentlyViewed(), nil
}

func (s *catalogService) GetSearchHistory(sessionID string) ([]string, error) {
	return s.sessions.Session(sessionID).SearchHistory(), nil
}

func (s *catalogService) ClearSearchHistory(sessionID string) error {
	s.sessions.Session(sessionID).ClearSearchHistory()

	logger.Info("Search history cleared", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}
