package service

import (
	"errors"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

// CompareService manages the side-by-side comparison set. The set is
// capped at 4 products; adds beyond the cap are silently rejected, so the
// caller inspects the returned set to learn whether the add took effect.
type CompareService interface {
	GetCompareItems(sessionID string) ([]model.Product, error)
	AddToCompare(sessionID string, productID int) ([]model.Product, error)
	RemoveFromCompare(sessionID string, productID int) error
	ClearCompare(sessionID string) error
}

type compareService struct {
	sessions    *state.Manager
	catalogRepo repository.CatalogRepository
}

func NewCompareService(sessions *state.Manager, catalogRepo repository.CatalogRepository) CompareService {
	return &compareService{
		sessions:    sessions,
		catalogRepo: catalogRepo,
	}
}

func (s *compareService) GetCompareItems(sessionID string) ([]model.Product, error) {
	return s.sessions.Session(sessionID).CompareItems(), nil
}

func (s *compareService) AddToCompare(sessionID string, productID int) ([]model.Product, error) {
	product, err := s.catalogRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			logger.Warn("Cannot compare: product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	session := s.sessions.Session(sessionID)
	session.AddToCompare(*product)
	items := session.CompareItems()

	logger.Info("Compare set updated", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"set_size":   len(items),
	})
	return items, nil
}

func (s *compareService) RemoveFromCompare(sessionID string, productID int) error {
	s.sessions.Session(sessionID).RemoveFromCompare(productID)
	return nil
}

func (s *compareService) ClearCompare(sessionID string) error {
	s.sessions.Session(sessionID).ClearCompare()
	return nil
}
