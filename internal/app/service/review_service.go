package service

import (
	"errors"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrInvalidReviewRating = errors.New("rating must be between 1 and 5")
)

type ReviewService interface {
	GetProductReviews(sessionID string, productID int) ([]model.Review, error)
	AddReview(sessionID string, productID int, userName string, rating int, comment string, verified bool) (*model.Review, error)
	MarkHelpful(sessionID, reviewID string) error
}

type reviewService struct {
	sessions    *state.Manager
	catalogRepo repository.CatalogRepository
}

func NewReviewService(sessions *state.Manager, catalogRepo repository.CatalogRepository) ReviewService {
	return &reviewService{
		sessions:    sessions,
		catalogRepo: catalogRepo,
	}
}

func (s *reviewService) GetProductReviews(sessionID string, productID int) ([]model.Review, error) {
	reviews := s.sessions.Session(sessionID).ProductReviews(productID)

	logger.Debug("Product reviews fetched", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"count":      len(reviews),
	})
	return reviews, nil
}

func (s *reviewService) AddReview(sessionID string, productID int, userName string, rating int, comment string, verified bool) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidReviewRating
	}

	if _, err := s.catalogRepo.FindByID(productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			logger.Warn("Cannot review: product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review := s.sessions.Session(sessionID).AddReview(model.Review{
		ProductID: productID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		Verified:  verified,
	})

	logger.Info("Review added", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"review_id":  review.ID,
		"rating":     rating,
	})
	return &review, nil
}

// MarkHelpful increments the helpful-vote counter, the only mutation a
// review supports after creation.
func (s *reviewService) MarkHelpful(sessionID, reviewID string) error {
	if !s.sessions.Session(sessionID).MarkReviewHelpful(reviewID) {
		logger.Warn("Review not found for helpful vote", map[string]interface{}{
			"session_id": sessionID,
			"review_id":  reviewID,
		})
		return ErrReviewNotFound
	}

	logger.Info("Review marked helpful", map[string]interface{}{
		"session_id": sessionID,
		"review_id":  reviewID,
	})
	return nil
}
