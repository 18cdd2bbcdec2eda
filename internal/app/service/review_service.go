package service

import (
	"errors"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type ReviewService interface {
	ListByProduct(productID uint) ([]model.Review, error)
	GetByID(productID, reviewID uint) (*model.Review, error)
	Create(productID uint, name, description string, rating int) (*model.Review, error)
	Delete(productID, reviewID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func (s *reviewService) ListByProduct(productID uint) ([]model.Review, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.reviewRepo.FindByProduct(productID)
}

func (s *reviewService) GetByID(productID, reviewID uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(productID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Create attaches a review to the product named in the URL. The product
// id never comes from the request body.
func (s *reviewService) Create(productID uint, name, description string, rating int) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review := &model.Review{
		ProductID:   productID,
		Name:        name,
		Description: description,
		Rating:      rating,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"product_id": productID,
		"review_id":  review.ID,
		"rating":     rating,
	})
	return review, nil
}

func (s *reviewService) Delete(productID, reviewID uint) error {
	if _, err := s.reviewRepo.FindByID(productID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return s.reviewRepo.Delete(productID, reviewID)
}
