package repository

import (
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	Update(review *model.Review) error
	Delete(productID, reviewID uint) error
	FindByProduct(productID uint) ([]model.Review, error)
	FindByID(productID, reviewID uint) (*model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"product_id": review.ProductID,
		"rating":     review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"product_id": review.ProductID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": review.ID,
	})

	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) Delete(productID, reviewID uint) error {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"product_id": productID,
		"review_id":  reviewID,
	})

	if err := r.db.Where("product_id = ?", productID).
		Delete(&model.Review{}, reviewID).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindByProduct(productID uint) ([]model.Review, error) {
	logger.Debug("Finding reviews for product", map[string]interface{}{
		"product_id": productID,
	})

	var reviews []model.Review
	if err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		logger.Error("Failed to find reviews for product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByID(productID, reviewID uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Where("product_id = ?", productID).
		First(&review, reviewID).Error; err != nil {
		logger.Error("Failed to find review", err, map[string]interface{}{
			"product_id": productID,
			"review_id":  reviewID,
		})
		return nil, err
	}
	return &review, nil
}
