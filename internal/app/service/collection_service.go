package service

import (
	"errors"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCollectionNotFound    = errors.New("collection not found")
	ErrCollectionHasProducts = errors.New("collection includes one or more products")
)

// CollectionWithCount is a listing row: the collection plus how many
// products belong to it.
type CollectionWithCount struct {
	model.Collection
	ProductsCount int64 `json:"products_count"`
}

type CollectionService interface {
	List() ([]CollectionWithCount, error)
	GetByID(id uint) (*CollectionWithCount, error)
	Create(title string, featuredProductID *uint) (*model.Collection, error)
	Update(id uint, title *string, featuredProductID *uint) (*model.Collection, error)
	Delete(id uint) error
}

type collectionService struct {
	collectionRepo repository.CollectionRepository
}

func NewCollectionService(collectionRepo repository.CollectionRepository) CollectionService {
	return &collectionService{collectionRepo: collectionRepo}
}

func (s *collectionService) List() ([]CollectionWithCount, error) {
	logger.Debug("Listing collections")

	collections, err := s.collectionRepo.FindAll()
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(collections))
	for i, c := range collections {
		ids[i] = c.ID
	}

	counts, err := s.collectionRepo.ProductCounts(ids)
	if err != nil {
		return nil, err
	}

	result := make([]CollectionWithCount, len(collections))
	for i, c := range collections {
		result[i] = CollectionWithCount{
			Collection:    c,
			ProductsCount: counts[c.ID],
		}
	}

	logger.Info("Collections listed", map[string]interface{}{
		"count": len(result),
	})
	return result, nil
}

func (s *collectionService) GetByID(id uint) (*CollectionWithCount, error) {
	collection, err := s.collectionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	count, err := s.collectionRepo.CountProducts(id)
	if err != nil {
		return nil, err
	}

	return &CollectionWithCount{
		Collection:    *collection,
		ProductsCount: count,
	}, nil
}

func (s *collectionService) Create(title string, featuredProductID *uint) (*model.Collection, error) {
	logger.Info("Creating collection", map[string]interface{}{
		"title": title,
	})

	collection := &model.Collection{
		Title:             title,
		FeaturedProductID: featuredProductID,
	}
	if err := s.collectionRepo.Create(collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *collectionService) Update(id uint, title *string, featuredProductID *uint) (*model.Collection, error) {
	collection, err := s.collectionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	if title != nil {
		collection.Title = *title
	}
	if featuredProductID != nil {
		collection.FeaturedProductID = featuredProductID
	}

	if err := s.collectionRepo.Update(collection); err != nil {
		return nil, err
	}

	logger.Info("Collection updated", map[string]interface{}{
		"collection_id": collection.ID,
	})
	return collection, nil
}

func (s *collectionService) Delete(id uint) error {
	logger.Info("Deleting collection", map[string]interface{}{
		"collection_id": id,
	})

	if _, err := s.collectionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollectionNotFound
		}
		return err
	}

	count, err := s.collectionRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Collection delete blocked: products still attached", map[string]interface{}{
			"collection_id":  id,
			"products_count": count,
		})
		return ErrCollectionHasProducts
	}

	return s.collectionRepo.Delete(id)
}
