package repository

import (
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// CollectionProductCount pairs a collection with its product count,
// computed with a single grouped query instead of per-row counting.
type CollectionProductCount struct {
	CollectionID  uint
	ProductsCount int64
}

type CollectionRepository interface {
	Create(collection *model.Collection) error
	Update(collection *model.Collection) error
	Delete(id uint) error
	FindAll() ([]model.Collection, error)
	FindByID(id uint) (*model.Collection, error)
	CountProducts(collectionID uint) (int64, error)
	ProductCounts(collectionIDs []uint) (map[uint]int64, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(collection *model.Collection) error {
	logger.Debug("Creating collection in database", map[string]interface{}{
		"title": collection.Title,
	})

	if err := r.db.Create(collection).Error; err != nil {
		logger.Error("Failed to create collection in database", err, map[string]interface{}{
			"title": collection.Title,
		})
		return err
	}

	logger.Debug("Collection created in database", map[string]interface{}{
		"collection_id": collection.ID,
		"title":         collection.Title,
	})
	return nil
}

func (r *collectionRepository) Update(collection *model.Collection) error {
	logger.Debug("Updating collection in database", map[string]interface{}{
		"collection_id": collection.ID,
		"title":         collection.Title,
	})

	if err := r.db.Save(collection).Error; err != nil {
		logger.Error("Failed to update collection in database", err, map[string]interface{}{
			"collection_id": collection.ID,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) Delete(id uint) error {
	logger.Debug("Deleting collection from database", map[string]interface{}{
		"collection_id": id,
	})

	if err := r.db.Delete(&model.Collection{}, id).Error; err != nil {
		logger.Error("Failed to delete collection from database", err, map[string]interface{}{
			"collection_id": id,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) FindAll() ([]model.Collection, error) {
	logger.Debug("Finding all collections")

	var collections []model.Collection
	if err := r.db.Order("title ASC").Find(&collections).Error; err != nil {
		logger.Error("Failed to find collections", err)
		return nil, err
	}

	logger.Debug("Collections found", map[string]interface{}{
		"count": len(collections),
	})
	return collections, nil
}

func (r *collectionRepository) FindByID(id uint) (*model.Collection, error) {
	logger.Debug("Finding collection by ID", map[string]interface{}{
		"collection_id": id,
	})

	var collection model.Collection
	if err := r.db.First(&collection, id).Error; err != nil {
		logger.Error("Failed to find collection", err, map[string]interface{}{
			"collection_id": id,
		})
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) CountProducts(collectionID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count products in collection", err, map[string]interface{}{
			"collection_id": collectionID,
		})
		return 0, err
	}
	return count, nil
}

func (r *collectionRepository) ProductCounts(collectionIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(collectionIDs))
	if len(collectionIDs) == 0 {
		return counts, nil
	}

	var rows []CollectionProductCount
	if err := r.db.Model(&model.Product{}).
		Select("collection_id, COUNT(*) as products_count").
		Where("collection_id IN ?", collectionIDs).
		Group("collection_id").
		Scan(&rows).Error; err != nil {
		logger.Error("Failed to count products per collection", err)
		return nil, err
	}

	for _, row := range rows {
		counts[row.CollectionID] = row.ProductsCount
	}
	return counts, nil
}
