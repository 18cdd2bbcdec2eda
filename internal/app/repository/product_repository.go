package repository

import (
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows and orders catalog listings. Zero values mean
// "no constraint" for every field.
type ProductFilter struct {
	Search       string
	CollectionID uint
	MinPrice     float64
	MaxPrice     float64
	SortBy       string // unit_price | last_update
	SortOrder    string // asc | desc
	Limit        int
	Offset       int
}

type ProductRepository interface {
	Create(product *model.Product) error
	Update(product *model.Product) error
	Delete(id uint) error
	FindByID(id uint) (*model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, int64, error)
	CountOrderItems(productID uint) (int64, error)
	FindLowInventory(threshold int) ([]model.Product, error)
	ClearInventory(productIDs []uint) (int64, error)

	CreateImage(image *model.ProductImage) error
	FindImagesByProduct(productID uint) ([]model.ProductImage, error)
	FindImageByID(productID, imageID uint) (*model.ProductImage, error)
	DeleteImage(productID, imageID uint) error

	FindTagsByProduct(productID uint) ([]model.Tag, error)
	AttachTag(productID, tagID uint) error
	DetachTag(productID, tagID uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"title":         product.Title,
		"collection_id": product.CollectionID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"title": product.Title,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})
	return nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.db.Preload("Collection").Preload("Images").First(&product, id).Error; err != nil {
		logger.Error("Failed to find product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"search":        filter.Search,
		"collection_id": filter.CollectionID,
		"min_price":     filter.MinPrice,
		"max_price":     filter.MaxPrice,
	})

	query := r.db.Model(&model.Product{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if filter.CollectionID != 0 {
		query = query.Where("collection_id = ?", filter.CollectionID)
	}
	if filter.MinPrice > 0 {
		query = query.Where("unit_price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("unit_price <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count products", err)
		return nil, 0, err
	}

	order := "id ASC"
	switch filter.SortBy {
	case "unit_price":
		order = "unit_price " + sortDirection(filter.SortOrder)
	case "last_update":
		order = "updated_at " + sortDirection(filter.SortOrder)
	}
	query = query.Order(order)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Preload("Collection").Preload("Images").Find(&products).Error; err != nil {
		logger.Error("Failed to find products", err)
		return nil, 0, err
	}

	logger.Debug("Products found", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (r *productRepository) CountOrderItems(productID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count order items for product", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, err
	}
	return count, nil
}

func (r *productRepository) FindLowInventory(threshold int) ([]model.Product, error) {
	logger.Debug("Finding low inventory products", map[string]interface{}{
		"threshold": threshold,
	})

	var products []model.Product
	if err := r.db.Where("inventory < ?", threshold).
		Order("inventory ASC").
		Find(&products).Error; err != nil {
		logger.Error("Failed to find low inventory products", err)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ClearInventory(productIDs []uint) (int64, error) {
	logger.Debug("Clearing product inventory", map[string]interface{}{
		"product_ids": productIDs,
	})

	result := r.db.Model(&model.Product{}).
		Where("id IN ?", productIDs).
		Update("inventory", 0)
	if result.Error != nil {
		logger.Error("Failed to clear product inventory", result.Error)
		return 0, result.Error
	}

	logger.Debug("Product inventory cleared", map[string]interface{}{
		"updated": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *productRepository) CreateImage(image *model.ProductImage) error {
	logger.Debug("Creating product image in database", map[string]interface{}{
		"product_id": image.ProductID,
	})

	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create product image in database", err, map[string]interface{}{
			"product_id": image.ProductID,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindImagesByProduct(productID uint) ([]model.ProductImage, error) {
	var images []model.ProductImage
	if err := r.db.Where("product_id = ?", productID).
		Order("id ASC").
		Find(&images).Error; err != nil {
		logger.Error("Failed to find product images", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return images, nil
}

func (r *productRepository) FindImageByID(productID, imageID uint) (*model.ProductImage, error) {
	var image model.ProductImage
	if err := r.db.Where("product_id = ? AND id = ?", productID, imageID).
		First(&image).Error; err != nil {
		logger.Error("Failed to find product image", err, map[string]interface{}{
			"product_id": productID,
			"image_id":   imageID,
		})
		return nil, err
	}
	return &image, nil
}

func (r *productRepository) DeleteImage(productID, imageID uint) error {
	if err := r.db.Where("product_id = ?", productID).
		Delete(&model.ProductImage{}, imageID).Error; err != nil {
		logger.Error("Failed to delete product image", err, map[string]interface{}{
			"product_id": productID,
			"image_id":   imageID,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindTagsByProduct(productID uint) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.Model(&model.Tag{}).
		Joins("JOIN product_tags ON product_tags.tag_id = tags.id").
		Where("product_tags.product_id = ?", productID).
		Order("tags.label ASC").
		Find(&tags).Error; err != nil {
		logger.Error("Failed to find tags for product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return tags, nil
}

func (r *productRepository) AttachTag(productID, tagID uint) error {
	productTag := model.ProductTag{
		ProductID: productID,
		TagID:     tagID,
	}
	if err := r.db.Create(&productTag).Error; err != nil {
		logger.Error("Failed to attach tag to product", err, map[string]interface{}{
			"product_id": productID,
			"tag_id":     tagID,
		})
		return err
	}
	return nil
}

func (r *productRepository) DetachTag(productID, tagID uint) error {
	if err := r.db.Where("product_id = ? AND tag_id = ?", productID, tagID).
		Delete(&model.ProductTag{}).Error; err != nil {
		logger.Error("Failed to detach tag from product", err, map[string]interface{}{
			"product_id": productID,
			"tag_id":     tagID,
		})
		return err
	}
	return nil
}

func sortDirection(order string) string {
	if order == "desc" {
		return "DESC"
	}
	return "ASC"
}
