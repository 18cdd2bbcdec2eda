package service

import (
	"errors"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductReferenced    = errors.New("product is referenced by an order item")
	ErrProductImageNotFound = errors.New("product image not found")
	ErrTagNotFound          = errors.New("tag not found")
)

// ProductInput carries the writable product fields. Pointer fields are
// applied only when set, which lets Update behave as a partial patch.
type ProductInput struct {
	Title        *string
	Slug         *string
	Description  *string
	UnitPrice    *float64
	Inventory    *int
	CollectionID *uint
}

// ProductPage is one page of a filtered listing plus the unpaginated
// total for that filter.
type ProductPage struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
}

type ProductService interface {
	List(filter repository.ProductFilter) (*ProductPage, error)
	GetByID(id uint) (*model.Product, error)
	Create(input ProductInput) (*model.Product, error)
	Update(id uint, input ProductInput) (*model.Product, error)
	Delete(id uint) error

	ListImages(productID uint) ([]model.ProductImage, error)
	AddImage(productID uint, imageURL string) (*model.ProductImage, error)
	DeleteImage(productID, imageID uint) error

	ListProductTags(productID uint) ([]model.Tag, error)
	AttachTag(productID, tagID uint) error
	DetachTag(productID, tagID uint) error
}

type productService struct {
	productRepo    repository.ProductRepository
	collectionRepo repository.CollectionRepository
	tagRepo        repository.TagRepository
	db             *gorm.DB
}

func NewProductService(
	productRepo repository.ProductRepository,
	collectionRepo repository.CollectionRepository,
	tagRepo repository.TagRepository,
	db *gorm.DB,
) ProductService {
	return &productService{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		tagRepo:        tagRepo,
		db:             db,
	}
}

func (s *productService) List(filter repository.ProductFilter) (*ProductPage, error) {
	products, total, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Total: total}, nil
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Create(input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"title": derefString(input.Title),
	})

	if input.CollectionID != nil {
		if _, err := s.collectionRepo.FindByID(*input.CollectionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCollectionNotFound
			}
			return nil, err
		}
	}

	product := &model.Product{
		Title:        derefString(input.Title),
		Slug:         derefString(input.Slug),
		Description:  derefString(input.Description),
		UnitPrice:    derefFloat(input.UnitPrice),
		Inventory:    derefInt(input.Inventory),
		CollectionID: derefUint(input.CollectionID),
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(product.ID)
}

func (s *productService) Update(id uint, input ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.CollectionID != nil {
		if _, err := s.collectionRepo.FindByID(*input.CollectionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCollectionNotFound
			}
			return nil, err
		}
		product.CollectionID = *input.CollectionID
	}
	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Slug != nil {
		product.Slug = *input.Slug
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.UnitPrice != nil {
		product.UnitPrice = *input.UnitPrice
	}
	if input.Inventory != nil {
		product.Inventory = *input.Inventory
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return s.productRepo.FindByID(product.ID)
}

// Delete removes a product and its images in one transaction, unless an
// order item still references it.
func (s *productService) Delete(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	refs, err := s.productRepo.CountOrderItems(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		logger.Warn("Product delete blocked: referenced by order items", map[string]interface{}{
			"product_id":  id,
			"order_items": refs,
		})
		return ErrProductReferenced
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete product images", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	if err := tx.Where("product_id = ?", id).Delete(&model.ProductTag{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete product tag assignments", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	if err := tx.Where("product_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete cart items for product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	if err := tx.Delete(&model.Product{}, id).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit product deletion", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (s *productService) ListImages(productID uint) ([]model.ProductImage, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.productRepo.FindImagesByProduct(productID)
}

func (s *productService) AddImage(productID uint, imageURL string) (*model.ProductImage, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	image := &model.ProductImage{
		ProductID: productID,
		ImageURL:  imageURL,
	}
	if err := s.productRepo.CreateImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *productService) DeleteImage(productID, imageID uint) error {
	if _, err := s.productRepo.FindImageByID(productID, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductImageNotFound
		}
		return err
	}
	return s.productRepo.DeleteImage(productID, imageID)
}

func (s *productService) ListProductTags(productID uint) ([]model.Tag, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.productRepo.FindTagsByProduct(productID)
}

func (s *productService) AttachTag(productID, tagID uint) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if _, err := s.tagRepo.FindByID(tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	return s.productRepo.AttachTag(productID, tagID)
}

func (s *productService) DetachTag(productID, tagID uint) error {
	return s.productRepo.DetachTag(productID, tagID)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func derefUint(u *uint) uint {
	if u == nil {
		return 0
	}
	return *u
}
