package service

import (
	"testing"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB, *model.Collection) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	collectionRepo := repository.NewCollectionRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	svc := NewProductService(productRepo, collectionRepo, tagRepo, testDB)

	collection := &model.Collection{Title: "Grocery"}
	testDB.Create(collection)

	return svc, testDB, collection
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func uintPtr(u uint) *uint        { return &u }

func TestProductService_Create(t *testing.T) {
	svc, _, collection := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Title:        strPtr("Honey"),
		UnitPrice:    floatPtr(8.25),
		Inventory:    intPtr(12),
		CollectionID: uintPtr(collection.ID),
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "Grocery", product.Collection.Title)
}

func TestProductService_Create_UnknownCollection(t *testing.T) {
	svc, _, _ := setupProductServiceTest(t)

	_, err := svc.Create(ProductInput{
		Title:        strPtr("Honey"),
		UnitPrice:    floatPtr(8.25),
		CollectionID: uintPtr(999),
	})
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestProductService_Update_Partial(t *testing.T) {
	svc, _, collection := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Title:        strPtr("Honey"),
		UnitPrice:    floatPtr(8.25),
		CollectionID: uintPtr(collection.ID),
	})
	require.NoError(t, err)

	updated, err := svc.Update(product.ID, ProductInput{UnitPrice: floatPtr(9.0)})
	require.NoError(t, err)
	assert.Equal(t, 9.0, updated.UnitPrice)
	assert.Equal(t, "Honey", updated.Title)
}

func TestProductService_Delete_BlockedByOrderItems(t *testing.T) {
	svc, testDB, collection := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Title:        strPtr("Honey"),
		UnitPrice:    floatPtr(8.25),
		CollectionID: uintPtr(collection.ID),
	})
	require.NoError(t, err)

	user := &model.User{Email: "b@example.com", PasswordHash: "hash", FirstName: "B"}
	testDB.Create(user)
	customer := &model.Customer{UserID: user.ID}
	testDB.Create(customer)
	order := &model.Order{CustomerID: customer.ID}
	testDB.Create(order)
	testDB.Create(&model.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 1, UnitPrice: 8.25})

	err = svc.Delete(product.ID)
	assert.ErrorIs(t, err, ErrProductReferenced)

	// Product survives the refused delete.
	found, err := svc.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Honey", found.Title)
}

func TestProductService_Delete_CascadesImages(t *testing.T) {
	svc, testDB, collection := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Title:        strPtr("Pictured"),
		UnitPrice:    floatPtr(1.0),
		CollectionID: uintPtr(collection.ID),
	})
	require.NoError(t, err)

	_, err = svc.AddImage(product.ID, "https://cdn.example.com/p/1.jpg")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(product.ID))

	var imageCount int64
	testDB.Model(&model.ProductImage{}).Where("product_id = ?", product.ID).Count(&imageCount)
	assert.Zero(t, imageCount)

	_, err = svc.GetByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Images(t *testing.T) {
	svc, _, collection := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Title:        strPtr("Pictured"),
		UnitPrice:    floatPtr(1.0),
		CollectionID: uintPtr(collection.ID),
	})
	require.NoError(t, err)

	image, err := svc.AddImage(product.ID, "https://cdn.example.com/p/1.jpg")
	require.NoError(t, err)
	assert.NotZero(t, image.ID)

	images, err := svc.ListImages(product.ID)
	require.NoError(t, err)
	assert.Len(t, images, 1)

	require.NoError(t, svc.DeleteImage(product.ID, image.ID))
	assert.ErrorIs(t, svc.DeleteImage(product.ID, image.ID), ErrProductImageNotFound)
}

func TestProductService_Tags(t *testing.T) {
	svc, testDB, collection := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Title:        strPtr("Tagged"),
		UnitPrice:    floatPtr(1.0),
		CollectionID: uintPtr(collection.ID),
	})
	require.NoError(t, err)

	tag := &model.Tag{Label: "on-sale"}
	testDB.Create(tag)

	require.NoError(t, svc.AttachTag(product.ID, tag.ID))

	tags, err := svc.ListProductTags(product.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "on-sale", tags[0].Label)

	assert.ErrorIs(t, svc.AttachTag(product.ID, tag.ID+99), ErrTagNotFound)
	assert.ErrorIs(t, svc.AttachTag(product.ID+99, tag.ID), ErrProductNotFound)
}
