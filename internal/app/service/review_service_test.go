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

func setupReviewServiceTest(t *testing.T) (ReviewService, *gorm.DB, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	collection := &model.Collection{Title: "Groceries"}
	require.NoError(t, testDB.Create(collection).Error)
	product := &model.Product{Title: "Olive Oil", UnitPrice: 15.5, CollectionID: collection.ID}
	require.NoError(t, testDB.Create(product).Error)

	reviewRepo := repository.NewReviewRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	svc := NewReviewService(reviewRepo, productRepo)

	return svc, testDB, product
}

func TestReviewService_CreateAndList(t *testing.T) {
	svc, _, product := setupReviewServiceTest(t)

	review, err := svc.Create(product.ID, "Jordan", "Great oil", 5)
	require.NoError(t, err)
	assert.Equal(t, product.ID, review.ProductID)
	assert.Equal(t, 5, review.Rating)

	reviews, err := svc.ListByProduct(product.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestReviewService_Create_RatingBounds(t *testing.T) {
	svc, _, product := setupReviewServiceTest(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(product.ID, "Jordan", "Bad rating", rating)
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestReviewService_Create_UnknownProduct(t *testing.T) {
	svc, _, _ := setupReviewServiceTest(t)

	_, err := svc.Create(9999, "Jordan", "No product", 3)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReviewService_GetByID_ScopedToProduct(t *testing.T) {
	svc, testDB, product := setupReviewServiceTest(t)

	review, err := svc.Create(product.ID, "Jordan", "Great oil", 4)
	require.NoError(t, err)

	other := &model.Product{Title: "Soap", UnitPrice: 2.1, CollectionID: product.CollectionID}
	require.NoError(t, testDB.Create(other).Error)

	// The review is only reachable through its own product.
	_, err = svc.GetByID(other.ID, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	got, err := svc.GetByID(product.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, got.ID)
}

func TestReviewService_Delete(t *testing.T) {
	svc, _, product := setupReviewServiceTest(t)

	review, err := svc.Create(product.ID, "Jordan", "Great oil", 4)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(product.ID, review.ID))

	_, err = svc.GetByID(product.ID, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	assert.ErrorIs(t, svc.Delete(product.ID, review.ID), ErrReviewNotFound)
}
