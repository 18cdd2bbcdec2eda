package repository

import (
	"testing"
	"time"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)

	collection := &model.Collection{Title: "Beverages"}
	testDB.Create(collection)

	product := &model.Product{
		Title:        "Sparkling Water",
		UnitPrice:    2.5,
		Inventory:    50,
		CollectionID: collection.ID,
	}
	testDB.Create(product)

	return testDB, repo, product
}

func TestCartRepository_Create(t *testing.T) {
	testDB, repo, _ := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{}
	err := repo.Create(cart)
	assert.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
}

func TestCartRepository_FindByID(t *testing.T) {
	testDB, repo, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{}
	require.NoError(t, repo.Create(cart))
	require.NoError(t, repo.CreateItem(&model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  2,
	}))

	found, err := repo.FindByID(cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, product.ID, found.Items[0].ProductID)
	assert.Equal(t, product.Title, found.Items[0].Product.Title)
}

func TestCartRepository_FindByID_NotFound(t *testing.T) {
	testDB, repo, _ := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := repo.FindByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_FindItemByCartAndProduct(t *testing.T) {
	testDB, repo, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{}
	require.NoError(t, repo.Create(cart))
	require.NoError(t, repo.CreateItem(&model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  3,
	}))

	found, err := repo.FindItemByCartAndProduct(cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.Quantity)

	_, err = repo.FindItemByCartAndProduct(cart.ID, product.ID+99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_Delete_RemovesItems(t *testing.T) {
	testDB, repo, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{}
	require.NoError(t, repo.Create(cart))
	require.NoError(t, repo.CreateItem(&model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  1,
	}))

	require.NoError(t, repo.Delete(cart.ID))

	_, err := repo.FindByID(cart.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var itemCount int64
	testDB.Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount)
	assert.Zero(t, itemCount)
}

func TestCartRepository_DeleteOlderThan(t *testing.T) {
	testDB, repo, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	stale := &model.Cart{}
	require.NoError(t, repo.Create(stale))
	require.NoError(t, repo.CreateItem(&model.CartItem{
		CartID:    stale.ID,
		ProductID: product.ID,
		Quantity:  1,
	}))

	fresh := &model.Cart{}
	require.NoError(t, repo.Create(fresh))

	// Push the stale cart's updated_at into the past.
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, testDB.Model(&model.Cart{}).
		Where("id = ?", stale.ID).
		Update("updated_at", past).Error)

	deleted, err := repo.DeleteOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByID(stale.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByID(fresh.ID)
	assert.NoError(t, err)
}

func TestCartRepository_UpdateItem(t *testing.T) {
	testDB, repo, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{}
	require.NoError(t, repo.Create(cart))

	item := &model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  1,
	}
	require.NoError(t, repo.CreateItem(item))

	item.Quantity = 5
	require.NoError(t, repo.UpdateItem(item))

	found, err := repo.FindItemByID(cart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.Quantity)
}
