package repository

import (
	"testing"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCollectionTest(t *testing.T) (*gorm.DB, CollectionRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return testDB, NewCollectionRepository(testDB)
}

func TestCollectionRepository_CreateAndFind(t *testing.T) {
	testDB, repo := setupCollectionTest(t)
	defer db.CleanupTestDB(testDB)

	collection := &model.Collection{Title: "Dairy"}
	err := repo.Create(collection)
	require.NoError(t, err)
	assert.NotZero(t, collection.ID)

	found, err := repo.FindByID(collection.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dairy", found.Title)
}

func TestCollectionRepository_FindByID_NotFound(t *testing.T) {
	testDB, repo := setupCollectionTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := repo.FindByID(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCollectionRepository_CountProducts(t *testing.T) {
	testDB, repo := setupCollectionTest(t)
	defer db.CleanupTestDB(testDB)

	collection := &model.Collection{Title: "Bakery"}
	require.NoError(t, repo.Create(collection))

	count, err := repo.CountProducts(collection.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	testDB.Create(&model.Product{Title: "Bread", UnitPrice: 2.0, CollectionID: collection.ID})
	testDB.Create(&model.Product{Title: "Bagel", UnitPrice: 1.5, CollectionID: collection.ID})

	count, err = repo.CountProducts(collection.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCollectionRepository_ProductCounts(t *testing.T) {
	testDB, repo := setupCollectionTest(t)
	defer db.CleanupTestDB(testDB)

	a := &model.Collection{Title: "A"}
	b := &model.Collection{Title: "B"}
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	testDB.Create(&model.Product{Title: "P1", UnitPrice: 1.0, CollectionID: a.ID})
	testDB.Create(&model.Product{Title: "P2", UnitPrice: 1.0, CollectionID: a.ID})

	counts, err := repo.ProductCounts([]uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[a.ID])
	assert.Zero(t, counts[b.ID])
}

func TestCollectionRepository_Delete(t *testing.T) {
	testDB, repo := setupCollectionTest(t)
	defer db.CleanupTestDB(testDB)

	collection := &model.Collection{Title: "Temp"}
	require.NoError(t, repo.Create(collection))
	require.NoError(t, repo.Delete(collection.ID))

	_, err := repo.FindByID(collection.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
