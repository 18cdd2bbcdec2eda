package service

import (
	"bytes"
	"testing"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupAdminServiceTest(t *testing.T) (AdminService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	collectionRepo := repository.NewCollectionRepository(testDB)
	customerRepo := repository.NewCustomerRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)

	svc := NewAdminService(
		NewCollectionService(collectionRepo),
		customerRepo,
		orderRepo,
		productRepo,
	)
	return svc, testDB
}

func TestAdminService_Dashboard(t *testing.T) {
	svc, testDB := setupAdminServiceTest(t)

	collection := &model.Collection{Title: "Pantry"}
	testDB.Create(collection)
	testDB.Create(&model.Product{Title: "Scarce", UnitPrice: 1.0, Inventory: 2, CollectionID: collection.ID})
	testDB.Create(&model.Product{Title: "Plenty", UnitPrice: 1.0, Inventory: 50, CollectionID: collection.ID})

	user := &model.User{Email: "c@example.com", PasswordHash: "hash", FirstName: "C"}
	testDB.Create(user)
	customer := &model.Customer{UserID: user.ID}
	testDB.Create(customer)
	testDB.Create(&model.Order{CustomerID: customer.ID})
	testDB.Create(&model.Order{CustomerID: customer.ID})

	dashboard, err := svc.Dashboard()
	require.NoError(t, err)

	require.Len(t, dashboard.Collections, 1)
	assert.Equal(t, int64(2), dashboard.Collections[0].ProductsCount)

	require.Len(t, dashboard.Customers, 1)
	assert.Equal(t, int64(2), dashboard.Customers[0].OrdersCount)

	require.Len(t, dashboard.LowInventory, 1)
	assert.Equal(t, "Scarce", dashboard.LowInventory[0].Title)
}

func TestAdminService_ClearInventory(t *testing.T) {
	svc, testDB := setupAdminServiceTest(t)

	collection := &model.Collection{Title: "Pantry"}
	testDB.Create(collection)
	a := &model.Product{Title: "A", UnitPrice: 1.0, Inventory: 5, CollectionID: collection.ID}
	b := &model.Product{Title: "B", UnitPrice: 1.0, Inventory: 9, CollectionID: collection.ID}
	testDB.Create(a)
	testDB.Create(b)

	cleared, err := svc.ClearInventory([]uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	var reloaded model.Product
	require.NoError(t, testDB.First(&reloaded, a.ID).Error)
	assert.Zero(t, reloaded.Inventory)
}

func TestAdminService_ExportProducts(t *testing.T) {
	svc, testDB := setupAdminServiceTest(t)

	collection := &model.Collection{Title: "Pantry"}
	testDB.Create(collection)
	testDB.Create(&model.Product{Title: "Flour", UnitPrice: 4.5, Inventory: 20, CollectionID: collection.ID})

	data, err := svc.ExportProducts()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Title", rows[0][1])
	assert.Equal(t, "Flour", rows[1][1])
}
