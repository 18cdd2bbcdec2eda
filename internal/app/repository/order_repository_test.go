package repository

import (
	"testing"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderRepository, *model.Customer, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewOrderRepository(testDB)

	user := &model.User{Email: "buyer@example.com", PasswordHash: "hash", FirstName: "Buyer"}
	testDB.Create(user)
	customer := &model.Customer{UserID: user.ID}
	testDB.Create(customer)

	collection := &model.Collection{Title: "Pantry"}
	testDB.Create(collection)
	product := &model.Product{Title: "Rice", UnitPrice: 12.0, Inventory: 30, CollectionID: collection.ID}
	testDB.Create(product)

	return testDB, repo, customer, product
}

func TestOrderRepository_CreateWithItems(t *testing.T) {
	testDB, repo, customer, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := &model.Order{
		CustomerID: customer.ID,
		Items: []model.OrderItem{
			{ProductID: product.ID, Quantity: 2, UnitPrice: product.UnitPrice},
		},
	}

	err := repo.Create(order)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.NotZero(t, order.Items[0].ID)

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, found.PaymentStatus)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 12.0, found.Items[0].UnitPrice)
	assert.Equal(t, "Rice", found.Items[0].Product.Title)
}

func TestOrderRepository_FindByCustomerID(t *testing.T) {
	testDB, repo, customer, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", FirstName: "Other"}
	testDB.Create(other)
	otherCustomer := &model.Customer{UserID: other.ID}
	testDB.Create(otherCustomer)

	require.NoError(t, repo.Create(&model.Order{
		CustomerID: customer.ID,
		Items:      []model.OrderItem{{ProductID: product.ID, Quantity: 1, UnitPrice: 12.0}},
	}))
	require.NoError(t, repo.Create(&model.Order{CustomerID: otherCustomer.ID}))

	orders, err := repo.FindByCustomerID(customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, customer.ID, orders[0].CustomerID)
}

func TestOrderRepository_UpdatePaymentStatus(t *testing.T) {
	testDB, repo, customer, _ := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := &model.Order{CustomerID: customer.ID}
	require.NoError(t, repo.Create(order))

	err := repo.UpdatePaymentStatus(order.ID, model.PaymentStatusComplete)
	require.NoError(t, err)

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusComplete, found.PaymentStatus)
}

func TestOrderRepository_UpdatePaymentStatus_NotFound(t *testing.T) {
	testDB, repo, _, _ := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	err := repo.UpdatePaymentStatus(999, model.PaymentStatusComplete)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_Delete(t *testing.T) {
	testDB, repo, customer, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := &model.Order{
		CustomerID: customer.ID,
		Items:      []model.OrderItem{{ProductID: product.ID, Quantity: 1, UnitPrice: 12.0}},
	}
	require.NoError(t, repo.Create(order))

	require.NoError(t, repo.Delete(order.ID))

	_, err := repo.FindByID(order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_OrderCounts(t *testing.T) {
	testDB, repo, customer, _ := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.Order{CustomerID: customer.ID}))
	require.NoError(t, repo.Create(&model.Order{CustomerID: customer.ID}))

	counts, err := repo.OrderCounts([]uint{customer.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[customer.ID])
}
