package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/internal/app/service"
	"github.com/storefrontlab/storefront-backend/internal/db"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderControllerFixture struct {
	router   *gin.Engine
	db       *gorm.DB
	user     model.User
	customer model.Customer
	product  model.Product
}

func setupOrderControllerTest(t *testing.T) *orderControllerFixture {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	customerRepo := repository.NewCustomerRepository(testDB)
	orderService := service.NewOrderService(orderRepo, cartRepo, customerRepo, nil, testDB)

	ctrl := NewOrderController(orderService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")
	admin := authMiddleware.RequireRole(string(model.RoleAdmin))

	router := gin.New()
	orders := router.Group("/orders")
	orders.Use(authMiddleware.Authenticate())
	{
		orders.POST("", ctrl.Create)
		orders.GET("", ctrl.List)
		orders.GET("/:id", ctrl.Get)
		orders.PATCH("/:id", admin, ctrl.UpdatePaymentStatus)
		orders.DELETE("/:id", admin, ctrl.Delete)
	}

	user := model.User{Email: "jordan@example.com", PasswordHash: "hashed", FirstName: "Jordan"}
	require.NoError(t, testDB.Create(&user).Error)
	customer := model.Customer{UserID: user.ID}
	require.NoError(t, testDB.Create(&customer).Error)

	collection := model.Collection{Title: "Groceries"}
	require.NoError(t, testDB.Create(&collection).Error)
	product := model.Product{
		Title:        "Olive Oil",
		UnitPrice:    15.5,
		Inventory:    100,
		CollectionID: collection.ID,
	}
	require.NoError(t, testDB.Create(&product).Error)

	return &orderControllerFixture{
		router:   router,
		db:       testDB,
		user:     user,
		customer: customer,
		product:  product,
	}
}

func (f *orderControllerFixture) cartWithItem(t *testing.T, quantity int) model.Cart {
	t.Helper()
	cart := model.Cart{}
	require.NoError(t, f.db.Create(&cart).Error)
	item := model.CartItem{CartID: cart.ID, ProductID: f.product.ID, Quantity: quantity}
	require.NoError(t, f.db.Create(&item).Error)
	return cart
}

func TestOrderController_Create_Success(t *testing.T) {
	f := setupOrderControllerTest(t)
	cart := f.cartWithItem(t, 2)

	body, _ := json.Marshal(CreateOrderRequest{CartID: cart.ID})
	req := httptest.NewRequest("POST", "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, f.user.ID, "user"))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	order, ok := response["order"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pending", order["payment_status"])

	// The cart is consumed by the conversion.
	var cartCount int64
	f.db.Model(&model.Cart{}).Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)
}

func TestOrderController_Create_NoCustomerProfile(t *testing.T) {
	f := setupOrderControllerTest(t)
	cart := f.cartWithItem(t, 1)

	orphan := model.User{Email: "orphan@example.com", PasswordHash: "hashed", FirstName: "Orphan"}
	require.NoError(t, f.db.Create(&orphan).Error)

	body, _ := json.Marshal(CreateOrderRequest{CartID: cart.ID})
	req := httptest.NewRequest("POST", "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, orphan.ID, "user"))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "CUSTOMER_NOT_PROVISIONED", response["error"])
}

func TestOrderController_Create_EmptyCart(t *testing.T) {
	f := setupOrderControllerTest(t)

	cart := model.Cart{}
	require.NoError(t, f.db.Create(&cart).Error)

	body, _ := json.Marshal(CreateOrderRequest{CartID: cart.ID})
	req := httptest.NewRequest("POST", "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, f.user.ID, "user"))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	fields, ok := response["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "cart_id")
}

func TestOrderController_Create_InvalidCartID(t *testing.T) {
	f := setupOrderControllerTest(t)

	req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString(`{"cart_id": "not-a-uuid"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, f.user.ID, "user"))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_Get_OtherCustomersOrder(t *testing.T) {
	f := setupOrderControllerTest(t)

	order := model.Order{CustomerID: f.customer.ID}
	require.NoError(t, f.db.Create(&order).Error)

	other := model.User{Email: "other@example.com", PasswordHash: "hashed", FirstName: "Other"}
	require.NoError(t, f.db.Create(&other).Error)
	require.NoError(t, f.db.Create(&model.Customer{UserID: other.ID}).Error)

	url := fmt.Sprintf("/orders/%d", order.ID)
	req := httptest.NewRequest("GET", url, nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, other.ID, "user"))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderController_UpdatePaymentStatus(t *testing.T) {
	f := setupOrderControllerTest(t)

	order := model.Order{CustomerID: f.customer.ID}
	require.NoError(t, f.db.Create(&order).Error)

	url := fmt.Sprintf("/orders/%d", order.ID)

	// Plain users cannot touch payment status.
	req := httptest.NewRequest("PATCH", url, bytes.NewBufferString(`{"payment_status": "complete"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, f.user.ID, "user"))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest("PATCH", url, bytes.NewBufferString(`{"payment_status": "complete"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, 999, "admin"))
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.Order
	require.NoError(t, f.db.First(&updated, order.ID).Error)
	assert.Equal(t, model.PaymentStatusComplete, updated.PaymentStatus)
}

func TestOrderController_UpdatePaymentStatus_InvalidValue(t *testing.T) {
	f := setupOrderControllerTest(t)

	order := model.Order{CustomerID: f.customer.ID}
	require.NoError(t, f.db.Create(&order).Error)

	url := fmt.Sprintf("/orders/%d", order.ID)
	req := httptest.NewRequest("PATCH", url, bytes.NewBufferString(`{"payment_status": "shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, 999, "admin"))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_List_OwnOrdersOnly(t *testing.T) {
	f := setupOrderControllerTest(t)

	other := model.User{Email: "other@example.com", PasswordHash: "hashed", FirstName: "Other"}
	require.NoError(t, f.db.Create(&other).Error)
	otherCustomer := model.Customer{UserID: other.ID}
	require.NoError(t, f.db.Create(&otherCustomer).Error)

	require.NoError(t, f.db.Create(&model.Order{CustomerID: f.customer.ID}).Error)
	require.NoError(t, f.db.Create(&model.Order{CustomerID: otherCustomer.ID}).Error)

	req := httptest.NewRequest("GET", "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, f.user.ID, "user"))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}
