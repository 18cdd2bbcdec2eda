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

func setupProductControllerTest(t *testing.T) (*gin.Engine, *gorm.DB, model.Collection) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	collectionRepo := repository.NewCollectionRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	productService := service.NewProductService(productRepo, collectionRepo, tagRepo, testDB)

	ctrl := NewProductController(productService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")
	admin := authMiddleware.RequireRole(string(model.RoleAdmin))

	router := gin.New()
	router.GET("/products", ctrl.List)
	router.GET("/products/:id", ctrl.Get)
	router.POST("/products", authMiddleware.Authenticate(), admin, ctrl.Create)
	router.PATCH("/products/:id", authMiddleware.Authenticate(), admin, ctrl.Update)
	router.DELETE("/products/:id", authMiddleware.Authenticate(), admin, ctrl.Delete)

	collection := model.Collection{Title: "Groceries"}
	require.NoError(t, testDB.Create(&collection).Error)

	return router, testDB, collection
}

func TestProductController_List_Filtered(t *testing.T) {
	router, testDB, collection := setupProductControllerTest(t)

	other := model.Collection{Title: "Cleaning"}
	require.NoError(t, testDB.Create(&other).Error)

	products := []model.Product{
		{Title: "Olive Oil", UnitPrice: 15.5, CollectionID: collection.ID},
		{Title: "Sunflower Oil", UnitPrice: 4.2, CollectionID: collection.ID},
		{Title: "Dish Soap", UnitPrice: 2.1, CollectionID: other.ID},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	req := httptest.NewRequest("GET", fmt.Sprintf("/products?collection_id=%d", collection.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["total"])

	req = httptest.NewRequest("GET", "/products?search=oil", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["total"])
}

func TestProductController_List_InvalidParams(t *testing.T) {
	router, _, _ := setupProductControllerTest(t)

	for _, query := range []string{
		"collection_id=abc",
		"unit_price_min=cheap",
		"limit=-1",
	} {
		req := httptest.NewRequest("GET", "/products?"+query, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
}

func TestProductController_Create(t *testing.T) {
	router, _, collection := setupProductControllerTest(t)

	body, _ := json.Marshal(CreateProductRequest{
		Title:        "Olive Oil",
		UnitPrice:    15.5,
		Inventory:    40,
		CollectionID: collection.ID,
	})
	req := httptest.NewRequest("POST", "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, 1, "admin"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestProductController_Create_UnknownCollection(t *testing.T) {
	router, _, _ := setupProductControllerTest(t)

	body, _ := json.Marshal(CreateProductRequest{
		Title:        "Olive Oil",
		UnitPrice:    15.5,
		CollectionID: 9999,
	})
	req := httptest.NewRequest("POST", "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, 1, "admin"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	fields, ok := response["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "collection_id")
}

func TestProductController_Create_NegativePrice(t *testing.T) {
	router, _, collection := setupProductControllerTest(t)

	body, _ := json.Marshal(map[string]interface{}{
		"title":         "Olive Oil",
		"unit_price":    -1.0,
		"collection_id": collection.ID,
	})
	req := httptest.NewRequest("POST", "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, 1, "admin"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_Update_Partial(t *testing.T) {
	router, testDB, collection := setupProductControllerTest(t)

	product := model.Product{Title: "Olive Oil", UnitPrice: 15.5, Inventory: 40, CollectionID: collection.ID}
	require.NoError(t, testDB.Create(&product).Error)

	url := fmt.Sprintf("/products/%d", product.ID)
	req := httptest.NewRequest("PATCH", url, bytes.NewBufferString(`{"inventory": 5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, 1, "admin"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.Product
	require.NoError(t, testDB.First(&updated, product.ID).Error)
	assert.Equal(t, 5, updated.Inventory)
	assert.Equal(t, "Olive Oil", updated.Title)
	assert.InDelta(t, 15.5, updated.UnitPrice, 0.001)
}

func TestProductController_Delete_ReferencedByOrder(t *testing.T) {
	router, testDB, collection := setupProductControllerTest(t)

	product := model.Product{Title: "Olive Oil", UnitPrice: 15.5, CollectionID: collection.ID}
	require.NoError(t, testDB.Create(&product).Error)

	user := model.User{Email: "c@example.com", PasswordHash: "hashed", FirstName: "C"}
	require.NoError(t, testDB.Create(&user).Error)
	customer := model.Customer{UserID: user.ID}
	require.NoError(t, testDB.Create(&customer).Error)
	order := model.Order{CustomerID: customer.ID}
	require.NoError(t, testDB.Create(&order).Error)
	require.NoError(t, testDB.Create(&model.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  1,
		UnitPrice: 15.5,
	}).Error)

	url := fmt.Sprintf("/products/%d", product.ID)
	req := httptest.NewRequest("DELETE", url, nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, 1, "admin"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Referential conflicts answer 405, not 409.
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PRODUCT_REFERENCED", response["error"])
}

func TestProductController_Delete_Unreferenced(t *testing.T) {
	router, testDB, collection := setupProductControllerTest(t)

	product := model.Product{Title: "Olive Oil", UnitPrice: 15.5, CollectionID: collection.ID}
	require.NoError(t, testDB.Create(&product).Error)

	url := fmt.Sprintf("/products/%d", product.ID)
	req := httptest.NewRequest("DELETE", url, nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, 1, "admin"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
