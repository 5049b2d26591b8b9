package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bramasto/tablepos/controllers"
	"github.com/bramasto/tablepos/models"
	"github.com/bramasto/tablepos/utils"
)

func setupTestDBForItems(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Item{}, &models.Table{}, &models.TableSession{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupItemRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	itemCtrl := controllers.NewItemController(db)
	router.GET("/items", itemCtrl.GetAllItems)
	router.GET("/items/:item_id", itemCtrl.GetItemByID)
	router.POST("/items", itemCtrl.CreateItem)
	router.PATCH("/items/:item_id", itemCtrl.UpdateItem)
	router.DELETE("/items/:item_id", itemCtrl.DeleteItem)
	return router
}

func TestCreateItem(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForItems(t)

	category := models.Category{Name: "Appetizers"}
	db.Create(&category)

	router := setupItemRouter(db)
	payload, _ := json.Marshal(map[string]interface{}{
		"name":        "Spring Rolls",
		"price":       5.99,
		"category_id": category.ID,
	})
	req, _ := http.NewRequest("POST", "/items", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var item models.Item
	assert.NoError(t, db.First(&item).Error)
	assert.Equal(t, "Spring Rolls", item.Name)
	assert.True(t, item.Price.Equal(decimal.NewFromFloat(5.99)))
}

func TestCreateItemRejectsNonPositivePrice(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForItems(t)

	category := models.Category{Name: "Appetizers"}
	db.Create(&category)

	router := setupItemRouter(db)

	for _, price := range []float64{0, -1.50} {
		payload, _ := json.Marshal(map[string]interface{}{
			"name":        "Bad Item",
			"price":       price,
			"category_id": category.ID,
		})
		req, _ := http.NewRequest("POST", "/items", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "price %v must be rejected", price)
	}

	var count int64
	db.Model(&models.Item{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateItemUnknownCategory(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForItems(t)
	router := setupItemRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"name":        "Orphan",
		"price":       3.00,
		"category_id": 999,
	})
	req, _ := http.NewRequest("POST", "/items", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllItemsFilterByCategory(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForItems(t)

	appetizers := models.Category{Name: "Appetizers"}
	beverages := models.Category{Name: "Beverages"}
	db.Create(&appetizers)
	db.Create(&beverages)

	db.Create(&models.Item{Name: "Spring Rolls", Price: decimal.NewFromFloat(5.99), CategoryID: appetizers.ID})
	db.Create(&models.Item{Name: "Garlic Bread", Price: decimal.NewFromFloat(4.50), CategoryID: appetizers.ID})
	db.Create(&models.Item{Name: "Coke", Price: decimal.NewFromFloat(2.00), CategoryID: beverages.ID})

	router := setupItemRouter(db)
	req, _ := http.NewRequest("GET", fmt.Sprintf("/items?category_id=%d", appetizers.ID), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	// name ascending
	assert.Equal(t, "Garlic Bread", data[0].(map[string]interface{})["name"])
	assert.Equal(t, "Spring Rolls", data[1].(map[string]interface{})["name"])
}

func TestUpdateItemPartialFields(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForItems(t)

	category := models.Category{Name: "Beverages"}
	db.Create(&category)
	item := models.Item{Name: "Lemonade", Price: decimal.NewFromFloat(2.50), CategoryID: category.ID}
	db.Create(&item)

	router := setupItemRouter(db)
	payload, _ := json.Marshal(map[string]interface{}{"price": 3.25})
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/items/%d", item.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Item
	db.First(&updated, item.ID)
	assert.Equal(t, "Lemonade", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromFloat(3.25)))
}

func TestDeleteItemReferencedByOrderFails(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForItems(t)

	category := models.Category{Name: "Beverages"}
	db.Create(&category)
	item := models.Item{Name: "Coke", Price: decimal.NewFromFloat(2.00), CategoryID: category.ID}
	db.Create(&item)
	table := models.Table{TableNumber: 1}
	db.Create(&table)
	session := models.TableSession{TableID: table.ID, SessionKey: "test-key", StartTime: time.Now()}
	db.Create(&session)
	order := models.Order{SessionID: session.ID, Status: models.OrderPending}
	db.Create(&order)
	db.Create(&models.OrderItem{OrderID: order.ID, ItemID: item.ID, Quantity: 1})

	router := setupItemRouter(db)
	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/items/%d", item.ID), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
