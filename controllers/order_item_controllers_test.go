package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/bramasto/tablepos/controllers"
	"github.com/bramasto/tablepos/models"
)

func setupOrderItemRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderItemCtrl := controllers.NewOrderItemController(db)
	router.POST("/order-items", orderItemCtrl.AddOrderItem)
	router.PATCH("/order-items/:item_id", orderItemCtrl.UpdateOrderItemQuantity)
	router.DELETE("/order-items/:item_id", orderItemCtrl.RemoveOrderItem)
	return router
}

func TestAddOrderItem(t *testing.T) {
	fx := setupOrderFixture(t)
	order := models.Order{SessionID: fx.session.ID, Status: models.OrderPending}
	fx.db.Create(&order)

	router := setupOrderItemRouter(fx.db)
	payload, _ := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"item_id":  fx.rolls.ID,
		"quantity": 3,
	})
	req, _ := http.NewRequest("POST", "/order-items", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var line models.OrderItem
	assert.NoError(t, fx.db.First(&line).Error)
	assert.Equal(t, order.ID, line.OrderID)
	assert.Equal(t, 3, line.Quantity)
}

func TestAddOrderItemRejectsBadQuantity(t *testing.T) {
	fx := setupOrderFixture(t)
	order := models.Order{SessionID: fx.session.ID, Status: models.OrderPending}
	fx.db.Create(&order)

	router := setupOrderItemRouter(fx.db)
	payload, _ := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"item_id":  fx.rolls.ID,
		"quantity": -1,
	})
	req, _ := http.NewRequest("POST", "/order-items", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddOrderItemUnknownOrder(t *testing.T) {
	fx := setupOrderFixture(t)
	router := setupOrderItemRouter(fx.db)

	payload, _ := json.Marshal(map[string]interface{}{
		"order_id": 999,
		"item_id":  fx.rolls.ID,
		"quantity": 1,
	})
	req, _ := http.NewRequest("POST", "/order-items", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderItemQuantity(t *testing.T) {
	fx := setupOrderFixture(t)
	order := models.Order{SessionID: fx.session.ID, Status: models.OrderPending}
	fx.db.Create(&order)
	line := models.OrderItem{OrderID: order.ID, ItemID: fx.coke.ID, Quantity: 1}
	fx.db.Create(&line)

	router := setupOrderItemRouter(fx.db)
	payload, _ := json.Marshal(map[string]int{"quantity": 5})
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/order-items/%d", line.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.OrderItem
	fx.db.First(&updated, line.ID)
	assert.Equal(t, 5, updated.Quantity)
}

func TestRemoveOrderItem(t *testing.T) {
	fx := setupOrderFixture(t)
	order := models.Order{SessionID: fx.session.ID, Status: models.OrderPending}
	fx.db.Create(&order)
	line := models.OrderItem{OrderID: order.ID, ItemID: fx.coke.ID, Quantity: 1}
	fx.db.Create(&line)

	router := setupOrderItemRouter(fx.db)
	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/order-items/%d", line.ID), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	fx.db.Model(&models.OrderItem{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// order itself survives
	var orderCount int64
	fx.db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
}
