package controllers

import (
	"net/http"
	"strconv"

	"github.com/bramasto/tablepos/events"
	"github.com/bramasto/tablepos/models"
	"github.com/bramasto/tablepos/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderItemController struct {
	DB *gorm.DB
}

func NewOrderItemController(db *gorm.DB) *OrderItemController {
	return &OrderItemController{DB: db}
}

// AddOrderItem -> append a line to an existing order
func (oic *OrderItemController) AddOrderItem(c *gin.Context) {
	var body struct {
		OrderID  uint `json:"order_id" binding:"required"`
		ItemID   uint `json:"item_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Quantity <= 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrQuantityInvalid)
		return
	}

	var order models.Order
	if err := oic.DB.First(&order, body.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	var item models.Item
	if err := oic.DB.Preload("Category").First(&item, body.ItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	orderItem := models.OrderItem{
		OrderID:  order.ID,
		ItemID:   item.ID,
		Quantity: body.Quantity,
	}
	if err := oic.DB.Create(&orderItem).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	orderItem.Item = item

	events.Broadcast(events.EventOrderStatus, order)

	utils.InfoLogger.Printf("Order item %d added to order %d (item=%d, qty=%d)",
		orderItem.ID, order.ID, item.ID, orderItem.Quantity)
	utils.RespondJSON(c, http.StatusCreated, "Order item added", orderItem)
}

// UpdateOrderItemQuantity
func (oic *OrderItemController) UpdateOrderItemQuantity(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Quantity <= 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrQuantityInvalid)
		return
	}

	var orderItem models.OrderItem
	if err := oic.DB.First(&orderItem, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	orderItem.Quantity = body.Quantity
	if err := oic.DB.Save(&orderItem).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oic.DB.Preload("Item").First(&orderItem, orderItem.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order item updated", orderItem)
}

// RemoveOrderItem
func (oic *OrderItemController) RemoveOrderItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var orderItem models.OrderItem
	if err := oic.DB.First(&orderItem, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := oic.DB.Delete(&orderItem).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order item %d removed from order %d", orderItem.ID, orderItem.OrderID)
	utils.RespondJSON(c, http.StatusOK, "Order item removed", gin.H{"order_item_id": orderItem.ID})
}
