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

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

func (oc *OrderController) preloadOrder() *gorm.DB {
	return oc.DB.
		Preload("Session").
		Preload("Session.Table").
		Preload("OrderItems").
		Preload("OrderItems.Item").
		Preload("OrderItems.Item.Category")
}

// GetAllOrders -> optional ?session_id and ?status filters, newest first
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.preloadOrder().Order("created_at desc")

	if sessStr := c.Query("session_id"); sessStr != "" {
		sessionID, err := strconv.Atoi(sessStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		query = query.Where("session_id = ?", sessionID)
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := models.ParseOrderStatus(statusStr)
		if !ok {
			utils.RespondError(c, http.StatusBadRequest, ErrInvalidStatus)
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.preloadOrder().First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> one order plus its line items in a single transaction.
// Any invalid line rolls the whole order back.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ItemReq struct {
		ItemID   uint `json:"item_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required"`
	}
	var body struct {
		SessionID uint      `json:"session_id" binding:"required"`
		Items     []ItemReq `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if len(body.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrEmptyOrder)
		return
	}
	for _, item := range body.Items {
		if item.Quantity <= 0 {
			utils.RespondError(c, http.StatusBadRequest, ErrQuantityInvalid)
			return
		}
	}

	var session models.TableSession
	if err := oc.DB.First(&session, body.SessionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var order models.Order
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			SessionID: session.ID,
			Status:    models.OrderPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range body.Items {
			var menuItem models.Item
			if err := tx.First(&menuItem, item.ItemID).Error; err != nil {
				return err
			}
			orderItem := models.OrderItem{
				OrderID:  order.ID,
				ItemID:   menuItem.ID,
				Quantity: item.Quantity,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	if err := oc.preloadOrder().First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.EventOrderCreated, order)

	utils.InfoLogger.Printf("Order %d created with %d items (session=%d)", order.ID, len(order.OrderItems), order.SessionID)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrderStatus -> consults the transition guard before persisting
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status, ok := models.ParseOrderStatus(body.Status)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidStatus)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !order.Status.CanTransitionTo(status) {
		utils.RespondError(c, http.StatusConflict, ErrStatusTransition)
		return
	}

	order.Status = status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.preloadOrder().First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.EventOrderStatus, order)

	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> removes the order and its line items together
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.EventOrderDeleted, gin.H{"order_id": order.ID})

	utils.InfoLogger.Printf("Order %d deleted", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}
