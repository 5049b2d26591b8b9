package controllers

import (
	"net/http"
	"strconv"

	"github.com/bramasto/tablepos/events"
	"github.com/bramasto/tablepos/models"
	"github.com/bramasto/tablepos/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

// GetAllItems -> optional ?category_id filter, ordered by name
func (ic *ItemController) GetAllItems(c *gin.Context) {
	query := ic.DB.Preload("Category").Order("name asc")

	if catStr := c.Query("category_id"); catStr != "" {
		catID, err := strconv.Atoi(catStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		query = query.Where("category_id = ?", catID)
	}

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All items", items)
}

// GetItemByID
func (ic *ItemController) GetItemByID(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var item models.Item
	if err := ic.DB.Preload("Category").First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item detail", item)
}

// CreateItem
func (ic *ItemController) CreateItem(c *gin.Context) {
	var body struct {
		Name        string          `json:"name" binding:"required"`
		Description *string         `json:"description"`
		Price       decimal.Decimal `json:"price" binding:"required"`
		CategoryID  uint            `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !body.Price.IsPositive() {
		utils.RespondError(c, http.StatusBadRequest, ErrPriceNotPositive)
		return
	}

	// category must exist before the insert
	var category models.Category
	if err := ic.DB.First(&category, body.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	item := models.Item{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		CategoryID:  body.CategoryID,
	}
	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	item.Category = category

	events.Broadcast(events.EventMenuChanged, item)

	utils.InfoLogger.Printf("Item created: %s (id=%d, price=%s)", item.Name, item.ID, item.Price)
	utils.RespondJSON(c, http.StatusCreated, "Item created", item)
}

// UpdateItem -> partial field replacement
func (ic *ItemController) UpdateItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		Price       *decimal.Decimal `json:"price"`
		CategoryID  *uint            `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.Item
	if err := ic.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Description != nil {
		item.Description = body.Description
	}
	if body.Price != nil {
		if !body.Price.IsPositive() {
			utils.RespondError(c, http.StatusBadRequest, ErrPriceNotPositive)
			return
		}
		item.Price = *body.Price
	}
	if body.CategoryID != nil {
		var category models.Category
		if err := ic.DB.First(&category, *body.CategoryID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		item.CategoryID = *body.CategoryID
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := ic.DB.Preload("Category").First(&item, item.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.EventMenuChanged, item)

	utils.RespondJSON(c, http.StatusOK, "Item updated", item)
}

// DeleteItem -> refuses while order items reference it
func (ic *ItemController) DeleteItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var item models.Item
	if err := ic.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var refCount int64
	if err := ic.DB.Model(&models.OrderItem{}).Where("item_id = ?", item.ID).Count(&refCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if refCount > 0 {
		utils.RespondError(c, http.StatusConflict, ErrItemInUse)
		return
	}

	if err := ic.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.EventMenuChanged, gin.H{"deleted_item_id": item.ID})

	utils.InfoLogger.Printf("Item %d deleted", item.ID)
	utils.RespondJSON(c, http.StatusOK, "Item deleted", gin.H{"item_id": item.ID})
}
