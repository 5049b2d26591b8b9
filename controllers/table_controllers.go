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

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> ordered by table number, only active sessions attached
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	err := tc.DB.
		Preload("Sessions", "end_time IS NULL").
		Preload("Sessions.Orders").
		Preload("Sessions.Orders.OrderItems").
		Preload("Sessions.Orders.OrderItems.Item").
		Order("table_number asc").
		Find(&tables).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> one table with its full session history
func (tc *TableController) GetTableByID(c *gin.Context) {
	idStr := c.Param("table_id")
	id, _ := strconv.Atoi(idStr)

	var table models.Table
	err := tc.DB.
		Preload("Sessions").
		Preload("Sessions.Orders").
		Preload("Sessions.Orders.OrderItems").
		Preload("Sessions.Orders.OrderItems.Item").
		First(&table, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// CreateTable
func (tc *TableController) CreateTable(c *gin.Context) {
	var body struct {
		TableNumber int `json:"table_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.TableNumber <= 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidTableNo)
		return
	}

	table := models.Table{
		TableNumber: body.TableNumber,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		// unique table_number constraint
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	events.Broadcast(events.EventTableCreated, table)

	utils.InfoLogger.Printf("Table %d created (number=%d)", table.ID, table.TableNumber)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTable -> renumber a table
func (tc *TableController) UpdateTable(c *gin.Context) {
	idStr := c.Param("table_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		TableNumber int `json:"table_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.TableNumber <= 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidTableNo)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.TableNumber = body.TableNumber
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	events.Broadcast(events.EventTableUpdated, table)

	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> refuses while sessions reference the table
func (tc *TableController) DeleteTable(c *gin.Context) {
	idStr := c.Param("table_id")
	id, _ := strconv.Atoi(idStr)

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var sessionCount int64
	if err := tc.DB.Model(&models.TableSession{}).Where("table_id = ?", table.ID).Count(&sessionCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if sessionCount > 0 {
		utils.RespondError(c, http.StatusConflict, ErrTableInUse)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.EventTableDeleted, gin.H{"table_id": table.ID})

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": table.ID})
}
