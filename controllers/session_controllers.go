package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bramasto/tablepos/events"
	"github.com/bramasto/tablepos/models"
	"github.com/bramasto/tablepos/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionController struct {
	DB *gorm.DB
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

// GetAllSessions -> optional ?table_id and ?active filters, newest first
func (sc *SessionController) GetAllSessions(c *gin.Context) {
	query := sc.DB.
		Preload("Table").
		Preload("Orders").
		Preload("Orders.OrderItems").
		Preload("Orders.OrderItems.Item").
		Order("start_time desc")

	if tableStr := c.Query("table_id"); tableStr != "" {
		tableID, err := strconv.Atoi(tableStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		query = query.Where("table_id = ?", tableID)
	}

	if activeStr := c.Query("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		if active {
			query = query.Where("end_time IS NULL")
		} else {
			query = query.Where("end_time IS NOT NULL")
		}
	}

	var sessions []models.TableSession
	if err := query.Find(&sessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of sessions", sessions)
}

// GetSessionByID
func (sc *SessionController) GetSessionByID(c *gin.Context) {
	idStr := c.Param("session_id")
	id, _ := strconv.Atoi(idStr)

	var session models.TableSession
	err := sc.DB.
		Preload("Table").
		Preload("Orders").
		Preload("Orders.OrderItems").
		Preload("Orders.OrderItems.Item").
		First(&session, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session detail", session)
}

// StartSession -> opens a session on a table. A table can hold only one open
// session at a time; a second start is rejected with a conflict.
func (sc *SessionController) StartSession(c *gin.Context) {
	var body struct {
		TableID      uint    `json:"table_id" binding:"required"`
		CustomerName *string `json:"customer_name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := sc.DB.First(&table, body.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var activeCount int64
	if err := sc.DB.Model(&models.TableSession{}).
		Where("table_id = ? AND end_time IS NULL", table.ID).
		Count(&activeCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if activeCount > 0 {
		utils.RespondError(c, http.StatusConflict, ErrSessionActive)
		return
	}

	session := models.TableSession{
		TableID:      table.ID,
		CustomerName: body.CustomerName,
		SessionKey:   uuid.NewString(),
		StartTime:    time.Now(),
	}
	if err := sc.DB.Create(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	session.Table = table

	events.Broadcast(events.EventSessionStart, session)

	utils.InfoLogger.Printf("Session %d started at table %d", session.ID, table.TableNumber)
	utils.RespondJSON(c, http.StatusCreated, "Session started", session)
}

// EndSession -> stamps end_time with the current time. Ending an already
// ended session re-stamps it rather than failing.
func (sc *SessionController) EndSession(c *gin.Context) {
	idStr := c.Param("session_id")
	id, _ := strconv.Atoi(idStr)

	var session models.TableSession
	if err := sc.DB.First(&session, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	now := time.Now()
	session.EndTime = &now
	if err := sc.DB.Save(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	err := sc.DB.
		Preload("Table").
		Preload("Orders").
		Preload("Orders.OrderItems").
		Preload("Orders.OrderItems.Item").
		First(&session, session.ID).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.EventSessionEnd, session)

	utils.InfoLogger.Printf("Session %d ended", session.ID)
	utils.RespondJSON(c, http.StatusOK, "Session ended", session)
}

// UpdateSession -> rename the customer on a session
func (sc *SessionController) UpdateSession(c *gin.Context) {
	idStr := c.Param("session_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		CustomerName *string `json:"customer_name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.TableSession
	if err := sc.DB.First(&session, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.CustomerName != nil {
		session.CustomerName = body.CustomerName
	}
	if err := sc.DB.Save(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := sc.DB.Preload("Table").First(&session, session.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session updated", session)
}
