package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bramasto/tablepos/models"
	"github.com/bramasto/tablepos/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// DayWindow returns the [00:00:00.000, 23:59:59.999] bounds of the local
// calendar day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// GetDailySummary -> order count, session-start count and revenue for one
// calendar day. Revenue only counts items on COMPLETED orders; the SUM runs
// in the store.
func (ac *AnalyticsController) GetDailySummary(c *gin.Context) {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		date = parsed
	}
	startOfDay, endOfDay := DayWindow(date)

	var summary struct {
		Date          string          `json:"date"`
		TotalOrders   int64           `json:"total_orders"`
		TotalSessions int64           `json:"total_sessions"`
		TotalRevenue  decimal.Decimal `json:"total_revenue"`
	}
	summary.Date = startOfDay.Format("2006-01-02")

	if err := ac.DB.Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ?", startOfDay, endOfDay).
		Count(&summary.TotalOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := ac.DB.Model(&models.TableSession{}).
		Where("start_time BETWEEN ? AND ?", startOfDay, endOfDay).
		Count(&summary.TotalSessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	revenue, err := ac.revenueBetween(startOfDay, endOfDay)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	summary.TotalRevenue = revenue

	utils.RespondJSON(c, http.StatusOK, "Daily summary", summary)
}

// revenueBetween sums price*quantity over order items whose order was
// completed and created inside the window.
func (ac *AnalyticsController) revenueBetween(start, end time.Time) (decimal.Decimal, error) {
	var revenue decimal.NullDecimal
	row := ac.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN items ON items.id = order_items.item_id").
		Where("orders.status = ? AND orders.created_at BETWEEN ? AND ?", models.OrderCompleted, start, end).
		Select("SUM(items.price * order_items.quantity)").
		Row()
	if err := row.Scan(&revenue); err != nil {
		return decimal.Zero, err
	}
	if !revenue.Valid {
		return decimal.Zero, nil
	}
	return revenue.Decimal, nil
}

type PopularItem struct {
	Item          models.Item `json:"item"`
	TotalQuantity int         `json:"total_quantity"`
	OrderCount    int64       `json:"order_count"`
}

// GetPopularItems -> top sellers over the trailing ?days window, grouped and
// summed in the store, joined with item and category detail.
func (ac *AnalyticsController) GetPopularItems(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			utils.RespondError(c, http.StatusBadRequest, ErrInvalidWindow)
			return
		}
		limit = parsed
	}
	days := 7
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			utils.RespondError(c, http.StatusBadRequest, ErrInvalidWindow)
			return
		}
		days = parsed
	}

	startDate := time.Now().AddDate(0, 0, -days)

	var rows []struct {
		ItemID        uint
		TotalQuantity int
		OrderCount    int64
	}
	err := ac.DB.Model(&models.OrderItem{}).
		Select("order_items.item_id AS item_id, SUM(order_items.quantity) AS total_quantity, COUNT(order_items.id) AS order_count").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ?", startDate).
		Group("order_items.item_id").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	popular := make([]PopularItem, 0, len(rows))
	for _, row := range rows {
		var item models.Item
		if err := ac.DB.Preload("Category").First(&item, row.ItemID).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		popular = append(popular, PopularItem{
			Item:          item,
			TotalQuantity: row.TotalQuantity,
			OrderCount:    row.OrderCount,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Popular items", popular)
}
