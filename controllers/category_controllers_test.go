package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bramasto/tablepos/controllers"
	"github.com/bramasto/tablepos/models"
	"github.com/bramasto/tablepos/utils"
)

func setupTestDBForCategories(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Item{}, &models.Table{}, &models.TableSession{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupCategoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	categoryCtrl := controllers.NewCategoryController(db)
	router.GET("/categories", categoryCtrl.GetAllCategories)
	router.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
	router.POST("/categories", categoryCtrl.CreateCategory)
	router.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	router.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
	return router
}

func TestGetAllCategoriesOrderedByName(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCategories(t)

	db.Create(&models.Category{Name: "Main Course"})
	db.Create(&models.Category{Name: "Appetizers"})
	db.Create(&models.Category{Name: "Beverages"})

	router := setupCategoryRouter(db)
	req, err := http.NewRequest("GET", "/categories", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	data := response["data"].([]interface{})
	assert.Len(t, data, 3)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Appetizers", first["name"])
	last := data[2].(map[string]interface{})
	assert.Equal(t, "Main Course", last["name"])
}

func TestCreateCategory(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCategories(t)
	router := setupCategoryRouter(db)

	payload, _ := json.Marshal(map[string]string{"name": "Desserts"})
	req, _ := http.NewRequest("POST", "/categories", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Category{}).Where("name = ?", "Desserts").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateCategoryRejectsMissingName(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCategories(t)
	router := setupCategoryRouter(db)

	req, _ := http.NewRequest("POST", "/categories", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategoryWithItemsFails(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCategories(t)

	category := models.Category{Name: "Beverages"}
	db.Create(&category)
	db.Create(&models.Item{
		Name:       "Coke",
		Price:      decimal.NewFromFloat(2.00),
		CategoryID: category.ID,
	})

	router := setupCategoryRouter(db)
	url := "/categories/" + strconv.Itoa(int(category.ID))
	req, _ := http.NewRequest("DELETE", url, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// the category must survive
	var count int64
	db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteEmptyCategory(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCategories(t)

	category := models.Category{Name: "Empty"}
	db.Create(&category)

	router := setupCategoryRouter(db)
	url := "/categories/" + strconv.Itoa(int(category.ID))
	req, _ := http.NewRequest("DELETE", url, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
