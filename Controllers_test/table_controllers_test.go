package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dineease/restaurant-backend/controllers"
	"github.com/dineease/restaurant-backend/models"
	"github.com/dineease/restaurant-backend/utils"
)

func setupTestDBForTables(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Table{}, &models.TableReview{}, &models.TableBooking{})
	if err != nil {
		t.Fatal(err)
	}
	return db
}

// asUser stands in for the JWT middleware in handler tests.
func asUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	tableCtrl := controllers.NewTableController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	staff := router.Group("/staff", asUser(1, models.RoleStaff))
	staff.POST("/tables", tableCtrl.CreateTable)
	staff.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	staff.GET("/tables", tableCtrl.GetAllTablesAdmin)
	return router
}

func TestGetAllTablesListsActiveOnly(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	db.Create(&models.Table{TableNumber: "T1", Seats: 4, IsActive: true})
	db.Create(&models.Table{TableNumber: "T2", Seats: 2, IsActive: false})

	router := setupTableRouter(db)
	req, _ := http.NewRequest("GET", "/tables", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "List of tables", response["message"])

	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestCreateTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"table_number": "T7",
		"seats":        6,
		"description":  "window seat",
	})
	req, _ := http.NewRequest("POST", "/staff/tables", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate table number is rejected
	req, _ = http.NewRequest("POST", "/staff/tables", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateTableSoftDisable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	table := models.Table{TableNumber: "T3", Seats: 4, IsActive: true}
	db.Create(&table)

	router := setupTableRouter(db)
	payload, _ := json.Marshal(map[string]interface{}{"is_active": false})
	url := "/staff/tables/" + strconv.Itoa(int(table.ID))
	req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Disabled tables disappear from the public list
	req, _ = http.NewRequest("GET", "/tables", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 0)
}

func TestGetTableByIDIncludesRatingSummary(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	db.Create(&models.User{Name: "Asha", Email: "asha@example.com", Password: "x", Role: models.RoleCustomer})
	table := models.Table{TableNumber: "T5", Seats: 2, IsActive: true}
	db.Create(&table)
	db.Create(&models.TableReview{TableID: table.ID, UserID: 1, Rating: 4, Comment: "good"})

	router := setupTableRouter(db)
	req, _ := http.NewRequest("GET", "/tables/"+strconv.Itoa(int(table.ID)), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 4.0, data["average_rating"])
	assert.Equal(t, 1.0, data["total_reviews"])
	assert.Len(t, data["reviews"].([]interface{}), 1)
}
