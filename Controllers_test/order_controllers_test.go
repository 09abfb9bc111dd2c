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

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.FoodItem{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.Notification{},
	)
	if err != nil {
		t.Fatal(err)
	}
	db.Create(&models.User{Name: "Asha", Email: "asha@example.com", Password: "x", Role: models.RoleCustomer})
	db.Create(&models.FoodItem{Name: "Paneer Tikka", Price: 12.5, Available: true})
	return db
}

func setupOrderRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db)
	cartCtrl := controllers.NewCartController(db)
	auth := router.Group("/", asUser(userID, role))
	auth.POST("/cart/items", cartCtrl.AddToCart)
	auth.POST("/orders/checkout", orderCtrl.Checkout)
	auth.GET("/orders", orderCtrl.GetMyOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/seen", orderCtrl.MarkOrderSeen)
	staff := router.Group("/staff", asUser(userID, models.RoleStaff))
	staff.GET("/orders", orderCtrl.GetAllOrders)
	staff.GET("/orders/stats", orderCtrl.GetOrderStats)
	staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	return router
}

func checkout(router *gin.Engine, method string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(map[string]interface{}{"payment_method": method})
	req, _ := http.NewRequest("POST", "/orders/checkout", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutFlow(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1, models.RoleCustomer)

	addToCart(router, 1)
	addToCart(router, 1)

	w := checkout(router, "COD")
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Order placed successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 25.0, data["total_amount"])
	assert.Equal(t, models.OrderStatusPending, data["order_status"])
	assert.Regexp(t, `^ORD\d{8}$`, data["order_number"])

	// The cart was consumed; a second checkout has nothing to convert
	w = checkout(router, "COD")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutInvalidPaymentMethodResponds400(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1, models.RoleCustomer)

	addToCart(router, 1)
	w := checkout(router, "Barter")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderByIDOwnership(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	db.Create(&models.User{Name: "Ravi", Email: "ravi@example.com", Password: "x", Role: models.RoleCustomer})

	owner := setupOrderRouter(db, 1, models.RoleCustomer)
	addToCart(owner, 1)
	w := checkout(owner, "UPI")
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	orderID := int(response["data"].(map[string]interface{})["id"].(float64))

	req, _ := http.NewRequest("GET", "/orders/"+strconv.Itoa(orderID), nil)
	w = httptest.NewRecorder()
	owner.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	other := setupOrderRouter(db, 2, models.RoleCustomer)
	req, _ = http.NewRequest("GET", "/orders/"+strconv.Itoa(orderID), nil)
	w = httptest.NewRecorder()
	other.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatusLifecycle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1, models.RoleCustomer)

	addToCart(router, 1)
	w := checkout(router, "COD")
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	orderID := int(response["data"].(map[string]interface{})["id"].(float64))
	statusURL := "/staff/orders/" + strconv.Itoa(orderID) + "/status"

	patchStatus := func(status string) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(map[string]interface{}{"status": status})
		req, _ := http.NewRequest("PATCH", statusURL, bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// Pending cannot jump straight to Ready
	assert.Equal(t, http.StatusConflict, patchStatus(models.OrderStatusReady).Code)

	assert.Equal(t, http.StatusOK, patchStatus(models.OrderStatusConfirmed).Code)
	assert.Equal(t, http.StatusOK, patchStatus(models.OrderStatusReady).Code)
	assert.Equal(t, http.StatusOK, patchStatus(models.OrderStatusCompleted).Code)

	// Completed is terminal
	assert.Equal(t, http.StatusConflict, patchStatus(models.OrderStatusCancelled).Code)

	// Unknown status is a validation error, not a transition conflict
	assert.Equal(t, http.StatusBadRequest, patchStatus("Delivered").Code)
}

func TestMarkOrderSeenEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1, models.RoleCustomer)

	addToCart(router, 1)
	w := checkout(router, "COD")
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	orderID := int(response["data"].(map[string]interface{})["id"].(float64))

	req, _ := http.NewRequest("PATCH", "/orders/"+strconv.Itoa(orderID)+"/seen", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	db.First(&order, orderID)
	assert.True(t, order.SeenByUser)
}

func TestGetOrderStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1, models.RoleStaff)

	addToCart(router, 1)
	checkout(router, "COD")

	req, _ := http.NewRequest("GET", "/staff/orders/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 1.0, data["all"])
	assert.Equal(t, 1.0, data[models.OrderStatusPending])
	assert.Equal(t, 0.0, data[models.OrderStatusCompleted])
}
