package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dineease/restaurant-backend/models"
	"github.com/dineease/restaurant-backend/services"
	"github.com/dineease/restaurant-backend/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Orders: services.NewOrderService(db)}
}

// Checkout converts the user's cart into an order.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		PaymentMethod       string `json:"payment_method" binding:"required"`
		SpecialInstructions string `json:"special_instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Checkout(userID, req.PaymentMethod, req.SpecialInstructions)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid payment method"))
		case errors.Is(err, services.ErrEmptyCart):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrOrderNumberExhausted):
			utils.RespondError(c, http.StatusServiceUnavailable, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("Order placed: %s user=%d amount=%s", order.OrderNumber, userID, utils.FormatAmount(order.FinalAmount))
	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", order)
}

// GetMyOrders lists the authenticated user's orders, newest first.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems.Food").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My orders", orders)
}

// GetOrderByID returns one order with items. Owners see their own orders;
// staff see any.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("OrderItems.Food").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.UserID != userID && !isStaff(c) {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// MarkOrderSeen acknowledges the latest status change, owner only.
func (oc *OrderController) MarkOrderSeen(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	if err := oc.Orders.MarkSeen(userID, uint(orderID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order marked as seen", gin.H{"order_id": orderID})
}

// GetAllOrders -> staff list of all orders with items.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems").Preload("User").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderStats -> staff dashboard counts per status.
func (oc *OrderController) GetOrderStats(c *gin.Context) {
	stats := gin.H{}
	var total int64
	if err := oc.DB.Model(&models.Order{}).Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	stats["all"] = total

	for _, status := range []string{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	} {
		var count int64
		if err := oc.DB.Model(&models.Order{}).
			Where("order_status = ?", status).
			Count(&count).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		stats[status] = count
	}

	utils.RespondJSON(c, http.StatusOK, "Order stats", stats)
}

// UpdateOrderStatus -> staff advances an order through the lifecycle.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		Status        string `json:"status" binding:"required"`
		EstimatedTime string `json:"estimated_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.AdvanceStatus(uint(orderID), req.Status, req.EstimatedTime)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown order status"))
		case errors.Is(err, services.ErrInvalidTransition):
			utils.RespondError(c, http.StatusConflict, err)
		case errors.Is(err, services.ErrNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("Order %s -> %s", order.OrderNumber, order.OrderStatus)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
