package services

import (
	"errors"
	"fmt"
	"math/rand"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dineease/restaurant-backend/models"
)

// orderTransitions is the validity table for the order lifecycle. Completed
// and Cancelled are terminal; Cancelled is reachable from every non-terminal
// state.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted: {},
	models.OrderStatusCancelled: {},
}

func canTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var paymentMethods = map[string]bool{
	"UPI":        true,
	"Card":       true,
	"NetBanking": true,
	"Wallet":     true,
	"COD":        true,
}

const maxOrderNumberAttempts = 5

func generateOrderNumber() string {
	return fmt.Sprintf("ORD%08d", rand.Intn(100000000))
}

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// Checkout converts the user's cart into an order. Order creation, item
// snapshotting and cart clearing commit atomically; a failed checkout leaves
// the cart untouched.
func (svc *OrderService) Checkout(userID uint, paymentMethod, specialInstructions string) (*models.Order, error) {
	if !paymentMethods[paymentMethod] {
		return nil, ErrValidation
	}

	var order models.Order
	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items.Food").
			Where("user_id = ?", userID).
			First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		total := cart.Total()
		order = models.Order{
			UserID:              userID,
			TotalAmount:         total,
			FinalAmount:         total,
			PaymentMethod:       paymentMethod,
			PaymentStatus:       models.PaymentStatusPending,
			OrderStatus:         models.OrderStatusPending,
			SpecialInstructions: specialInstructions,
		}

		// Order numbers are random 8-digit suffixes; uniqueness is enforced
		// by the database, so regenerate on collision up to a small bound.
		created := false
		for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
			order.OrderNumber = generateOrderNumber()
			err := tx.Create(&order).Error
			if err == nil {
				created = true
				break
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			order.ID = 0
		}
		if !created {
			return ErrOrderNumberExhausted
		}

		for _, item := range cart.Items {
			orderItem := models.OrderItem{
				OrderID:  order.ID,
				FoodID:   item.FoodID,
				Quantity: item.Quantity,
				Price:    item.Food.Price,
				Subtotal: item.Subtotal(),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.OrderItems = append(order.OrderItems, orderItem)
		}

		// Clearing the cart commits or rolls back with the order itself.
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// AdvanceStatus moves an order to the target status. Only transitions in the
// validity table are accepted; every accepted transition resets seen_by_user
// and emits exactly one notification to the order's owner.
func (svc *OrderService) AdvanceStatus(orderID uint, target, estimatedTime string) (*models.Order, error) {
	if _, known := orderTransitions[target]; !known {
		return nil, ErrValidation
	}

	var order models.Order
	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !canTransition(order.OrderStatus, target) {
			return ErrInvalidTransition
		}

		order.OrderStatus = target
		order.SeenByUser = false
		if target == models.OrderStatusConfirmed {
			if estimatedTime == "" {
				estimatedTime = "20 minutes"
			}
			order.EstimatedTime = &estimatedTime
		}

		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		title, message := transitionNotice(&order)
		return emitNotification(tx, &models.Notification{
			UserID:  order.UserID,
			Type:    models.NotificationTypeOrder,
			Title:   title,
			Message: message,
			OrderID: &order.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func transitionNotice(order *models.Order) (string, string) {
	switch order.OrderStatus {
	case models.OrderStatusConfirmed:
		est := "20 minutes"
		if order.EstimatedTime != nil {
			est = *order.EstimatedTime
		}
		return "Order Confirmed", fmt.Sprintf("Your order #%s has been confirmed. Estimated time: %s.", order.OrderNumber, est)
	case models.OrderStatusReady:
		return "Order Ready", fmt.Sprintf("Your order #%s is ready for pickup or delivery.", order.OrderNumber)
	case models.OrderStatusCompleted:
		return "Order Completed", fmt.Sprintf("Order #%s has been completed. Enjoy your meal!", order.OrderNumber)
	case models.OrderStatusCancelled:
		return "Order Cancelled", fmt.Sprintf("Your order #%s has been cancelled.", order.OrderNumber)
	default:
		return "Order Update", fmt.Sprintf("Your order #%s was updated.", order.OrderNumber)
	}
}

// MarkSeen flags an order's latest status change as acknowledged by its
// owner. Idempotent.
func (svc *OrderService) MarkSeen(userID, orderID uint) error {
	var order models.Order
	if err := svc.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if order.SeenByUser {
		return nil
	}
	return svc.DB.Model(&order).Update("seen_by_user", true).Error
}
