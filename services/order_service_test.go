package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dineease/restaurant-backend/models"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
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

	db.Create(&models.User{Name: "Asha", Email: "asha@example.com", Password: "secret", Role: models.RoleCustomer})
	db.Create(&models.FoodItem{Name: "Item A", Price: 10.0, Available: true})
	db.Create(&models.FoodItem{Name: "Item B", Price: 5.0, Available: true})
	return db
}

func seedCart(t *testing.T, db *gorm.DB, userID uint) models.Cart {
	cart := models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatal(err)
	}
	db.Create(&models.CartItem{CartID: cart.ID, FoodID: 1, Quantity: 2})
	db.Create(&models.CartItem{CartID: cart.ID, FoodID: 2, Quantity: 1})
	return cart
}

func TestCheckoutSnapshotsCart(t *testing.T) {
	db := setupOrderTestDB(t)
	cart := seedCart(t, db, 1)
	svc := NewOrderService(db)

	order, err := svc.Checkout(1, "COD", "no onions")
	assert.NoError(t, err)

	// 2 x 10.00 + 1 x 5.00
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, 25.0, order.FinalAmount)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, order.OrderItems, 2)

	// Cart is empty afterwards
	var remaining int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&remaining)
	assert.Equal(t, int64(0), remaining)

	// Exactly one order with frozen per-line prices
	var items []models.OrderItem
	db.Where("order_id = ?", order.ID).Order("food_id asc").Find(&items)
	assert.Len(t, items, 2)
	assert.Equal(t, 10.0, items[0].Price)
	assert.Equal(t, 20.0, items[0].Subtotal)
	assert.Equal(t, 5.0, items[1].Price)
	assert.Equal(t, 5.0, items[1].Subtotal)
}

func TestCheckoutAmountsFrozenAgainstPriceChanges(t *testing.T) {
	db := setupOrderTestDB(t)
	seedCart(t, db, 1)
	svc := NewOrderService(db)

	order, err := svc.Checkout(1, "UPI", "")
	assert.NoError(t, err)

	// Raise catalog prices after checkout
	db.Model(&models.FoodItem{}).Where("id IN ?", []uint{1, 2}).Update("price", 99.0)

	var reloaded models.Order
	db.Preload("OrderItems").First(&reloaded, order.ID)
	assert.Equal(t, 25.0, reloaded.TotalAmount)
	assert.Equal(t, 10.0, reloaded.OrderItems[0].Price)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := NewOrderService(db)

	// No cart at all
	_, err := svc.Checkout(1, "COD", "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Cart exists but has no items
	db.Create(&models.Cart{UserID: 1})
	_, err = svc.Checkout(1, "COD", "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	// No order was created either way
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	db := setupOrderTestDB(t)
	seedCart(t, db, 1)
	svc := NewOrderService(db)

	_, err := svc.Checkout(1, "Barter", "")
	assert.ErrorIs(t, err, ErrValidation)

	// Cart untouched by the failed checkout
	var remaining int64
	db.Model(&models.CartItem{}).Count(&remaining)
	assert.Equal(t, int64(2), remaining)
}

func TestOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD\d{8}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, generateOrderNumber())
	}
}

func TestAdvanceStatusHappyPathEmitsNotifications(t *testing.T) {
	db := setupOrderTestDB(t)
	seedCart(t, db, 1)
	svc := NewOrderService(db)

	order, err := svc.Checkout(1, "Card", "")
	assert.NoError(t, err)

	order2, err := svc.AdvanceStatus(order.ID, models.OrderStatusConfirmed, "25 minutes")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order2.OrderStatus)
	assert.NotNil(t, order2.EstimatedTime)
	assert.Equal(t, "25 minutes", *order2.EstimatedTime)
	assert.False(t, order2.SeenByUser)

	_, err = svc.AdvanceStatus(order.ID, models.OrderStatusReady, "")
	assert.NoError(t, err)
	_, err = svc.AdvanceStatus(order.ID, models.OrderStatusCompleted, "")
	assert.NoError(t, err)

	// One notification per transition, three in total
	var count int64
	db.Model(&models.Notification{}).
		Where("order_id = ? AND user_id = ?", order.ID, order.UserID).
		Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestAdvanceStatusDefaultEstimatedTime(t *testing.T) {
	db := setupOrderTestDB(t)
	seedCart(t, db, 1)
	svc := NewOrderService(db)

	order, _ := svc.Checkout(1, "COD", "")
	confirmed, err := svc.AdvanceStatus(order.ID, models.OrderStatusConfirmed, "")
	assert.NoError(t, err)
	assert.Equal(t, "20 minutes", *confirmed.EstimatedTime)
}

func TestAdvanceStatusRejectsInvalidTransitions(t *testing.T) {
	db := setupOrderTestDB(t)
	seedCart(t, db, 1)
	svc := NewOrderService(db)

	order, _ := svc.Checkout(1, "COD", "")

	// Cannot jump Pending -> Ready
	_, err := svc.AdvanceStatus(order.ID, models.OrderStatusReady, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Unknown status is a validation error
	_, err = svc.AdvanceStatus(order.ID, "Delivered", "")
	assert.ErrorIs(t, err, ErrValidation)

	// Terminal states accept nothing
	_, err = svc.AdvanceStatus(order.ID, models.OrderStatusCancelled, "")
	assert.NoError(t, err)
	_, err = svc.AdvanceStatus(order.ID, models.OrderStatusConfirmed, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdvanceStatusCancelFromAnyNonTerminal(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := NewOrderService(db)

	for _, from := range []string{models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusReady} {
		seedCart(t, db, 1)
		order, err := svc.Checkout(1, "COD", "")
		assert.NoError(t, err)

		db.Model(&models.Order{}).Where("id = ?", order.ID).Update("order_status", from)

		cancelled, err := svc.AdvanceStatus(order.ID, models.OrderStatusCancelled, "")
		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, cancelled.OrderStatus)
	}

	// But not from Completed
	seedCart(t, db, 1)
	order, _ := svc.Checkout(1, "COD", "")
	db.Model(&models.Order{}).Where("id = ?", order.ID).Update("order_status", models.OrderStatusCompleted)
	_, err := svc.AdvanceStatus(order.ID, models.OrderStatusCancelled, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdvanceStatusUnknownOrder(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := NewOrderService(db)

	_, err := svc.AdvanceStatus(404, models.OrderStatusConfirmed, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkSeen(t *testing.T) {
	db := setupOrderTestDB(t)
	db.Create(&models.User{Name: "Ravi", Email: "ravi@example.com", Password: "secret", Role: models.RoleCustomer})
	seedCart(t, db, 1)
	svc := NewOrderService(db)

	order, _ := svc.Checkout(1, "COD", "")
	_, err := svc.AdvanceStatus(order.ID, models.OrderStatusConfirmed, "")
	assert.NoError(t, err)

	// Another user cannot acknowledge it
	assert.ErrorIs(t, svc.MarkSeen(2, order.ID), ErrNotFound)

	assert.NoError(t, svc.MarkSeen(1, order.ID))
	// Idempotent
	assert.NoError(t, svc.MarkSeen(1, order.ID))

	var reloaded models.Order
	db.First(&reloaded, order.ID)
	assert.True(t, reloaded.SeenByUser)
}
