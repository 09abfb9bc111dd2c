package models

import "time"

type CartItem struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	CartID   uint     `gorm:"not null;uniqueIndex:idx_cart_food" json:"cart_id"`
	Cart     Cart     `gorm:"foreignKey:CartID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FoodID   uint     `gorm:"not null;uniqueIndex:idx_cart_food" json:"food_id"`
	Food     FoodItem `gorm:"foreignKey:FoodID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"food"`
	Quantity int      `gorm:"not null;default:1" json:"quantity"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Subtotal is quantity times the current catalog price. Requires Food to be
// preloaded.
func (ci *CartItem) Subtotal() float64 {
	return float64(ci.Quantity) * ci.Food.Price
}
