package models

import "time"

// OrderItem snapshots one cart line at checkout. Price and Subtotal are
// frozen and never recomputed from the catalog.
type OrderItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	FoodID uint     `gorm:"not null" json:"food_id"`
	Food   FoodItem `gorm:"foreignKey:FoodID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"food"`

	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"type:decimal(8,2);not null" json:"price"`
	Subtotal float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
