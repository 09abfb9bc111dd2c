package models

import "time"

type FoodItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(8,2);not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
