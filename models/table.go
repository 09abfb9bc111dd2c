package models

import "time"

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber string    `gorm:"type:varchar(10);unique;not null" json:"table_number"`
	Seats       uint      `gorm:"not null" json:"seats"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	Bookings []TableBooking `gorm:"foreignKey:TableID" json:"bookings,omitempty"`
	Reviews  []TableReview  `gorm:"foreignKey:TableID" json:"reviews,omitempty"`
}
