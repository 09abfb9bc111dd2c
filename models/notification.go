package models

import "time"

const (
	NotificationTypeOrder   = "order"
	NotificationTypeBooking = "booking"
)

// Notification is an append-only per-user message. Only IsRead ever changes
// after creation.
type Notification struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Type   string `gorm:"type:varchar(20);not null" json:"type"`

	Title   string `gorm:"type:varchar(200);not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	IsRead  bool   `gorm:"not null;default:false" json:"is_read"`

	OrderID   *uint         `gorm:"index" json:"order_id,omitempty"`
	Order     *Order        `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	BookingID *uint         `gorm:"index" json:"booking_id,omitempty"`
	Booking   *TableBooking `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
