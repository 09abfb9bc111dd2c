package models

import "time"

const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusReady     = "Ready"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
)

// Order is the immutable snapshot produced by checkout. Amounts and item
// prices are frozen at creation time; only the status fields change
// afterwards, through staff transitions.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OrderNumber string `gorm:"type:varchar(20);unique;not null" json:"order_number"`

	TotalAmount    float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DeliveryCharge float64 `gorm:"type:decimal(8,2);not null;default:50.00" json:"delivery_charge"`
	FinalAmount    float64 `gorm:"type:decimal(10,2);not null" json:"final_amount"`

	PaymentMethod string `gorm:"type:varchar(50);not null" json:"payment_method"`
	PaymentStatus string `gorm:"type:varchar(20);not null;default:'Pending'" json:"payment_status"`
	OrderStatus   string `gorm:"type:varchar(20);not null;default:'Pending'" json:"order_status"`

	EstimatedTime       *string `gorm:"type:varchar(100)" json:"estimated_time,omitempty"`
	SpecialInstructions string  `gorm:"type:text" json:"special_instructions"`
	SeenByUser          bool    `gorm:"not null;default:false" json:"seen_by_user"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

// IsTerminal reports whether no further status transition is allowed.
func (o *Order) IsTerminal() bool {
	return o.OrderStatus == OrderStatusCompleted || o.OrderStatus == OrderStatusCancelled
}
