package models

import "time"

// TableBooking is a confirmed reservation for a table at a given date and
// time. Time is stored as zero-padded "HH:MM" so range queries over it order
// chronologically.
type TableBooking struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"not null;index" json:"user_id"`
	User    User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	TableID uint      `gorm:"not null;uniqueIndex:idx_table_slot" json:"table_id"`
	Table   Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"table"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:idx_table_slot" json:"date"`
	Time    string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_table_slot" json:"time"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
