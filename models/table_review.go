package models

import "time"

// TableReview holds at most one rating+comment per (table, user) pair;
// re-submitting overwrites the previous review.
type TableReview struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	TableID uint  `gorm:"not null;uniqueIndex:idx_table_reviewer" json:"table_id"`
	Table   Table `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UserID  uint  `gorm:"not null;uniqueIndex:idx_table_reviewer" json:"user_id"`
	User    User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
