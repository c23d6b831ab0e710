package model

import (
	"time"
)

// Ownership represents the database model for purchased gifts. The composite
// unique index is the hard stop against double purchase when two requests
// race past the application-level check.
type Ownership struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_user_gift"`
	GiftID      uint64    `gorm:"not null;uniqueIndex:idx_user_gift"`
	PurchasedAt time.Time `gorm:"not null"`

	// Define relationships
	Account Account `gorm:"foreignKey:UserID;references:ID"`
	Gift    Gift    `gorm:"foreignKey:GiftID;references:ID"`
}

// TableName specifies the table name for Ownership
func (Ownership) TableName() string {
	return "user_gifts"
}
