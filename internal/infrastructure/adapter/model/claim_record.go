package model

import (
	"time"
)

// ClaimRecord represents the database model for daily reward claims. One row
// per user; the primary key on UserID makes the upsert a natural conflict
// target.
type ClaimRecord struct {
	UserID        uint64    `gorm:"primaryKey"`
	LastClaimDate time.Time `gorm:"not null;type:date"`
	UpdatedAt     time.Time `gorm:"not null"`

	// Define relationships
	Account Account `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for ClaimRecord
func (ClaimRecord) TableName() string {
	return "daily_rewards"
}
