package model

import (
	"time"
)

// Gift represents the database model for catalog entries
type Gift struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"not null;size:255"`
	Description string    `gorm:"type:text"`
	Price       int64     `gorm:"not null"` // Whole currency units
	Icon        string    `gorm:"not null;size:100"`
	Category    string    `gorm:"not null;size:100;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for Gift
func (Gift) TableName() string {
	return "gifts"
}
