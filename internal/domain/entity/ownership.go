package entity

import "time"

// Ownership is the permanent record that a user purchased a gift.
// Created exactly once per (user, gift); never mutated or deleted.
type Ownership struct {
	ID          uint64
	UserID      uint64
	GiftID      uint64
	PurchasedAt time.Time
}
